/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package identity

import (
	"encoding/json"
	"fmt"
	"time"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"gopkg.in/yaml.v3"
)

// Group represents one name group: the set of contacts that stored the
// authenticated account under the same name.
//
// This type implements the model.Model interface.
type Group struct {
	// Name is the shared name the group's members use.
	Name string `json:"name"`

	// Count is the number of contacts in the group.
	Count int64 `json:"count"`

	// LastContactAt is when the group last gained a contact.
	LastContactAt time.Time `json:"last_contact_at"`

	// Contacts are the group's member records.
	Contacts []Contact `json:"contacts"`

	// ContactIDs are the wire ids of the group's members, used by the
	// hide, restore, and rename-suggestion endpoints.
	ContactIDs []int64 `json:"contact_ids"`
}

// String returns a human-readable representation including the group
// name. Use Redacted for logging.
func (g Group) String() string {
	return fmt.Sprintf("Group{Name:%s, Count:%d}", g.Name, g.Count)
}

// Redacted returns a logging-safe representation with the name dropped.
func (g Group) Redacted() string {
	return fmt.Sprintf("Group{Count:%d, Members:%d}", g.Count, len(g.ContactIDs))
}

// TypeName returns the constant "Group".
func (g Group) TypeName() string {
	return "Group"
}

// IsZero reports whether the Group carries no data at all.
func (g Group) IsZero() bool {
	return g.Name == "" && g.Count == 0 && g.LastContactAt.IsZero() &&
		len(g.Contacts) == 0 && len(g.ContactIDs) == 0
}

// Validate checks the structural invariants of the Group and its members.
func (g Group) Validate() error {
	if g.Count < 0 {
		return &errors.ValidationError{Type: "Group", Field: "count", Reason: "count is negative", Value: g.Count}
	}
	if err := model.ValidateAll(g.Contacts); err != nil {
		return &errors.ValidationError{Type: "Group", Field: "contacts", Reason: err.Error()}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (g Group) MarshalJSON() ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", g.TypeName(), err)
	}
	type alias Group
	return json.Marshal((alias)(g))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (g *Group) UnmarshalJSON(data []byte) error {
	type alias Group
	if err := json.Unmarshal(data, (*alias)(g)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return g.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (g Group) MarshalYAML() (interface{}, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", g.TypeName(), err)
	}
	type alias Group
	return (alias)(g), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (g *Group) UnmarshalYAML(node *yaml.Node) error {
	type alias Group
	if err := node.Decode((*alias)(g)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return g.Validate()
}

// Compile-time verification that Group implements model.Model interface.
var _ model.Model = (*Group)(nil)
var _ model.Deserializable = (*Group)(nil)
