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

// Watcher represents one account that watched the authenticated account's
// profile, with its view count and last view time.
//
// This type implements the model.Model interface.
type Watcher struct {
	// LastView is when the watcher last viewed the profile.
	LastView time.Time `json:"last_view"`

	// User is the watching account.
	User User `json:"user"`

	// Count is the total number of views.
	Count int64 `json:"count"`

	// IsSearch reports whether the view came from a search.
	IsSearch bool `json:"is_search"`
}

// String returns a human-readable representation including the watcher's
// name. Use Redacted for logging.
func (w Watcher) String() string {
	return fmt.Sprintf("Watcher{User:%s, Count:%d}", w.User.String(), w.Count)
}

// Redacted returns a logging-safe representation.
func (w Watcher) Redacted() string {
	return fmt.Sprintf("Watcher{User:%s, Count:%d}", w.User.Redacted(), w.Count)
}

// TypeName returns the constant "Watcher".
func (w Watcher) TypeName() string {
	return "Watcher"
}

// IsZero reports whether the Watcher carries no data at all.
func (w Watcher) IsZero() bool {
	return w.LastView.IsZero() && w.User.IsZero() && w.Count == 0 && !w.IsSearch
}

// Validate checks the structural invariants of the Watcher.
func (w Watcher) Validate() error {
	if w.Count < 0 {
		return &errors.ValidationError{Type: "Watcher", Field: "count", Reason: "count is negative", Value: w.Count}
	}
	if err := w.User.Validate(); err != nil {
		return &errors.ValidationError{Type: "Watcher", Field: "user", Reason: err.Error()}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (w Watcher) MarshalJSON() ([]byte, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", w.TypeName(), err)
	}
	type alias Watcher
	return json.Marshal((alias)(w))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (w *Watcher) UnmarshalJSON(data []byte) error {
	type alias Watcher
	if err := json.Unmarshal(data, (*alias)(w)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return w.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (w Watcher) MarshalYAML() (interface{}, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", w.TypeName(), err)
	}
	type alias Watcher
	return (alias)(w), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (w *Watcher) UnmarshalYAML(node *yaml.Node) error {
	type alias Watcher
	if err := node.Decode((*alias)(w)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return w.Validate()
}

// Deleter represents one account that deleted the authenticated account
// from its address book.
//
// This type implements the model.Model interface.
type Deleter struct {
	// CreatedAt is when the deletion was recorded.
	CreatedAt time.Time `json:"created_at"`

	// User is the deleting account.
	User User `json:"user"`
}

// String returns a human-readable representation including the deleter's
// name. Use Redacted for logging.
func (d Deleter) String() string {
	return fmt.Sprintf("Deleter{User:%s, CreatedAt:%s}", d.User.String(), d.CreatedAt.Format(time.RFC3339))
}

// Redacted returns a logging-safe representation.
func (d Deleter) Redacted() string {
	return fmt.Sprintf("Deleter{User:%s}", d.User.Redacted())
}

// TypeName returns the constant "Deleter".
func (d Deleter) TypeName() string {
	return "Deleter"
}

// IsZero reports whether the Deleter carries no data at all.
func (d Deleter) IsZero() bool {
	return d.CreatedAt.IsZero() && d.User.IsZero()
}

// Validate checks the structural invariants of the Deleter.
func (d Deleter) Validate() error {
	if err := d.User.Validate(); err != nil {
		return &errors.ValidationError{Type: "Deleter", Field: "user", Reason: err.Error()}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (d Deleter) MarshalJSON() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", d.TypeName(), err)
	}
	type alias Deleter
	return json.Marshal((alias)(d))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (d *Deleter) UnmarshalJSON(data []byte) error {
	type alias Deleter
	if err := json.Unmarshal(data, (*alias)(d)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return d.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (d Deleter) MarshalYAML() (interface{}, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", d.TypeName(), err)
	}
	type alias Deleter
	return (alias)(d), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (d *Deleter) UnmarshalYAML(node *yaml.Node) error {
	type alias Deleter
	if err := node.Decode((*alias)(d)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return d.Validate()
}

// Compile-time verification of the model.Model interface.
var _ model.Model = (*Watcher)(nil)
var _ model.Deserializable = (*Watcher)(nil)
var _ model.Model = (*Deleter)(nil)
var _ model.Deserializable = (*Deleter)(nil)
