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
	"strconv"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/phone"
	"gopkg.in/yaml.v3"
)

// Contact represents a phone-number lookup result: the name the crowd
// knows a number by, spam signals, and, when the number belongs to a
// registered account, the nested User.
//
// This type implements the model.Model interface. Contacts carry a wire
// id, so Contact is hashable through model.Hash.
type Contact struct {
	// ID is the server-side identifier of this contact record.
	ID int64 `json:"id"`

	// Name is the crowd-sourced display name for the number.
	Name string `json:"name"`

	// PhoneNumber is the looked-up number in canonical form.
	PhoneNumber phone.Number `json:"phone_number"`

	// Picture is the contact's picture url, when one exists.
	Picture string `json:"picture"`

	// User is the registered account behind the number, nil when the
	// number is not a registered user.
	User *User `json:"user"`

	// SuggestedAsSpam counts how many users reported the number as spam.
	SuggestedAsSpam int64 `json:"suggested_as_spam"`

	// UserType is the app's identification color class for the number
	// (BLUE, GREEN, YELLOW, ORANGE, RED).
	UserType string `json:"user_type"`

	IsPermanent         bool `json:"is_permanent"`
	IsPendingNameChange bool `json:"is_pending_name_change"`
	IsSharedLocation    bool `json:"is_shared_location"`
	Cached              bool `json:"cached"`
}

// DisplayName returns the crowd-sourced name, satisfying the Person
// capability used by the shared vCard and blocking helpers.
func (c Contact) DisplayName() string {
	return c.Name
}

// Phone returns the looked-up number, satisfying the Person capability.
func (c Contact) Phone() phone.Number {
	return c.PhoneNumber
}

// Registered reports whether the number belongs to a registered account.
func (c Contact) Registered() bool {
	return c.User != nil && !c.User.IsZero()
}

// HashKey returns the decimal wire id, making Contact hashable through
// model.Hash.
func (c Contact) HashKey() string {
	return strconv.FormatInt(c.ID, 10)
}

// String returns a human-readable representation including PII. Use
// Redacted for logging.
func (c Contact) String() string {
	return fmt.Sprintf("Contact{ID:%d, Name:%s, PhoneNumber:%s}", c.ID, c.Name, c.PhoneNumber.String())
}

// Redacted returns a logging-safe representation with name dropped and
// number masked.
func (c Contact) Redacted() string {
	return fmt.Sprintf("Contact{ID:%d, PhoneNumber:%s, SuggestedAsSpam:%d}", c.ID, c.PhoneNumber.Redacted(), c.SuggestedAsSpam)
}

// TypeName returns the constant "Contact".
func (c Contact) TypeName() string {
	return "Contact"
}

// IsZero reports whether the Contact carries no data at all.
func (c Contact) IsZero() bool {
	return c.ID == 0 && c.Name == "" && c.PhoneNumber.IsZero() && c.User == nil &&
		c.Picture == "" && c.SuggestedAsSpam == 0 && c.UserType == ""
}

// Validate checks the structural invariants of the Contact, including the
// nested User when present.
func (c Contact) Validate() error {
	if c.ID < 0 {
		return &errors.ValidationError{Type: "Contact", Field: "id", Reason: "id is negative", Value: c.ID}
	}
	if err := c.PhoneNumber.Validate(); err != nil {
		return &errors.ValidationError{Type: "Contact", Field: "phone_number", Reason: err.Error()}
	}
	if c.SuggestedAsSpam < 0 {
		return &errors.ValidationError{Type: "Contact", Field: "suggested_as_spam", Reason: "count is negative", Value: c.SuggestedAsSpam}
	}
	if c.User != nil {
		if err := c.User.Validate(); err != nil {
			return &errors.ValidationError{Type: "Contact", Field: "user", Reason: err.Error()}
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (c Contact) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	type alias Contact
	return json.Marshal((alias)(c))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (c *Contact) UnmarshalJSON(data []byte) error {
	type alias Contact
	if err := json.Unmarshal(data, (*alias)(c)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return c.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (c Contact) MarshalYAML() (interface{}, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	type alias Contact
	return (alias)(c), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (c *Contact) UnmarshalYAML(node *yaml.Node) error {
	type alias Contact
	if err := node.Decode((*alias)(c)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return c.Validate()
}

// Compile-time verification that Contact implements model.Model interface.
var _ model.Model = (*Contact)(nil)
var _ model.Deserializable = (*Contact)(nil)
var _ model.Keyed = (*Contact)(nil)
