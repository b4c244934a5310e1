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

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/phone"
	"gopkg.in/yaml.v3"
)

// MutualContact represents one contact shared between the authenticated
// account and a viewed profile: the name the profile's owner stored for
// it and, when the contact is registered, the referenced account.
//
// This type implements the model.Model interface.
type MutualContact struct {
	// Name is the name the profile's owner stored for the contact.
	Name string `json:"name"`

	// PhoneNumber is the shared contact's number.
	PhoneNumber phone.Number `json:"phone_number"`

	// DateOfBirth is the shared contact's birthday, when known.
	DateOfBirth model.Date `json:"date_of_birth"`

	// ReferencedUser is the registered account behind the contact, nil
	// when the contact is not registered.
	ReferencedUser *User `json:"referenced_user"`
}

// DisplayName returns the stored name, satisfying the Person capability.
func (m MutualContact) DisplayName() string {
	return m.Name
}

// Phone returns the contact's number, satisfying the Person capability.
func (m MutualContact) Phone() phone.Number {
	return m.PhoneNumber
}

// String returns a human-readable representation including PII. Use
// Redacted for logging.
func (m MutualContact) String() string {
	return fmt.Sprintf("MutualContact{Name:%s, PhoneNumber:%s}", m.Name, m.PhoneNumber.String())
}

// Redacted returns a logging-safe representation with the name dropped
// and number masked.
func (m MutualContact) Redacted() string {
	return fmt.Sprintf("MutualContact{PhoneNumber:%s, DateOfBirth:%s}", m.PhoneNumber.Redacted(), m.DateOfBirth.Redacted())
}

// TypeName returns the constant "MutualContact".
func (m MutualContact) TypeName() string {
	return "MutualContact"
}

// IsZero reports whether the MutualContact carries no data at all.
func (m MutualContact) IsZero() bool {
	return m == MutualContact{}
}

// Validate checks the structural invariants of the MutualContact.
func (m MutualContact) Validate() error {
	if err := m.PhoneNumber.Validate(); err != nil {
		return &errors.ValidationError{Type: "MutualContact", Field: "phone_number", Reason: err.Error()}
	}
	if err := m.DateOfBirth.Validate(); err != nil {
		return &errors.ValidationError{Type: "MutualContact", Field: "date_of_birth", Reason: err.Error()}
	}
	if m.ReferencedUser != nil {
		if err := m.ReferencedUser.Validate(); err != nil {
			return &errors.ValidationError{Type: "MutualContact", Field: "referenced_user", Reason: err.Error()}
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (m MutualContact) MarshalJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	type alias MutualContact
	return json.Marshal((alias)(m))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (m *MutualContact) UnmarshalJSON(data []byte) error {
	type alias MutualContact
	if err := json.Unmarshal(data, (*alias)(m)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return m.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (m MutualContact) MarshalYAML() (interface{}, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	type alias MutualContact
	return (alias)(m), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (m *MutualContact) UnmarshalYAML(node *yaml.Node) error {
	type alias MutualContact
	if err := node.Decode((*alias)(m)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return m.Validate()
}

// Compile-time verification that MutualContact implements model.Model interface.
var _ model.Model = (*MutualContact)(nil)
var _ model.Deserializable = (*MutualContact)(nil)
