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
	"strings"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/phone"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// User represents a registered account as it appears nested inside other
// API objects: search results, comment authors, watcher and deleter
// records, mutual friends. It is the compact public view of a person; the
// full self-describing view is Profile.
//
// This type implements the model.Model interface. Users have no integer
// id on the wire, only a uuid, so User is not hashable through model.Hash.
type User struct {
	// UUID is the account's unique identifier.
	UUID uuid.UUID `json:"uuid"`

	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Email          string       `json:"email"`
	Gender         string       `json:"gender"`
	PhoneNumber    phone.Number `json:"phone_number"`
	ProfilePicture string       `json:"profile_picture"`
	Slogan         string       `json:"slogan"`

	IsVerified         bool `json:"is_verified"`
	IsPremium          bool `json:"is_premium"`
	VerifySubscription bool `json:"verify_subscription"`
}

// DisplayName returns the user's full name, or whatever half of it is
// known. It satisfies the Person capability used by the shared vCard and
// blocking helpers.
func (u User) DisplayName() string {
	return joinName(u.FirstName, u.LastName)
}

// Phone returns the user's number, satisfying the Person capability.
func (u User) Phone() phone.Number {
	return u.PhoneNumber
}

// Mail returns the user's email address for the vCard helper.
func (u User) Mail() string {
	return u.Email
}

// String returns a human-readable representation including PII. Use
// Redacted for logging.
func (u User) String() string {
	return fmt.Sprintf("User{UUID:%s, Name:%s, PhoneNumber:%s}", u.UUID, u.DisplayName(), u.PhoneNumber.String())
}

// Redacted returns a logging-safe representation: uuid kept (it is the
// server-side identifier, not PII), name and number masked.
func (u User) Redacted() string {
	return fmt.Sprintf("User{UUID:%s, PhoneNumber:%s}", u.UUID, u.PhoneNumber.Redacted())
}

// TypeName returns the constant "User".
func (u User) TypeName() string {
	return "User"
}

// IsZero reports whether the User carries no data, which is how hydration
// represents an unregistered counterparty.
func (u User) IsZero() bool {
	return u == User{}
}

// Equal reports whether two User snapshots carry the same values.
func (u User) Equal(other User) bool {
	return u == other
}

// Validate checks the structural invariants of the User. Partial objects
// are the norm (most endpoints omit fields), so only the fields that are
// present are checked.
func (u User) Validate() error {
	if err := u.PhoneNumber.Validate(); err != nil {
		return &errors.ValidationError{Type: "User", Field: "phone_number", Reason: err.Error()}
	}
	if err := validateGender(u.Gender); err != nil {
		return &errors.ValidationError{Type: "User", Field: "gender", Reason: err.Error(), Value: u.Gender}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (u User) MarshalJSON() ([]byte, error) {
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", u.TypeName(), err)
	}
	type alias User
	return json.Marshal((alias)(u))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	if err := json.Unmarshal(data, (*alias)(u)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return u.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (u User) MarshalYAML() (interface{}, error) {
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", u.TypeName(), err)
	}
	type alias User
	return (alias)(u), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (u *User) UnmarshalYAML(node *yaml.Node) error {
	type alias User
	if err := node.Decode((*alias)(u)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return u.Validate()
}

// joinName glues first and last name, tolerating either being empty.
func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

// validateGender accepts the API's closed gender set: "M", "F", or unset.
func validateGender(g string) error {
	switch strings.ToUpper(g) {
	case "", "M", "F", "N":
		return nil
	default:
		return fmt.Errorf("gender %q is not one of M, F, N", g)
	}
}

// Compile-time verification that User implements model.Model interface.
var _ model.Model = (*User)(nil)
var _ model.Deserializable = (*User)(nil)
