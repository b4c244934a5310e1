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

// Package creds stores and inspects the per-account token bundles the
// remote API hands out at authentication time. A Manager keeps one
// Bundle per phone number; implementations cover in-process use (Memory)
// and shared deployments (Redis).
package creds

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"gopkg.in/yaml.v3"
)

// Bundle holds the tokens issued for one authenticated phone number: the
// short-lived access token, the refresh token that renews it, and the
// optional pwd_token used by account recovery.
//
// This type implements the model.Model interface. Tokens never appear in
// Redacted output.
type Bundle struct {
	// Access is the bearer token sent on every API request.
	Access string `json:"access"`

	// Refresh renews the access token when it expires.
	Refresh string `json:"refresh"`

	// PwdToken is the account-recovery token, when the API issued one.
	PwdToken string `json:"pwd_token,omitempty"`
}

// String returns a representation that exposes the tokens. It MUST NOT
// be used for production logging; use Redacted.
func (b Bundle) String() string {
	return fmt.Sprintf("Bundle{Access:%s, Refresh:%s, PwdToken:%s}", b.Access, b.Refresh, b.PwdToken)
}

// Redacted returns a logging-safe representation. Tokens are secrets and
// are hidden entirely; only their presence is reported.
func (b Bundle) Redacted() string {
	return fmt.Sprintf("Bundle{Access:<hidden>, Refresh:<hidden>, PwdToken set:%t}", b.PwdToken != "")
}

// TypeName returns the constant "Bundle".
func (b Bundle) TypeName() string {
	return "Bundle"
}

// IsZero reports whether the Bundle carries no tokens at all.
func (b Bundle) IsZero() bool {
	return b == Bundle{}
}

// Equal reports whether two bundles carry the same tokens.
func (b Bundle) Equal(other Bundle) bool {
	return b == other
}

// Validate checks that the Bundle is usable: both the access and refresh
// tokens are required, pwd_token is optional.
func (b Bundle) Validate() error {
	if b.Access == "" {
		return &errors.ValidationError{Type: "Bundle", Field: "access", Reason: "access token must be provided"}
	}
	if b.Refresh == "" {
		return &errors.ValidationError{Type: "Bundle", Field: "refresh", Reason: "refresh token must be provided"}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (b Bundle) MarshalJSON() ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", b.TypeName(), err)
	}
	type alias Bundle
	return json.Marshal((alias)(b))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (b *Bundle) UnmarshalJSON(data []byte) error {
	type alias Bundle
	if err := json.Unmarshal(data, (*alias)(b)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return b.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (b Bundle) MarshalYAML() (interface{}, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", b.TypeName(), err)
	}
	type alias Bundle
	return (alias)(b), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (b *Bundle) UnmarshalYAML(node *yaml.Node) error {
	type alias Bundle
	if err := node.Decode((*alias)(b)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return b.Validate()
}

// Compile-time verification that Bundle implements model.Model interface.
var _ model.Model = (*Bundle)(nil)
var _ model.Deserializable = (*Bundle)(nil)
