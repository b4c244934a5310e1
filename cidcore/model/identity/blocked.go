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

// BlockedNumber represents one entry on the account's block list and the
// scope of the block: calls (block_contact) and/or profile visibility
// (me_full_block).
//
// This type implements the model.Model interface.
type BlockedNumber struct {
	// PhoneNumber is the blocked number.
	PhoneNumber phone.Number `json:"phone_number"`

	// BlockContact blocks calls from the number.
	BlockContact bool `json:"block_contact"`

	// MeFullBlock hides the account's profile from the number.
	MeFullBlock bool `json:"me_full_block"`
}

// String returns a human-readable representation including the full
// number. Use Redacted for logging.
func (b BlockedNumber) String() string {
	return fmt.Sprintf("BlockedNumber{PhoneNumber:%s, BlockContact:%t, MeFullBlock:%t}",
		b.PhoneNumber.String(), b.BlockContact, b.MeFullBlock)
}

// Redacted returns a logging-safe representation with the number masked.
func (b BlockedNumber) Redacted() string {
	return fmt.Sprintf("BlockedNumber{PhoneNumber:%s, BlockContact:%t, MeFullBlock:%t}",
		b.PhoneNumber.Redacted(), b.BlockContact, b.MeFullBlock)
}

// TypeName returns the constant "BlockedNumber".
func (b BlockedNumber) TypeName() string {
	return "BlockedNumber"
}

// IsZero reports whether the BlockedNumber carries no data at all.
func (b BlockedNumber) IsZero() bool {
	return b == BlockedNumber{}
}

// Equal reports whether two entries block the same number the same way.
func (b BlockedNumber) Equal(other BlockedNumber) bool {
	return b == other
}

// Validate checks the structural invariants of the BlockedNumber. An
// entry must name a number and block at least one surface.
func (b BlockedNumber) Validate() error {
	if b.PhoneNumber.IsZero() {
		return &errors.ValidationError{Type: "BlockedNumber", Field: "phone_number", Reason: "phone_number must be provided"}
	}
	if err := b.PhoneNumber.Validate(); err != nil {
		return &errors.ValidationError{Type: "BlockedNumber", Field: "phone_number", Reason: err.Error()}
	}
	if !b.BlockContact && !b.MeFullBlock {
		return &errors.ValidationError{Type: "BlockedNumber", Reason: "at least one of block_contact, me_full_block must be set"}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (b BlockedNumber) MarshalJSON() ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", b.TypeName(), err)
	}
	type alias BlockedNumber
	return json.Marshal((alias)(b))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (b *BlockedNumber) UnmarshalJSON(data []byte) error {
	type alias BlockedNumber
	if err := json.Unmarshal(data, (*alias)(b)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return b.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (b BlockedNumber) MarshalYAML() (interface{}, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", b.TypeName(), err)
	}
	type alias BlockedNumber
	return (alias)(b), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (b *BlockedNumber) UnmarshalYAML(node *yaml.Node) error {
	type alias BlockedNumber
	if err := node.Decode((*alias)(b)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return b.Validate()
}

// Compile-time verification that BlockedNumber implements model.Model interface.
var _ model.Model = (*BlockedNumber)(nil)
var _ model.Deserializable = (*BlockedNumber)(nil)
