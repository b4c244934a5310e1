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

// Package calllog defines the call-log entry model and the batch validation
// applied to call histories before they are synced to the remote API.
package calllog

import (
	"encoding/json"
	"fmt"
	"strings"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"gopkg.in/yaml.v3"
)

// Type represents the direction/outcome classification of a call-log entry.
// The remote API recognizes exactly three kinds of call: incoming, missed,
// and outgoing. The set is closed; sync payloads carrying anything else are
// rejected by the server, so validation rejects them client-side first.
//
// This type implements the model.Model interface. The zero value (0) means
// "not set" and is reported by IsZero; a zero Type never validates, because
// every call-log entry MUST carry a direction.
//
// Type values serialize to their lowercase string representations in both
// JSON and YAML. Deserialization accepts uppercase variants and surrounding
// whitespace for flexibility, though lowercase is canonical.
//
// Example usage:
//
//	t := calllog.Incoming
//	fmt.Println(t.String()) // Output: "incoming"
//
//	var parsed calllog.Type
//	json.Unmarshal([]byte(`"missed"`), &parsed)
//	fmt.Println(parsed == calllog.Missed) // Output: true
type Type uint8

const (
	// Incoming represents a call that was received and answered.
	//
	// Wire string: "incoming"
	Incoming Type = iota + 1

	// Missed represents a call that was received but not answered.
	//
	// Wire string: "missed"
	Missed

	// Outgoing represents a call that was placed from this device.
	//
	// Wire string: "outgoing"
	Outgoing

	// maxType is one past the last valid constant, used for range checks.
	maxType
)

const (
	// IncomingStr is the canonical wire string for Incoming.
	IncomingStr = "incoming"

	// MissedStr is the canonical wire string for Missed.
	MissedStr = "missed"

	// OutgoingStr is the canonical wire string for Outgoing.
	OutgoingStr = "outgoing"
)

// String returns the lowercase wire string of the Type ("incoming",
// "missed", "outgoing"). For the zero value and out-of-range values it
// returns "unknown". It satisfies the model.Loggable String requirement and
// never allocates.
func (t Type) String() string {
	switch t {
	case Incoming:
		return IncomingStr
	case Missed:
		return MissedStr
	case Outgoing:
		return OutgoingStr
	default:
		return "unknown"
	}
}

// Redacted returns the same value as String. Call directions carry no
// sensitive data, so no masking is necessary.
func (t Type) Redacted() string {
	return t.String()
}

// TypeName returns the constant "Type", satisfying model.Identifiable.
func (t Type) TypeName() string {
	return "Type"
}

// IsZero reports whether the Type is unset. Unlike the valid constants, the
// zero value carries no direction and fails validation.
func (t Type) IsZero() bool {
	return t == 0
}

// Equal reports whether two Type values are the same call direction.
func (t Type) Equal(other Type) bool {
	return t == other
}

// Validate checks that the Type is one of the defined constants. The zero
// value is rejected: a call-log entry without a direction cannot be synced.
// It satisfies model.Validatable.
func (t Type) Validate() error {
	if t == 0 || t >= maxType {
		return fmt.Errorf("Type value %d is out of valid range [1, %d)", t, maxType)
	}
	return nil
}

// MarshalJSON implements json.Marshaler, emitting the validated lowercase
// wire string.
func (t Type) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", t.TypeName(), err)
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler. Input goes through ParseType,
// so case variants and surrounding whitespace are tolerated and unknown
// directions fail fast.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}

	parsed, err := ParseType(s)
	if err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}

	*t = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting the validated lowercase
// wire string.
func (t Type) MarshalYAML() (interface{}, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", t.TypeName(), err)
	}
	return t.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Input goes through ParseType
// like the JSON path.
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}

	parsed, err := ParseType(s)
	if err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}

	*t = parsed
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler so that hydration can
// coerce string-typed API fields into Types through the standard decode
// hook.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseType parses a string into a Type value. Input is normalized by
// trimming whitespace and lowercasing before matching against the closed
// set of wire strings; anything else yields a ParseError.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case IncomingStr:
		return Incoming, nil
	case MissedStr:
		return Missed, nil
	case OutgoingStr:
		return Outgoing, nil
	default:
		return 0, &errors.ParseError{Type: "Type", Value: s}
	}
}

// Compile-time verification that Type implements model.Model interface.
var _ model.Model = (*Type)(nil)
var _ model.Deserializable = (*Type)(nil)
