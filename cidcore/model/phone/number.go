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

// Package phone provides the Number scalar, the canonical representation of
// an international phone number throughout callerid. Phone numbers are the
// primary key of the whole domain: lookups, credential storage, contact sync
// and blocking all key on a Number.
package phone

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"gopkg.in/yaml.v3"
)

const (
	// MinDigits is the minimum number of digits in a valid Number.
	MinDigits = 9

	// MaxDigits is the maximum number of digits in a valid Number,
	// matching the E.164 ceiling.
	MaxDigits = 15
)

// Number represents an international phone number in canonical form: the
// bare digit value including the country code, with no punctuation and no
// leading plus. "+1 (234) 567-8900" and "12345678900" both canonicalize to
// Number(12345678900).
//
// This type implements the model.Model interface. The zero value (0) is
// valid and represents "no number set", used for optional fields such as a
// profile's secondary phone. Numbers entering through Parse MUST carry
// between MinDigits and MaxDigits decimal digits; numbers decoded from
// server payloads and call logs are lenient about length.
//
// Parsing is idempotent: feeding a canonical Number's string form back
// through Parse yields the same Number.
//
// Example usage:
//
//	n, err := phone.Parse("+972 54-123-4567")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(n.String()) // "972541234567"
type Number int64

// Parse converts a loosely typed phone number into its canonical Number
// form. It accepts the representations the API and user input actually
// produce: integers (int, int64, float64 from decoded JSON), a Number
// passed through unchanged, and strings with an optional leading "+" and
// common punctuation (spaces, dashes, dots, parentheses), all of which is
// stripped.
//
// After normalization the digit count MUST be within [MinDigits, MaxDigits];
// anything else, and any string containing non-punctuation non-digits,
// yields a ParseError. Parse guards the boundaries where a reachable
// subscriber number is required: lookups, contact sync, blocking,
// credential keys. Call-log ingestion uses ParseLenient instead, since
// device call histories legitimately contain short codes.
func Parse(value any) (Number, error) {
	n, err := ParseLenient(value)
	if err != nil {
		return 0, err
	}
	if d := n.Digits(); d < MinDigits || d > MaxDigits {
		return 0, &errors.ParseError{Type: "Number", Value: n.String()}
	}
	return n, nil
}

// ParseLenient converts a loosely typed phone number into a Number without
// enforcing the subscriber-number length policy. It accepts the same input
// forms as Parse; only the [MinDigits, MaxDigits] check is skipped, so
// short codes and service numbers ("555", "100") found in call logs and
// server payloads survive.
func ParseLenient(value any) (Number, error) {
	switch v := value.(type) {
	case Number:
		return v, v.Validate()
	case int:
		return validated(int64(v), strconv.Itoa(v))
	case int64:
		return validated(v, strconv.FormatInt(v, 10))
	case float64:
		i := int64(v)
		if float64(i) != v {
			return 0, &errors.ParseError{Type: "Number", Value: strconv.FormatFloat(v, 'f', -1, 64)}
		}
		return validated(i, strconv.FormatInt(i, 10))
	case string:
		return parseString(v)
	default:
		return 0, &errors.ParseError{Type: "Number", Value: fmt.Sprintf("%v", value)}
	}
}

func parseString(s string) (Number, error) {
	normalized := strings.TrimSpace(s)
	normalized = strings.TrimPrefix(normalized, "+")

	var digits strings.Builder
	for _, r := range normalized {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
			// Punctuation is stripped.
		default:
			return 0, &errors.ParseError{Type: "Number", Value: s}
		}
	}

	str := digits.String()
	if str == "" {
		return 0, &errors.ParseError{Type: "Number", Value: s}
	}

	i, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, &errors.ParseError{Type: "Number", Value: s}
	}

	return validated(i, str)
}

func validated(i int64, original string) (Number, error) {
	n := Number(i)
	if err := n.Validate(); err != nil {
		return 0, &errors.ParseError{Type: "Number", Value: original}
	}
	return n, nil
}

// String returns the canonical digit form of the Number, or the empty
// string for the zero value. It satisfies the model.Loggable String
// requirement.
func (n Number) String() string {
	if n.IsZero() {
		return ""
	}
	return strconv.FormatInt(int64(n), 10)
}

// Redacted returns a logging-safe form of the Number with everything but
// the last two digits masked ("**********67"). Phone numbers are the core
// PII of this domain and MUST NOT appear unmasked in production logs. The
// zero value redacts to the empty string.
func (n Number) Redacted() string {
	str := n.String()
	if len(str) <= 2 {
		return str
	}
	return strings.Repeat("*", len(str)-2) + str[len(str)-2:]
}

// TypeName returns the constant "Number", satisfying model.Identifiable.
func (n Number) TypeName() string {
	return "Number"
}

// IsZero reports whether no number is set. It satisfies model.ZeroCheckable.
func (n Number) IsZero() bool {
	return n == 0
}

// Equal reports whether two Numbers are the same phone number.
func (n Number) Equal(other Number) bool {
	return n == other
}

// Int64 returns the underlying integer value, which is what the API expects
// in request payloads.
func (n Number) Int64() int64 {
	return int64(n)
}

// E164 returns the number in display form with a leading plus, or the empty
// string for the zero value. This is a presentation helper; wire payloads
// always use the bare digit value.
func (n Number) E164() string {
	if n.IsZero() {
		return ""
	}
	return "+" + n.String()
}

// Digits returns the number of decimal digits in the Number, or 0 for the
// zero value.
func (n Number) Digits() int {
	if n.IsZero() {
		return 0
	}
	return len(strconv.FormatInt(int64(n), 10))
}

// Validate checks the structural invariants of the Number: the zero value
// is valid ("not set") and negative values are always invalid. The
// subscriber-number length policy is deliberately not checked here; it is
// enforced by Parse at the boundaries that require a reachable number,
// while hydrated server data and call logs may carry shorter values. It
// satisfies model.Validatable.
func (n Number) Validate() error {
	if n < 0 {
		return fmt.Errorf("Number %d is negative", int64(n))
	}
	return nil
}

// MarshalJSON implements json.Marshaler. The Number is validated first and
// serialized as a bare JSON number, matching the wire format the API
// expects for phone_number fields.
func (n Number) MarshalJSON() ([]byte, error) {
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", n.TypeName(), err)
	}
	return json.Marshal(int64(n))
}

// UnmarshalJSON implements json.Unmarshaler. Both JSON numbers and strings
// are accepted, since the API is inconsistent about which it sends; string
// input tolerates punctuation. Decoding is lenient about length because
// the payload originates from the server. JSON null unmarshals to the zero
// value.
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = 0
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}

	parsed, err := ParseLenient(raw)
	if err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}

	*n = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting the validated integer
// value.
func (n Number) MarshalYAML() (interface{}, error) {
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", n.TypeName(), err)
	}
	return int64(n), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Scalar input is decoded as a
// string and routed through ParseLenient, so quoted, punctuated, and bare
// integer forms all work.
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}

	parsed, err := ParseLenient(str)
	if err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}

	*n = parsed
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler so that hydration can
// coerce string-typed API fields into Numbers through the standard decode
// hook.
func (n *Number) UnmarshalText(text []byte) error {
	parsed, err := ParseLenient(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Compile-time verification that Number implements model.Model interface.
var _ model.Model = (*Number)(nil)
var _ model.Deserializable = (*Number)(nil)
