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

package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the wire format for date-only values. The API exchanges
// birthdays and similar calendar dates as bare "YYYY-MM-DD" strings with no
// time or zone component.
const DateLayout = "2006-01-02"

// Date represents a calendar date without a time-of-day component, as used
// for date_of_birth and other date-only API fields. The underlying value is
// the canonical "YYYY-MM-DD" string form.
//
// This type implements the model.Model interface. The zero value (empty
// string) is valid and represents "no date set": the API omits birthdays for
// users who never filled them in, and hydration maps that omission to the
// zero Date.
//
// Non-zero Date values MUST parse under DateLayout. ParseDate normalizes
// surrounding whitespace; there is no case to normalize.
//
// Example usage:
//
//	d, err := model.ParseDate("1989-07-22")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(d.Age(time.Now())) // years since the date
type Date string

// String returns the canonical "YYYY-MM-DD" form, or the empty string for
// the zero value. It satisfies the model.Loggable String requirement and
// never allocates.
func (d Date) String() string {
	return string(d)
}

// Redacted returns a logging-safe representation of the date. Calendar dates
// in this domain are almost always birth dates, which are PII; Redacted
// keeps only the year and masks month and day ("1989-**-**"). The zero value
// redacts to the empty string.
func (d Date) Redacted() string {
	if d.IsZero() {
		return ""
	}
	str := string(d)
	if len(str) < 4 {
		return "****"
	}
	return str[:4] + "-**-**"
}

// TypeName returns the constant "Date", satisfying model.Identifiable.
func (d Date) TypeName() string {
	return "Date"
}

// IsZero reports whether no date is set. It satisfies model.ZeroCheckable.
func (d Date) IsZero() bool {
	return d == ""
}

// Equal reports whether two Date values represent the same calendar date.
// Comparison is exact on the canonical string form.
func (d Date) Equal(other Date) bool {
	return d == other
}

// Time converts the Date to a time.Time at midnight UTC. The zero Date
// converts to the zero time.Time. Callers MUST validate the Date first;
// Time silently returns the zero time for unparseable values.
func (d Date) Time() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Age returns the number of whole years elapsed between the date and now.
// It returns 0 for the zero value and for dates in the future. This mirrors
// how the remote service derives the age shown on profiles from the stored
// date of birth.
func (d Date) Age(now time.Time) int {
	t := d.Time()
	if t.IsZero() || t.After(now) {
		return 0
	}

	years := now.Year() - t.Year()
	// Not yet had the birthday this year.
	if now.YearDay() < t.YearDay() && !isAnniversary(t, now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func isAnniversary(birth, now time.Time) bool {
	return birth.Month() == now.Month() && birth.Day() == now.Day()
}

// Validate checks that the Date is either the zero value or a well-formed
// calendar date under DateLayout. Impossible dates such as "2021-02-30" are
// rejected by the underlying time parser. It satisfies model.Validatable.
func (d Date) Validate() error {
	if d.IsZero() {
		return nil
	}

	if _, err := time.Parse(DateLayout, string(d)); err != nil {
		return fmt.Errorf("Date %q is not a valid YYYY-MM-DD date", string(d))
	}

	return nil
}

// MarshalJSON implements json.Marshaler. The Date is validated first and
// serialized as a JSON string; the zero value marshals to "".
func (d Date) MarshalJSON() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", d.TypeName(), err)
	}
	return json.Marshal(string(d))
}

// UnmarshalJSON implements json.Unmarshaler. Input goes through ParseDate,
// so surrounding whitespace is trimmed and malformed dates are rejected at
// the boundary. JSON null unmarshals to the zero value, matching the API's
// habit of sending null for unset birthdays.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}

	parsed, err := ParseDate(str)
	if err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}

	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting the validated canonical
// string form.
func (d Date) MarshalYAML() (interface{}, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", d.TypeName(), err)
	}
	return string(d), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Input goes through ParseDate
// like the JSON path.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}

	parsed, err := ParseDate(str)
	if err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}

	*d = parsed
	return nil
}

// ParseDate parses a string into a Date, trimming surrounding whitespace and
// validating against DateLayout. The empty string (and whitespace-only
// input) parses to the zero value.
func ParseDate(s string) (Date, error) {
	normalized := strings.TrimSpace(s)

	d := Date(normalized)
	if err := d.Validate(); err != nil {
		return "", fmt.Errorf("invalid date: %w", err)
	}

	return d, nil
}

// Compile-time verification that Date implements model.Model interface.
var _ Model = (*Date)(nil)
var _ Deserializable = (*Date)(nil)
