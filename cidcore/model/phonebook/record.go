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

// Package phonebook defines the contact record model and the batch
// filtering applied to address books before they are synced to the remote
// API.
package phonebook

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/phone"
	"gopkg.in/yaml.v3"
)

// Record represents one address-book contact as exchanged with the contact
// sync endpoint. A syncable record names a person and carries their number;
// birthday and country code are optional enrichments the app sends when it
// has them.
//
// This type implements the model.Model interface. The zero value represents
// "no record" and is reported by IsZero.
type Record struct {
	// Name is the contact's display name as stored in the address book.
	Name string `json:"name"`

	// PhoneNumber is the contact's number in canonical form.
	PhoneNumber phone.Number `json:"phone_number"`

	// DateOfBirth is the contact's birthday, when known.
	DateOfBirth model.Date `json:"date_of_birth,omitempty"`

	// CountryCode is the two-letter country code associated with the
	// contact, when known.
	CountryCode string `json:"country_code,omitempty"`
}

// String returns a human-readable representation including the full phone
// number. It MUST NOT be used for production logging; use Redacted.
func (r Record) String() string {
	return fmt.Sprintf("Record{Name:%s, PhoneNumber:%s, CountryCode:%s}",
		r.Name, r.PhoneNumber.String(), r.CountryCode)
}

// Redacted returns a logging-safe representation with the phone number
// masked, the name dropped, and the birthday reduced to its year.
func (r Record) Redacted() string {
	return fmt.Sprintf("Record{PhoneNumber:%s, DateOfBirth:%s, CountryCode:%s}",
		r.PhoneNumber.Redacted(), r.DateOfBirth.Redacted(), r.CountryCode)
}

// TypeName returns the constant "Record", satisfying model.Identifiable.
func (r Record) TypeName() string {
	return "Record"
}

// IsZero reports whether the Record carries no data at all.
func (r Record) IsZero() bool {
	return r == Record{}
}

// Equal reports whether two records describe the same contact entry.
func (r Record) Equal(other Record) bool {
	return r == other
}

// Validate checks that the Record is syncable: both a non-empty name and a
// phone number are required, and the optional birthday must be a valid date
// when present. Short codes are accepted; the sync endpoint takes any number
// a device address book can hold. It satisfies model.Validatable.
func (r Record) Validate() error {
	if r.Name == "" {
		return &errors.ValidationError{Type: "Record", Field: "name", Reason: "name must be provided"}
	}
	if r.PhoneNumber.IsZero() {
		return &errors.ValidationError{Type: "Record", Field: "phone_number", Reason: "phone_number must be provided"}
	}
	if err := r.PhoneNumber.Validate(); err != nil {
		return &errors.ValidationError{Type: "Record", Field: "phone_number", Reason: err.Error()}
	}
	if err := r.DateOfBirth.Validate(); err != nil {
		return &errors.ValidationError{Type: "Record", Field: "date_of_birth", Reason: err.Error()}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern, with
// validation before encoding.
func (r Record) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", r.TypeName(), err)
	}
	type alias Record
	return json.Marshal((alias)(r))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	if err := json.Unmarshal(data, (*alias)(r)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return r.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern, with
// validation before encoding.
func (r Record) MarshalYAML() (interface{}, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", r.TypeName(), err)
	}
	type alias Record
	return (alias)(r), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	type alias Record
	if err := node.Decode((*alias)(r)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return r.Validate()
}

// ValidateRecords filters a raw address book down to the records the sync
// endpoint will accept: those holding both a non-empty name and a present
// phone number. Records failing that bar are silently dropped, matching the
// server's own behavior of ignoring unnamed or numberless entries; this is
// a filter, not a validator, and dropping is not an error. Numbers are
// parsed leniently, so short codes survive the filter.
//
// Input order is preserved and duplicates are kept as-is. The optional
// date_of_birth and country_code fields are carried through when present
// and well-formed; a malformed birthday is discarded while the record
// itself is kept.
//
// An input that filters down to nothing yields a ValidationError, because
// the sync endpoint rejects empty payloads. ValidateRecords is idempotent:
// running it over the exported form of its own output keeps every record.
func ValidateRecords(raw []map[string]any) ([]Record, error) {
	records := make([]Record, 0, len(raw))

	for _, item := range raw {
		record, ok := buildRecord(item)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, &errors.ValidationError{Type: "Record", Reason: "no syncable contacts after filtering"}
	}

	return records, nil
}

func buildRecord(item map[string]any) (Record, bool) {
	name, _ := item["name"].(string)
	if name == "" {
		return Record{}, false
	}

	rawNumber, ok := item["phone_number"]
	if !ok || rawNumber == nil {
		return Record{}, false
	}
	number, err := phone.ParseLenient(rawNumber)
	if err != nil {
		return Record{}, false
	}

	record := Record{
		Name:        name,
		PhoneNumber: number,
	}

	if rawDate, ok := item["date_of_birth"].(string); ok {
		if date, err := model.ParseDate(rawDate); err == nil {
			record.DateOfBirth = date
		}
	}
	if code, ok := item["country_code"].(string); ok {
		record.CountryCode = code
	}

	return record, true
}

// Compile-time verification that Record implements model.Model interface.
var _ model.Model = (*Record)(nil)
var _ model.Deserializable = (*Record)(nil)
