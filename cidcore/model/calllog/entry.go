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

package calllog

import (
	"encoding/json"
	"fmt"
	"time"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/phone"
	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// DefaultDuration is the duration in seconds assigned to entries that do
// not carry one. The value matches what the official app sends for calls
// whose duration was not recorded.
const DefaultDuration = 123

// SentinelCalledAt is the timestamp assigned to entries that do not carry a
// called_at value. The server treats it as "time unknown"; the exact value
// is part of the wire contract and MUST NOT change.
var SentinelCalledAt = time.Date(2022, time.April, 18, 5, 59, 7, 0, time.UTC)

// Entry represents one call-log record as exchanged with the change-sync
// endpoint: who the call was with, its direction, how long it lasted, an
// optional free-form tag, and when it happened.
//
// This type implements the model.Model interface. The zero value represents
// "no entry" and is reported by IsZero; it never validates, because a
// syncable entry MUST carry at least a direction and a counterparty.
//
// Example usage:
//
//	entry := calllog.Entry{
//	    Name:        "alice",
//	    PhoneNumber: phone.Number(972123456789),
//	    Type:        calllog.Outgoing,
//	    Duration:    42,
//	    CalledAt:    time.Now().UTC(),
//	}
type Entry struct {
	// Name is the display name of the counterparty. When absent in raw
	// input, validation fills it with the phone number's string form.
	Name string `json:"name"`

	// PhoneNumber is the counterparty's number in canonical form.
	PhoneNumber phone.Number `json:"phone_number"`

	// Type is the call direction. Required.
	Type Type `json:"type"`

	// Duration is the call length in seconds. Defaults to DefaultDuration.
	Duration int `json:"duration"`

	// Tag is an optional free-form label. nil means "no tag" and is
	// serialized as JSON null, which is what the API expects.
	Tag *string `json:"tag"`

	// CalledAt is when the call happened. Defaults to SentinelCalledAt.
	CalledAt time.Time `json:"called_at"`
}

// String returns a human-readable representation including the full phone
// number. It MUST NOT be used for production logging; use Redacted.
func (e Entry) String() string {
	return fmt.Sprintf("Entry{Name:%s, PhoneNumber:%s, Type:%s, Duration:%d, CalledAt:%s}",
		e.Name, e.PhoneNumber.String(), e.Type.String(), e.Duration, e.CalledAt.Format(time.RFC3339))
}

// Redacted returns a logging-safe representation with the phone number
// masked and the counterparty name dropped.
func (e Entry) Redacted() string {
	return fmt.Sprintf("Entry{PhoneNumber:%s, Type:%s, Duration:%d}",
		e.PhoneNumber.Redacted(), e.Type.String(), e.Duration)
}

// TypeName returns the constant "Entry", satisfying model.Identifiable.
func (e Entry) TypeName() string {
	return "Entry"
}

// IsZero reports whether the Entry carries no data at all.
func (e Entry) IsZero() bool {
	return e.Name == "" && e.PhoneNumber.IsZero() && e.Type.IsZero() &&
		e.Duration == 0 && e.Tag == nil && e.CalledAt.IsZero()
}

// Equal reports whether two entries describe the same call. Tags compare by
// value, not by pointer identity.
func (e Entry) Equal(other Entry) bool {
	if e.Name != other.Name || e.PhoneNumber != other.PhoneNumber ||
		e.Type != other.Type || e.Duration != other.Duration ||
		!e.CalledAt.Equal(other.CalledAt) {
		return false
	}
	switch {
	case e.Tag == nil && other.Tag == nil:
		return true
	case e.Tag == nil || other.Tag == nil:
		return false
	default:
		return *e.Tag == *other.Tag
	}
}

// Validate checks that the Entry is syncable: the direction must be one of
// the valid constants, a counterparty must be identified by name or number,
// the number (when present) must be well-formed, and the duration must not
// be negative. It satisfies model.Validatable.
func (e Entry) Validate() error {
	if err := e.Type.Validate(); err != nil {
		return &errors.ValidationError{Type: "Entry", Field: "type", Reason: err.Error()}
	}
	if e.Name == "" && e.PhoneNumber.IsZero() {
		return &errors.ValidationError{Type: "Entry", Field: "name", Reason: "entry identifies no counterparty (no name, no phone_number)"}
	}
	if err := e.PhoneNumber.Validate(); err != nil {
		return &errors.ValidationError{Type: "Entry", Field: "phone_number", Reason: err.Error()}
	}
	if e.Duration < 0 {
		return &errors.ValidationError{Type: "Entry", Field: "duration", Reason: "duration is negative", Value: e.Duration}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern, with
// validation before encoding.
func (e Entry) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", e.TypeName(), err)
	}
	type alias Entry
	return json.Marshal((alias)(e))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type alias Entry
	if err := json.Unmarshal(data, (*alias)(e)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return e.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern, with
// validation before encoding.
func (e Entry) MarshalYAML() (interface{}, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", e.TypeName(), err)
	}
	type alias Entry
	return (alias)(e), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	type alias Entry
	if err := node.Decode((*alias)(e)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return e.Validate()
}

// ValidateEntries normalizes a raw call history into typed entries ready
// for the change-sync endpoint.
//
// Each raw record is processed independently:
//
//   - "type" MUST parse as a call direction; there is no default.
//   - "name" falls back to the phone number's string form; a record with
//     neither name nor phone_number is rejected.
//   - "phone_number" accepts any form phone.ParseLenient accepts,
//     including short codes.
//   - "duration" defaults to DefaultDuration.
//   - "tag" defaults to nil.
//   - "called_at" accepts RFC3339 and defaults to SentinelCalledAt.
//
// Every record that validates is appended in input order; a record carrying
// its own called_at is treated exactly like one that needed the default.
// All per-record failures are collected and reported together rather than
// stopping at the first bad record. An empty input, or an input whose
// records all failed, yields a ValidationError: the sync endpoint rejects
// empty payloads.
func ValidateEntries(raw []map[string]any) ([]Entry, error) {
	if len(raw) == 0 {
		return nil, &errors.ValidationError{Type: "Entry", Reason: "no call-log entries provided"}
	}

	c := rxmerr.NewCollector()
	entries := make([]Entry, 0, len(raw))

	for i, item := range raw {
		entry, err := buildEntry(item)
		if err != nil {
			c.Append(fmt.Errorf("entry[%d]: %w", i, err))
			continue
		}
		entries = append(entries, entry)
	}

	if err := c.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, &errors.ValidationError{Type: "Entry", Reason: "no valid call-log entries after validation"}
	}

	return entries, nil
}

func buildEntry(item map[string]any) (Entry, error) {
	typeStr, _ := item["type"].(string)
	callType, err := ParseType(typeStr)
	if err != nil {
		return Entry{}, &errors.ValidationError{
			Type:   "Entry",
			Field:  "type",
			Reason: "call type must be incoming, missed or outgoing",
			Value:  typeStr,
		}
	}

	// Lenient parsing: device call logs contain short codes.
	var number phone.Number
	if rawNumber, ok := item["phone_number"]; ok && rawNumber != nil {
		number, err = phone.ParseLenient(rawNumber)
		if err != nil {
			return Entry{}, err
		}
	}

	name, _ := item["name"].(string)
	if name == "" {
		name = number.String()
	}

	entry := Entry{
		Name:        name,
		PhoneNumber: number,
		Type:        callType,
		Duration:    intOrDefault(item["duration"], DefaultDuration),
		Tag:         optionalString(item["tag"]),
		CalledAt:    timeOrDefault(item["called_at"], SentinelCalledAt),
	}

	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func intOrDefault(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func timeOrDefault(v any, def time.Time) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return def
}

// Compile-time verification that Entry implements model.Model interface.
var _ model.Model = (*Entry)(nil)
var _ model.Deserializable = (*Entry)(nil)
