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

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates a slice of models and returns all validation errors
// encountered, not just the first one. It is the workhorse behind the batch
// validators for contact and call-log payloads, where the caller needs to know
// about every bad entry in a sync request rather than fixing them one at a
// time.
//
// The function invokes Validate on each model in order. When a model fails,
// the error is wrapped with the model's zero-based position in the slice and
// its type name from TypeName, so callers can identify exactly which entries
// failed and why. Failures are aggregated with rxmerr.Collector into a single
// combined error; if every model passes, ValidateAll returns nil.
//
// The function always processes the entire slice even when early elements
// fail, ensuring complete error reporting. Empty slices are considered valid
// and return nil.
//
// Example usage for validating a batch of call-log entries before sync:
//
//	if err := model.ValidateAll(entries); err != nil {
//	    return fmt.Errorf("call log rejected: %w", err)
//	}
func ValidateAll[T Model](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// FilterZero returns a new slice containing only the non-zero models from the
// input, as reported by each model's IsZero method. The API routinely pads
// responses with empty placeholder objects (contacts with no registered user,
// profiles with no social entries); FilterZero strips those before the caller
// processes or re-serializes the collection.
//
// The returned slice is always a fresh allocation and never shares backing
// storage with the input. If all models are zero, or the input is empty or
// nil, the function returns an empty non-nil slice. FilterZero does not
// validate models; it only consults IsZero.
func FilterZero[T Model](models []T) []T {
	result := make([]T, 0, len(models))

	for _, m := range models {
		if !m.IsZero() {
			result = append(result, m)
		}
	}

	return result
}

// MustValidate validates a model and panics if validation fails. It is meant
// for contexts where an invalid model is a programming error rather than a
// recoverable condition: test fixtures, package initialization, hardcoded
// constants.
//
// On success the model is returned unchanged, allowing inline initialization
// patterns. On failure the panic message includes the model's type name and
// the validation error.
//
// Callers MUST NOT use MustValidate on data that originates from the remote
// API or from user input; those paths go through Validate and handle the
// error explicitly.
//
//	entry := model.MustValidate(calllog.Entry{Name: "alice", ...})
func MustValidate[T Model](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", m.TypeName(), err))
	}
	return m
}

// SafeString returns a string representation of a model that is safe for
// logging by default. When unsafe is false it delegates to Redacted, masking
// phone numbers, emails and other PII; when unsafe is true it delegates to
// String and MAY expose sensitive data.
//
// Having a single call site for the choice keeps logging behavior auditable.
// Production logging MUST pass false; true is reserved for controlled
// debugging where the output is not persisted.
//
//	logger.Info("hydrated profile", zap.String("profile", model.SafeString(p, false)))
func SafeString[T Model](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON converts a model to JSON bytes after validating it. Validation runs
// first; if it fails, the returned error wraps the validation failure with
// the model's type name and no marshaling is attempted. This keeps invalid
// payloads from ever reaching the wire.
//
// Note that ToJSON uses Go's default field ordering. For the deterministic,
// key-sorted form used in equality checks and snapshots, use CanonicalJSON.
func ToJSON[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML converts a model to YAML bytes after validating it. As with ToJSON,
// validation runs first and marshaling is skipped on failure. The YAML form
// is intended for configuration files and human-readable debugging dumps,
// never for API payloads.
func ToYAML[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON parses JSON bytes into a model and validates the result, rejecting
// malformed or incomplete data at the boundary. If unmarshaling fails, no
// validation is attempted; if validation fails, the error says so even though
// the JSON syntax was correct.
//
// Callers MUST provide a pointer to a zero-initialized model variable. If
// FromJSON returns an error, the variable's state is undefined and MUST NOT
// be used.
//
//	var p identity.Profile
//	if err := model.FromJSON(data, &p); err != nil {
//	    return err
//	}
func FromJSON[T Model](data []byte, m *T) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// FromYAML parses YAML bytes into a model and validates the result. Behavior
// mirrors FromJSON: unmarshal first, validate second, and the model variable
// MUST NOT be used when an error is returned.
func FromYAML[T Model](data []byte, m *T) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// Clone creates a deep copy of a model via a JSON round-trip. Serialization
// handles nested structs, slices, maps and pointers by value, so the clone
// shares no references with the original; modifying either does not affect
// the other.
//
// The round-trip costs an encode and a decode per call. Types on hot paths
// SHOULD implement Cloneable[T] with hand-written copy logic instead; this
// generic version favors correctness and zero per-type code.
//
// Callers MUST check the returned error. On failure the returned model is a
// zero value and MUST NOT be used.
func Clone[T Model](m T) (T, error) {
	var zero T

	data, err := json.Marshal(m)
	if err != nil {
		return zero, fmt.Errorf("clone marshal failed: %w", err)
	}

	var clone T
	if err := json.Unmarshal(data, &clone); err != nil {
		return zero, fmt.Errorf("clone unmarshal failed: %w", err)
	}

	return clone, nil
}

// Equal compares two models for equality by serializing both to JSON and
// comparing the bytes. Two models are equal if and only if their JSON forms
// are identical. If either marshal fails, Equal returns false rather than
// mistaking an encoding error for inequality.
//
// Only exported fields participate, since unexported fields do not appear in
// JSON output. That is exactly the semantic the domain wants: the owner
// binding and other internal bookkeeping on a hydrated entity never affect
// equality. Types that need finer control SHOULD implement Comparable[T].
func Equal[T Model](a, b T) bool {
	dataA, errA := json.Marshal(a)
	dataB, errB := json.Marshal(b)

	if errA != nil || errB != nil {
		return false
	}

	return string(dataA) == string(dataB)
}
