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

// Package model defines the core contracts that all callerid domain model
// types MUST implement, plus the hydration machinery that turns raw API
// responses into instances of those types.
//
// Every domain type representing a remote entity (such as Profile, Contact,
// Comment, Settings, etc.) SHOULD implement the Model interface or its
// constituent parts (Validatable, Serializable, Loggable, Identifiable,
// ZeroCheckable). These interfaces establish a common contract for
// validation, serialization, logging, and identity that enables generic
// operations and guarantees safety at compile time.
//
// Model types are immutable value types by design: they are hydrated once
// from an API response and read from then on. The only sanctioned mutation
// path is the explicit update protocol on self-owned entities (see the
// identity package), which round-trips every change through the remote API
// before committing it locally. Concurrent reads are safe; there is no
// concurrent-write story because there are no writes.
//
// Types implementing Model can be used with the generic helper functions
// provided in this package, such as ValidateAll, FilterZero, ToJSON,
// CanonicalJSON, Clone, Equal, and Hash. These helpers rely on the Model
// contract and will fail at compile time if applied to types that do not
// implement Model.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining all fundamental contracts required
// for callerid domain types. Any type implementing Model gains automatic
// support for validation, serialization to JSON and YAML, safe logging with
// PII protection, type identification, and zero-value detection.
//
// Implementations MUST satisfy all embedded interfaces: Validatable ensures
// data integrity by checking invariants; Serializable provides round-trip
// JSON and YAML encoding; Loggable offers both safe (redacted) and unsafe
// (full) string representations; Identifiable supplies a canonical type
// name; and ZeroCheckable detects empty or uninitialized instances.
//
// Model instances are treated as immutable value types. Methods defined on
// Model MUST NOT mutate the receiver unless explicitly documented.
//
// Example implementation:
//
//	type MyModel struct {
//	    Field string
//	}
//
//	func (m MyModel) Validate() error {
//	    if m.Field == "" {
//	        return errors.New("field required")
//	    }
//	    return nil
//	}
//
//	func (m MyModel) TypeName() string { return "MyModel" }
//	func (m MyModel) IsZero() bool { return m.Field == "" }
//	func (m MyModel) Redacted() string { return "MyModel{...}" }
//	func (m MyModel) String() string { return "MyModel{Field:" + m.Field + "}" }
//	// ... MarshalJSON, UnmarshalJSON, MarshalYAML, UnmarshalYAML
//
//	var _ Model = (*MyModel)(nil)  // Compile-time check
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that validate their own state
// to ensure data integrity. Every model type MUST implement Validate to
// verify that all invariants hold and that the instance is in a consistent
// state suitable for use in business logic or transmission to the API.
//
// The Validate method MUST check all required fields, verify cross-field
// consistency, recursively validate any nested objects by calling their
// Validate methods, and return nil if and only if the instance is fully
// valid. When validation fails, the returned error MUST describe what is
// invalid in a way that helps callers diagnose and fix the problem. Prefer
// specific messages like "Entry.PhoneNumber must be provided" over generic
// ones.
//
// Validate MUST be fast, deterministic, and idempotent. It MUST NOT mutate
// the receiver, MUST NOT have side effects such as logging or emitting
// metrics, and MUST NOT perform I/O. Callers SHOULD invoke Validate at
// critical boundaries: after hydrating data from an API response, after
// constructing instances from user input, and before sending payloads over
// the network.
type Validatable interface {
	// Validate checks that the instance satisfies all invariants and is
	// ready for use. It returns nil if the instance is valid, or a
	// descriptive error explaining what is wrong if validation fails.
	//
	// This method MUST NOT mutate the receiver and MUST NOT have side
	// effects. It MUST be safe to call concurrently with other reads.
	Validate() error
}

// Serializable defines the contract for types that can be serialized to
// JSON and YAML formats. All model types MUST support both formats: JSON
// for API payloads and canonical comparisons, YAML for configuration and
// debugging output.
//
// Implementations MUST call Validate before marshaling so that only valid
// instances are serialized. A value serialized to JSON and then deserialized
// MUST equal the original value, and the same MUST hold for YAML.
//
// Serializable covers the marshal direction only, on the value receiver, so
// that plain model values satisfy the Model constraint of the generic
// helpers. The unmarshal direction necessarily lives on the pointer
// receiver; model types MUST also implement Deserializable on their pointer
// type, which the standard compile-time check verifies:
//
//	var _ model.Model = (*MyModel)(nil)
//	var _ model.Deserializable = (*MyModel)(nil)
//
// Implementations SHOULD use the "type alias" pattern to avoid infinite
// recursion: define a local type alias to the model type, cast the receiver
// to the alias, and delegate to the standard library's marshal or unmarshal
// function.
//
// Example:
//
//	func (m MyModel) MarshalJSON() ([]byte, error) {
//	    if err := m.Validate(); err != nil {
//	        return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
//	    }
//	    type alias MyModel
//	    return json.Marshal((alias)(m))
//	}
type Serializable interface {
	json.Marshaler
	yaml.Marshaler
}

// Deserializable defines the unmarshal half of the serialization contract.
// It is implemented on the pointer type of every model, decoding external
// JSON or YAML data and validating the result so that malformed or
// incomplete input is rejected at the boundary.
type Deserializable interface {
	json.Unmarshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types that provide safe string
// representations for logging and debugging. All model types MUST implement
// Loggable to prevent accidental exposure of sensitive data in application
// logs. The entities handled by this library are almost entirely PII: names,
// phone numbers, email addresses, birth dates, locations.
//
// The Redacted method returns a string representation suitable for
// production logging. It MUST hide or mask sensitive fields while preserving
// enough information for debugging: phone numbers keep only their last two
// digits, email addresses keep the first character and the domain, tokens
// are hidden entirely. The String method returns a human-readable
// representation that MAY include sensitive data and MUST NEVER be used for
// production logging.
//
// If a type contains nested objects that are also Loggable, Redacted SHOULD
// call Redacted on those nested objects to ensure consistent redaction
// throughout the object graph.
type Loggable interface {
	// Redacted returns a safe string representation suitable for logging in
	// production. This method MUST redact or mask all sensitive fields
	// (phone numbers, emails, tokens, PII) while preserving enough
	// information for debugging.
	//
	// This method MUST NOT mutate the receiver, MUST NOT have side effects,
	// and MUST be safe to call concurrently.
	Redacted() string

	// String returns a human-readable representation of the instance. This
	// method MAY include sensitive data and MUST NOT be used for production
	// logging. Use Redacted instead for logging.
	//
	// This method MUST NOT mutate the receiver, MUST NOT have side effects,
	// and MUST be safe to call concurrently.
	String() string
}

// Identifiable defines the contract for types that can identify themselves
// by a canonical type name. All model types MUST provide a type name to
// enable debugging, logging, and error reporting.
//
// The type name returned by TypeName MUST be constant for a given type and
// unique within the callerid domain. It SHOULD follow CamelCase convention
// (for example, "Profile", "BlockedNumber") and MUST NOT include a package
// prefix. TypeName MUST be fast, MUST NOT allocate memory, and SHOULD
// typically return a string constant.
type Identifiable interface {
	// TypeName returns the canonical name of this model type. The name MUST
	// be constant for the type, unique within callerid, in CamelCase, and
	// without a package prefix.
	//
	// This method MUST NOT mutate the receiver, MUST NOT have side effects,
	// and MUST be safe to call concurrently. It SHOULD return a string
	// constant.
	TypeName() string
}

// ZeroCheckable defines the contract for types that can report whether they
// are in a zero or empty state. This enables optional field detection and
// clean handling of absent nested entities: the API frequently omits
// sub-objects (a contact with no registered user, a profile with no social
// networks), and hydration maps those omissions to zero values.
//
// IsZero MUST return true if and only if the instance is semantically
// empty. It MUST be fast, deterministic, idempotent, free of side effects,
// and safe to call concurrently.
type ZeroCheckable interface {
	// IsZero reports whether this instance is in a zero or empty state,
	// meaning it contains no meaningful data.
	//
	// This method MUST NOT mutate the receiver, MUST NOT have side effects,
	// and MUST be safe to call concurrently.
	IsZero() bool
}

// Comparable defines the contract for types that can be compared for
// equality. This interface is optional but recommended for value types that
// require equality testing in tests, assertions, or business logic.
//
// The Equal method MUST be reflexive, symmetric, transitive, and
// consistent. Equal SHOULD compare all semantically significant fields;
// internal fields that do not affect the logical value (such as the owner
// binding on a hydrated entity) SHOULD be ignored. Nested objects SHOULD be
// compared using deep equality.
//
// Equal MUST NOT mutate the receiver or the argument, MUST NOT have side
// effects, and MUST be safe to call concurrently.
type Comparable[T any] interface {
	// Equal reports whether this instance is equal to another instance of
	// the same type. It returns true if both instances represent the same
	// logical value, false otherwise.
	Equal(other T) bool
}

// Cloneable defines the contract for types that can create deep copies of
// themselves. The Clone method MUST create a deep copy: the returned
// instance shares no references with the original, and modifying either
// MUST NOT affect the other. The cloned instance MUST be valid if the
// original is valid.
//
// Clone MUST NOT mutate the receiver, MUST NOT have side effects, and MUST
// be safe to call concurrently.
type Cloneable[T any] interface {
	// Clone creates a deep copy of this instance. The returned instance has
	// the same value but shares no references with the original.
	Clone() T
}

// Keyed defines the contract for model types that expose a stable identity
// suitable for hashing. Only models that carry an id field from the remote
// API implement Keyed; hashing any other model through the generic Hash
// helper fails with a NotHashableError.
//
// HashKey MUST return a stable, unique-per-entity string (typically the
// decimal form of the remote id). It MUST NOT mutate the receiver and MUST
// be safe to call concurrently.
type Keyed interface {
	// HashKey returns the stable identity string used to hash this model.
	HashKey() string
}
