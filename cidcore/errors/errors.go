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

// Package errors provides the reusable error types shared by the callerid
// packages.
//
// The types defined here cover the full failure taxonomy of the library:
// parsing and serialization of strongly typed values (ParseError,
// MarshalError, UnmarshalError), model and payload validation
// (ValidationError), the mutable-profile update protocol
// (ImmutabilityError, OwnershipError, MutationError), hashing of models
// without an identity (NotHashableError), and non-2xx responses from the
// remote API (APIError).
//
// All of these are local, synchronous, deterministic failures. They are
// never retried by the library and always surfaced to the direct caller.
// They are intentionally simple value carriers with stable message formats:
//
//   - easy to construct from parsing / validation / client code,
//   - easy to recognize via errors.As,
//   - and easy for users to understand when surfaced in logs or diagnostics.
//
// Each package that raises these errors can use the types directly or create
// type aliases for better API clarity:
//
//	import "dirpx.dev/callerid/cidcore/errors"
//
//	func ParseType(s string) (Type, error) {
//	    switch s {
//	    case "incoming":
//	        return Incoming, nil
//	    default:
//	        return 0, &errors.ParseError{Type: "Type", Value: s}
//	    }
//	}
package errors

import (
	"fmt"
	"strconv"
)

// ParseError is returned when parsing a string into a strongly typed value
// fails.
//
// Type identifies the logical type being parsed (for example, "Type",
// "Number", "Status"), and Value contains the exact string that could not be
// interpreted. Callers MAY pattern-match on Type to provide type-specific
// guidance to users or to translate errors into friendlier messages.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Number").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"callerid: invalid {Type} value: {Value}"
//
// The format is intentionally stable so that callers can rely on it for
// diagnostics, while still preferring type assertions where possible.
func (e *ParseError) Error() string {
	return "callerid: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails due to it
// being outside the set of valid constants.
//
// Type identifies the logical type being marshaled, and Value contains the
// underlying numeric value that was deemed invalid. In most cases a
// MarshalError indicates a programming error (for example, a zero value that
// was never validated).
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled because it does not correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"callerid: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "callerid: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// Type identifies the logical type being populated, Data contains the
// original raw payload (typically a JSON fragment), and Reason provides a
// human-readable description of what went wrong (for example, parse errors,
// invalid numeric value or empty input).
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	//
	// Callers MAY choose to log or redact this field depending on privacy
	// and size considerations.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"callerid: cannot unmarshal {Type}: {Reason}"
//
// The Data field is intentionally not included in the formatted message to
// avoid excessively verbose or sensitive logs; callers can log it separately
// when appropriate.
func (e *UnmarshalError) Error() string {
	return "callerid: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when validation of a model type or of a
// request payload fails.
//
// Type identifies the logical name of the type being validated (for example,
// "Profile", "Entry"), Field optionally identifies which field failed
// validation, Reason provides a human-readable explanation of the failure,
// and Value optionally contains the problematic value.
//
// This error is used by Validate() methods on model types and by the batch
// validators for contact and call-log payloads.
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	// May be nil if not applicable or if the value should not be logged.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"callerid: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"callerid: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "callerid: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "callerid: invalid " + e.Type + ": " + e.Reason
}

// ImmutabilityError is returned when a caller attempts to change a protected
// field of a model after construction.
//
// Model instances are hydrated once from an API response and are read-only
// from then on, except for the small per-type whitelist of fields that the
// update protocol may change. Any write outside that whitelist fails with
// this error, never partially applying.
type ImmutabilityError struct {
	// Type is the logical name of the model whose field was written.
	Type string

	// Field is the protected field the caller attempted to change.
	Field string
}

// Error implements the error interface for ImmutabilityError.
//
// The error message format is:
//
//	"callerid: cannot change protected field {Type}.{Field}"
func (e *ImmutabilityError) Error() string {
	return "callerid: cannot change protected field " + e.Type + "." + e.Field
}

// OwnershipError is returned when a caller attempts a mutating operation on
// a model instance that does not belong to the authenticated account, for
// example updating a profile that was hydrated as someone else's.
type OwnershipError struct {
	// Type is the logical name of the model being mutated.
	Type string

	// Reason is a short explanation of the refused operation.
	Reason string
}

// Error implements the error interface for OwnershipError.
//
// The error message format is:
//
//	"callerid: {Type}: {Reason}"
func (e *OwnershipError) Error() string {
	return "callerid: " + e.Type + ": " + e.Reason
}

// MutationError is returned when the remote API did not confirm a requested
// field update: either the call reported failure, or the value echoed back
// by the server differs from the requested one.
//
// The local model instance is left unchanged when this error is returned;
// there is no partial mutation.
type MutationError struct {
	// Field is the field whose update was rejected.
	Field string

	// Value is the value the caller attempted to set.
	Value any
}

// Error implements the error interface for MutationError.
//
// The error message format is:
//
//	"callerid: server did not confirm update of {Field} to {Value}"
func (e *MutationError) Error() string {
	return fmt.Sprintf("callerid: server did not confirm update of %s to %v", e.Field, e.Value)
}

// NotHashableError is returned when hashing is requested for a model type
// that exposes no identity. Only models carrying an id field define a hash;
// everything else fails on demand with this error.
type NotHashableError struct {
	// Type is the logical name of the model that cannot be hashed.
	Type string
}

// Error implements the error interface for NotHashableError.
//
// The error message format is:
//
//	"callerid: unhashable type {Type}: no id field"
func (e *NotHashableError) Error() string {
	return "callerid: unhashable type " + e.Type + ": no id field"
}

// APIError is returned when the remote API answers with a non-2xx status.
//
// StatusCode carries the HTTP status, Detail the decoded "detail" message
// from the response body when present, and Body the raw response body for
// diagnostics. The client never retries these; surfacing them unchanged
// lets embedding applications implement their own policy.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Detail is the error detail extracted from the response body, if any.
	Detail string

	// Body is the raw response body.
	Body []byte
}

// Error implements the error interface for APIError.
//
// The error message format is:
//
//	"callerid: api error {StatusCode}: {Detail}"
func (e *APIError) Error() string {
	return "callerid: api error " + strconv.Itoa(e.StatusCode) + ": " + e.Detail
}

// NotFound reports whether this error is the remote API's canonical
// "no such resource" answer (HTTP 404 with detail "Not found."). Several
// lookups treat that answer as an absent result rather than a failure.
func (e *APIError) NotFound() bool {
	return e.StatusCode == 404 && e.Detail == "Not found."
}
