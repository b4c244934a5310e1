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
	"hash/fnv"

	"dirpx.dev/callerid/cidcore/errors"
)

// ExportMap converts a model to a generic map keyed by the model's JSON field
// names. Nested models become nested maps, slices of models become slices of
// maps, and scalar fields keep their JSON representation (numbers decode as
// float64, per encoding/json).
//
// The map is built by marshaling the model and decoding the result, so it
// reflects exactly what the model would send over the wire, including any
// custom MarshalJSON logic. The returned map is a fresh value on every call;
// mutating it never affects the model.
func ExportMap[T Model](m T) (map[string]any, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("cannot export %s: %w", m.TypeName(), err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("cannot export %s: %w", m.TypeName(), err)
	}

	return out, nil
}

// CanonicalJSON returns the deterministic JSON form of a model: object keys
// sorted lexicographically at every nesting level. Two models with the same
// logical value always produce byte-identical canonical JSON, which makes the
// form suitable for equality checks, snapshots and content-addressed caching.
//
// The implementation round-trips the model through generic maps, relying on
// encoding/json's sorted emission of map keys. Field order declared on the
// struct therefore has no effect on the output.
func CanonicalJSON[T Model](m T) ([]byte, error) {
	exported, err := ExportMap(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(exported)
}

// Get performs a dynamic field lookup on a model by JSON key. It returns the
// field's wire-form value and true when the key exists, or nil and false when
// it does not. Lookups only see the top level of the model; nested fields are
// returned as maps for the caller to descend into.
//
// Get exists for diagnostic and generic-access paths (such as the update
// protocol's echo comparison). Typed accessors on the model SHOULD always be
// preferred in ordinary code.
func Get[T Model](m T, key string) (any, bool) {
	exported, err := ExportMap(m)
	if err != nil {
		return nil, false
	}
	v, ok := exported[key]
	return v, ok
}

// Hash returns a stable 64-bit hash of a model's identity. Only models that
// implement Keyed (that is, models carrying a remote id) are hashable; for
// any other model Hash returns a NotHashableError.
//
// The hash is FNV-1a over the model's type name and hash key, so distinct
// entity types with the same numeric id hash differently. Two instances of
// the same entity always hash identically regardless of which fields were
// populated at hydration time.
func Hash[T Model](m T) (uint64, error) {
	keyed, ok := any(m).(Keyed)
	if !ok {
		return 0, &errors.NotHashableError{Type: m.TypeName()}
	}

	h := fnv.New64a()
	h.Write([]byte(m.TypeName()))
	h.Write([]byte{':'})
	h.Write([]byte(keyed.HashKey()))
	return h.Sum64(), nil
}
