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
	"fmt"
	"reflect"
	"sync"
	"time"

	"dirpx.dev/callerid/cidcore/errors"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Hydrator turns loosely typed API response maps into typed model values.
//
// The remote API answers with free-form JSON objects whose shape drifts over
// time: fields appear and disappear between app releases, numbers arrive as
// strings, and sub-objects nest arbitrarily. Hydration absorbs that drift by
// decoding only the keys a model declares, silently dropping everything else,
// and warning exactly once per (type, field) pair when an unknown key is
// first seen. The warning dedup set lives on the Hydrator, so each session
// logs a given surprise once and stays quiet afterwards no matter how many
// thousand contacts carry the same unexpected key.
//
// A Hydrator is safe for concurrent use by multiple goroutines. Construct
// one per client session with NewHydrator and share it across all hydration
// calls for that session.
type Hydrator struct {
	logger *zap.Logger
	hooks  []mapstructure.DecodeHookFunc

	mu     sync.Mutex
	warned map[string]struct{}
}

// HydratorOption customizes a Hydrator during construction.
type HydratorOption func(*Hydrator)

// WithDecodeHook appends an additional mapstructure decode hook to the
// Hydrator's default set. Hooks registered this way run after the built-in
// ones (RFC3339 timestamps, calendar dates, and any type implementing
// encoding.TextUnmarshaler, which covers uuids and phone numbers).
func WithDecodeHook(hook mapstructure.DecodeHookFunc) HydratorOption {
	return func(h *Hydrator) {
		h.hooks = append(h.hooks, hook)
	}
}

// NewHydrator creates a Hydrator that logs unknown-field warnings through the
// given logger. A nil logger is replaced with zap.NewNop(), which keeps the
// hydration path total at the cost of losing drift visibility; production
// callers SHOULD always pass a real logger.
func NewHydrator(logger *zap.Logger, opts ...HydratorOption) *Hydrator {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Hydrator{
		logger: logger,
		hooks: []mapstructure.DecodeHookFunc{
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			StringToDateHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		},
		warned: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// StringToDateHookFunc returns a mapstructure decode hook that converts
// "YYYY-MM-DD" strings into Date values. Malformed dates fail the decode
// rather than being silently zeroed.
func StringToDateHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(Date("")) {
			return data, nil
		}
		return ParseDate(data.(string))
	}
}

// Hydrate decodes a raw response map into a new value of type T.
//
// A nil or empty map yields (nil, nil): the API represents absent nested
// entities (a contact with no registered user, a profile without social
// data) as null or {}, and callers treat the nil result as "not present"
// rather than an error.
//
// The optional extras maps are merged over data before decoding, later maps
// winning on key conflicts. This mirrors how several endpoints return the
// interesting object under one key and scatter sibling attributes at the
// top level; the caller folds them together here instead of patching the
// model afterwards.
//
// Decoding is weakly typed: the API's habit of sending numbers as strings
// and booleans as 0/1 is absorbed instead of rejected. Keys the target type
// does not declare are dropped, each logged at WARN level the first time a
// given (type, key) pair is seen by this Hydrator. Type conflicts on known
// keys surface as an UnmarshalError.
func Hydrate[T any](h *Hydrator, data map[string]any, extras ...map[string]any) (*T, error) {
	merged := mergeRaw(data, extras)
	if len(merged) == 0 {
		return nil, nil
	}

	out := new(T)
	meta, err := h.decode(merged, out)
	if err != nil {
		return nil, &errors.UnmarshalError{
			Type:   reflect.TypeOf(*out).Name(),
			Reason: err.Error(),
		}
	}

	h.warnUnused(reflect.TypeOf(*out).Name(), meta.Unused)
	return out, nil
}

// HydrateList decodes a slice of raw response maps into typed values,
// preserving order. Nil or empty entries are skipped entirely, matching the
// null-padding some list endpoints produce. The first decode failure aborts
// the whole list.
func HydrateList[T any](h *Hydrator, items []map[string]any) ([]T, error) {
	result := make([]T, 0, len(items))

	for i, item := range items {
		v, err := Hydrate[T](h, item)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: %w", i, err)
		}
		if v == nil {
			continue
		}
		result = append(result, *v)
	}

	return result, nil
}

func (h *Hydrator) decode(data map[string]any, out any) (*mapstructure.Metadata, error) {
	var meta mapstructure.Metadata

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
		Metadata:         &meta,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(h.hooks...),
	})
	if err != nil {
		return nil, err
	}

	if err := dec.Decode(data); err != nil {
		return nil, err
	}

	return &meta, nil
}

// warnUnused logs each dropped key once per (type, key) pair for the
// lifetime of the Hydrator.
func (h *Hydrator) warnUnused(typeName string, unused []string) {
	if len(unused) == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, key := range unused {
		id := typeName + "." + key
		if _, seen := h.warned[id]; seen {
			continue
		}
		h.warned[id] = struct{}{}
		h.logger.Warn("dropping unrecognized field in API response",
			zap.String("type", typeName),
			zap.String("field", key),
		)
	}
}

func mergeRaw(data map[string]any, extras []map[string]any) map[string]any {
	size := len(data)
	for _, e := range extras {
		size += len(e)
	}
	if size == 0 {
		return nil
	}

	merged := make(map[string]any, size)
	for k, v := range data {
		merged[k] = v
	}
	for _, e := range extras {
		for k, v := range e {
			merged[k] = v
		}
	}
	return merged
}
