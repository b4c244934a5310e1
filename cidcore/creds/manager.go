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

package creds

import (
	"context"
	"sync"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model/phone"
)

// Manager is the storage contract for token bundles, keyed by the
// authenticated phone number. The API client consults its Manager on
// every request and writes back through it whenever tokens change.
//
// Get MUST return (nil, nil) when no bundle is stored for the number;
// absence is not an error. Implementations MUST be safe for concurrent
// use.
type Manager interface {
	// Get returns the stored bundle for the number, or (nil, nil) when
	// none is stored.
	Get(ctx context.Context, number phone.Number) (*Bundle, error)

	// Set stores a bundle for the number, replacing any existing one.
	// The bundle MUST be valid.
	Set(ctx context.Context, number phone.Number, bundle *Bundle) error

	// Update replaces only the access token of the stored bundle,
	// keeping the refresh and pwd tokens. Updating a number with no
	// stored bundle is an error.
	Update(ctx context.Context, number phone.Number, access string) error

	// Delete removes the stored bundle for the number. Deleting an
	// absent bundle is a no-op.
	Delete(ctx context.Context, number phone.Number) error
}

// Memory is an in-process Manager backed by a mutex-guarded map. It is
// the default for single-process embedders; shared deployments use Redis.
type Memory struct {
	mu      sync.RWMutex
	bundles map[phone.Number]Bundle
}

// NewMemory returns an empty in-memory credentials manager.
func NewMemory() *Memory {
	return &Memory{bundles: make(map[phone.Number]Bundle)}
}

// Get implements Manager. The returned bundle is a copy; mutating it
// does not affect the store.
func (m *Memory) Get(_ context.Context, number phone.Number) (*Bundle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bundles[number]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// Set implements Manager.
func (m *Memory) Set(_ context.Context, number phone.Number, bundle *Bundle) error {
	if bundle == nil {
		return &errors.ValidationError{Type: "Bundle", Reason: "bundle must be provided"}
	}
	if err := bundle.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.bundles[number] = *bundle
	return nil
}

// Update implements Manager.
func (m *Memory) Update(_ context.Context, number phone.Number, access string) error {
	if access == "" {
		return &errors.ValidationError{Type: "Bundle", Field: "access", Reason: "access token must be provided"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bundles[number]
	if !ok {
		return &errors.ValidationError{Type: "Bundle", Reason: "no credentials stored for number", Value: number.Redacted()}
	}
	b.Access = access
	m.bundles[number] = b
	return nil
}

// Delete implements Manager.
func (m *Memory) Delete(_ context.Context, number phone.Number) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bundles, number)
	return nil
}

// Compile-time verification that Memory implements Manager.
var _ Manager = (*Memory)(nil)
