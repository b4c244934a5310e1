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
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model/phone"
	"github.com/redis/go-redis/v9"
)

// defaultKeyPrefix namespaces bundle keys so a shared Redis instance can
// host other tenants.
const defaultKeyPrefix = "callerid:creds:"

// Redis is a Manager backed by a Redis instance, for deployments where
// several processes share one authenticated session. Bundles are stored
// as JSON under a configurable key prefix, optionally with a TTL.
//
// The *redis.Client lifecycle is managed by the caller; Redis never
// closes it.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a Redis manager.
type RedisOption func(*Redis)

// WithKeyPrefix overrides the default "callerid:creds:" key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithTTL sets an expiry on stored bundles. Zero (the default) stores
// them without expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// NewRedis returns a Redis-backed credentials manager.
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Redis) key(number phone.Number) string {
	return r.prefix + number.String()
}

// Get implements Manager. A missing key is (nil, nil), never an error.
func (r *Redis) Get(ctx context.Context, number phone.Number) (*Bundle, error) {
	data, err := r.client.Get(ctx, r.key(number)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("creds redis get: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("creds redis get: %w", err)
	}
	return &b, nil
}

// Set implements Manager.
func (r *Redis) Set(ctx context.Context, number phone.Number, bundle *Bundle) error {
	if bundle == nil {
		return &errors.ValidationError{Type: "Bundle", Reason: "bundle must be provided"}
	}

	data, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(number), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("creds redis set: %w", err)
	}
	return nil
}

// Update implements Manager. The read-modify-write is not atomic across
// processes; concurrent refreshes of the same session simply last-write-win,
// which is safe because any fresh access token is valid.
func (r *Redis) Update(ctx context.Context, number phone.Number, access string) error {
	if access == "" {
		return &errors.ValidationError{Type: "Bundle", Field: "access", Reason: "access token must be provided"}
	}

	b, err := r.Get(ctx, number)
	if err != nil {
		return err
	}
	if b == nil {
		return &errors.ValidationError{Type: "Bundle", Reason: "no credentials stored for number", Value: number.Redacted()}
	}

	b.Access = access
	return r.Set(ctx, number, b)
}

// Delete implements Manager.
func (r *Redis) Delete(ctx context.Context, number phone.Number) error {
	if err := r.client.Del(ctx, r.key(number)).Err(); err != nil {
		return fmt.Errorf("creds redis delete: %w", err)
	}
	return nil
}

// Compile-time verification that Redis implements Manager.
var _ Manager = (*Redis)(nil)
