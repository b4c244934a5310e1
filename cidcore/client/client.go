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

// Package client implements the authenticated HTTP surface of the remote
// caller-id API: one method per logical endpoint, hydrating responses
// into the typed models of the identity, phonebook and calllog packages.
//
// A Client is bound to exactly one account (one phone number) and pulls
// its bearer token from a creds.Manager on every request, so token
// refreshes performed elsewhere are picked up without reconstruction.
// The client itself never refreshes tokens and never retries: a non-2xx
// answer surfaces as *errors.APIError and the embedding application
// decides what to do with it.
//
// The Client is the owner behind the mutable models it returns: it
// implements identity.ProfileOwner, identity.CommentOwner,
// identity.NotificationOwner, identity.SettingsOwner and
// identity.Blocklister, and binds every Profile, Comment, Notification
// and Settings value it hands out.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"dirpx.dev/callerid/cidcore/creds"
	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/phone"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks to the remote API on behalf of one authenticated account.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	cfg      Config
	number   phone.Number
	creds    creds.Manager
	http     *http.Client
	logger   *zap.Logger
	hydrator *model.Hydrator
	metrics  *Metrics

	mu     sync.Mutex
	myUUID uuid.UUID
}

// Option customizes a Client during construction.
type Option func(*Client)

// WithLogger sets the logger used for request tracing and hydration
// drift warnings. The default is zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client. The configured
// timeout is NOT applied to a client supplied this way; the caller owns
// its transport settings entirely.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithMetrics enables Prometheus reporting for this client.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New constructs a Client for the account identified by number, reading
// credentials through manager. The config is validated after defaults
// are applied; see Config for what is required.
func New(cfg Config, number phone.Number, manager creds.Manager, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if number.IsZero() {
		return nil, &errors.ValidationError{Type: "Client", Field: "number", Reason: "account phone number must be provided"}
	}
	if err := number.Validate(); err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, &errors.ValidationError{Type: "Client", Field: "creds", Reason: "credentials manager must be provided"}
	}

	c := &Client{
		cfg:    cfg,
		number: number,
		creds:  manager,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.hydrator = model.NewHydrator(c.logger)

	return c, nil
}

// Number returns the phone number of the authenticated account.
func (c *Client) Number() phone.Number {
	return c.number
}

// MyUUID returns the uuid of the authenticated account, or the zero
// uuid when no profile has been fetched through this client yet. The
// uuid is learned from the first GetMyProfile call and cached.
func (c *Client) MyUUID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.myUUID
}

func (c *Client) rememberUUID(id uuid.UUID) {
	if id == uuid.Nil {
		return
	}
	c.mu.Lock()
	c.myUUID = id
	c.mu.Unlock()
}

// Logout discards the stored credentials for this account. The server
// keeps the tokens valid until they expire; this only forgets them
// locally, after which every call fails until new credentials are set.
func (c *Client) Logout(ctx context.Context) error {
	return c.creds.Delete(ctx, c.number)
}

// do performs one API request and decodes the JSON response into a
// generic value: map[string]any for objects, []any for arrays, string
// for the handful of endpoints that answer with a bare JSON string, and
// nil for an empty body. Non-2xx responses become *errors.APIError.
func (c *Client) do(ctx context.Context, method, path string, body any) (any, error) {
	start := time.Now()

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("client %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("X-App-Version", c.cfg.AppVersion)

	bundle, err := c.creds.Get(ctx, c.number)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, &errors.ValidationError{Type: "Client", Reason: "no credentials stored for account", Value: c.number.Redacted()}
	}
	req.Header.Set("Authorization", "Bearer "+bundle.Access)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client %s %s: %w", method, path, err)
	}

	c.metrics.ObserveRequest(method, time.Since(start))
	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.IncrementError(resp.StatusCode)
		return nil, apiError(resp.StatusCode, raw)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &errors.UnmarshalError{Type: "response", Data: raw, Reason: err.Error()}
	}
	return decoded, nil
}

// doMap is do for endpoints that answer with a JSON object.
func (c *Client) doMap(ctx context.Context, method, path string, body any) (map[string]any, error) {
	decoded, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	m, ok := decoded.(map[string]any)
	if !ok {
		return nil, &errors.UnmarshalError{Type: "response", Reason: fmt.Sprintf("expected a JSON object, got %T", decoded)}
	}
	return m, nil
}

// doList is do for endpoints that answer with a JSON array.
func (c *Client) doList(ctx context.Context, method, path string, body any) ([]any, error) {
	decoded, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	list, ok := decoded.([]any)
	if !ok {
		return nil, &errors.UnmarshalError{Type: "response", Reason: fmt.Sprintf("expected a JSON array, got %T", decoded)}
	}
	return list, nil
}

// apiError builds an *errors.APIError from a non-2xx response, pulling
// the server's "detail" message out of the body when one is present.
func apiError(statusCode int, body []byte) error {
	var envelope struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &envelope)

	return &errors.APIError{
		StatusCode: statusCode,
		Detail:     envelope.Detail,
		Body:       body,
	}
}

// boolKey extracts a boolean result key from a response object.
func boolKey(res map[string]any, key string) (bool, error) {
	v, ok := res[key].(bool)
	if !ok {
		return false, &errors.UnmarshalError{Type: "response", Reason: fmt.Sprintf("expected boolean %q key", key)}
	}
	return v, nil
}

// asMaps narrows a decoded JSON array to its object elements, skipping
// null entries the way some list endpoints pad their results.
func asMaps(v any) ([]map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &errors.UnmarshalError{Type: "response", Reason: fmt.Sprintf("expected a JSON array, got %T", v)}
	}

	maps := make([]map[string]any, 0, len(list))
	for i, item := range list {
		if item == nil {
			continue
		}
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &errors.UnmarshalError{Type: "response", Reason: fmt.Sprintf("item[%d]: expected a JSON object, got %T", i, item)}
		}
		maps = append(maps, m)
	}
	return maps, nil
}
