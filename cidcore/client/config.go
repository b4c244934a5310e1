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

package client

import (
	"net/url"
	"time"

	"dirpx.dev/callerid/cidcore/errors"
	"github.com/blang/semver/v4"
)

// Defaults applied by Config.withDefaults. BaseURL and UserAgent mirror
// what the official mobile application sends; the server rejects
// unrecognized user agents on some endpoints.
const (
	DefaultBaseURL   = "https://app.mobile.me.app"
	DefaultUserAgent = "okhttp/4.9.1"
	DefaultTimeout   = 30 * time.Second
)

// Config carries the construction parameters of a Client.
//
// The zero value is not usable on its own: AppVersion is required and
// has no default, because the server varies response shapes by app
// version and an out-of-date hardcoded one would rot silently. All
// other fields fall back to the defaults above.
type Config struct {
	// BaseURL is the scheme://host[:port] prefix every endpoint path is
	// appended to. No trailing slash.
	BaseURL string

	// AppVersion is the mobile app version to present to the server.
	// MUST be valid semantic versioning, for example "7.2.4".
	AppVersion string

	// UserAgent is sent as the User-Agent header on every request.
	UserAgent string

	// Timeout bounds each HTTP request end to end. Contexts passed to
	// individual calls can shorten it further but never extend it.
	Timeout time.Duration
}

// withDefaults returns a copy of the config with unset optional fields
// replaced by their defaults. AppVersion is deliberately left alone.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Validate implements the model validation convention for Config. It is
// called by New after defaults are applied; a config that does not
// validate never produces a Client.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &errors.ValidationError{
			Type:   "Config",
			Field:  "BaseURL",
			Reason: "must be an absolute http(s) URL",
			Value:  c.BaseURL,
		}
	}

	if _, err := semver.Parse(c.AppVersion); err != nil {
		return &errors.ValidationError{
			Type:   "Config",
			Field:  "AppVersion",
			Reason: "must be a valid semantic version",
			Value:  c.AppVersion,
		}
	}

	if c.Timeout < 0 {
		return &errors.ValidationError{
			Type:   "Config",
			Field:  "Timeout",
			Reason: "must not be negative",
			Value:  c.Timeout,
		}
	}

	return nil
}
