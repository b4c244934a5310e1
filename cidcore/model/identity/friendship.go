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

package identity

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"gopkg.in/yaml.v3"
)

// Friendship represents the relationship statistics between the
// authenticated account and another number: mutual friends, call totals,
// how each side named the other, and each side's profile views and
// comments.
//
// This type implements the model.Model interface.
type Friendship struct {
	// CallsDuration is the total duration of calls between the two
	// sides in seconds, when the server has it.
	CallsDuration *int64 `json:"calls_duration"`

	// HeCalled and ICalled count calls in each direction.
	HeCalled int64 `json:"he_called"`
	ICalled  int64 `json:"i_called"`

	// HeNamed and INamed are how each side stored the other.
	HeNamed string `json:"he_named"`
	INamed  string `json:"i_named"`

	// HeWatched and IWatched count profile views in each direction.
	HeWatched int64 `json:"he_watched"`
	IWatched  int64 `json:"i_watched"`

	// HisComment and MyComment are the comments each side left on the
	// other's profile, when present.
	HisComment *string `json:"his_comment"`
	MyComment  *string `json:"my_comment"`

	// IsPremium reports whether the other side is a premium account.
	IsPremium bool `json:"is_premium"`

	// MutualFriendsCount is the number of shared contacts.
	MutualFriendsCount int64 `json:"mutual_friends_count"`
}

// String returns a human-readable representation including the stored
// names. Use Redacted for logging.
func (f Friendship) String() string {
	return fmt.Sprintf("Friendship{HeNamed:%s, INamed:%s, MutualFriendsCount:%d}", f.HeNamed, f.INamed, f.MutualFriendsCount)
}

// Redacted returns a logging-safe representation with the stored names
// and comments dropped.
func (f Friendship) Redacted() string {
	return fmt.Sprintf("Friendship{HeCalled:%d, ICalled:%d, MutualFriendsCount:%d}", f.HeCalled, f.ICalled, f.MutualFriendsCount)
}

// TypeName returns the constant "Friendship".
func (f Friendship) TypeName() string {
	return "Friendship"
}

// IsZero reports whether the Friendship carries no data at all.
func (f Friendship) IsZero() bool {
	return f == Friendship{}
}

// Validate checks the structural invariants of the Friendship.
func (f Friendship) Validate() error {
	for field, count := range map[string]int64{
		"he_called":            f.HeCalled,
		"i_called":             f.ICalled,
		"he_watched":           f.HeWatched,
		"i_watched":            f.IWatched,
		"mutual_friends_count": f.MutualFriendsCount,
	} {
		if count < 0 {
			return &errors.ValidationError{Type: "Friendship", Field: field, Reason: "count is negative", Value: count}
		}
	}
	if f.CallsDuration != nil && *f.CallsDuration < 0 {
		return &errors.ValidationError{Type: "Friendship", Field: "calls_duration", Reason: "duration is negative", Value: *f.CallsDuration}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (f Friendship) MarshalJSON() ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", f.TypeName(), err)
	}
	type alias Friendship
	return json.Marshal((alias)(f))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (f *Friendship) UnmarshalJSON(data []byte) error {
	type alias Friendship
	if err := json.Unmarshal(data, (*alias)(f)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return f.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (f Friendship) MarshalYAML() (interface{}, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", f.TypeName(), err)
	}
	type alias Friendship
	return (alias)(f), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (f *Friendship) UnmarshalYAML(node *yaml.Node) error {
	type alias Friendship
	if err := node.Decode((*alias)(f)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return f.Validate()
}

// Compile-time verification that Friendship implements model.Model interface.
var _ model.Model = (*Friendship)(nil)
var _ model.Deserializable = (*Friendship)(nil)
