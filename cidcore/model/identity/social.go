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
	"time"

	"dirpx.dev/callerid/cidcore/model"
	"gopkg.in/yaml.v3"
)

// Social groups the social networks connected to an account, one slot per
// supported network. An unconnected network hydrates as a zero
// SocialMedia with IsActive false.
//
// This type implements the model.Model interface.
type Social struct {
	Facebook  SocialMedia `json:"facebook"`
	Instagram SocialMedia `json:"instagram"`
	LinkedIn  SocialMedia `json:"linkedin"`
	Pinterest SocialMedia `json:"pinterest"`
	Spotify   SocialMedia `json:"spotify"`
	TikTok    SocialMedia `json:"tiktok"`
	Twitter   SocialMedia `json:"twitter"`
}

// Connected returns the networks that are active on the account.
func (s Social) Connected() []SocialMedia {
	var active []SocialMedia
	for _, m := range []SocialMedia{s.Facebook, s.Instagram, s.LinkedIn, s.Pinterest, s.Spotify, s.TikTok, s.Twitter} {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active
}

// String returns a human-readable representation.
func (s Social) String() string {
	return fmt.Sprintf("Social{Connected:%d}", len(s.Connected()))
}

// Redacted returns a logging-safe representation. Profile ids are handles
// chosen for publication, so only the count is logged anyway.
func (s Social) Redacted() string {
	return s.String()
}

// TypeName returns the constant "Social".
func (s Social) TypeName() string {
	return "Social"
}

// IsZero reports whether no network slot carries data.
func (s Social) IsZero() bool {
	return model.Equal(s, Social{})
}

// Validate checks the structural invariants of every network slot.
func (s Social) Validate() error {
	for _, m := range []SocialMedia{s.Facebook, s.Instagram, s.LinkedIn, s.Pinterest, s.Spotify, s.TikTok, s.Twitter} {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (s Social) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", s.TypeName(), err)
	}
	type alias Social
	return json.Marshal((alias)(s))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (s *Social) UnmarshalJSON(data []byte) error {
	type alias Social
	if err := json.Unmarshal(data, (*alias)(s)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return s.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (s Social) MarshalYAML() (interface{}, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", s.TypeName(), err)
	}
	type alias Social
	return (alias)(s), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (s *Social) UnmarshalYAML(node *yaml.Node) error {
	type alias Social
	if err := node.Decode((*alias)(s)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return s.Validate()
}

// SocialMedia represents one connected network: its handle, visibility,
// and the posts the app mirrors from it.
type SocialMedia struct {
	// ProfileID is the network-specific handle or profile url.
	ProfileID string `json:"profile_id"`

	// IsActive reports whether the network is connected.
	IsActive bool `json:"is_active"`

	// IsHidden reports whether the connection is hidden from others.
	IsHidden bool `json:"is_hidden"`

	// Posts are the mirrored posts, newest first as served.
	Posts []SocialPost `json:"posts"`
}

// String returns a human-readable representation.
func (m SocialMedia) String() string {
	return fmt.Sprintf("SocialMedia{ProfileID:%s, IsActive:%t, Posts:%d}", m.ProfileID, m.IsActive, len(m.Posts))
}

// Redacted returns a logging-safe representation with the handle dropped.
func (m SocialMedia) Redacted() string {
	return fmt.Sprintf("SocialMedia{IsActive:%t, IsHidden:%t, Posts:%d}", m.IsActive, m.IsHidden, len(m.Posts))
}

// TypeName returns the constant "SocialMedia".
func (m SocialMedia) TypeName() string {
	return "SocialMedia"
}

// IsZero reports whether the slot carries no data.
func (m SocialMedia) IsZero() bool {
	return m.ProfileID == "" && !m.IsActive && !m.IsHidden && len(m.Posts) == 0
}

// Validate checks the structural invariants of the slot and its posts.
func (m SocialMedia) Validate() error {
	return model.ValidateAll(m.Posts)
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (m SocialMedia) MarshalJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	type alias SocialMedia
	return json.Marshal((alias)(m))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (m *SocialMedia) UnmarshalJSON(data []byte) error {
	type alias SocialMedia
	if err := json.Unmarshal(data, (*alias)(m)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return m.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (m SocialMedia) MarshalYAML() (interface{}, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	type alias SocialMedia
	return (alias)(m), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (m *SocialMedia) UnmarshalYAML(node *yaml.Node) error {
	type alias SocialMedia
	if err := node.Decode((*alias)(m)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return m.Validate()
}

// SocialPost represents one mirrored post from a connected network.
type SocialPost struct {
	// PostedAt is the original publication time, when the network
	// reports one.
	PostedAt *time.Time `json:"posted_at"`

	// Photo is the post's image url.
	Photo string `json:"photo"`

	// TextFirst and TextSecond carry the network-specific text pair
	// (caption and kind, tweet and nothing, playlist name and track
	// count).
	TextFirst  string `json:"text_first"`
	TextSecond string `json:"text_second"`

	// Author is the display name of the poster.
	Author string `json:"author"`

	// RedirectID locates the post on its home network.
	RedirectID string `json:"redirect_id"`

	// Owner is the network-side account the post belongs to.
	Owner string `json:"owner"`
}

// String returns a human-readable representation.
func (p SocialPost) String() string {
	return fmt.Sprintf("SocialPost{Author:%s, RedirectID:%s}", p.Author, p.RedirectID)
}

// Redacted returns a logging-safe representation with author dropped.
func (p SocialPost) Redacted() string {
	return fmt.Sprintf("SocialPost{RedirectID:%s}", p.RedirectID)
}

// TypeName returns the constant "SocialPost".
func (p SocialPost) TypeName() string {
	return "SocialPost"
}

// IsZero reports whether the post carries no data.
func (p SocialPost) IsZero() bool {
	return p == SocialPost{}
}

// Validate satisfies model.Validatable. Posts are opaque mirrored
// content with no invariants of their own.
func (p SocialPost) Validate() error {
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (p SocialPost) MarshalJSON() ([]byte, error) {
	type alias SocialPost
	return json.Marshal((alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *SocialPost) UnmarshalJSON(data []byte) error {
	type alias SocialPost
	if err := json.Unmarshal(data, (*alias)(p)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (p SocialPost) MarshalYAML() (interface{}, error) {
	type alias SocialPost
	return (alias)(p), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *SocialPost) UnmarshalYAML(node *yaml.Node) error {
	type alias SocialPost
	if err := node.Decode((*alias)(p)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return nil
}

// Compile-time verification of the model.Model interface.
var _ model.Model = (*Social)(nil)
var _ model.Deserializable = (*Social)(nil)
var _ model.Model = (*SocialMedia)(nil)
var _ model.Deserializable = (*SocialMedia)(nil)
var _ model.Model = (*SocialPost)(nil)
var _ model.Deserializable = (*SocialPost)(nil)
