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
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"gopkg.in/yaml.v3"
)

// Settings represents the account's social, privacy, and notification
// settings as served by the settings endpoint.
//
// This type implements the model.Model interface. Changes go through
// Apply, which round-trips the delta to the server and folds the echoed
// state back into the local value.
type Settings struct {
	BirthdayNotificationEnabled   bool `json:"birthday_notification_enabled"`
	CommentsEnabled               bool `json:"comments_enabled"`
	CommentsNotificationEnabled   bool `json:"comments_notification_enabled"`
	ContactSuspended              bool `json:"contact_suspended"`
	DistanceNotificationEnabled   bool `json:"distance_notification_enabled"`
	LocationEnabled               bool `json:"location_enabled"`
	MutualContactsAvailable       bool `json:"mutual_contacts_available"`
	NamesNotificationEnabled      bool `json:"names_notification_enabled"`
	NotificationsEnabled          bool `json:"notifications_enabled"`
	SystemNotificationEnabled     bool `json:"system_notification_enabled"`
	WhoDeletedEnabled             bool `json:"who_deleted_enabled"`
	WhoDeletedNotificationEnabled bool `json:"who_deleted_notification_enabled"`
	WhoWatchedEnabled             bool `json:"who_watched_enabled"`
	WhoWatchedNotificationEnabled bool `json:"who_watched_notification_enabled"`

	// Language is the notification language code (en, iw, ...).
	Language string `json:"language"`

	// SpammersCount is the server-maintained spam block counter.
	SpammersCount int64 `json:"spammers_count"`

	LastBackupAt  *time.Time `json:"last_backup_at"`
	LastRestoreAt *time.Time `json:"last_restore_at"`

	owner SettingsOwner
}

// Bind attaches the settings to their owning client.
func (s *Settings) Bind(owner SettingsOwner) {
	s.owner = owner
}

// Apply sends the given changes to the settings endpoint and folds the
// echoed state back into the local value. An empty change set is a
// ValidationError: the endpoint requires at least one setting.
func (s *Settings) Apply(ctx context.Context, changes map[string]any) error {
	if s.owner == nil {
		return &errors.OwnershipError{Type: "Settings", Reason: "settings are not bound to a client"}
	}
	if len(changes) == 0 {
		return &errors.ValidationError{Type: "Settings", Reason: "at least one setting must be changed"}
	}

	echo, err := s.owner.PatchSettings(ctx, changes)
	if err != nil {
		return err
	}

	// The endpoint echoes the full settings object; re-decode it over the
	// local value so server-side normalization wins.
	raw, err := json.Marshal(echo)
	if err != nil {
		return fmt.Errorf("cannot decode settings echo: %w", err)
	}
	type alias Settings
	if err := json.Unmarshal(raw, (*alias)(s)); err != nil {
		return fmt.Errorf("cannot decode settings echo: %w", err)
	}
	return nil
}

// String returns a human-readable representation.
func (s Settings) String() string {
	return fmt.Sprintf("Settings{Language:%s, NotificationsEnabled:%t, WhoWatchedEnabled:%t}",
		s.Language, s.NotificationsEnabled, s.WhoWatchedEnabled)
}

// Redacted returns a logging-safe representation. Settings carry no PII,
// so it matches String.
func (s Settings) Redacted() string {
	return s.String()
}

// TypeName returns the constant "Settings".
func (s Settings) TypeName() string {
	return "Settings"
}

// IsZero reports whether the Settings carry no data at all.
func (s Settings) IsZero() bool {
	s.owner = nil
	return model.Equal(s, Settings{})
}

// Validate checks the structural invariants of the Settings.
func (s Settings) Validate() error {
	if s.SpammersCount < 0 {
		return &errors.ValidationError{Type: "Settings", Field: "spammers_count", Reason: "count is negative", Value: s.SpammersCount}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (s Settings) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", s.TypeName(), err)
	}
	type alias Settings
	return json.Marshal((alias)(s))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type alias Settings
	if err := json.Unmarshal(data, (*alias)(s)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return s.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (s Settings) MarshalYAML() (interface{}, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", s.TypeName(), err)
	}
	type alias Settings
	return (alias)(s), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (s *Settings) UnmarshalYAML(node *yaml.Node) error {
	type alias Settings
	if err := node.Decode((*alias)(s)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return s.Validate()
}

// Compile-time verification that Settings implements model.Model interface.
var _ model.Model = (*Settings)(nil)
var _ model.Deserializable = (*Settings)(nil)
