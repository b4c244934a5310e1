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
	"strconv"
	"time"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/phone"
	"gopkg.in/yaml.v3"
)

// Notification represents an app notification: a new comment, a profile
// watch, a name suggestion, a contact birthday, and so on. The message_*
// fields describe the rendered push message; the context fields (name,
// uuid, phone_number, new_name, ...) describe its subject and are present
// only when the category carries them.
//
// This type implements the model.Model interface. Notifications carry a
// wire id, so Notification is hashable through model.Hash. The only
// mutable thing about a notification is its read flag, changed through
// MarkRead.
type Notification struct {
	// ID is the server-side identifier of the notification.
	ID int64 `json:"id"`

	CreatedAt        time.Time `json:"created_at"`
	ModifiedAt       time.Time `json:"modified_at"`
	DistributionDate time.Time `json:"distribution_date"`

	// IsRead reports whether the notification has been read.
	IsRead bool `json:"is_read"`

	// Sender is the uuid of the sending account.
	Sender string `json:"sender"`

	Status          string `json:"status"`
	DeliveryMethod  string `json:"delivery_method"`
	MessageSubject  string `json:"message_subject"`
	MessageCategory string `json:"message_category"`
	MessageBody     string `json:"message_body"`
	MessageLang     string `json:"message_lang"`
	Category        string `json:"category"`

	// Context fields describing the notification's subject.
	Name           string       `json:"name"`
	UUID           string       `json:"uuid"`
	NewName        string       `json:"new_name"`
	PhoneNumber    phone.Number `json:"phone_number"`
	NotificationID int64        `json:"notification_id"`
	ProfilePicture string       `json:"profile_picture"`
	Tag            string       `json:"tag"`

	owner NotificationOwner
}

// Bind attaches the notification to its owning client.
func (n *Notification) Bind(owner NotificationOwner) {
	n.owner = owner
}

// MarkRead marks the notification as read through the owning client.
// Marking an already-read notification is a no-op success.
func (n *Notification) MarkRead(ctx context.Context) (bool, error) {
	if n.owner == nil {
		return false, &errors.OwnershipError{Type: "Notification", Reason: "notification is not bound to a client"}
	}
	if n.IsRead {
		return true, nil
	}
	ok, err := n.owner.ReadNotification(ctx, n.ID)
	if err != nil || !ok {
		return false, err
	}
	n.IsRead = true
	return true, nil
}

// HashKey returns the decimal wire id, making Notification hashable
// through model.Hash.
func (n Notification) HashKey() string {
	return strconv.FormatInt(n.ID, 10)
}

// String returns a human-readable representation including the subject's
// name. Use Redacted for logging.
func (n Notification) String() string {
	return fmt.Sprintf("Notification{ID:%d, Category:%s, Name:%s}", n.ID, n.MessageCategory, n.Name)
}

// Redacted returns a logging-safe representation with the subject's name
// dropped and number masked.
func (n Notification) Redacted() string {
	return fmt.Sprintf("Notification{ID:%d, Category:%s, PhoneNumber:%s, IsRead:%t}",
		n.ID, n.MessageCategory, n.PhoneNumber.Redacted(), n.IsRead)
}

// TypeName returns the constant "Notification".
func (n Notification) TypeName() string {
	return "Notification"
}

// IsZero reports whether the Notification carries no data at all.
func (n Notification) IsZero() bool {
	n.owner = nil
	return model.Equal(n, Notification{})
}

// Validate checks the structural invariants of the Notification.
func (n Notification) Validate() error {
	if n.ID < 0 {
		return &errors.ValidationError{Type: "Notification", Field: "id", Reason: "id is negative", Value: n.ID}
	}
	if err := n.PhoneNumber.Validate(); err != nil {
		return &errors.ValidationError{Type: "Notification", Field: "phone_number", Reason: err.Error()}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (n Notification) MarshalJSON() ([]byte, error) {
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", n.TypeName(), err)
	}
	type alias Notification
	return json.Marshal((alias)(n))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (n *Notification) UnmarshalJSON(data []byte) error {
	type alias Notification
	if err := json.Unmarshal(data, (*alias)(n)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return n.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (n Notification) MarshalYAML() (interface{}, error) {
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", n.TypeName(), err)
	}
	type alias Notification
	return (alias)(n), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (n *Notification) UnmarshalYAML(node *yaml.Node) error {
	type alias Notification
	if err := node.Decode((*alias)(n)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return n.Validate()
}

// Compile-time verification that Notification implements model.Model interface.
var _ model.Model = (*Notification)(nil)
var _ model.Deserializable = (*Notification)(nil)
var _ model.Keyed = (*Notification)(nil)
