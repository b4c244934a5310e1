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

// Package identity defines the domain models hydrated from the remote
// API's identity surface: users, contacts, profiles, comments,
// notifications, settings, social data, and the relationship records
// around them.
//
// Models in this package are read-mostly value types produced by
// hydration. The handful of entities the remote API lets the
// authenticated account mutate (its own profile, comments on its
// profile, notifications, settings) expose explicit action methods that
// round-trip every change through an owner: a small interface the API
// client implements. A model never mutates itself without server
// confirmation, and a model that was never bound to an owner cannot
// mutate at all.
package identity

import (
	"context"

	"dirpx.dev/callerid/cidcore/model/phone"
	"github.com/google/uuid"
)

// ProfileOwner is the capability a Profile needs to run its mutation
// protocol. It is implemented by the API client; tests substitute fakes.
type ProfileOwner interface {
	// PatchProfile sends a partial profile update and returns the full
	// profile object the server echoed back.
	PatchProfile(ctx context.Context, changes map[string]any) (map[string]any, error)

	// FetchProfile retrieves a profile by uuid, hydrated and bound.
	FetchProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
}

// CommentOwner is the capability a Comment needs for its moderation and
// reaction actions. It is implemented by the API client.
type CommentOwner interface {
	// MyUUID returns the uuid of the authenticated account.
	MyUUID() uuid.UUID

	// ApproveComment approves a pending comment on the authenticated
	// account's profile.
	ApproveComment(ctx context.Context, id int64) (bool, error)

	// DeleteComment ignores and hides a comment on the authenticated
	// account's profile.
	DeleteComment(ctx context.Context, id int64) (bool, error)

	// PublishComment posts or replaces the authenticated account's
	// comment on the given profile.
	PublishComment(ctx context.Context, profileID uuid.UUID, message string) (bool, error)

	// LikeComment adds a like to a comment.
	LikeComment(ctx context.Context, id int64) (bool, error)

	// UnlikeComment removes a like from a comment.
	UnlikeComment(ctx context.Context, id int64) (bool, error)
}

// NotificationOwner is the capability a Notification needs to mark
// itself read. It is implemented by the API client.
type NotificationOwner interface {
	// ReadNotification marks a notification as read.
	ReadNotification(ctx context.Context, id int64) (bool, error)
}

// SettingsOwner is the capability Settings need to apply changes. It is
// implemented by the API client.
type SettingsOwner interface {
	// PatchSettings sends a partial settings update and returns the
	// settings object the server echoed back.
	PatchSettings(ctx context.Context, changes map[string]any) (map[string]any, error)
}

// Blocklister is the capability the shared Block/Unblock helpers need.
// It is implemented by the API client.
type Blocklister interface {
	// BlockNumber blocks a phone number for calls and/or location.
	BlockNumber(ctx context.Context, n phone.Number, blockContact, meFullBlock bool) (bool, error)

	// UnblockNumber lifts a block on a phone number.
	UnblockNumber(ctx context.Context, n phone.Number, unblockContact, meFullUnblock bool) (bool, error)
}
