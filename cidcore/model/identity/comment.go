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
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Comment lifecycle statuses as used on the wire.
const (
	StatusApproved = "approved"
	StatusIgnored  = "ignored"
	StatusWaiting  = "waiting"
)

// Comment represents a comment posted on a profile. Comments move through
// a moderation lifecycle: posted as waiting, then approved or ignored by
// the profile's owner.
//
// This type implements the model.Model interface. Comments carry a wire
// id, so Comment is hashable through model.Hash.
//
// Like Profile, a hydrated Comment is pure data until the API client
// binds it. The action methods enforce who may do what: moderation
// (Approve, Ignore) only on comments left on the authenticated account's
// own profile, Edit only on comments the account authored, and reactions
// (Like, Unlike) only on approved comments.
type Comment struct {
	// ID is the server-side identifier of the comment.
	ID int64 `json:"id"`

	// Message is the comment text.
	Message string `json:"message"`

	// Status is the moderation status: approved, ignored, or waiting.
	Status string `json:"status"`

	// Author is the account that posted the comment.
	Author *User `json:"author"`

	// ProfileUUID identifies the profile the comment was posted on.
	ProfileUUID uuid.UUID `json:"profile_uuid"`

	// LikeCount is the number of likes on the comment.
	LikeCount int64 `json:"like_count"`

	// Likers lists the accounts that liked the comment.
	Likers []User `json:"comment_likes"`

	// IsLiked reports whether the authenticated account liked the comment.
	IsLiked bool `json:"is_liked"`

	// CommentsBlocked reports whether the author blocks comments.
	CommentsBlocked bool `json:"comments_blocked"`

	// CreatedAt is when the comment was posted.
	CreatedAt time.Time `json:"created_at"`

	// Binding state, set via Bind.
	owner     CommentOwner
	onProfile bool
}

// Bind attaches the comment to its owning client and records whether it
// sits on the authenticated account's own profile, which gates the
// moderation actions.
func (c *Comment) Bind(owner CommentOwner, onOwnProfile bool) {
	c.owner = owner
	c.onProfile = onOwnProfile
}

// Approve approves a waiting comment on the authenticated account's
// profile. Approving an already-approved comment is a no-op success.
func (c *Comment) Approve(ctx context.Context) (bool, error) {
	if c.owner == nil || !c.onProfile {
		return false, &errors.OwnershipError{Type: "Comment", Reason: "only comments on the authenticated account's profile can be approved"}
	}
	if c.Status == StatusApproved {
		return true, nil
	}
	ok, err := c.owner.ApproveComment(ctx, c.ID)
	if err != nil || !ok {
		return false, err
	}
	c.Status = StatusApproved
	return true, nil
}

// Ignore hides a comment on the authenticated account's profile. Ignoring
// an already-ignored comment is a no-op success.
func (c *Comment) Ignore(ctx context.Context) (bool, error) {
	if c.owner == nil || !c.onProfile {
		return false, &errors.OwnershipError{Type: "Comment", Reason: "only comments on the authenticated account's profile can be ignored"}
	}
	if c.Status == StatusIgnored {
		return true, nil
	}
	ok, err := c.owner.DeleteComment(ctx, c.ID)
	if err != nil || !ok {
		return false, err
	}
	c.Status = StatusIgnored
	return true, nil
}

// Edit replaces the message of a comment the authenticated account
// authored. The edited comment re-enters moderation as waiting.
func (c *Comment) Edit(ctx context.Context, message string) (bool, error) {
	if c.owner == nil || c.Author == nil || c.Author.UUID != c.owner.MyUUID() {
		return false, &errors.OwnershipError{Type: "Comment", Reason: "only comments authored by the authenticated account can be edited"}
	}
	ok, err := c.owner.PublishComment(ctx, c.ProfileUUID, message)
	if err != nil || !ok {
		return false, err
	}
	c.Message = message
	c.Status = StatusWaiting
	return true, nil
}

// Like adds the authenticated account's like to an approved comment and
// bumps the local count on success.
func (c *Comment) Like(ctx context.Context) (bool, error) {
	if c.owner == nil {
		return false, &errors.OwnershipError{Type: "Comment", Reason: "comment is not bound to a client"}
	}
	if c.Status != StatusApproved {
		return false, &errors.ValidationError{Type: "Comment", Field: "status", Reason: "only approved comments can be liked", Value: c.Status}
	}
	ok, err := c.owner.LikeComment(ctx, c.ID)
	if err != nil || !ok {
		return false, err
	}
	c.LikeCount++
	c.IsLiked = true
	return true, nil
}

// Unlike removes the authenticated account's like from an approved
// comment and drops the local count on success.
func (c *Comment) Unlike(ctx context.Context) (bool, error) {
	if c.owner == nil {
		return false, &errors.OwnershipError{Type: "Comment", Reason: "comment is not bound to a client"}
	}
	if c.Status != StatusApproved {
		return false, &errors.ValidationError{Type: "Comment", Field: "status", Reason: "only approved comments can be unliked", Value: c.Status}
	}
	ok, err := c.owner.UnlikeComment(ctx, c.ID)
	if err != nil || !ok {
		return false, err
	}
	c.LikeCount--
	c.IsLiked = false
	return true, nil
}

// HashKey returns the decimal wire id, making Comment hashable through
// model.Hash.
func (c Comment) HashKey() string {
	return strconv.FormatInt(c.ID, 10)
}

// String returns a human-readable representation including the message
// text. Use Redacted for logging.
func (c Comment) String() string {
	return fmt.Sprintf("Comment{ID:%d, Status:%s, Message:%s}", c.ID, c.Status, c.Message)
}

// Redacted returns a logging-safe representation with the message and
// author dropped.
func (c Comment) Redacted() string {
	return fmt.Sprintf("Comment{ID:%d, Status:%s, LikeCount:%d}", c.ID, c.Status, c.LikeCount)
}

// TypeName returns the constant "Comment".
func (c Comment) TypeName() string {
	return "Comment"
}

// IsZero reports whether the Comment carries no data at all.
func (c Comment) IsZero() bool {
	return c.ID == 0 && c.Message == "" && c.Status == "" && c.Author == nil &&
		c.ProfileUUID == uuid.Nil && c.LikeCount == 0 && c.Likers == nil && c.CreatedAt.IsZero()
}

// Validate checks the structural invariants of the Comment.
func (c Comment) Validate() error {
	if c.ID < 0 {
		return &errors.ValidationError{Type: "Comment", Field: "id", Reason: "id is negative", Value: c.ID}
	}
	switch c.Status {
	case "", StatusApproved, StatusIgnored, StatusWaiting:
	default:
		return &errors.ValidationError{Type: "Comment", Field: "status", Reason: "status is not one of approved, ignored, waiting", Value: c.Status}
	}
	if c.LikeCount < 0 {
		return &errors.ValidationError{Type: "Comment", Field: "like_count", Reason: "count is negative", Value: c.LikeCount}
	}
	if c.Author != nil {
		if err := c.Author.Validate(); err != nil {
			return &errors.ValidationError{Type: "Comment", Field: "author", Reason: err.Error()}
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
func (c Comment) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	type alias Comment
	return json.Marshal((alias)(c))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (c *Comment) UnmarshalJSON(data []byte) error {
	type alias Comment
	if err := json.Unmarshal(data, (*alias)(c)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return c.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (c Comment) MarshalYAML() (interface{}, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	type alias Comment
	return (alias)(c), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (c *Comment) UnmarshalYAML(node *yaml.Node) error {
	type alias Comment
	if err := node.Decode((*alias)(c)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return c.Validate()
}

// Compile-time verification that Comment implements model.Model interface.
var _ model.Model = (*Comment)(nil)
var _ model.Deserializable = (*Comment)(nil)
var _ model.Keyed = (*Comment)(nil)
