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
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/identity"
	"dirpx.dev/callerid/cidcore/model/phone"
	"github.com/google/uuid"
)

// Friendship retrieves the interaction statistics between the
// authenticated account and another number.
func (c *Client) Friendship(ctx context.Context, number phone.Number) (*identity.Friendship, error) {
	if number.IsZero() {
		return nil, &errors.ValidationError{Type: "Friendship", Field: "phone_number", Reason: "phone number must be provided"}
	}

	res, err := c.doMap(ctx, http.MethodGet, "/main/contacts/friendship/?phone_number="+number.String(), nil)
	if err != nil {
		return nil, err
	}
	return model.Hydrate[identity.Friendship](c.hydrator, res)
}

// ReportSpam reports a number as spam under the given name. The country
// code is upper-cased on the way out, matching what the server expects.
func (c *Client) ReportSpam(ctx context.Context, number phone.Number, name, countryCode string) (bool, error) {
	if number.IsZero() {
		return false, &errors.ValidationError{Type: "Contact", Field: "phone_number", Reason: "phone number must be provided"}
	}
	if name == "" {
		return false, &errors.ValidationError{Type: "Contact", Field: "name", Reason: "spam name must be provided"}
	}

	body := map[string]any{
		"country_code": strings.ToUpper(countryCode),
		"is_spam":      true,
		"is_from_v":    false,
		"name":         name,
		"phone_number": number.String(),
	}
	res, err := c.doMap(ctx, http.MethodPost, "/main/names/suggestion/report/", body)
	if err != nil {
		return false, err
	}
	return boolKey(res, "success")
}

// WhoDeleted lists the accounts that deleted the authenticated account
// from their contacts.
func (c *Client) WhoDeleted(ctx context.Context) ([]identity.Deleter, error) {
	list, err := c.doList(ctx, http.MethodGet, "/main/users/profile/who-deleted/", nil)
	if err != nil {
		return nil, err
	}

	maps, err := asMaps(list)
	if err != nil {
		return nil, err
	}
	return model.HydrateList[identity.Deleter](c.hydrator, maps)
}

// WhoWatched lists the accounts that viewed the authenticated account's
// profile, most frequent viewers first.
func (c *Client) WhoWatched(ctx context.Context) ([]identity.Watcher, error) {
	list, err := c.doList(ctx, http.MethodGet, "/main/users/profile/who-watched/", nil)
	if err != nil {
		return nil, err
	}

	maps, err := asMaps(list)
	if err != nil {
		return nil, err
	}
	watchers, err := model.HydrateList[identity.Watcher](c.hydrator, maps)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(watchers, func(i, j int) bool {
		return watchers[i].Count > watchers[j].Count
	})
	return watchers, nil
}

// Comments lists the comments on a profile, bound so their moderation
// and reaction actions work. The on-own-profile flag that gates
// Approve/Ignore is derived from the cached account uuid.
func (c *Client) Comments(ctx context.Context, profileID uuid.UUID) ([]identity.Comment, error) {
	if profileID == uuid.Nil {
		return nil, &errors.ValidationError{Type: "Comment", Field: "uuid", Reason: "profile uuid must be provided"}
	}

	res, err := c.doMap(ctx, http.MethodGet, "/main/comments/list/"+profileID.String(), nil)
	if err != nil {
		return nil, err
	}

	maps, err := asMaps(res["comments"])
	if err != nil {
		return nil, err
	}
	comments, err := model.HydrateList[identity.Comment](c.hydrator, maps)
	if err != nil {
		return nil, err
	}

	onOwnProfile := profileID == c.MyUUID()
	for i := range comments {
		comments[i].Bind(c, onOwnProfile)
	}
	return comments, nil
}

// PublishComment implements identity.CommentOwner. It posts or replaces
// the authenticated account's comment on a profile; success means the
// server accepted it into the waiting-for-approval state.
func (c *Client) PublishComment(ctx context.Context, profileID uuid.UUID, message string) (bool, error) {
	if message == "" {
		return false, &errors.ValidationError{Type: "Comment", Field: "message", Reason: "comment message must be provided"}
	}

	body := map[string]any{"message": message}
	res, err := c.doMap(ctx, http.MethodPost, "/main/comments/add/"+profileID.String()+"/", body)
	if err != nil {
		return false, err
	}

	published, err := model.Hydrate[identity.Comment](c.hydrator, res)
	if err != nil {
		return false, err
	}
	return published != nil && published.Status == identity.StatusWaiting, nil
}

// ApproveComment implements identity.CommentOwner. The server answers
// these moderation endpoints with a bare JSON string naming the new
// state rather than an object.
func (c *Client) ApproveComment(ctx context.Context, id int64) (bool, error) {
	res, err := c.do(ctx, http.MethodPost, "/main/comments/approve/"+strconv.FormatInt(id, 10)+"/", nil)
	if err != nil {
		return false, err
	}
	return res == identity.StatusApproved, nil
}

// DeleteComment implements identity.CommentOwner.
func (c *Client) DeleteComment(ctx context.Context, id int64) (bool, error) {
	res, err := c.do(ctx, http.MethodDelete, "/main/comments/approve/"+strconv.FormatInt(id, 10)+"/", nil)
	if err != nil {
		return false, err
	}
	return res == identity.StatusIgnored, nil
}

// LikeComment implements identity.CommentOwner.
func (c *Client) LikeComment(ctx context.Context, id int64) (bool, error) {
	res, err := c.doMap(ctx, http.MethodPost, "/main/comments/like/"+strconv.FormatInt(id, 10)+"/", nil)
	if err != nil {
		return false, err
	}
	return boolKey(res, "success")
}

// UnlikeComment implements identity.CommentOwner.
func (c *Client) UnlikeComment(ctx context.Context, id int64) (bool, error) {
	res, err := c.doMap(ctx, http.MethodDelete, "/main/comments/like/"+strconv.FormatInt(id, 10)+"/", nil)
	if err != nil {
		return false, err
	}
	return boolKey(res, "success")
}

// GetSocials retrieves the authenticated account's connected social
// networks. The endpoint is a POST because it refreshes the server-side
// snapshot before answering.
func (c *Client) GetSocials(ctx context.Context) (*identity.Social, error) {
	res, err := c.doMap(ctx, http.MethodPost, "/main/social/update/", nil)
	if err != nil {
		return nil, err
	}
	return model.Hydrate[identity.Social](c.hydrator, res)
}

// NameGroups retrieves the names other people stored the authenticated
// account under, grouped by spelling.
func (c *Client) NameGroups(ctx context.Context) ([]identity.Group, error) {
	res, err := c.doMap(ctx, http.MethodGet, "/main/names/groups/", nil)
	if err != nil {
		return nil, err
	}

	maps, err := asMaps(res["groups"])
	if err != nil {
		return nil, err
	}
	return model.HydrateList[identity.Group](c.hydrator, maps)
}

// UpdateLocation reports the account's current coordinates.
func (c *Client) UpdateLocation(ctx context.Context, lat, lon float64) (bool, error) {
	body := map[string]any{"location_latitude": lat, "location_longitude": lon}
	res, err := c.doMap(ctx, http.MethodPost, "/main/location/update/", body)
	if err != nil {
		return false, err
	}
	return boolKey(res, "success")
}

// Compile-time verification that Client is a usable comment owner.
var _ identity.CommentOwner = (*Client)(nil)
