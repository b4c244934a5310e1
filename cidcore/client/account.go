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
	"strconv"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/identity"
)

// notificationsPageSize bounds one Notifications fetch. The server pages
// this endpoint; 100 covers what the app itself ever shows.
const notificationsPageSize = 100

// GetSettings retrieves the account's settings, bound so Apply works on
// the returned value.
func (c *Client) GetSettings(ctx context.Context) (*identity.Settings, error) {
	res, err := c.doMap(ctx, http.MethodGet, "/main/settings/", nil)
	if err != nil {
		return nil, err
	}

	s, err := model.Hydrate[identity.Settings](c.hydrator, res)
	if err != nil || s == nil {
		return s, err
	}
	s.Bind(c)
	return s, nil
}

// UpdateSettings changes account settings in one PATCH and returns the
// server's post-update view, bound. At least one change is required.
func (c *Client) UpdateSettings(ctx context.Context, changes map[string]any) (*identity.Settings, error) {
	if len(changes) == 0 {
		return nil, &errors.ValidationError{Type: "Settings", Reason: "at least one setting must be changed"}
	}

	res, err := c.PatchSettings(ctx, changes)
	if err != nil {
		return nil, err
	}

	s, err := model.Hydrate[identity.Settings](c.hydrator, res)
	if err != nil || s == nil {
		return s, err
	}
	s.Bind(c)
	return s, nil
}

// PatchSettings implements identity.SettingsOwner.
func (c *Client) PatchSettings(ctx context.Context, changes map[string]any) (map[string]any, error) {
	return c.doMap(ctx, http.MethodPatch, "/main/settings/", changes)
}

// Notifications lists the account's delivered notifications, newest
// first as the server orders them, bound so MarkRead works.
func (c *Client) Notifications(ctx context.Context) ([]identity.Notification, error) {
	path := "/notification/notification/items/?page=1&page_size=" +
		strconv.Itoa(notificationsPageSize) + "&status=distributed"
	res, err := c.doMap(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	maps, err := asMaps(res["results"])
	if err != nil {
		return nil, err
	}
	notifications, err := model.HydrateList[identity.Notification](c.hydrator, maps)
	if err != nil {
		return nil, err
	}

	for i := range notifications {
		notifications[i].Bind(c)
	}
	return notifications, nil
}

// ReadNotification implements identity.NotificationOwner.
func (c *Client) ReadNotification(ctx context.Context, id int64) (bool, error) {
	body := map[string]any{"notification_id": id}
	res, err := c.doMap(ctx, http.MethodPost, "/notification/notification/read/", body)
	if err != nil {
		return false, err
	}
	return boolKey(res, "is_read")
}

// DeleteAccount permanently deletes the account and its data. The
// server signals success with an empty response body.
func (c *Client) DeleteAccount(ctx context.Context) (bool, error) {
	res, err := c.do(ctx, http.MethodDelete, "/main/settings/remove-user/", nil)
	if err != nil {
		return false, err
	}
	return res == nil, nil
}

// SuspendAccount suspends the account until its next login.
func (c *Client) SuspendAccount(ctx context.Context) (bool, error) {
	res, err := c.doMap(ctx, http.MethodPut, "/main/settings/suspend-user/", nil)
	if err != nil {
		return false, err
	}
	return boolKey(res, "contact_suspended")
}

// Compile-time verification of the remaining owner capabilities.
var _ identity.SettingsOwner = (*Client)(nil)
var _ identity.NotificationOwner = (*Client)(nil)
