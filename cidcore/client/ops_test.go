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

package client_test

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model/calllog"
	"dirpx.dev/callerid/cidcore/model/phone"
)

func TestAddContacts(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/main/contacts/sync/" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		body := decodeBody(t, r)
		add, ok := body["add"].([]any)
		if !ok || len(add) != 1 {
			t.Fatalf("add = %v", body["add"])
		}
		if isFirst, ok := body["is_first"].(bool); !ok || isFirst {
			t.Errorf("is_first = %v", body["is_first"])
		}
		if remove, ok := body["remove"].([]any); !ok || len(remove) != 0 {
			t.Errorf("remove = %v", body["remove"])
		}
		writeJSON(t, w, map[string]any{"total_count": 1, "add": add})
	}))

	res, err := c.AddContacts(context.Background(), []map[string]any{
		{"name": "Chandler", "phone_number": 972501234567, "country_code": "IL"},
	})
	if err != nil {
		t.Fatalf("AddContacts: %v", err)
	}
	if res["total_count"] != float64(1) {
		t.Fatalf("result = %v", res)
	}
}

func TestAddContacts_InvalidEntryNeverSent(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid batch must not reach the server")
	}))

	_, err := c.AddContacts(context.Background(), []map[string]any{
		{"name": "no number"},
	})
	var valErr *errors.ValidationError
	if !stderrors.As(err, &valErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestAddCalls(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main/call-log/change-sync/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		body := decodeBody(t, r)
		add, ok := body["add"].([]any)
		if !ok || len(add) != 1 {
			t.Fatalf("add = %v", body["add"])
		}
		entry := add[0].(map[string]any)
		// Validation fills the documented defaults before upload.
		if entry["name"] != "555" || entry["duration"] != float64(calllog.DefaultDuration) {
			t.Errorf("defaults not applied: %v", entry)
		}
		// The server reports accepted entries under added_list.
		writeJSON(t, w, map[string]any{"added_list": add})
	}))

	added, err := c.AddCalls(context.Background(), []map[string]any{
		{"phone_number": 555, "type": "missed"},
	})
	if err != nil {
		t.Fatalf("AddCalls: %v", err)
	}
	if len(added) != 1 || added[0].Name != "555" || added[0].Type != calllog.Missed {
		t.Fatalf("added = %+v", added)
	}
	if !added[0].CalledAt.Equal(calllog.SentinelCalledAt) {
		t.Fatalf("CalledAt = %v, want sentinel", added[0].CalledAt)
	}
}

func TestRemoveCalls(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if add, ok := body["add"].([]any); !ok || len(add) != 0 {
			t.Errorf("add = %v", body["add"])
		}
		remove := body["remove"].([]any)
		// Removals come back as a bare array, not an object.
		writeJSON(t, w, remove)
	}))

	removed, err := c.RemoveCalls(context.Background(), []map[string]any{
		{"phone_number": 555, "type": "incoming", "duration": 30},
	})
	if err != nil {
		t.Fatalf("RemoveCalls: %v", err)
	}
	if len(removed) != 1 || removed[0].Duration != 30 {
		t.Fatalf("removed = %+v", removed)
	}
}

func TestBlockProfile(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main/users/profile/block/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		body := decodeBody(t, r)
		// The number travels as a string on this endpoint.
		if body["phone_number"] != "972501234567" {
			t.Errorf("phone_number = %v", body["phone_number"])
		}
		if body["block_contact"] != true || body["me_full_block"] != false {
			t.Errorf("flags = %v", body)
		}
		writeJSON(t, w, map[string]any{"success": true})
	}))

	ok, err := c.BlockProfile(context.Background(), testNumber, true, false)
	if err != nil || !ok {
		t.Fatalf("BlockProfile = %v, %v", ok, err)
	}
}

func TestUnblockProfile_ClearsFlags(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["block_contact"] != false || body["me_full_block"] != false {
			t.Errorf("unblock must clear both flags: %v", body)
		}
		writeJSON(t, w, map[string]any{"success": true})
	}))

	if ok, err := c.UnblockProfile(context.Background(), testNumber, true, true); err != nil || !ok {
		t.Fatalf("UnblockProfile = %v, %v", ok, err)
	}
}

func TestBlockNumbers(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main/users/profile/bulk-block/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		body := decodeBody(t, r)
		if numbers, ok := body["phone_numbers"].([]any); !ok || len(numbers) != 2 {
			t.Errorf("phone_numbers = %v", body["phone_numbers"])
		}
		writeJSON(t, w, map[string]any{"block_contact": true})
	}))

	ok, err := c.BlockNumbers(context.Background(), []phone.Number{972501234567, 972501234568})
	if err != nil || !ok {
		t.Fatalf("BlockNumbers = %v, %v", ok, err)
	}

	if _, err := c.BlockNumbers(context.Background(), nil); err == nil {
		t.Fatal("BlockNumbers accepted an empty batch")
	}
}

func TestBlockedNumbers(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main/settings/blocked-phone-numbers/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(t, w, []any{
			map[string]any{"phone_number": 972501234567, "block_contact": true, "me_full_block": false},
		})
	}))

	blocked, err := c.BlockedNumbers(context.Background())
	if err != nil {
		t.Fatalf("BlockedNumbers: %v", err)
	}
	if len(blocked) != 1 || blocked[0].PhoneNumber != testNumber || !blocked[0].BlockContact {
		t.Fatalf("blocked = %+v", blocked)
	}
}

func TestWhoWatched_SortedByCount(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []any{
			map[string]any{"count": 2, "user": map[string]any{"first_name": "Ross"}},
			map[string]any{"count": 9, "user": map[string]any{"first_name": "Janice"}},
			map[string]any{"count": 5, "user": map[string]any{"first_name": "Gunther"}},
		})
	}))

	watchers, err := c.WhoWatched(context.Background())
	if err != nil {
		t.Fatalf("WhoWatched: %v", err)
	}
	if len(watchers) != 3 {
		t.Fatalf("watchers = %+v", watchers)
	}
	for i, want := range []int64{9, 5, 2} {
		if watchers[i].Count != want {
			t.Fatalf("watchers[%d].Count = %d, want %d", i, watchers[i].Count, want)
		}
	}
}

func TestReportSpam(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main/names/suggestion/report/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		body := decodeBody(t, r)
		if body["country_code"] != "IL" || body["is_spam"] != true || body["is_from_v"] != false {
			t.Errorf("body = %v", body)
		}
		if body["phone_number"] != "972501234567" {
			t.Errorf("phone_number = %v", body["phone_number"])
		}
		writeJSON(t, w, map[string]any{"success": true})
	}))

	ok, err := c.ReportSpam(context.Background(), testNumber, "Telemarketer", "il")
	if err != nil || !ok {
		t.Fatalf("ReportSpam = %v, %v", ok, err)
	}
}

func TestComments_ModerationRoundTrip(t *testing.T) {
	var approved bool
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/main/users/profile/me/":
			writeJSON(t, w, profileResponse())
		case "/main/comments/list/" + testUUID.String():
			writeJSON(t, w, map[string]any{"comments": []any{
				map[string]any{"id": 42, "message": "hi there", "status": "waiting"},
			}})
		case "/main/comments/approve/42/":
			approved = true
			writeJSON(t, w, "approved")
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	ctx := context.Background()

	// Learning the own uuid first is what marks the comment list as
	// being on the account's own profile.
	if _, err := c.GetMyProfile(ctx); err != nil {
		t.Fatalf("GetMyProfile: %v", err)
	}

	comments, err := c.Comments(ctx, testUUID)
	if err != nil {
		t.Fatalf("Comments: %v", err)
	}
	if len(comments) != 1 || comments[0].ID != 42 {
		t.Fatalf("comments = %+v", comments)
	}

	ok, err := comments[0].Approve(ctx)
	if err != nil || !ok {
		t.Fatalf("Approve = %v, %v", ok, err)
	}
	if !approved {
		t.Fatal("approval never reached the server")
	}
	if comments[0].Status != "approved" {
		t.Fatalf("Status = %q after approval", comments[0].Status)
	}
}

func TestPublishComment(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main/comments/add/"+testUUID.String()+"/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		body := decodeBody(t, r)
		writeJSON(t, w, map[string]any{"id": 7, "message": body["message"], "status": "waiting"})
	}))

	ok, err := c.PublishComment(context.Background(), testUUID, "lovely profile")
	if err != nil || !ok {
		t.Fatalf("PublishComment = %v, %v", ok, err)
	}
}

func TestNotifications_MarkRead(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/notification/notification/items/":
			writeJSON(t, w, map[string]any{"count": 1, "results": []any{
				map[string]any{"id": 9, "is_read": false, "category": "birthday"},
			}})
		case "/notification/notification/read/":
			body := decodeBody(t, r)
			if body["notification_id"] != float64(9) {
				t.Errorf("notification_id = %v", body["notification_id"])
			}
			writeJSON(t, w, map[string]any{"is_read": true})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	ctx := context.Background()

	notifications, err := c.Notifications(ctx)
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if len(notifications) != 1 || notifications[0].ID != 9 {
		t.Fatalf("notifications = %+v", notifications)
	}

	ok, err := notifications[0].MarkRead(ctx)
	if err != nil || !ok {
		t.Fatalf("MarkRead = %v, %v", ok, err)
	}
	if !notifications[0].IsRead {
		t.Fatal("IsRead not committed after server confirmation")
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main/settings/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(t, w, map[string]any{"who_watched_enabled": false, "language": "en"})
		case http.MethodPatch:
			body := decodeBody(t, r)
			if body["who_watched_enabled"] != true {
				t.Errorf("body = %v", body)
			}
			writeJSON(t, w, map[string]any{"who_watched_enabled": true, "language": "en"})
		default:
			t.Errorf("unexpected method %q", r.Method)
		}
	}))
	ctx := context.Background()

	s, err := c.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if s.WhoWatchedEnabled || s.Language != "en" {
		t.Fatalf("settings = %+v", s)
	}

	if err := s.Apply(ctx, map[string]any{"who_watched_enabled": true}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !s.WhoWatchedEnabled {
		t.Fatal("echoed setting not folded back")
	}
}

func TestDeleteAccount(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/main/settings/remove-user/" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		// Success is an empty body.
	}))

	ok, err := c.DeleteAccount(context.Background())
	if err != nil || !ok {
		t.Fatalf("DeleteAccount = %v, %v", ok, err)
	}
}

func TestSuspendAccount(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/main/settings/suspend-user/" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		writeJSON(t, w, map[string]any{"contact_suspended": true})
	}))

	ok, err := c.SuspendAccount(context.Background())
	if err != nil || !ok {
		t.Fatalf("SuspendAccount = %v, %v", ok, err)
	}
}

func TestFriendship(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main/contacts/friendship/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(t, w, map[string]any{
			"calls_duration":       300,
			"he_called":            4,
			"i_called":             2,
			"is_premium":           false,
			"mutual_friends_count": 3,
		})
	}))

	f, err := c.Friendship(context.Background(), testNumber)
	if err != nil {
		t.Fatalf("Friendship: %v", err)
	}
	if f.HeCalled != 4 || f.ICalled != 2 || f.MutualFriendsCount != 3 {
		t.Fatalf("friendship = %+v", f)
	}
}
