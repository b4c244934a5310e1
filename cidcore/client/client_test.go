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
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dirpx.dev/callerid/cidcore/client"
	"dirpx.dev/callerid/cidcore/creds"
	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model/phone"
	"github.com/google/uuid"
)

const testNumber = phone.Number(972501234567)

var testUUID = uuid.MustParse("3d0b85e0-9722-4f3d-bc52-3f14d2f1c3a1")

// newTestClient spins up an httptest server behind a fresh client with
// in-memory credentials for testNumber.
func newTestClient(t *testing.T, handler http.Handler) (*client.Client, creds.Manager) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	manager := creds.NewMemory()
	if err := manager.Set(context.Background(), testNumber, &creds.Bundle{Access: "test-access", Refresh: "test-refresh"}); err != nil {
		t.Fatalf("seeding credentials: %v", err)
	}

	c, err := client.New(client.Config{BaseURL: srv.URL, AppVersion: "7.2.4"}, testNumber, manager)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, manager
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("decoding request body: %v", err)
	}
	return body
}

func TestNew_Validation(t *testing.T) {
	manager := creds.NewMemory()

	tests := []struct {
		name    string
		cfg     client.Config
		number  phone.Number
		manager creds.Manager
	}{
		{name: "bad app version", cfg: client.Config{AppVersion: "not-semver"}, number: testNumber, manager: manager},
		{name: "missing app version", cfg: client.Config{}, number: testNumber, manager: manager},
		{name: "bad base url", cfg: client.Config{BaseURL: "://nope", AppVersion: "1.0.0"}, number: testNumber, manager: manager},
		{name: "zero number", cfg: client.Config{AppVersion: "1.0.0"}, number: 0, manager: manager},
		{name: "nil manager", cfg: client.Config{AppVersion: "1.0.0"}, number: testNumber, manager: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.New(tt.cfg, tt.number, tt.manager)
			var valErr *errors.ValidationError
			if !stderrors.As(err, &valErr) {
				t.Fatalf("New: got %v, want ValidationError", err)
			}
		})
	}
}

func TestClient_SendsAuthAndHeaders(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-access" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != client.DefaultUserAgent {
			t.Errorf("User-Agent = %q", got)
		}
		if got := r.Header.Get("X-App-Version"); got != "7.2.4" {
			t.Errorf("X-App-Version = %q", got)
		}
		writeJSON(t, w, map[string]any{"success": true})
	}))

	if _, err := c.UpdateLocation(context.Background(), 32.0, 34.8); err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}
}

func TestClient_MissingCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached the server without credentials")
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(client.Config{BaseURL: srv.URL, AppVersion: "1.0.0"}, testNumber, creds.NewMemory())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.GetMyProfile(context.Background())
	var valErr *errors.ValidationError
	if !stderrors.As(err, &valErr) {
		t.Fatalf("GetMyProfile without creds: got %v, want ValidationError", err)
	}
}

func TestClient_APIError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(t, w, map[string]any{"detail": "server exploded"})
	}))

	_, err := c.GetMyProfile(context.Background())
	var apiErr *errors.APIError
	if !stderrors.As(err, &apiErr) {
		t.Fatalf("got %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Detail != "server exploded" {
		t.Fatalf("APIError = %+v", apiErr)
	}
}

func TestClient_Logout(t *testing.T) {
	c, manager := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	b, err := manager.Get(context.Background(), testNumber)
	if err != nil || b != nil {
		t.Fatalf("credentials survived Logout: bundle=%v err=%v", b, err)
	}
}

func TestPhoneSearch(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main/contacts/search/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("phone_number"); got != "972501234567" {
			t.Errorf("phone_number = %q", got)
		}
		writeJSON(t, w, map[string]any{
			"contact": map[string]any{
				"id":           7,
				"name":         "Chandler Bing",
				"phone_number": 972501234567,
				"user": map[string]any{
					"uuid":       testUUID.String(),
					"first_name": "Chandler",
					"last_name":  "Bing",
				},
			},
		})
	}))

	contact, err := c.PhoneSearch(context.Background(), testNumber)
	if err != nil {
		t.Fatalf("PhoneSearch: %v", err)
	}
	if contact == nil || contact.Name != "Chandler Bing" || contact.PhoneNumber != testNumber {
		t.Fatalf("PhoneSearch = %+v", contact)
	}
	if !contact.Registered() || contact.User.UUID != testUUID {
		t.Fatalf("nested user not hydrated: %+v", contact.User)
	}
}

func TestPhoneSearch_UnknownNumber(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(t, w, map[string]any{"detail": "Not found."})
	}))

	contact, err := c.PhoneSearch(context.Background(), testNumber)
	if err != nil {
		t.Fatalf("PhoneSearch on unknown number: %v", err)
	}
	if contact != nil {
		t.Fatalf("PhoneSearch = %+v, want nil", contact)
	}
}

func TestPhoneSearch_Other404sStayErrors(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(t, w, map[string]any{"detail": "route has moved"})
	}))

	_, err := c.PhoneSearch(context.Background(), testNumber)
	var apiErr *errors.APIError
	if !stderrors.As(err, &apiErr) || apiErr.NotFound() {
		t.Fatalf("got %v, want non-NotFound APIError", err)
	}
}

func profileResponse() map[string]any {
	return map[string]any{
		"comments_blocked":          false,
		"is_he_blocked_me":          false,
		"mutual_contacts_available": true,
		"share_location":            false,
		"profile": map[string]any{
			"uuid":          testUUID.String(),
			"first_name":    "Chandler",
			"last_name":     "Bing",
			"email":         "chandler@example.com",
			"gender":        "M",
			"date_of_birth": "1989-07-22",
			"phone_number":  972501234567,
			"slogan":        "Could I BE any more of a profile?",
		},
	}
}

func TestGetMyProfile(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main/users/profile/me/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(t, w, profileResponse())
	}))

	p, err := c.GetMyProfile(context.Background())
	if err != nil {
		t.Fatalf("GetMyProfile: %v", err)
	}

	// Nested "profile" fields and top-level siblings land on one model.
	if p.UUID != testUUID || p.Name() != "Chandler Bing" || !p.MutualContactsAvailable {
		t.Fatalf("flattening failed: %+v", p)
	}
	if !p.IsSelf() {
		t.Fatal("own profile not bound as self")
	}
	if c.MyUUID() != testUUID {
		t.Fatalf("MyUUID = %v, want %v", c.MyUUID(), testUUID)
	}
}

func TestGetProfile_ForeignBinding(t *testing.T) {
	foreign := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := profileResponse()
		res["profile"].(map[string]any)["uuid"] = foreign.String()
		writeJSON(t, w, res)
	}))

	p, err := c.GetProfile(context.Background(), foreign)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.IsSelf() {
		t.Fatal("foreign profile bound as self")
	}

	var ownErr *errors.OwnershipError
	if err := p.Update(context.Background(), "slogan", "mine now"); !stderrors.As(err, &ownErr) {
		t.Fatalf("Update on foreign profile: got %v, want OwnershipError", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/main/users/profile/" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		body := decodeBody(t, r)
		if body["country_code"] != "IL" {
			t.Errorf("country_code = %v, want upper-cased IL", body["country_code"])
		}

		res := profileResponse()["profile"].(map[string]any)
		for k, v := range body {
			res[k] = v
		}
		// The server rehosts pictures under its own CDN.
		res["profile_picture"] = "https://cdn.example.com/rehosted.jpg"
		writeJSON(t, w, res)
	}))

	ok, p, err := c.UpdateProfile(context.Background(), map[string]any{
		"slogan":          "new bio",
		"country_code":    "il",
		"profile_picture": "https://example.com/image.png",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if !ok {
		t.Fatal("echoed update reported as failed")
	}
	if p == nil || p.Slogan != "new bio" || !p.IsSelf() {
		t.Fatalf("returned profile = %+v", p)
	}
}

func TestUpdateProfile_EchoMismatch(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := profileResponse()["profile"].(map[string]any)
		res["slogan"] = "the server had other plans"
		writeJSON(t, w, res)
	}))

	ok, _, err := c.UpdateProfile(context.Background(), map[string]any{"slogan": "new bio"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if ok {
		t.Fatal("mismatched echo reported as success")
	}
}

func TestUpdateProfile_Validation(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid changes must not reach the server")
	}))

	tests := []struct {
		name    string
		changes map[string]any
		want    any
	}{
		{name: "empty", changes: nil, want: &errors.ValidationError{}},
		{name: "bad email", changes: map[string]any{"email": "not-an-email"}, want: &errors.ValidationError{}},
		{name: "bad gender", changes: map[string]any{"gender": "X"}, want: &errors.ValidationError{}},
		{name: "bad date", changes: map[string]any{"date_of_birth": "22/07/1989"}, want: &errors.ValidationError{}},
		{name: "bad device type", changes: map[string]any{"device_type": "windows-phone"}, want: &errors.ValidationError{}},
		{name: "non-numeric facebook id", changes: map[string]any{"facebook_url": "facebook.com/me"}, want: &errors.ValidationError{}},
		{name: "protected field", changes: map[string]any{"is_verified": true}, want: &errors.ImmutabilityError{}},
		{name: "unknown field", changes: map[string]any{"nonsense": 1}, want: &errors.ImmutabilityError{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := c.UpdateProfile(context.Background(), tt.changes)
			if err == nil {
				t.Fatal("UpdateProfile accepted invalid changes")
			}
			switch tt.want.(type) {
			case *errors.ValidationError:
				var valErr *errors.ValidationError
				if !stderrors.As(err, &valErr) {
					t.Fatalf("got %v, want ValidationError", err)
				}
			case *errors.ImmutabilityError:
				var immErr *errors.ImmutabilityError
				if !stderrors.As(err, &immErr) {
					t.Fatalf("got %v, want ImmutabilityError", err)
				}
			}
		})
	}
}
