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
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/identity"
	"github.com/google/uuid"
)

var (
	emailPattern       = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	numericIDPattern   = regexp.MustCompile(`^\d+$`)
	pictureURLPattern  = regexp.MustCompile(`^https?://.*\.(?:png|jpg)$`)
	profileDeviceTypes = map[string]struct{}{"android": {}, "ios": {}}
)

// GetMyProfile fetches the authenticated account's own profile, bound
// as self-owned so Update calls on it are accepted. The account uuid is
// cached on the client as a side effect.
func (c *Client) GetMyProfile(ctx context.Context) (*identity.Profile, error) {
	res, err := c.doMap(ctx, http.MethodGet, "/main/users/profile/me/", nil)
	if err != nil {
		return nil, err
	}

	p, err := c.hydrateProfile(res)
	if err != nil || p == nil {
		return p, err
	}
	p.Bind(c, true)
	c.rememberUUID(p.UUID)
	return p, nil
}

// GetProfile fetches a profile by uuid. The result is bound as foreign
// unless the uuid matches the authenticated account's own.
func (c *Client) GetProfile(ctx context.Context, id uuid.UUID) (*identity.Profile, error) {
	if id == uuid.Nil {
		return nil, &errors.ValidationError{Type: "Profile", Field: "uuid", Reason: "uuid must be provided"}
	}

	res, err := c.doMap(ctx, http.MethodGet, "/main/users/profile/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	p, err := c.hydrateProfile(res)
	if err != nil || p == nil {
		return p, err
	}
	p.Bind(c, id == c.MyUUID())
	return p, nil
}

// hydrateProfile folds the response's nested "profile" sub-object over
// its top-level siblings before hydration. The server scatters profile
// attributes across both levels; one flat map feeds the model.
func (c *Client) hydrateProfile(res map[string]any) (*identity.Profile, error) {
	nested, _ := res["profile"].(map[string]any)
	delete(res, "profile")
	return model.Hydrate[identity.Profile](c.hydrator, res, nested)
}

// UpdateProfile changes fields of the authenticated account's profile
// in one PATCH. Each change is validated and normalized before the
// request goes out; an unknown or protected field aborts the whole call
// with an ImmutabilityError and nothing is sent.
//
// The returned ok reports whether the server echoed every requested
// field back unchanged. profile_picture is exempt from that comparison
// because the server rehosts the image and echoes its own URL. The
// returned profile is the server's post-update view, bound self-owned.
func (c *Client) UpdateProfile(ctx context.Context, changes map[string]any) (bool, *identity.Profile, error) {
	if len(changes) == 0 {
		return false, nil, &errors.ValidationError{Type: "Profile", Reason: "at least one field must be changed"}
	}

	body := make(map[string]any, len(changes))
	for field, value := range changes {
		normalized, err := normalizeProfileChange(field, value)
		if err != nil {
			return false, nil, err
		}
		body[field] = normalized
	}

	res, err := c.PatchProfile(ctx, body)
	if err != nil {
		return false, nil, err
	}

	ok := true
	for field, value := range body {
		if field == identity.FieldProfilePicture {
			continue
		}
		if fmt.Sprint(res[field]) != fmt.Sprint(value) {
			ok = false
		}
	}

	p, err := c.hydrateProfile(res)
	if err != nil {
		return ok, nil, err
	}
	if p != nil {
		p.Bind(c, true)
	}
	return ok, p, nil
}

// normalizeProfileChange validates one profile change and returns the
// wire value to send for it.
func normalizeProfileChange(field string, value any) (any, error) {
	switch field {
	case identity.FieldCountryCode:
		code := strings.ToUpper(fmt.Sprint(value))
		if len(code) > 2 {
			code = code[:2]
		}
		return code, nil

	case identity.FieldDateOfBirth:
		d, err := model.ParseDate(fmt.Sprint(value))
		if err != nil {
			return nil, &errors.ValidationError{Type: "Profile", Field: field, Reason: "date of birth must be a YYYY-MM-DD date", Value: value}
		}
		return d.String(), nil

	case identity.FieldDeviceType:
		device := fmt.Sprint(value)
		if _, ok := profileDeviceTypes[device]; !ok {
			return nil, &errors.ValidationError{Type: "Profile", Field: field, Reason: "device type must be android or ios", Value: value}
		}
		return device, nil

	case identity.FieldEmail:
		email := fmt.Sprint(value)
		if !emailPattern.MatchString(email) {
			return nil, &errors.ValidationError{Type: "Profile", Field: field, Reason: "malformed email address", Value: value}
		}
		return email, nil

	case identity.FieldFacebookURL:
		id := fmt.Sprint(value)
		if !numericIDPattern.MatchString(id) {
			return nil, &errors.ValidationError{Type: "Profile", Field: field, Reason: "must be a numeric account id", Value: value}
		}
		return id, nil

	case identity.FieldGender:
		switch g := strings.ToUpper(fmt.Sprint(value)); g {
		case "M", "F":
			return g, nil
		case "N":
			// The server represents "unspecified" as null, not "N".
			return nil, nil
		default:
			return nil, &errors.ValidationError{Type: "Profile", Field: field, Reason: "gender must be M, F or N", Value: value}
		}

	case identity.FieldProfilePicture:
		u := fmt.Sprint(value)
		if !pictureURLPattern.MatchString(u) {
			return nil, &errors.ValidationError{Type: "Profile", Field: field, Reason: "must be a direct png or jpg URL", Value: value}
		}
		return u, nil

	case identity.FieldLoginType, identity.FieldFirstName, identity.FieldLastName, identity.FieldSlogan:
		return fmt.Sprint(value), nil

	default:
		return nil, &errors.ImmutabilityError{Type: "Profile", Field: field}
	}
}

// PatchProfile implements identity.ProfileOwner. It sends the changes
// as-is and returns the server's echoed profile object; the per-field
// validation and echo comparison live in UpdateProfile and in
// Profile.Update respectively.
func (c *Client) PatchProfile(ctx context.Context, changes map[string]any) (map[string]any, error) {
	return c.doMap(ctx, http.MethodPatch, "/main/users/profile/", changes)
}

// FetchProfile implements identity.ProfileOwner.
func (c *Client) FetchProfile(ctx context.Context, id uuid.UUID) (*identity.Profile, error) {
	return c.GetProfile(ctx, id)
}

// Compile-time verification that Client is a usable profile owner.
var _ identity.ProfileOwner = (*Client)(nil)
