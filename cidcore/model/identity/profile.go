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
	"dirpx.dev/callerid/cidcore/model/phone"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Mutable profile field names. These are the only fields the remote API
// lets an account change on its own profile; everything else is
// crowd-sourced or server-derived and rejected with an ImmutabilityError.
const (
	FieldCountryCode    = "country_code"
	FieldDateOfBirth    = "date_of_birth"
	FieldDeviceType     = "device_type"
	FieldLoginType      = "login_type"
	FieldEmail          = "email"
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldSlogan         = "slogan"
	FieldGender         = "gender"
	FieldProfilePicture = "profile_picture"
	FieldFacebookURL    = "facebook_url"
)

// mutableFields is the whitelist consulted by Profile.Update.
var mutableFields = map[string]struct{}{
	FieldCountryCode:    {},
	FieldDateOfBirth:    {},
	FieldDeviceType:     {},
	FieldLoginType:      {},
	FieldEmail:          {},
	FieldFirstName:      {},
	FieldLastName:       {},
	FieldSlogan:         {},
	FieldGender:         {},
	FieldProfilePicture: {},
	FieldFacebookURL:    {},
}

// Profile represents the full view of an account: the self view when
// fetched for the authenticated account, or the (slightly thinner)
// foreign view when fetched by uuid.
//
// This type implements the model.Model interface. A freshly hydrated
// Profile is unbound: it is pure data and cannot reach the network. The
// API client binds the profiles it returns via Bind, marking them as
// self-owned or foreign; only a self-owned profile accepts Update calls,
// and every update round-trips through the server before the local value
// changes. The binding state is unexported and therefore invisible to
// serialization and equality.
//
// Example usage:
//
//	p, err := client.GetMyProfile(ctx)
//	if err != nil {
//	    return err
//	}
//	if err := p.Update(ctx, identity.FieldFirstName, "Chandler"); err != nil {
//	    return err
//	}
type Profile struct {
	// UUID is the account's unique identifier.
	UUID uuid.UUID `json:"uuid"`

	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Email          string       `json:"email"`
	Gender         string       `json:"gender"`
	Slogan         string       `json:"slogan"`
	ProfilePicture string       `json:"profile_picture"`
	FacebookURL    string       `json:"facebook_url"`
	GoogleURL      string       `json:"google_url"`
	DateOfBirth    model.Date   `json:"date_of_birth"`
	PhoneNumber    phone.Number `json:"phone_number"`
	PhonePrefix    int          `json:"phone_prefix"`
	Carrier        string       `json:"carrier"`
	CountryCode    string       `json:"country_code"`
	DeviceType     string       `json:"device_type"`
	LoginType      string       `json:"login_type"`
	UserType       string       `json:"user_type"`

	Distance          float64 `json:"distance"`
	LocationEnabled   bool    `json:"location_enabled"`
	LocationName      string  `json:"location_name"`
	LocationLatitude  float64 `json:"location_latitude"`
	LocationLongitude float64 `json:"location_longitude"`
	ShareLocation     bool    `json:"share_location"`
	IsSharedLocation  bool    `json:"is_shared_location"`

	GdprConsent        bool `json:"gdpr_consent"`
	IsHeBlockedMe      bool `json:"is_he_blocked_me"`
	IsPermanent        bool `json:"is_permanent"`
	IsPremium          bool `json:"is_premium"`
	IsVerified         bool `json:"is_verified"`
	MeInContacts       bool `json:"me_in_contacts"`
	VerifySubscription bool `json:"verify_subscription"`
	CommentsEnabled    bool `json:"comments_enabled"`
	CommentsBlocked    bool `json:"comments_blocked"`

	MutualContactsAvailable bool            `json:"mutual_contacts_available"`
	MutualContacts          []MutualContact `json:"mutual_contacts"`
	WhoDeletedEnabled       bool            `json:"who_deleted_enabled"`
	WhoDeleted              []Deleter       `json:"who_deleted"`
	WhoWatchedEnabled       bool            `json:"who_watched_enabled"`
	WhoWatched              []Watcher       `json:"who_watched"`
	FriendsDistance         []User          `json:"friends_distance"`
	LastComment             *Comment        `json:"last_comment"`
	Social                  *Social         `json:"social"`

	// Binding state, set via Bind. Unexported: never serialized, never
	// part of equality.
	owner ProfileOwner
	self  bool
}

// Bind attaches the profile to its owning client and records whether it
// belongs to the authenticated account. Binding is what turns a hydrated
// snapshot into an actionable profile; the client calls it on every
// profile it returns.
func (p *Profile) Bind(owner ProfileOwner, self bool) {
	p.owner = owner
	p.self = self
}

// IsSelf reports whether the profile is bound as the authenticated
// account's own.
func (p *Profile) IsSelf() bool {
	return p.owner != nil && p.self
}

// Name returns the full display name.
func (p Profile) Name() string {
	return joinName(p.FirstName, p.LastName)
}

// Age returns the profile's age in whole years derived from the date of
// birth, or 0 when unknown.
func (p Profile) Age() int {
	return p.DateOfBirth.Age(time.Now())
}

// DisplayName satisfies the Person capability.
func (p Profile) DisplayName() string {
	return p.Name()
}

// Phone satisfies the Person capability.
func (p Profile) Phone() phone.Number {
	return p.PhoneNumber
}

// Mail returns the profile's email for the vCard helper.
func (p Profile) Mail() string {
	return p.Email
}

// Birthday returns the profile's date of birth for the vCard helper.
func (p Profile) Birthday() model.Date {
	return p.DateOfBirth
}

// Bio returns the profile's slogan for the vCard helper.
func (p Profile) Bio() string {
	return p.Slogan
}

// Update changes one mutable field of a self-owned profile.
//
// The protocol is strict and commits nothing locally until the server
// agrees:
//
//  1. An unbound or foreign profile yields an OwnershipError.
//  2. A field outside the mutable whitelist yields an ImmutabilityError.
//  3. Otherwise the change is PATCHed to the server and the echoed value
//     is compared to the requested one; only an equal echo commits the
//     local field. FieldProfilePicture is exempt from the comparison
//     because the server rehosts pictures under its own url.
//
// A failed round-trip or a mismatched echo yields a MutationError and
// leaves the local field untouched. Committed values receive the same
// coercion hydration applies (date parsing for FieldDateOfBirth).
func (p *Profile) Update(ctx context.Context, field string, value any) error {
	if p.owner == nil || !p.self {
		return &errors.OwnershipError{Type: "Profile", Reason: "cannot update a profile that is not the authenticated account's own"}
	}
	if _, ok := mutableFields[field]; !ok {
		return &errors.ImmutabilityError{Type: "Profile", Field: field}
	}

	echo, err := p.owner.PatchProfile(ctx, map[string]any{field: value})
	if err != nil {
		return err
	}

	if field != FieldProfilePicture {
		echoed, ok := echo[field]
		if !ok || fmt.Sprint(echoed) != fmt.Sprint(value) {
			return &errors.MutationError{Field: field, Value: value}
		}
	}

	return p.commit(field, value)
}

// commit writes a confirmed value into the local struct, applying the
// same coercion hydration would.
func (p *Profile) commit(field string, value any) error {
	if field == FieldDateOfBirth {
		str, ok := value.(string)
		if !ok {
			if d, isDate := value.(model.Date); isDate {
				p.DateOfBirth = d
				return nil
			}
			return &errors.ValidationError{Type: "Profile", Field: field, Reason: "date_of_birth must be a YYYY-MM-DD string", Value: value}
		}
		date, err := model.ParseDate(str)
		if err != nil {
			return &errors.ValidationError{Type: "Profile", Field: field, Reason: err.Error(), Value: value}
		}
		p.DateOfBirth = date
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return &errors.ValidationError{Type: "Profile", Field: field, Reason: "value must be a string", Value: value}
	}

	switch field {
	case FieldCountryCode:
		p.CountryCode = str
	case FieldDeviceType:
		p.DeviceType = str
	case FieldLoginType:
		p.LoginType = str
	case FieldEmail:
		p.Email = str
	case FieldFirstName:
		p.FirstName = str
	case FieldLastName:
		p.LastName = str
	case FieldSlogan:
		p.Slogan = str
	case FieldGender:
		p.Gender = str
	case FieldProfilePicture:
		p.ProfilePicture = str
	case FieldFacebookURL:
		p.FacebookURL = str
	}
	return nil
}

// Refresh re-fetches the profile by uuid through the owning client and
// replaces the entire local value with the fresh snapshot, including its
// binding. It works from any bound state, never runs the mutation
// protocol, and reports whether the refreshed profile is still
// recognized as the authenticated account's own.
func (p *Profile) Refresh(ctx context.Context) (bool, error) {
	if p.owner == nil {
		return false, &errors.OwnershipError{Type: "Profile", Reason: "cannot refresh an unbound profile"}
	}

	fresh, err := p.owner.FetchProfile(ctx, p.UUID)
	if err != nil {
		return false, err
	}
	if fresh == nil {
		return false, &errors.ValidationError{Type: "Profile", Reason: "profile no longer exists", Value: p.UUID}
	}

	*p = *fresh
	return p.IsSelf(), nil
}

// String returns a human-readable representation including PII. Use
// Redacted for logging.
func (p Profile) String() string {
	return fmt.Sprintf("Profile{UUID:%s, Name:%s, PhoneNumber:%s}", p.UUID, p.Name(), p.PhoneNumber.String())
}

// Redacted returns a logging-safe representation: uuid kept, everything
// personal masked or dropped.
func (p Profile) Redacted() string {
	return fmt.Sprintf("Profile{UUID:%s, PhoneNumber:%s, DateOfBirth:%s}", p.UUID, p.PhoneNumber.Redacted(), p.DateOfBirth.Redacted())
}

// TypeName returns the constant "Profile".
func (p Profile) TypeName() string {
	return "Profile"
}

// IsZero reports whether the Profile carries no data at all. The binding
// state does not count as data.
func (p Profile) IsZero() bool {
	p.owner = nil
	p.self = false
	return model.Equal(p, Profile{})
}

// Validate checks the structural invariants of the Profile and its
// nested models. Partial snapshots are the norm, so absent fields pass.
func (p Profile) Validate() error {
	if err := p.PhoneNumber.Validate(); err != nil {
		return &errors.ValidationError{Type: "Profile", Field: "phone_number", Reason: err.Error()}
	}
	if err := p.DateOfBirth.Validate(); err != nil {
		return &errors.ValidationError{Type: "Profile", Field: "date_of_birth", Reason: err.Error()}
	}
	if err := validateGender(p.Gender); err != nil {
		return &errors.ValidationError{Type: "Profile", Field: "gender", Reason: err.Error(), Value: p.Gender}
	}
	if err := model.ValidateAll(p.MutualContacts); err != nil {
		return &errors.ValidationError{Type: "Profile", Field: "mutual_contacts", Reason: err.Error()}
	}
	if err := model.ValidateAll(p.WhoDeleted); err != nil {
		return &errors.ValidationError{Type: "Profile", Field: "who_deleted", Reason: err.Error()}
	}
	if err := model.ValidateAll(p.WhoWatched); err != nil {
		return &errors.ValidationError{Type: "Profile", Field: "who_watched", Reason: err.Error()}
	}
	if err := model.ValidateAll(p.FriendsDistance); err != nil {
		return &errors.ValidationError{Type: "Profile", Field: "friends_distance", Reason: err.Error()}
	}
	if p.LastComment != nil {
		if err := p.LastComment.Validate(); err != nil {
			return &errors.ValidationError{Type: "Profile", Field: "last_comment", Reason: err.Error()}
		}
	}
	if p.Social != nil {
		if err := p.Social.Validate(); err != nil {
			return &errors.ValidationError{Type: "Profile", Field: "social", Reason: err.Error()}
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler using the type alias pattern.
// The binding state is unexported and never serialized.
func (p Profile) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", p.TypeName(), err)
	}
	type alias Profile
	return json.Marshal((alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decode.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type alias Profile
	if err := json.Unmarshal(data, (*alias)(p)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	return p.Validate()
}

// MarshalYAML implements yaml.Marshaler using the type alias pattern.
func (p Profile) MarshalYAML() (interface{}, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", p.TypeName(), err)
	}
	type alias Profile
	return (alias)(p), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decode.
func (p *Profile) UnmarshalYAML(node *yaml.Node) error {
	type alias Profile
	if err := node.Decode((*alias)(p)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	return p.Validate()
}

// Compile-time verification that Profile implements model.Model interface.
var _ model.Model = (*Profile)(nil)
var _ model.Deserializable = (*Profile)(nil)
