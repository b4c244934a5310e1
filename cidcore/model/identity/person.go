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
	"fmt"
	"strings"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/phone"
)

// Person is the capability shared by every model that names a reachable
// human: User, Contact, Profile, MutualContact. The shared helpers in
// this file (blocking, vCard export) accept any Person instead of
// depending on a concrete model.
type Person interface {
	// DisplayName returns the person's name as known to the caller.
	DisplayName() string

	// Phone returns the person's number.
	Phone() phone.Number
}

// Mailer is the optional capability of persons with a known email.
type Mailer interface {
	Mail() string
}

// Birthdayer is the optional capability of persons with a known birthday.
type Birthdayer interface {
	Birthday() model.Date
}

// Bioer is the optional capability of persons with a bio line.
type Bioer interface {
	Bio() string
}

// Block blocks a person's number through the given client. The scope
// flags mirror the block endpoint: blockContact blocks calls,
// meFullBlock hides the account's profile.
func Block(ctx context.Context, bl Blocklister, p Person, blockContact, meFullBlock bool) (bool, error) {
	if p.Phone().IsZero() {
		return false, &errors.ValidationError{Type: "Person", Field: "phone_number", Reason: "person has no phone number to block"}
	}
	return bl.BlockNumber(ctx, p.Phone(), blockContact, meFullBlock)
}

// Unblock lifts a block on a person's number through the given client.
func Unblock(ctx context.Context, bl Blocklister, p Person, unblockContact, meFullUnblock bool) (bool, error) {
	if p.Phone().IsZero() {
		return false, &errors.ValidationError{Type: "Person", Field: "phone_number", Reason: "person has no phone number to unblock"}
	}
	return bl.UnblockNumber(ctx, p.Phone(), unblockContact, meFullUnblock)
}

// VCard renders a person as a vCard 3.0 block suitable for import into a
// contacts app. The required name and number are always present; email,
// birthday, and a bio note are added when the person exposes them.
func VCard(p Person) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\n")
	b.WriteString("VERSION:3.0\n")
	fmt.Fprintf(&b, "FN:%s\n", vcardEscape(p.DisplayName()))
	if !p.Phone().IsZero() {
		fmt.Fprintf(&b, "TEL;TYPE=CELL:%s\n", p.Phone().E164())
	}
	if m, ok := p.(Mailer); ok && m.Mail() != "" {
		fmt.Fprintf(&b, "EMAIL:%s\n", vcardEscape(m.Mail()))
	}
	if bd, ok := p.(Birthdayer); ok && !bd.Birthday().IsZero() {
		fmt.Fprintf(&b, "BDAY:%s\n", bd.Birthday())
	}
	if bio, ok := p.(Bioer); ok && bio.Bio() != "" {
		fmt.Fprintf(&b, "NOTE:%s\n", vcardEscape(bio.Bio()))
	}
	b.WriteString("END:VCARD\n")
	return b.String()
}

// vcardEscape escapes the characters vCard 3.0 treats specially in text
// values.
func vcardEscape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "\n", "\\n", ",", "\\,", ";", "\\;")
	return r.Replace(s)
}

// Compile-time verification of the Person capability across models.
var _ Person = User{}
var _ Person = Contact{}
var _ Person = Profile{}
var _ Person = MutualContact{}
