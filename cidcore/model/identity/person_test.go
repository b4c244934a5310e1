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
	stderrors "errors"
	"strings"
	"testing"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/phone"
)

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{name: "both halves", user: User{FirstName: "Phoebe", LastName: "Buffay"}, want: "Phoebe Buffay"},
		{name: "first only", user: User{FirstName: "Phoebe"}, want: "Phoebe"},
		{name: "last only", user: User{LastName: "Buffay"}, want: "Buffay"},
		{name: "neither", user: User{}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Fatalf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{name: "zero", user: User{}},
		{name: "full", user: User{FirstName: "Joey", Gender: "M", PhoneNumber: 972501234567}},
		{name: "lowercase gender", user: User{Gender: "f"}},
		{name: "bad gender", user: User{Gender: "robot"}, wantErr: true},
		{name: "negative number", user: User{PhoneNumber: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVCard(t *testing.T) {
	p := Profile{
		FirstName:   "Monica",
		LastName:    "Geller",
		PhoneNumber: 972501234567,
		Email:       "monica@example.com",
		DateOfBirth: model.Date("1969-04-22"),
		Slogan:      "I know!",
	}

	card := VCard(p)
	for _, want := range []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:Monica Geller",
		"TEL;TYPE=CELL:+972501234567",
		"EMAIL:monica@example.com",
		"BDAY:1969-04-22",
		"NOTE:I know!",
		"END:VCARD",
	} {
		if !strings.Contains(card, want) {
			t.Fatalf("vCard missing %q:\n%s", want, card)
		}
	}
}

func TestVCard_MinimalPerson(t *testing.T) {
	// Contact exposes no email, birthday, or bio capability; the card
	// holds only the required lines.
	card := VCard(Contact{Name: "Pizza Place", PhoneNumber: 972035555555})
	if strings.Contains(card, "EMAIL") || strings.Contains(card, "BDAY") || strings.Contains(card, "NOTE") {
		t.Fatalf("unexpected optional lines:\n%s", card)
	}
	if !strings.Contains(card, "FN:Pizza Place") {
		t.Fatalf("missing FN line:\n%s", card)
	}
}

func TestVCard_EscapesSpecialCharacters(t *testing.T) {
	card := VCard(Contact{Name: "Geller, Ross; PhD", PhoneNumber: 972501234567})
	if !strings.Contains(card, `FN:Geller\, Ross\; PhD`) {
		t.Fatalf("special characters not escaped:\n%s", card)
	}
}

type fakeBlocklister struct {
	blocked   []phone.Number
	unblocked []phone.Number
}

func (f *fakeBlocklister) BlockNumber(_ context.Context, n phone.Number, _, _ bool) (bool, error) {
	f.blocked = append(f.blocked, n)
	return true, nil
}

func (f *fakeBlocklister) UnblockNumber(_ context.Context, n phone.Number, _, _ bool) (bool, error) {
	f.unblocked = append(f.unblocked, n)
	return true, nil
}

func TestBlockUnblock(t *testing.T) {
	ctx := context.Background()
	bl := &fakeBlocklister{}

	u := User{FirstName: "Janice", PhoneNumber: 972501234567}
	if ok, err := Block(ctx, bl, u, true, true); err != nil || !ok {
		t.Fatalf("Block: ok=%t err=%v", ok, err)
	}
	if len(bl.blocked) != 1 || bl.blocked[0] != 972501234567 {
		t.Fatalf("blocked = %v", bl.blocked)
	}

	if ok, err := Unblock(ctx, bl, u, true, false); err != nil || !ok {
		t.Fatalf("Unblock: ok=%t err=%v", ok, err)
	}

	// A person with no number cannot be blocked.
	_, err := Block(ctx, bl, User{FirstName: "Ghost"}, true, false)
	var valErr *errors.ValidationError
	if !stderrors.As(err, &valErr) {
		t.Fatalf("Block without number: got %v, want ValidationError", err)
	}
}

func TestBlockedNumber_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   BlockedNumber
		wantErr bool
	}{
		{name: "call block", entry: BlockedNumber{PhoneNumber: 972501234567, BlockContact: true}},
		{name: "full block", entry: BlockedNumber{PhoneNumber: 972501234567, BlockContact: true, MeFullBlock: true}},
		{name: "no number", entry: BlockedNumber{BlockContact: true}, wantErr: true},
		{name: "no scope", entry: BlockedNumber{PhoneNumber: 972501234567}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashableIdentityModels(t *testing.T) {
	contact := Contact{ID: 42, Name: "Gunther"}
	comment := Comment{ID: 42}

	h1, err := model.Hash(contact)
	if err != nil {
		t.Fatalf("Hash(Contact): %v", err)
	}
	h2, err := model.Hash(comment)
	if err != nil {
		t.Fatalf("Hash(Comment): %v", err)
	}
	// Same key, different type names: hashes must differ.
	if h1 == h2 {
		t.Fatal("Contact and Comment with the same id hashed identically")
	}

	if _, err := model.Hash(User{FirstName: "Joey"}); err == nil {
		t.Fatal("Hash(User): got nil error, want NotHashableError")
	}
}
