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

package model_test

import (
	"encoding/json"
	stderrors "errors"
	"strconv"
	"strings"
	"testing"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"gopkg.in/yaml.v3"
)

// testPerson is a small Model implementation used throughout the package
// tests. It mirrors the shape of a hydrated API entity: a remote id, a
// display name, and a sensitive contact field.
type testPerson struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (p testPerson) Validate() error {
	if p.Name == "" {
		return stderrors.New("name required")
	}
	return nil
}

func (p testPerson) TypeName() string {
	return "TestPerson"
}

func (p testPerson) IsZero() bool {
	return p == testPerson{}
}

func (p testPerson) Redacted() string {
	return "TestPerson{ID:" + strconv.FormatInt(p.ID, 10) + ", Name:" + p.Name + ", Email:[REDACTED]}"
}

func (p testPerson) String() string {
	return "TestPerson{ID:" + strconv.FormatInt(p.ID, 10) + ", Name:" + p.Name + ", Email:" + p.Email + "}"
}

func (p testPerson) HashKey() string {
	return strconv.FormatInt(p.ID, 10)
}

func (p testPerson) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	type alias testPerson
	return json.Marshal((alias)(p))
}

func (p *testPerson) UnmarshalJSON(data []byte) error {
	type alias testPerson
	if err := json.Unmarshal(data, (*alias)(p)); err != nil {
		return err
	}
	return p.Validate()
}

func (p testPerson) MarshalYAML() (interface{}, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	type alias testPerson
	return (alias)(p), nil
}

func (p *testPerson) UnmarshalYAML(node *yaml.Node) error {
	type alias testPerson
	if err := node.Decode((*alias)(p)); err != nil {
		return err
	}
	return p.Validate()
}

var _ model.Model = (*testPerson)(nil)
var _ model.Deserializable = (*testPerson)(nil)
var _ model.Keyed = (*testPerson)(nil)

// testNote is a Model without an id, used to exercise the unhashable path.
type testNote struct {
	Text string `json:"text"`
}

func (n testNote) Validate() error  { return nil }
func (n testNote) TypeName() string { return "TestNote" }
func (n testNote) IsZero() bool     { return n.Text == "" }
func (n testNote) Redacted() string { return "TestNote{...}" }
func (n testNote) String() string   { return "TestNote{Text:" + n.Text + "}" }

func (n testNote) MarshalJSON() ([]byte, error) {
	type alias testNote
	return json.Marshal((alias)(n))
}

func (n *testNote) UnmarshalJSON(data []byte) error {
	type alias testNote
	return json.Unmarshal(data, (*alias)(n))
}

func (n testNote) MarshalYAML() (interface{}, error) {
	type alias testNote
	return (alias)(n), nil
}

func (n *testNote) UnmarshalYAML(node *yaml.Node) error {
	type alias testNote
	return node.Decode((*alias)(n))
}

var _ model.Model = (*testNote)(nil)
var _ model.Deserializable = (*testNote)(nil)

func TestValidateAll(t *testing.T) {
	tests := []struct {
		name      string
		models    []testPerson
		wantErr   bool
		wantInMsg []string
	}{
		{
			name:    "all valid",
			models:  []testPerson{{ID: 1, Name: "alice"}, {ID: 2, Name: "bob"}},
			wantErr: false,
		},
		{
			name:    "empty slice",
			models:  []testPerson{},
			wantErr: false,
		},
		{
			name:      "single invalid",
			models:    []testPerson{{ID: 1, Name: "alice"}, {ID: 2}},
			wantErr:   true,
			wantInMsg: []string{"model[1]", "TestPerson"},
		},
		{
			name:      "all errors reported, not just the first",
			models:    []testPerson{{ID: 1}, {ID: 2, Name: "bob"}, {ID: 3}},
			wantErr:   true,
			wantInMsg: []string{"model[0]", "model[2]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.ValidateAll(tt.models)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAll() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.wantInMsg {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("ValidateAll() error %q does not mention %q", err.Error(), want)
				}
			}
		})
	}
}

func TestFilterZero(t *testing.T) {
	models := []testPerson{
		{ID: 1, Name: "alice"},
		{},
		{ID: 3, Name: "carol"},
		{},
	}

	got := model.FilterZero(models)

	if len(got) != 2 {
		t.Fatalf("FilterZero() returned %d models, want 2", len(got))
	}
	if got[0].Name != "alice" || got[1].Name != "carol" {
		t.Errorf("FilterZero() = %v, order not preserved", got)
	}
}

func TestFilterZero_AllZero(t *testing.T) {
	got := model.FilterZero([]testPerson{{}, {}})
	if got == nil {
		t.Fatal("FilterZero() returned nil, want empty non-nil slice")
	}
	if len(got) != 0 {
		t.Errorf("FilterZero() returned %d models, want 0", len(got))
	}
}

func TestMustValidate(t *testing.T) {
	t.Run("valid model returned unchanged", func(t *testing.T) {
		m := model.MustValidate(testPerson{ID: 1, Name: "alice"})
		if m.Name != "alice" {
			t.Errorf("MustValidate() = %v, want unchanged model", m)
		}
	})

	t.Run("invalid model panics", func(t *testing.T) {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("MustValidate() did not panic for invalid model")
			}
			if !strings.Contains(r.(string), "TestPerson") {
				t.Errorf("panic message %q does not mention type name", r)
			}
		}()
		model.MustValidate(testPerson{ID: 1})
	})
}

func TestSafeString(t *testing.T) {
	p := testPerson{ID: 7, Name: "alice", Email: "alice@example.com"}

	safe := model.SafeString(p, false)
	if strings.Contains(safe, "alice@example.com") {
		t.Errorf("SafeString(unsafe=false) leaked email: %q", safe)
	}

	unsafe := model.SafeString(p, true)
	if !strings.Contains(unsafe, "alice@example.com") {
		t.Errorf("SafeString(unsafe=true) = %q, want full email", unsafe)
	}
}

func TestToJSON(t *testing.T) {
	t.Run("valid model", func(t *testing.T) {
		data, err := model.ToJSON(testPerson{ID: 1, Name: "alice"})
		if err != nil {
			t.Fatalf("ToJSON() error = %v", err)
		}
		if !strings.Contains(string(data), `"name":"alice"`) {
			t.Errorf("ToJSON() = %s", data)
		}
	})

	t.Run("invalid model rejected before marshal", func(t *testing.T) {
		_, err := model.ToJSON(testPerson{ID: 1})
		if err == nil {
			t.Fatal("ToJSON() succeeded for invalid model")
		}
		if !strings.Contains(err.Error(), "TestPerson") {
			t.Errorf("ToJSON() error %q does not mention type name", err)
		}
	})
}

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name:    "valid payload",
			data:    `{"id":1,"name":"alice","email":"a@example.com"}`,
			wantErr: false,
		},
		{
			name:    "malformed JSON",
			data:    `{"id":`,
			wantErr: true,
		},
		{
			name:    "well-formed but invalid",
			data:    `{"id":1,"email":"a@example.com"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p testPerson
			err := model.FromJSON([]byte(tt.data), &p)
			if (err != nil) != tt.wantErr {
				t.Errorf("FromJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClone(t *testing.T) {
	original := testPerson{ID: 1, Name: "alice", Email: "a@example.com"}

	clone, err := model.Clone(original)
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}

	if !model.Equal(original, clone) {
		t.Errorf("Clone() = %v, not equal to original %v", clone, original)
	}

	clone.Name = "mallory"
	if original.Name != "alice" {
		t.Error("mutating clone affected original")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b testPerson
		want bool
	}{
		{
			name: "identical values",
			a:    testPerson{ID: 1, Name: "alice"},
			b:    testPerson{ID: 1, Name: "alice"},
			want: true,
		},
		{
			name: "different field",
			a:    testPerson{ID: 1, Name: "alice"},
			b:    testPerson{ID: 1, Name: "bob"},
			want: false,
		},
		{
			name: "marshal failure is not equality",
			a:    testPerson{ID: 1},
			b:    testPerson{ID: 1},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExportMap(t *testing.T) {
	p := testPerson{ID: 42, Name: "alice", Email: "a@example.com"}

	got, err := model.ExportMap(p)
	if err != nil {
		t.Fatalf("ExportMap() error = %v", err)
	}

	if got["name"] != "alice" {
		t.Errorf(`ExportMap()["name"] = %v, want "alice"`, got["name"])
	}
	// encoding/json decodes numbers into float64.
	if got["id"] != float64(42) {
		t.Errorf(`ExportMap()["id"] = %v (%T), want 42`, got["id"], got["id"])
	}
}

func TestCanonicalJSON_SortedKeys(t *testing.T) {
	p := testPerson{ID: 1, Name: "alice", Email: "a@example.com"}

	data, err := model.CanonicalJSON(p)
	if err != nil {
		t.Fatalf("CanonicalJSON() error = %v", err)
	}

	want := `{"email":"a@example.com","id":1,"name":"alice"}`
	if string(data) != want {
		t.Errorf("CanonicalJSON() = %s, want %s", data, want)
	}
}

func TestGet(t *testing.T) {
	p := testPerson{ID: 1, Name: "alice"}

	if v, ok := model.Get(p, "name"); !ok || v != "alice" {
		t.Errorf(`Get(p, "name") = %v, %v; want "alice", true`, v, ok)
	}
	if _, ok := model.Get(p, "no_such_field"); ok {
		t.Error(`Get(p, "no_such_field") reported ok for missing key`)
	}
}

func TestHash(t *testing.T) {
	t.Run("keyed model hashes by identity", func(t *testing.T) {
		a := testPerson{ID: 7, Name: "alice"}
		b := testPerson{ID: 7, Name: "completely different snapshot"}

		ha, err := model.Hash(a)
		if err != nil {
			t.Fatalf("Hash() error = %v", err)
		}
		hb, err := model.Hash(b)
		if err != nil {
			t.Fatalf("Hash() error = %v", err)
		}

		if ha != hb {
			t.Error("same entity id produced different hashes")
		}

		c := testPerson{ID: 8, Name: "alice"}
		hc, _ := model.Hash(c)
		if ha == hc {
			t.Error("distinct entity ids produced the same hash")
		}
	})

	t.Run("unkeyed model is not hashable", func(t *testing.T) {
		_, err := model.Hash(testNote{Text: "hello"})
		if err == nil {
			t.Fatal("Hash() succeeded for model without identity")
		}

		var nhe *errors.NotHashableError
		if !stderrors.As(err, &nhe) {
			t.Fatalf("Hash() error = %T, want *NotHashableError", err)
		}
		if nhe.Type != "TestNote" {
			t.Errorf("NotHashableError.Type = %q, want %q", nhe.Type, "TestNote")
		}
	})
}
