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
	"testing"
	"time"

	"dirpx.dev/callerid/cidcore/model"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Date
		wantErr bool
	}{
		{
			name:  "canonical date",
			input: "1989-07-22",
			want:  model.Date("1989-07-22"),
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  1989-07-22\n",
			want:  model.Date("1989-07-22"),
		},
		{
			name:  "empty string is the zero value",
			input: "",
			want:  model.Date(""),
		},
		{
			name:  "whitespace only is the zero value",
			input: "   ",
			want:  model.Date(""),
		},
		{
			name:    "impossible calendar date",
			input:   "2021-02-30",
			wantErr: true,
		},
		{
			name:    "wrong layout",
			input:   "22/07/1989",
			wantErr: true,
		},
		{
			name:    "datetime is not a date",
			input:   "1989-07-22T10:00:00Z",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		date    model.Date
		wantErr bool
	}{
		{name: "zero value is valid", date: model.Date("")},
		{name: "valid date", date: model.Date("2000-01-01")},
		{name: "garbage", date: model.Date("not-a-date"), wantErr: true},
		{name: "month out of range", date: model.Date("2000-13-01"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.date.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDate_Redacted(t *testing.T) {
	tests := []struct {
		name string
		date model.Date
		want string
	}{
		{name: "masks month and day", date: model.Date("1989-07-22"), want: "1989-**-**"},
		{name: "zero value", date: model.Date(""), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.Redacted(); got != tt.want {
				t.Errorf("Redacted() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDate_Age(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date model.Date
		want int
	}{
		{name: "birthday already passed this year", date: model.Date("1989-07-22"), want: 37},
		{name: "birthday later this year", date: model.Date("1989-11-01"), want: 36},
		{name: "birthday today", date: model.Date("1989-08-30"), want: 37},
		{name: "zero date", date: model.Date(""), want: 0},
		{name: "future date", date: model.Date("2030-01-01"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.Age(now); got != tt.want {
				t.Errorf("Age() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := model.Date("1989-07-22")

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"1989-07-22"` {
		t.Errorf("Marshal() = %s", data)
	}

	var back model.Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %q, want %q", back, d)
	}
}

func TestDate_UnmarshalJSON_Null(t *testing.T) {
	d := model.Date("1989-07-22")
	if err := json.Unmarshal([]byte("null"), &d); err != nil {
		t.Fatalf("Unmarshal(null) error = %v", err)
	}
	if !d.IsZero() {
		t.Errorf("Unmarshal(null) = %q, want zero value", d)
	}
}

func TestDate_UnmarshalJSON_Invalid(t *testing.T) {
	var d model.Date
	if err := json.Unmarshal([]byte(`"2021-99-99"`), &d); err == nil {
		t.Error("Unmarshal() accepted an impossible date")
	}
}
