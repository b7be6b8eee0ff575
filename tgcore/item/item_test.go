/*
   Copyright 2026 The DIRPX Authors

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

package item_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tgerrors "dirpx.dev/tgdf/tgcore/errors"
	"dirpx.dev/tgdf/tgcore/item"
)

const digest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func metadata() *item.Record {
	return item.NewRecord().
		Set("version", "v0.2.0").
		Set("integrity", item.NewRecord().
			Set("hashes", item.NewRecord().Set("sha256", digest)))
}

func TestRecord(t *testing.T) {
	r := item.NewRecord().Set("b", "1").Set("a", "2").Set("b", "3")

	if got := strings.Join(r.Keys(), ","); got != "b,a" {
		t.Errorf("Keys() = %q, want %q", got, "b,a")
	}
	if v, ok := r.Get("b"); !ok || v != "3" {
		t.Errorf("Get(b) = %v, %v, want 3, true", v, ok)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if r.Has("c") {
		t.Error("Has(c) = true, want false")
	}
	if got := r.String(); got != `{b: "3", a: "2"}` {
		t.Errorf("String() = %q", got)
	}

	var nilRec *item.Record
	if nilRec.Len() != 0 || nilRec.Keys() != nil || nilRec.Has("x") {
		t.Error("nil Record must behave as empty")
	}
}

func TestRecordFromMap(t *testing.T) {
	r := item.RecordFromMap(map[string]any{"last": "b", "first": "a"})
	if got := strings.Join(r.Keys(), ","); got != "first,last" {
		t.Errorf("Keys() = %q, want sorted", got)
	}
}

func TestIsFlexname(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"text", true},
		{"full_person_name", true},
		{"x1", true},
		{"", false},
		{"1x", false},
		{"_x", false},
		{"Text", false},
		{"a-b", false},
		{"a b", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := item.IsFlexname(tt.input); got != tt.want {
				t.Errorf("IsFlexname(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		raw   any
		shape item.Shape
		check func(t *testing.T, it item.Item)
	}{
		{
			name:  "basic",
			raw:   []any{"text", "John"},
			shape: item.ShapeBasic,
			check: func(t *testing.T, it item.Item) {
				b := it.(*item.Basic)
				if b.Value != item.ScalarValue("John") {
					t.Errorf("Value = %+v", b.Value)
				}
			},
		},
		{
			name:  "basic json number",
			raw:   []any{"number", json.Number("12.5")},
			shape: item.ShapeBasic,
			check: func(t *testing.T, it item.Item) {
				if got := it.(*item.Basic).Value.Scalar; got != "12.5" {
					t.Errorf("Scalar = %q", got)
				}
			},
		},
		{
			name:  "flat quantity",
			raw:   []any{"weight", "kg", "75.5"},
			shape: item.ShapeBasic,
			check: func(t *testing.T, it item.Item) {
				if got := it.(*item.Basic).Value; got != item.QuantityValue("kg", "75.5") {
					t.Errorf("Value = %+v", got)
				}
			},
		},
		{
			name:  "nested quantity",
			raw:   []any{"weight", []any{"kg", "75.5"}},
			shape: item.ShapeBasic,
			check: func(t *testing.T, it item.Item) {
				if got := it.(*item.Basic).Value; got != item.QuantityValue("kg", "75.5") {
					t.Errorf("Value = %+v", got)
				}
			},
		},
		{
			name:  "short",
			raw:   []any{"person_name", item.NewRecord().Set("first", []any{"text", "a"})},
			shape: item.ShapeShort,
			check: func(t *testing.T, it item.Item) {
				if got := it.(*item.Short).Fields.Keys(); len(got) != 1 || got[0] != "first" {
					t.Errorf("Fields = %v", got)
				}
			},
		},
		{
			name:  "short from map",
			raw:   []any{"person_name", map[string]any{"last": []any{"text", "b"}, "first": []any{"text", "a"}}},
			shape: item.ShapeShort,
		},
		{
			name:  "custom",
			raw:   []any{"person", metadata(), item.NewRecord().Set("name", []any{"text", "a"})},
			shape: item.ShapeCustom,
			check: func(t *testing.T, it item.Item) {
				c := it.(*item.Custom)
				if c.Metadata.Version != "v0.2.0" {
					t.Errorf("Version = %q", c.Metadata.Version)
				}
				if d, ok := c.Metadata.Digest("sha256"); !ok || d != digest {
					t.Errorf("Digest(sha256) = %q, %v", d, ok)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := item.Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if it.Shape() != tt.shape {
				t.Errorf("Shape() = %v, want %v", it.Shape(), tt.shape)
			}
			if tt.check != nil {
				tt.check(t, it)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		kind     tgerrors.ShapeErrorKind
		wantPath string
	}{
		{"not a sequence", "text", tgerrors.Malformed, ""},
		{"nil", nil, tgerrors.Malformed, ""},
		{"one element", []any{"text"}, tgerrors.Malformed, ""},
		{"four elements", []any{"a", "b", "c", "d"}, tgerrors.Malformed, ""},
		{"non scalar name", []any{[]any{"x"}, "y"}, tgerrors.Malformed, ""},
		{"bool value", []any{"yesno", true}, tgerrors.Malformed, ""},
		{"bad pair", []any{"weight", []any{"kg"}}, tgerrors.Malformed, ""},
		{"bad quantity number", []any{"weight", "kg", []any{}}, tgerrors.Malformed, ""},
		{"record not metadata", []any{"person", item.NewRecord().Set("version", "1.0.0"), item.NewRecord()}, tgerrors.Malformed, ""},
		{"custom without fields", []any{"person", metadata(), "x"}, tgerrors.Malformed, ""},
		{"bad field name", []any{"person_name", item.NewRecord().Set("First", "x")}, tgerrors.Malformed, "First"},
		{"upper case name", []any{"Text", "x"}, tgerrors.InvalidTypeName, ""},
		{"leading digit", []any{"9lives", "x"}, tgerrors.InvalidTypeName, ""},
		{"empty name", []any{"", "x"}, tgerrors.InvalidTypeName, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := item.Parse(tt.raw)
			var serr *tgerrors.ShapeError
			if !errors.As(err, &serr) {
				t.Fatalf("Parse() error = %v, want *ShapeError", err)
			}
			if serr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", serr.Kind, tt.kind)
			}
			if serr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", serr.Path, tt.wantPath)
			}
		})
	}
}

func TestParseAt_Path(t *testing.T) {
	_, err := item.ParseAt([]any{"Bad", "x"}, "contact.email")
	var serr *tgerrors.ShapeError
	if !errors.As(err, &serr) || serr.Path != "contact.email" {
		t.Fatalf("ParseAt() error = %v, want path contact.email", err)
	}
}

func TestParse_LengthErrorKeepsName(t *testing.T) {
	tests := []struct {
		raw  []any
		want string
	}{
		{[]any{"text"}, "text"},
		{[]any{"weight", "kg", "1", "2"}, "weight"},
		{[]any{}, ""},
		{[]any{[]any{"x"}}, ""},
	}

	for _, tt := range tests {
		_, err := item.Parse(tt.raw)
		var serr *tgerrors.ShapeError
		if !errors.As(err, &serr) {
			t.Fatalf("Parse(%v) error = %v, want *ShapeError", tt.raw, err)
		}
		if serr.TypeName != tt.want {
			t.Errorf("Parse(%v) TypeName = %q, want %q", tt.raw, serr.TypeName, tt.want)
		}
	}
}

func TestItem_Redacted(t *testing.T) {
	tests := []struct {
		raw          any
		wantString   string
		wantRedacted string
	}{
		{[]any{"text", "John"}, `[text "John"]`, "[text ***]"},
		{[]any{"weight", "kg", "75.5"}, "[weight kg 75.5]", "[weight kg ***]"},
		{
			[]any{"person_name", item.NewRecord().Set("first", []any{"text", "a"}).Set("last", []any{"text", "b"})},
			`[person_name {first: ["text", "a"], last: ["text", "b"]}]`,
			"[person_name {first, last}]",
		},
	}

	for _, tt := range tests {
		it, err := item.Parse(tt.raw)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got := it.String(); got != tt.wantString {
			t.Errorf("String() = %q, want %q", got, tt.wantString)
		}
		if got := it.Redacted(); got != tt.wantRedacted {
			t.Errorf("Redacted() = %q, want %q", got, tt.wantRedacted)
		}
	}
}

func TestCustom_RedactedHidesValues(t *testing.T) {
	it, err := item.Parse([]any{"person", metadata(), item.NewRecord().Set("name", []any{"text", "secret"})})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := it.Redacted()
	if strings.Contains(got, "secret") || strings.Contains(got, digest) {
		t.Errorf("Redacted() = %q leaks values", got)
	}
	if !strings.Contains(got, "{name}") {
		t.Errorf("Redacted() = %q, want field names", got)
	}
}
