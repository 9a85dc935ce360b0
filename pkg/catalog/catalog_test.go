// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"slices"
	"testing"
)

func TestModuleName_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   ModuleName
		wantErr bool
	}{
		{"simple", "markermanager", false},
		{"dotted", "gmaps.util.dragzoom", false},
		{"with_dash_and_digit", "map-icon2", false},
		{"empty", "", true},
		{"leading_digit", "1widget", true},
		{"empty_segment", "gmaps..util", true},
		{"trailing_dot", "widget.", true},
		{"space", "marker manager", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.value.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidModuleName) {
					t.Errorf("ModuleName(%q).Validate() = %v, want ErrInvalidModuleName", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ModuleName(%q).Validate() unexpected error: %v", tt.value, err)
			}
		})
	}
}

func TestVersion_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   Version
		wantErr bool
	}{
		{"1.0", false},
		{"1.10.2-beta", false},
		{"", true},
		{"1 0", true},
		{"1/0", true},
		{"1.0?x", true},
	}
	for _, tt := range tests {
		err := tt.value.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Version(%q).Validate() = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("Version(%q).Validate() should wrap ErrInvalidVersion, got %v", tt.value, err)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	c, err := New(
		Entry{Name: "widget", Versions: []Version{"1.0", "1.1"}},
		Entry{Name: "alpha", Versions: []Version{"2.0"}},
		Entry{Name: "empty"},
	)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	if got, want := c.Names(), []ModuleName{"alpha", "empty", "widget"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	vs, ok := c.Versions("widget")
	if !ok || !slices.Equal(vs, []Version{"1.0", "1.1"}) {
		t.Errorf("Versions(widget) = %v, %v", vs, ok)
	}
	if _, ok := c.Versions("missing"); ok {
		t.Error("Versions(missing) should report false")
	}
	if !c.Has("empty") || c.Has("missing") {
		t.Error("Has() returned the wrong answer")
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Entry
		want    error
	}{
		{
			name:    "duplicate module",
			entries: []Entry{{Name: "widget"}, {Name: "widget"}},
			want:    ErrDuplicateModule,
		},
		{
			name:    "duplicate version",
			entries: []Entry{{Name: "widget", Versions: []Version{"1.0", "1.1", "1.0"}}},
			want:    ErrDuplicateVersion,
		},
		{
			name:    "invalid version",
			entries: []Entry{{Name: "widget", Versions: []Version{"1.0", ""}}},
			want:    ErrInvalidVersion,
		},
		{
			name:    "invalid name",
			entries: []Entry{{Name: "9lives"}},
			want:    ErrInvalidModuleName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.entries...)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCatalog_IsImmutable(t *testing.T) {
	t.Parallel()

	versions := []Version{"1.0", "1.1"}
	c, err := New(Entry{Name: "widget", Versions: versions})
	if err != nil {
		t.Fatal(err)
	}

	versions[0] = "9.9"
	got, _ := c.Versions("widget")
	got[1] = "8.8"

	again, _ := c.Versions("widget")
	if !slices.Equal(again, []Version{"1.0", "1.1"}) {
		t.Errorf("catalog changed through an alias: %v", again)
	}
}

func TestCatalog_Suggest(t *testing.T) {
	t.Parallel()

	c, err := New(
		Entry{Name: "markermanager"},
		Entry{Name: "labeledmarker"},
		Entry{Name: "dragzoom"},
	)
	if err != nil {
		t.Fatal(err)
	}

	got := c.Suggest("markermgr")
	if len(got) == 0 || got[0] != "markermanager" {
		t.Errorf("Suggest(markermgr) = %v, want markermanager first", got)
	}
	if s := c.Suggest("zzzzzz"); len(s) != 0 {
		t.Errorf("Suggest(zzzzzz) = %v, want none", s)
	}
	if s := c.Suggest(""); s != nil {
		t.Errorf("Suggest(\"\") = %v, want nil", s)
	}
}
