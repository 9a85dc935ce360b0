// SPDX-License-Identifier: MPL-2.0

package namespace

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
)

func TestMerge_NonDestructive(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.Merge("a.b", 1); err != nil {
		t.Fatal(err)
	}
	if err := r.Merge("a.c", 2); err != nil {
		t.Fatal(err)
	}

	for path, want := range map[string]any{"a.b": 1, "a.c": 2} {
		got, err := r.Lookup(path)
		if err != nil || got != want {
			t.Errorf("Lookup(%q) = %v, %v; want %v", path, got, err, want)
		}
	}
	a, err := r.Lookup("a")
	if err != nil {
		t.Fatalf("Lookup(a) unexpected error: %v", err)
	}
	if m, ok := a.(map[string]any); !ok || len(m) != 2 {
		t.Errorf("Lookup(a) = %#v, want container with 2 children", a)
	}
}

func TestMerge_LibSiblingsSurvive(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.MergeExports("lib", map[string]any{"core": map[string]any{"version": "1.0"}}); err != nil {
		t.Fatal(err)
	}
	if err := r.MergeExports("lib", map[string]any{"util": map[string]any{"format": "fmt"}}); err != nil {
		t.Fatal(err)
	}

	if got, err := r.Lookup("lib.core.version"); err != nil || got != "1.0" {
		t.Errorf("lib.core.version = %v, %v; exporting lib.util must not erase lib.core", got, err)
	}
	if got, err := r.Lookup("lib.util.format"); err != nil || got != "fmt" {
		t.Errorf("lib.util.format = %v, %v", got, err)
	}
}

func TestMerge_LeafReassigned(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.Merge("widget.foo", 1); err != nil {
		t.Fatal(err)
	}
	if err := r.Merge("widget.foo", 2); err != nil {
		t.Fatal(err)
	}
	if got, _ := r.Lookup("widget.foo"); got != 2 {
		t.Errorf("widget.foo = %v, want 2", got)
	}

	// A map merged onto an existing container adds to it.
	if err := r.Merge("widget", map[string]any{"bar": 3}); err != nil {
		t.Fatal(err)
	}
	if got, _ := r.Lookup("widget.foo"); got != 2 {
		t.Errorf("widget.foo = %v after merging a sibling map, want 2", got)
	}
	if got, _ := r.Lookup("widget.bar"); got != 3 {
		t.Errorf("widget.bar = %v, want 3", got)
	}
}

func TestMerge_DottedExportKeys(t *testing.T) {
	t.Parallel()

	r := New()
	err := r.MergeExports("widget", map[string]any{
		"util.format": "f",
		"util":        map[string]any{"parse": "p"},
		"foo":         42,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"widget.foo", "widget.util.format", "widget.util.parse"}
	if got := r.Paths(); !slices.Equal(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestMerge_Conflict(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.Merge("a.b", "leaf"); err != nil {
		t.Fatal(err)
	}

	err := r.Merge("a.b.c", 1)
	var conflict *PathConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Merge(a.b.c) error = %v, want *PathConflictError", err)
	}
	if !errors.Is(err, ErrPathConflict) {
		t.Error("error should wrap ErrPathConflict")
	}
	if conflict.Path != "a.b.c" || conflict.At != "a.b" {
		t.Errorf("conflict = %+v, want Path a.b.c At a.b", conflict)
	}

	// The same conflict reached through a nested export map.
	err = r.MergeExports("a", map[string]any{"ok": 1, "b": map[string]any{"c": 1}})
	if err != nil {
		// a.b is a plain value, so a map at a.b replaces it: no conflict.
		t.Fatalf("MergeExports replacing a leaf with a container: %v", err)
	}
	if got, _ := r.Lookup("a.b.c"); got != 1 {
		t.Errorf("a.b.c = %v, want 1", got)
	}
}

func TestMerge_AtomicOnError(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.Merge("x.leaf", 1); err != nil {
		t.Fatal(err)
	}

	err := r.MergeExports("", map[string]any{
		"a":          1,
		"x.leaf.sub": 2, // conflicts with x.leaf
	})
	if !errors.Is(err, ErrPathConflict) {
		t.Fatalf("MergeExports() error = %v, want ErrPathConflict", err)
	}
	if r.Has("a") {
		t.Error("a failed merge must not leave partial state behind")
	}

	// Sibling keys of one export map that collide with each other.
	err = r.MergeExports("m", map[string]any{"p": 1, "p.q": 2})
	if !errors.Is(err, ErrPathConflict) {
		t.Fatalf("MergeExports() with colliding keys error = %v, want ErrPathConflict", err)
	}
	if r.Has("m") {
		t.Error("m must not exist after a failed merge")
	}
}

func TestMerge_InvalidPath(t *testing.T) {
	t.Parallel()

	r := New()
	for _, path := range []string{"", ".a", "a.", "a..b"} {
		if err := r.Merge(path, 1); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Merge(%q) error = %v, want ErrInvalidPath", path, err)
		}
	}
	if err := r.MergeExports("w", map[string]any{"bad..key": 1}); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("MergeExports with bad key error = %v, want ErrInvalidPath", err)
	}
	if err := r.MergeExports("w", map[string]any{"nested": map[string]any{"": 1}}); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("MergeExports with empty nested key error = %v, want ErrInvalidPath", err)
	}
	if r.Has("w") {
		t.Error("invalid merges must not create containers")
	}
}

func TestMergeExports_EmptyModule(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.MergeExports("empty", nil); err != nil {
		t.Fatal(err)
	}
	if !r.Has("empty") {
		t.Error("module with no exports should still get a container")
	}
	if got := r.Paths(); !slices.Equal(got, []string{"empty"}) {
		t.Errorf("Paths() = %v, want [empty]", got)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.Merge("widget.foo", 42); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Lookup("widget.bar"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(widget.bar) error = %v, want ErrNotFound", err)
	}
	if _, err := r.Lookup("widget.foo.deeper"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup through a leaf error = %v, want ErrNotFound", err)
	}
	if _, err := r.Lookup(""); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Lookup(\"\") error = %v, want ErrInvalidPath", err)
	}

	// Container snapshots are copies.
	snap, _ := r.Lookup("widget")
	snap.(map[string]any)["foo"] = 0
	if got, _ := r.Lookup("widget.foo"); got != 42 {
		t.Errorf("registry changed through a snapshot: widget.foo = %v", got)
	}
}

func TestRegistry_ConcurrentMerges(t *testing.T) {
	t.Parallel()

	r := New()
	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.MergeExports("lib", map[string]any{fmt.Sprintf("m%d", i): i}); err != nil {
				t.Errorf("MergeExports(%d) unexpected error: %v", i, err)
			}
		}()
	}
	wg.Wait()

	if got := len(r.Paths()); got != n {
		t.Errorf("len(Paths()) = %d, want %d", got, n)
	}
	if len(r.Snapshot()["lib"].(map[string]any)) != n {
		t.Error("snapshot lost siblings under concurrent merges")
	}
}
