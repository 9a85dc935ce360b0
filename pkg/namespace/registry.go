// SPDX-License-Identifier: MPL-2.0

package namespace

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

const separator = "."

var (
	// ErrInvalidPath is returned for empty paths or paths with empty segments.
	ErrInvalidPath = errors.New("invalid namespace path")
	// ErrNotFound is returned by Lookup when nothing lives at the path.
	ErrNotFound = errors.New("namespace path not found")
	// ErrPathConflict is the sentinel error wrapped by PathConflictError.
	ErrPathConflict = errors.New("namespace path conflict")
)

type (
	// PathConflictError is returned when a merge would have to descend through
	// a path that already holds a plain value.
	PathConflictError struct {
		// Path is the full path being merged.
		Path string
		// At is the prefix of Path that holds a value.
		At string
	}

	// Registry is a tree of containers keyed by path segment. It is safe for
	// concurrent use. The zero value is not usable; call New.
	Registry struct {
		mu   sync.RWMutex
		root *node
	}

	// node is either a container (children != nil) or a leaf holding value.
	node struct {
		children map[string]*node
		value    any
	}
)

// Error implements the error interface.
func (e *PathConflictError) Error() string {
	return fmt.Sprintf("cannot merge %q: %q already holds a value", e.Path, e.At)
}

// Unwrap returns ErrPathConflict for errors.Is() compatibility.
func (e *PathConflictError) Unwrap() error { return ErrPathConflict }

// New creates an empty registry.
func New() *Registry {
	return &Registry{root: newContainer()}
}

func newContainer() *node {
	return &node{children: make(map[string]*node)}
}

func (n *node) isContainer() bool { return n.children != nil }

// Split validates path and returns its segments.
func Split(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segs := strings.Split(path, separator)
	if slices.Contains(segs, "") {
		return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
	}
	return segs, nil
}

// Merge stores value at path. Missing intermediate containers are created and
// existing ones reused. A map[string]any value is merged key by key into the
// container at path instead of replacing it; any other value replaces
// whatever the leaf held. On error the registry is left unchanged.
func (r *Registry) Merge(path string, value any) error {
	return r.MergeExports("", map[string]any{path: value})
}

// MergeExports merges every key of exports under prefix; keys may themselves
// be dotted paths. An empty prefix merges at the root. Either every key is
// merged or, on error, none is.
func (r *Registry) MergeExports(prefix string, exports map[string]any) error {
	var base []string
	if prefix != "" {
		segs, err := Split(prefix)
		if err != nil {
			return err
		}
		base = segs
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Merges are applied to a copy so a failure halfway leaves no trace.
	next := r.root.clone()
	if base != nil {
		if exports == nil {
			exports = map[string]any{}
		}
		if err := next.merge(base, exports); err != nil {
			return err
		}
	} else {
		for _, k := range sortedKeys(exports) {
			segs, err := Split(k)
			if err != nil {
				return err
			}
			if err := next.merge(segs, exports[k]); err != nil {
				return err
			}
		}
	}
	r.root = next
	return nil
}

// merge assigns value at segs below n. full holds the segments consumed
// before this call so conflicts can report absolute paths.
func (n *node) merge(segs []string, value any, full ...string) error {
	path := append(slices.Clone(full), segs...)

	cur := n
	for i, seg := range segs[:len(segs)-1] {
		child, ok := cur.children[seg]
		switch {
		case !ok:
			child = newContainer()
			cur.children[seg] = child
		case !child.isContainer():
			return &PathConflictError{
				Path: strings.Join(path, separator),
				At:   strings.Join(path[:len(full)+i+1], separator),
			}
		}
		cur = child
	}

	last := segs[len(segs)-1]
	sub, isMap := value.(map[string]any)
	if !isMap {
		cur.children[last] = &node{value: value}
		return nil
	}

	target, ok := cur.children[last]
	if !ok || !target.isContainer() {
		target = newContainer()
		cur.children[last] = target
	}
	for _, k := range sortedKeys(sub) {
		ksegs, err := Split(k)
		if err != nil {
			return fmt.Errorf("%w (under %q)", err, strings.Join(path, separator))
		}
		if err := target.merge(ksegs, sub[k], path...); err != nil {
			return err
		}
	}
	return nil
}

func (n *node) clone() *node {
	if !n.isContainer() {
		return &node{value: n.value}
	}
	c := &node{children: make(map[string]*node, len(n.children))}
	for k, child := range n.children {
		c.children[k] = child.clone()
	}
	return c
}

// Lookup returns the value at path. Containers are returned as a
// map[string]any snapshot that is safe to modify.
func (r *Registry) Lookup(path string) (any, error) {
	segs, err := Split(path)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cur := r.root
	for _, seg := range segs {
		if !cur.isContainer() {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		child, ok := cur.children[seg]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		cur = child
	}
	return cur.snapshot(), nil
}

// Has reports whether anything lives at path.
func (r *Registry) Has(path string) bool {
	_, err := r.Lookup(path)
	return err == nil
}

// Paths returns the full path of every leaf value, sorted. Empty containers
// are listed too, so a module that exported nothing still shows up.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	r.root.walk("", func(path string, n *node) {
		if !n.isContainer() || len(n.children) == 0 {
			out = append(out, path)
		}
	})
	slices.Sort(out)
	return out
}

// Snapshot returns a deep copy of the whole tree.
func (r *Registry) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root.snapshot().(map[string]any)
}

func (n *node) walk(prefix string, fn func(string, *node)) {
	for name, child := range n.children {
		path := name
		if prefix != "" {
			path = prefix + separator + name
		}
		fn(path, child)
		if child.isContainer() {
			child.walk(path, fn)
		}
	}
}

func (n *node) snapshot() any {
	if !n.isContainer() {
		return n.value
	}
	m := make(map[string]any, len(n.children))
	for k, child := range n.children {
		m[k] = child.snapshot()
	}
	return m
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
