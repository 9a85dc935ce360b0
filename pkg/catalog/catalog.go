// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions caps the "did you mean" list returned by Suggest.
const maxSuggestions = 3

// Catalog maps module names to their published versions. The zero value is an
// empty catalog; use New to populate one.
type Catalog struct {
	entries map[ModuleName][]Version
	names   []ModuleName // sorted
}

// New validates entries and builds an immutable catalog from them.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{entries: make(map[ModuleName][]Version, len(entries))}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.entries[e.Name]; dup {
			return nil, &DuplicateModuleError{Name: e.Name}
		}
		c.entries[e.Name] = slices.Clone(e.Versions)
		c.names = append(c.names, e.Name)
	}
	slices.Sort(c.names)
	return c, nil
}

// Versions returns a copy of the versions published for name, in release order.
func (c *Catalog) Versions(name ModuleName) ([]Version, bool) {
	vs, ok := c.entries[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(vs), true
}

// Has reports whether name is in the catalog.
func (c *Catalog) Has(name ModuleName) bool {
	_, ok := c.entries[name]
	return ok
}

// Names returns the catalog's module names, sorted.
func (c *Catalog) Names() []ModuleName {
	return slices.Clone(c.names)
}

// Entries returns a copy of every entry, sorted by module name.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, Entry{Name: n, Versions: slices.Clone(c.entries[n])})
	}
	return out
}

// Len returns the number of modules in the catalog.
func (c *Catalog) Len() int { return len(c.entries) }

// Suggest returns up to three catalog names that fuzzy-match name, best first.
func (c *Catalog) Suggest(name ModuleName) []ModuleName {
	if name == "" || len(c.names) == 0 {
		return nil
	}
	candidates := make([]string, len(c.names))
	for i, n := range c.names {
		candidates[i] = string(n)
	}
	matches := fuzzy.Find(string(name), candidates)
	out := make([]ModuleName, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, ModuleName(m.Str))
	}
	return out
}
