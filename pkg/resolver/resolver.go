// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"strings"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
)

const (
	// Development is the version specifier that selects the unreleased
	// development build of a module instead of any published version.
	Development = "dev"

	// DefaultExtension is the artifact file extension used when Locations
	// does not set one.
	DefaultExtension = ".cue"

	// packedSuffix marks the compressed artifact variant.
	packedSuffix = "_packed"
)

type (
	// Locations are the base URLs artifacts are fetched from.
	Locations struct {
		// Release is the base for published versions, e.g. "https://host/tags".
		Release string
		// Development is the base for the development tree, e.g. "https://host/trunk".
		Development string
		// Extension is the artifact extension including the dot. Empty means DefaultExtension.
		Extension string
	}

	// Resolution is the outcome of resolving one request.
	Resolution struct {
		Name catalog.ModuleName
		// Version is the selected version; empty for development resolutions.
		Version catalog.Version
		// Path is "/<version>" for releases and "" for development.
		Path string
		// Base is the base location the artifact URL is built from.
		Base string
		// Development reports whether the development sentinel was requested.
		Development bool

		extension string
	}

	// Resolver resolves requests against an immutable catalog.
	Resolver struct {
		catalog   *catalog.Catalog
		locations Locations
	}
)

// New creates a resolver over cat using the given base locations.
func New(cat *catalog.Catalog, locations Locations) *Resolver {
	if locations.Extension == "" {
		locations.Extension = DefaultExtension
	}
	locations.Release = strings.TrimSuffix(locations.Release, "/")
	locations.Development = strings.TrimSuffix(locations.Development, "/")
	return &Resolver{catalog: cat, locations: locations}
}

// Catalog returns the catalog the resolver consults.
func (r *Resolver) Catalog() *catalog.Catalog { return r.catalog }

// Locations returns the normalized base locations.
func (r *Resolver) Locations() Locations { return r.locations }

// Resolve selects the version of name matching requested. It fails with
// *UnknownModuleError when name is not in the catalog and with
// *NoMatchingVersionError when no published version has requested as a prefix.
func (r *Resolver) Resolve(name catalog.ModuleName, requested string) (Resolution, error) {
	versions, ok := r.catalog.Versions(name)
	if !ok {
		return Resolution{}, &UnknownModuleError{Name: name, Suggestions: r.catalog.Suggest(name)}
	}

	if requested == Development {
		return Resolution{
			Name:        name,
			Base:        r.locations.Development,
			Development: true,
			extension:   r.locations.Extension,
		}, nil
	}

	match, found := MatchPrefix(versions, requested)
	if !found {
		return Resolution{}, &NoMatchingVersionError{Name: name, Requested: requested, Available: versions}
	}

	return Resolution{
		Name:      name,
		Version:   match,
		Path:      "/" + string(match),
		Base:      r.locations.Release,
		extension: r.locations.Extension,
	}, nil
}

// MatchPrefix scans versions in order and returns the last one that starts
// with prefix. Later entries overwrite earlier matches, so with versions in
// release order the newest match wins.
func MatchPrefix(versions []catalog.Version, prefix string) (catalog.Version, bool) {
	var (
		match catalog.Version
		found bool
	)
	for _, v := range versions {
		if strings.HasPrefix(string(v), prefix) {
			match, found = v, true
		}
	}
	return match, found
}

// URL builds the artifact location:
//
//	{base}/{name}{path}/src/{name}_packed{ext}   (compressed, the default)
//	{base}/{name}{path}/src/{name}{ext}          (uncompressed)
func (r Resolution) URL(uncompressed bool) string {
	ext := r.extension
	if ext == "" {
		ext = DefaultExtension
	}
	file := string(r.Name)
	if !uncompressed {
		file += packedSuffix
	}

	var sb strings.Builder
	sb.WriteString(r.Base)
	sb.WriteByte('/')
	sb.WriteString(string(r.Name))
	sb.WriteString(r.Path)
	sb.WriteString("/src/")
	sb.WriteString(file)
	sb.WriteString(ext)
	return sb.String()
}

// String returns "name@version" or "name@dev".
func (r Resolution) String() string {
	if r.Development {
		return string(r.Name) + "@" + Development
	}
	return string(r.Name) + "@" + string(r.Version)
}
