// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidModuleName is the sentinel error wrapped by InvalidModuleNameError.
	ErrInvalidModuleName = errors.New("invalid module name")
	// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrDuplicateModule is the sentinel error wrapped by DuplicateModuleError.
	ErrDuplicateModule = errors.New("duplicate module")
	// ErrDuplicateVersion is the sentinel error wrapped by DuplicateVersionError.
	ErrDuplicateVersion = errors.New("duplicate version")

	// moduleNameRegex accepts dot-separated identifiers ("markermanager",
	// "gmaps.util.dragzoom"). Each segment becomes a namespace container.
	moduleNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*(\.[A-Za-z][A-Za-z0-9_-]*)*$`)
)

type (
	// ModuleName is the logical name a module is published and requested under.
	ModuleName string

	// InvalidModuleNameError is returned when a ModuleName is malformed.
	InvalidModuleNameError struct {
		Value ModuleName
	}

	// Version is a published version string, e.g. "1.3". Versions are compared
	// as strings only; no semantic-version ordering is implied.
	Version string

	// InvalidVersionError is returned when a Version is empty or contains
	// characters that cannot appear in a URL path segment.
	InvalidVersionError struct {
		Module ModuleName
		Value  Version
	}

	// DuplicateModuleError is returned when two entries share a module name.
	DuplicateModuleError struct {
		Name ModuleName
	}

	// DuplicateVersionError is returned when an entry lists a version twice.
	DuplicateVersionError struct {
		Module  ModuleName
		Version Version
	}

	// Entry is one catalog row: a module and its versions in release order.
	Entry struct {
		Name     ModuleName `json:"name" yaml:"name" toml:"name"`
		Versions []Version  `json:"versions" yaml:"versions" toml:"versions"`
	}
)

// Error implements the error interface.
func (e *InvalidModuleNameError) Error() string {
	return fmt.Sprintf("invalid module name %q (expected dot-separated identifiers)", e.Value)
}

// Unwrap returns ErrInvalidModuleName for errors.Is() compatibility.
func (e *InvalidModuleNameError) Unwrap() error { return ErrInvalidModuleName }

// Validate returns nil if the name is a dot-separated list of identifiers.
func (n ModuleName) Validate() error {
	if !moduleNameRegex.MatchString(string(n)) {
		return &InvalidModuleNameError{Value: n}
	}
	return nil
}

// String returns the string representation of the ModuleName.
func (n ModuleName) String() string { return string(n) }

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("module %s: invalid version %q", e.Module, e.Value)
}

// Unwrap returns ErrInvalidVersion for errors.Is() compatibility.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }

// Validate returns nil if the version is non-empty and holds no whitespace
// or path separators.
func (v Version) Validate() error {
	if v == "" || strings.ContainsAny(string(v), " \t\r\n/\\?#") {
		return &InvalidVersionError{Value: v}
	}
	return nil
}

// String returns the string representation of the Version.
func (v Version) String() string { return string(v) }

// Error implements the error interface.
func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("module %s is listed more than once", e.Name)
}

// Unwrap returns ErrDuplicateModule for errors.Is() compatibility.
func (e *DuplicateModuleError) Unwrap() error { return ErrDuplicateModule }

// Error implements the error interface.
func (e *DuplicateVersionError) Error() string {
	return fmt.Sprintf("module %s lists version %s more than once", e.Module, e.Version)
}

// Unwrap returns ErrDuplicateVersion for errors.Is() compatibility.
func (e *DuplicateVersionError) Unwrap() error { return ErrDuplicateVersion }

// Validate checks the module name, each version, and version uniqueness.
func (e Entry) Validate() error {
	if err := e.Name.Validate(); err != nil {
		return err
	}
	seen := make(map[Version]struct{}, len(e.Versions))
	for _, v := range e.Versions {
		if err := v.Validate(); err != nil {
			return &InvalidVersionError{Module: e.Name, Value: v}
		}
		if _, dup := seen[v]; dup {
			return &DuplicateVersionError{Module: e.Name, Version: v}
		}
		seen[v] = struct{}{}
	}
	return nil
}
