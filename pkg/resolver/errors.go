// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
)

var (
	// ErrUnknownModule is the sentinel error wrapped by UnknownModuleError.
	ErrUnknownModule = errors.New("unknown module")
	// ErrNoMatchingVersion is the sentinel error wrapped by NoMatchingVersionError.
	ErrNoMatchingVersion = errors.New("no matching version")
)

type (
	// UnknownModuleError is returned when the requested module is not in the catalog.
	UnknownModuleError struct {
		Name catalog.ModuleName
		// Suggestions lists similarly named catalog modules (may be empty).
		Suggestions []catalog.ModuleName
	}

	// NoMatchingVersionError is returned when no published version starts
	// with the requested prefix.
	NoMatchingVersionError struct {
		Name      catalog.ModuleName
		Requested string
		Available []catalog.Version
	}
)

// Error implements the error interface.
func (e *UnknownModuleError) Error() string {
	msg := fmt.Sprintf("unknown module %q", e.Name)
	if len(e.Suggestions) > 0 {
		names := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			names[i] = string(s)
		}
		msg += " (did you mean " + strings.Join(names, ", ") + "?)"
	}
	return msg
}

// Unwrap returns ErrUnknownModule for errors.Is() compatibility.
func (e *UnknownModuleError) Unwrap() error { return ErrUnknownModule }

// Error implements the error interface.
func (e *NoMatchingVersionError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("module %s: no version matches %q (no versions published)", e.Name, e.Requested)
	}
	vs := make([]string, len(e.Available))
	for i, v := range e.Available {
		vs[i] = string(v)
	}
	return fmt.Sprintf("module %s: no version matches %q (published: %s)", e.Name, e.Requested, strings.Join(vs, ", "))
}

// Unwrap returns ErrNoMatchingVersion for errors.Is() compatibility.
func (e *NoMatchingVersionError) Unwrap() error { return ErrNoMatchingVersion }
