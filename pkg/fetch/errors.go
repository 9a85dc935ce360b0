// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedScheme is returned for URLs no Transport handles.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	// ErrUnsupportedArtifact is returned for artifacts no Evaluator handles.
	ErrUnsupportedArtifact = errors.New("unsupported artifact type")
	// ErrArtifactTooLarge is returned when an artifact exceeds the size limit.
	ErrArtifactTooLarge = errors.New("artifact too large")
	// ErrInvalidArtifact is returned when an artifact does not declare a module.
	ErrInvalidArtifact = errors.New("invalid module artifact")
	// ErrCommandNotAllowed is returned when a shell module runs a command
	// other than the module builtins.
	ErrCommandNotAllowed = errors.New("command not allowed in module scripts")
	// ErrHTTPStatus is the sentinel error wrapped by HTTPStatusError.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

// HTTPStatusError is returned when the artifact server answers with a
// non-200 status.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
}

// Unwrap returns ErrHTTPStatus for errors.Is() compatibility.
func (e *HTTPStatusError) Unwrap() error { return ErrHTTPStatus }
