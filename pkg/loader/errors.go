// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"errors"
	"fmt"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
)

var (
	// ErrNoFinalCallback is returned by Load when no final callback is armed.
	ErrNoFinalCallback = errors.New("load issued before a final callback was set")
	// ErrBurstInProgress is returned by SetFinalCallback while loads are in flight.
	ErrBurstInProgress = errors.New("final callback cannot change while loads are in flight")
	// ErrNilCallback is returned by SetFinalCallback for a nil callback.
	ErrNilCallback = errors.New("final callback must not be nil")
	// ErrAlreadyPending is returned by Load for a module already pending in the burst.
	ErrAlreadyPending = errors.New("module is already pending in this burst")
	// ErrNotPending is returned when a module reports but no load is waiting for it.
	ErrNotPending = errors.New("module is not pending")

	// ErrFetchFailed is the sentinel error wrapped by FetchError.
	ErrFetchFailed = errors.New("module load failed")
	// ErrLoadTimeout is the cause of loads that did not report in time.
	ErrLoadTimeout = errors.New("module load timed out")
	// ErrBurstCancelled is the cause of loads abandoned with their burst.
	ErrBurstCancelled = errors.New("burst cancelled")
)

// FetchError describes a load that did not complete. It matches both
// ErrFetchFailed and its Cause under errors.Is.
type FetchError struct {
	Name  catalog.ModuleName
	URL   string
	Cause error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("load %s: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("load %s from %s: %v", e.Name, e.URL, e.Cause)
}

// Unwrap returns ErrFetchFailed and the cause.
func (e *FetchError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Cause}
}
