// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/resolver"
)

type (
	// Fetcher retrieves and executes a module. Fetch must return without
	// waiting for the module: the outcome is reported later, from another
	// goroutine, through exactly one call to host.NotifyLoaded or
	// host.NotifyFailed. ctx is cancelled when the load times out or its
	// burst ends.
	Fetcher interface {
		Fetch(ctx context.Context, req FetchRequest, host Host)
	}

	// FetcherFunc adapts a function to the Fetcher interface.
	FetcherFunc func(ctx context.Context, req FetchRequest, host Host)

	// Host is the surface a loaded module reports back to.
	Host interface {
		// NotifyLoaded registers the module's exports under its name.
		NotifyLoaded(name catalog.ModuleName, exports map[string]any) error
		// NotifyFailed reports that the module could not be retrieved or executed.
		NotifyFailed(name catalog.ModuleName, cause error) error
	}

	// FetchRequest is what the coordinator asks a Fetcher to load.
	FetchRequest struct {
		Name         catalog.ModuleName
		URL          string
		Resolution   resolver.Resolution
		Uncompressed bool
		BurstID      uuid.UUID
	}

	// Result is the outcome of one load, passed to its module callback.
	// Exactly one of Exports and Err is meaningful.
	Result struct {
		Name       catalog.ModuleName
		Resolution resolver.Resolution
		URL        string
		Exports    map[string]any
		Err        error
		Duration   time.Duration
	}

	// BurstReport summarizes a finished burst for the final callback.
	BurstReport struct {
		ID uuid.UUID
		// Results holds one entry per accepted load, in completion order.
		Results []Result
		// Cause is set when the burst was cancelled.
		Cause    error
		Duration time.Duration
	}

	// ModuleCallback runs once when its module has loaded or failed.
	ModuleCallback func(Result)

	// FinalCallback runs once when a burst has no outstanding loads left.
	FinalCallback func(BurstReport)
)

// Fetch calls f(ctx, req, host).
func (f FetcherFunc) Fetch(ctx context.Context, req FetchRequest, host Host) {
	f(ctx, req, host)
}

// OK reports whether the load succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Loaded returns the names of the modules that loaded successfully.
func (b BurstReport) Loaded() []catalog.ModuleName {
	var names []catalog.ModuleName
	for _, r := range b.Results {
		if r.OK() {
			names = append(names, r.Name)
		}
	}
	return names
}

// Failed returns the results of the loads that failed.
func (b BurstReport) Failed() []Result {
	var failed []Result
	for _, r := range b.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err joins the errors of all failed loads, or returns nil.
func (b BurstReport) Err() error {
	var errs []error
	for _, r := range b.Failed() {
		errs = append(errs, r.Err)
	}
	return errors.Join(errs...)
}
