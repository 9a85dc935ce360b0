// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"log/slog"
	"time"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/namespace"
)

// DefaultLoadTimeout bounds how long a load may stay outstanding.
const DefaultLoadTimeout = 30 * time.Second

type (
	// Options configures a Coordinator. Zero fields take defaults.
	Options struct {
		// Registry receives every module's exports (default: a new registry).
		Registry *namespace.Registry
		// Clock drives load timeouts (default: the system clock).
		Clock Clock
		// Logger receives burst and load events (default: slog.Default()).
		Logger *slog.Logger
		// LoadTimeout applies to loads without their own timeout.
		// Zero means DefaultLoadTimeout; a negative value disables timeouts.
		LoadTimeout time.Duration
	}

	// LoadOption configures a single Load call.
	LoadOption func(*loadOptions)

	loadOptions struct {
		callback     ModuleCallback
		uncompressed bool
		timeout      time.Duration
	}
)

// WithCallback registers cb to run once this module has loaded or failed.
func WithCallback(cb ModuleCallback) LoadOption {
	return func(o *loadOptions) { o.callback = cb }
}

// Uncompressed selects the unpacked artifact. It only changes the URL.
func Uncompressed() LoadOption {
	return func(o *loadOptions) { o.uncompressed = true }
}

// WithTimeout overrides the coordinator's load timeout for this module.
// A negative value disables the timeout.
func WithTimeout(d time.Duration) LoadOption {
	return func(o *loadOptions) { o.timeout = d }
}

func (o Options) withDefaults() Options {
	if o.Registry == nil {
		o.Registry = namespace.New()
	}
	if o.Clock == nil {
		o.Clock = realClock{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.LoadTimeout == 0 {
		o.LoadTimeout = DefaultLoadTimeout
	}
	return o
}
