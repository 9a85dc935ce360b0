// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/loader"
)

type (
	// Module is what an evaluated artifact declares about itself.
	Module struct {
		Name    catalog.ModuleName
		Exports map[string]any
	}

	// Evaluator turns artifact bytes into a module declaration.
	Evaluator interface {
		Evaluate(ctx context.Context, req loader.FetchRequest, data []byte) (Module, error)
	}

	// Options configures a Fetcher. Zero fields take defaults.
	Options struct {
		// HTTPTimeout bounds a single download (default DefaultHTTPTimeout).
		HTTPTimeout time.Duration
		// MaxBytes bounds artifact size (default DefaultMaxBytes).
		MaxBytes int64
		// Logger receives fetch events (default slog.Default()).
		Logger *slog.Logger
	}

	// Fetcher loads artifacts asynchronously. Transports are keyed by URL
	// scheme and evaluators by file extension; both registries must be
	// complete before the first Fetch.
	Fetcher struct {
		transports map[string]Transport
		evaluators map[string]Evaluator
		logger     *slog.Logger
		wg         sync.WaitGroup
	}
)

var _ loader.Fetcher = (*Fetcher)(nil)

// New creates a Fetcher that understands http, https and file URLs (plain
// paths count as file URLs) and ".cue" and ".sh" artifacts.
func New(opts Options) *Fetcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	httpT := NewHTTPTransport(opts.HTTPTimeout, opts.MaxBytes)
	fileT := &FileTransport{MaxBytes: opts.MaxBytes}

	f := &Fetcher{
		transports: make(map[string]Transport),
		evaluators: make(map[string]Evaluator),
		logger:     logger,
	}
	f.RegisterTransport("http", httpT)
	f.RegisterTransport("https", httpT)
	f.RegisterTransport("file", fileT)
	f.RegisterTransport("", fileT)
	f.RegisterEvaluator(".cue", CUEEvaluator{MaxBytes: opts.MaxBytes})
	f.RegisterEvaluator(".sh", ShellEvaluator{})
	return f
}

// RegisterTransport serves URLs with the given scheme through t.
func (f *Fetcher) RegisterTransport(scheme string, t Transport) {
	f.transports[strings.ToLower(scheme)] = t
}

// RegisterEvaluator evaluates artifacts with the given extension through e.
func (f *Fetcher) RegisterEvaluator(ext string, e Evaluator) {
	f.evaluators[strings.ToLower(ext)] = e
}

// Fetch loads req on a new goroutine and reports the outcome to host.
func (f *Fetcher) Fetch(ctx context.Context, req loader.FetchRequest, host loader.Host) {
	f.wg.Go(func() {
		f.run(ctx, req, host)
	})
}

// Wait blocks until every fetch started so far has reported.
func (f *Fetcher) Wait() {
	f.wg.Wait()
}

// Load retrieves and evaluates req synchronously without reporting it.
func (f *Fetcher) Load(ctx context.Context, req loader.FetchRequest) (Module, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return Module{}, fmt.Errorf("parse %s: %w", req.URL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	// Single-letter schemes are Windows drive letters.
	if len(scheme) == 1 {
		scheme = ""
	}
	t, ok := f.transports[scheme]
	if !ok {
		return Module{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	ext := path.Ext(u.Path)
	if scheme == "" {
		ext = filepath.Ext(req.URL)
	}
	e, ok := f.evaluators[strings.ToLower(ext)]
	if !ok {
		return Module{}, fmt.Errorf("%w: %q", ErrUnsupportedArtifact, ext)
	}

	data, err := t.Get(ctx, req.URL)
	if err != nil {
		return Module{}, err
	}
	return e.Evaluate(ctx, req, data)
}

func (f *Fetcher) run(ctx context.Context, req loader.FetchRequest, host loader.Host) {
	start := time.Now()
	mod, err := f.Load(ctx, req)
	if err != nil {
		f.logger.Debug("fetch failed", "module", req.Name, "url", req.URL, "error", err)
		_ = host.NotifyFailed(req.Name, err)
		return
	}
	if mod.Name != req.Name {
		f.logger.Warn("artifact declared a different module", "requested", req.Name, "declared", mod.Name, "url", req.URL)
	}
	f.logger.Debug("artifact evaluated", "module", mod.Name, "url", req.URL, "exports", len(mod.Exports), "duration", time.Since(start))

	err = host.NotifyLoaded(mod.Name, mod.Exports)
	// A report under a foreign name leaves the requested load pending; any
	// other rejection has already retired it.
	if err != nil && mod.Name != req.Name && errors.Is(err, loader.ErrNotPending) {
		_ = host.NotifyFailed(req.Name, fmt.Errorf("module %s rejected its report: %w", mod.Name, err))
	}
}
