// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/namespace"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/resolver"
)

type (
	// Coordinator runs load bursts. It is safe for concurrent use, and its
	// callbacks run without internal locks held, so they may call back into
	// the coordinator (including arming the next burst from a final callback).
	Coordinator struct {
		// Immutable after New
		resolver *resolver.Resolver
		fetcher  Fetcher
		registry *namespace.Registry
		clock    Clock
		logger   *slog.Logger
		timeout  time.Duration

		mu    sync.Mutex
		state SessionState
		burst *burst
	}

	// burst is the session state between arming and the final callback.
	burst struct {
		id      uuid.UUID
		final   FinalCallback
		ctx     context.Context
		cancel  context.CancelCauseFunc
		unwatch func() bool
		started time.Time
		pending map[catalog.ModuleName]*pendingLoad
		results []Result
		cause   error
	}

	pendingLoad struct {
		req      FetchRequest
		callback ModuleCallback
		cancel   context.CancelCauseFunc
		// unwatch detaches the fetch context from the caller's Load context.
		unwatch func() bool
		stop    func() bool
		started time.Time
		// claimed is set by the first report; later reports are rejected
		// while the load still counts as outstanding.
		claimed bool
	}
)

// New creates a coordinator that resolves modules with res and loads them
// with fetcher.
func New(res *resolver.Resolver, fetcher Fetcher, opts Options) *Coordinator {
	opts = opts.withDefaults()
	return &Coordinator{
		resolver: res,
		fetcher:  fetcher,
		registry: opts.Registry,
		clock:    opts.Clock,
		logger:   opts.Logger,
		timeout:  opts.LoadTimeout,
	}
}

// SetFinalCallback arms a new burst with cb. While the burst is only armed,
// calling it again replaces the callback; once a load has been accepted it
// fails with ErrBurstInProgress until the burst completes.
//
// ctx bounds the burst: when it is done, every pending load fails with
// ErrBurstCancelled and the final callback runs with the context's cause.
func (c *Coordinator) SetFinalCallback(ctx context.Context, cb FinalCallback) error {
	if cb == nil {
		return ErrNilCallback
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateLoading:
		return ErrBurstInProgress
	case StateArmed:
		c.burst.release()
	}

	b := &burst{
		id:      uuid.New(),
		final:   cb,
		started: c.clock.Now(),
		pending: make(map[catalog.ModuleName]*pendingLoad),
	}
	b.ctx, b.cancel = context.WithCancelCause(ctx)
	b.unwatch = context.AfterFunc(b.ctx, func() {
		c.cancelBurst(b, context.Cause(b.ctx))
	})
	c.burst = b
	c.state = StateArmed

	c.logger.Debug("burst armed", "burst", b.id)
	return nil
}

// Load resolves name at version and starts fetching it. Resolution errors
// (resolver.ErrUnknownModule, resolver.ErrNoMatchingVersion) are returned
// immediately and leave the burst untouched; otherwise the module counts as
// outstanding until it reports, fails or times out.
//
// Load also fails without touching the burst when name is already pending
// in it (ErrAlreadyPending) and when the burst is being cancelled
// (ErrBurstCancelled, wrapping the cancel cause).
//
// The fetch context ends when either ctx or the burst context is done.
func (c *Coordinator) Load(ctx context.Context, name catalog.ModuleName, version string, opts ...LoadOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	c.mu.Lock()
	if c.state != StateArmed && c.state != StateLoading {
		c.mu.Unlock()
		return fmt.Errorf("load %s: %w", name, ErrNoFinalCallback)
	}
	if cause := c.burst.cancelCause(); cause != nil {
		c.mu.Unlock()
		return fmt.Errorf("load %s: %w", name, cancelFailure(cause))
	}
	res, err := c.resolver.Resolve(name, version)
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("module not resolved", "module", name, "version", version, "error", err)
		return err
	}
	b := c.burst
	if _, dup := b.pending[name]; dup {
		c.mu.Unlock()
		return fmt.Errorf("load %s: %w", name, ErrAlreadyPending)
	}

	fctx, cancel := context.WithCancelCause(b.ctx)
	unwatch := context.AfterFunc(ctx, func() { cancel(context.Cause(ctx)) })
	p := &pendingLoad{
		req: FetchRequest{
			Name:         name,
			URL:          res.URL(o.uncompressed),
			Resolution:   res,
			Uncompressed: o.uncompressed,
			BurstID:      b.id,
		},
		callback: o.callback,
		cancel:   cancel,
		unwatch:  unwatch,
		started:  c.clock.Now(),
	}
	if timeout := c.loadTimeout(o.timeout); timeout > 0 {
		p.stop = c.clock.AfterFunc(timeout, func() {
			_ = c.finish(name, p, nil, fmt.Errorf("%w after %s", ErrLoadTimeout, timeout))
		})
	}
	b.pending[name] = p
	c.state = StateLoading
	outstanding := len(b.pending)
	c.mu.Unlock()

	c.logger.Debug("module requested",
		"burst", b.id, "module", name, "resolved", res.String(), "url", p.req.URL, "outstanding", outstanding)
	c.fetcher.Fetch(fctx, p.req, c)
	return nil
}

// NotifyLoaded merges exports under name, runs the module callback and
// retires the load. If the exports cannot be merged the load is retired as
// failed and the merge error is returned.
func (c *Coordinator) NotifyLoaded(name catalog.ModuleName, exports map[string]any) error {
	return c.finish(name, nil, exports, nil)
}

// NotifyFailed retires the load of name as failed with cause.
func (c *Coordinator) NotifyFailed(name catalog.ModuleName, cause error) error {
	if cause == nil {
		cause = ErrFetchFailed
	}
	return c.finish(name, nil, nil, cause)
}

// Cancel abandons the current burst. Pending loads fail with
// ErrBurstCancelled and the final callback runs with cause. It is a no-op
// when nothing is armed.
func (c *Coordinator) Cancel(cause error) {
	c.cancelBurst(nil, cause)
}

// Outstanding returns the number of loads that have not yet been retired.
func (c *Coordinator) Outstanding() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.burst == nil {
		return 0
	}
	return len(c.burst.pending)
}

// State returns the current session state.
func (c *Coordinator) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Namespace returns the registry that receives module exports.
func (c *Coordinator) Namespace() *namespace.Registry { return c.registry }

// Lookup returns the value at a dotted namespace path.
func (c *Coordinator) Lookup(path string) (any, error) {
	return c.registry.Lookup(path)
}

// finish retires a pending load. When match is non-nil only that exact load
// may be retired, so a stale timer cannot retire a later load of the same
// module. A nil cause means success with exports.
func (c *Coordinator) finish(name catalog.ModuleName, match *pendingLoad, exports map[string]any, cause error) error {
	c.mu.Lock()
	b := c.burst
	var p *pendingLoad
	if b != nil {
		p = b.pending[name]
	}
	if p == nil || p.claimed || (match != nil && p != match) {
		c.mu.Unlock()
		if match == nil {
			c.logger.Warn("dropping report for module that is not pending", "module", name)
		}
		return fmt.Errorf("%s: %w", name, ErrNotPending)
	}
	p.claimed = true
	c.mu.Unlock()

	if p.stop != nil {
		p.stop()
	}
	p.unwatch()

	result := Result{
		Name:       name,
		Resolution: p.req.Resolution,
		URL:        p.req.URL,
		Duration:   c.clock.Now().Sub(p.started),
	}
	var mergeErr error
	if cause == nil {
		if mergeErr = c.registry.MergeExports(string(name), exports); mergeErr != nil {
			cause = mergeErr
		} else {
			result.Exports = exports
		}
	}
	if cause != nil {
		result.Err = &FetchError{Name: name, URL: p.req.URL, Cause: cause}
		p.cancel(cause)
		c.logger.Warn("module failed", "burst", b.id, "module", name, "url", p.req.URL, "error", cause)
	} else {
		p.cancel(nil)
		c.logger.Info("module loaded", "burst", b.id, "module", name, "resolved", p.req.Resolution.String(), "duration", result.Duration)
	}

	if p.callback != nil {
		p.callback(result)
	}

	c.mu.Lock()
	delete(b.pending, name)
	b.results = append(b.results, result)
	if len(b.pending) > 0 {
		c.mu.Unlock()
		return mergeErr
	}
	c.state = StateDraining
	c.burst = nil
	c.mu.Unlock()

	c.complete(b)
	return mergeErr
}

// cancelBurst abandons target, or the current burst when target is nil.
func (c *Coordinator) cancelBurst(target *burst, cause error) {
	if cause == nil {
		cause = ErrBurstCancelled
	}

	c.mu.Lock()
	b := c.burst
	if b == nil || (target != nil && b != target) {
		c.mu.Unlock()
		return
	}
	if b.cause == nil {
		b.cause = cause
	}
	if c.state == StateArmed {
		c.state = StateDraining
		c.burst = nil
		c.mu.Unlock()
		c.complete(b)
		return
	}
	var pending []*pendingLoad
	for _, p := range b.pending {
		if !p.claimed {
			pending = append(pending, p)
		}
	}
	c.mu.Unlock()

	c.logger.Info("cancelling burst", "burst", b.id, "pending", len(pending), "cause", cause)

	failure := cancelFailure(cause)
	slices.SortFunc(pending, func(x, y *pendingLoad) int {
		return strings.Compare(string(x.req.Name), string(y.req.Name))
	})
	for _, p := range pending {
		_ = c.finish(p.req.Name, p, nil, failure)
	}
}

// complete runs the final callback of a burst that has been detached from
// the coordinator, then returns to idle unless the callback armed a new burst.
func (c *Coordinator) complete(b *burst) {
	b.release()
	report := BurstReport{
		ID:       b.id,
		Results:  b.results,
		Cause:    b.cause,
		Duration: c.clock.Now().Sub(b.started),
	}
	c.logger.Info("burst complete",
		"burst", b.id, "loaded", len(report.Loaded()), "failed", len(report.Failed()), "duration", report.Duration)

	b.final(report)

	c.mu.Lock()
	if c.state == StateDraining {
		c.state = StateIdle
	}
	c.mu.Unlock()
}

func (c *Coordinator) loadTimeout(override time.Duration) time.Duration {
	if override != 0 {
		return override
	}
	return c.timeout
}

// cancelFailure is the error a load fails with when its burst is cancelled
// for cause.
func cancelFailure(cause error) error {
	if errors.Is(cause, ErrBurstCancelled) {
		return cause
	}
	return fmt.Errorf("%w: %w", ErrBurstCancelled, cause)
}

// cancelCause reports why the burst is being abandoned, or nil while it is
// live. The context is checked too, since its cause is recorded by a
// callback that may not have run yet.
func (b *burst) cancelCause() error {
	if b.cause != nil {
		return b.cause
	}
	if b.ctx.Err() != nil {
		return context.Cause(b.ctx)
	}
	return nil
}

// release stops watching the burst context and cancels it, which also
// cancels any fetch still running.
func (b *burst) release() {
	b.unwatch()
	b.cancel(nil)
}
