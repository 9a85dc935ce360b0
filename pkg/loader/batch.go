// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"
	"sync"
)

type (
	// Batch holds fetches back until Release, so every load of a burst can be
	// issued before the first one completes and ends the burst early. A new
	// Batch is held.
	Batch struct {
		next Fetcher

		mu       sync.Mutex
		held     []heldFetch
		released bool
	}

	heldFetch struct {
		ctx  context.Context
		req  FetchRequest
		host Host
	}
)

var _ Fetcher = (*Batch)(nil)

// NewBatch wraps next.
func NewBatch(next Fetcher) *Batch {
	return &Batch{next: next}
}

// Fetch forwards to the wrapped fetcher once the batch is released.
func (b *Batch) Fetch(ctx context.Context, req FetchRequest, host Host) {
	b.mu.Lock()
	if !b.released {
		b.held = append(b.held, heldFetch{ctx: ctx, req: req, host: host})
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	b.next.Fetch(ctx, req, host)
}

// Release starts the held fetches in the order they were issued and lets
// later ones through directly. It returns how many were held.
func (b *Batch) Release() int {
	b.mu.Lock()
	held := b.held
	b.held = nil
	b.released = true
	b.mu.Unlock()

	for _, h := range held {
		b.next.Fetch(h.ctx, h.req, h.host)
	}
	return len(held)
}

// Hold makes later fetches wait for the next Release.
func (b *Batch) Hold() {
	b.mu.Lock()
	b.released = false
	b.mu.Unlock()
}

// Held returns the number of fetches waiting for Release.
func (b *Batch) Held() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.held)
}
