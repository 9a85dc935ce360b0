// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/resolver"
)

// immediateFetcher reports every module as loaded before Fetch returns.
var immediateFetcher = FetcherFunc(func(_ context.Context, req FetchRequest, host Host) {
	_ = host.NotifyLoaded(req.Name, map[string]any{"version": string(req.Resolution.Version)})
})

func newImmediate(t *testing.T, f Fetcher) *Coordinator {
	t.Helper()
	cat, err := catalog.New(
		catalog.Entry{Name: "a", Versions: []catalog.Version{"1.0"}},
		catalog.Entry{Name: "b", Versions: []catalog.Version{"1.0"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	res := resolver.New(cat, resolver.Locations{Release: "https://r", Development: "https://d"})
	return New(res, f, Options{Logger: slog.New(slog.DiscardHandler)})
}

func TestBatch_WithoutBatchBurstEndsEarly(t *testing.T) {
	t.Parallel()

	c := newImmediate(t, immediateFetcher)
	rec := &finalRecorder{}
	mustArm(t, c, rec.callback)
	mustLoad(t, c, "a", "1")

	if rec.count() != 1 {
		t.Fatalf("final callback fired %d times, want 1 after the only pending load", rec.count())
	}
	if err := c.Load(t.Context(), "b", "1"); !errors.Is(err, ErrNoFinalCallback) {
		t.Errorf("Load after the burst ended: error = %v, want ErrNoFinalCallback", err)
	}
}

func TestBatch_HoldsUntilRelease(t *testing.T) {
	t.Parallel()

	batch := NewBatch(immediateFetcher)
	c := newImmediate(t, batch)
	rec := &finalRecorder{}

	for burst := range 2 {
		if burst > 0 {
			batch.Hold()
		}
		mustArm(t, c, rec.callback)
		mustLoad(t, c, "a", "1")
		mustLoad(t, c, "b", "1")

		if batch.Held() != 2 || c.Outstanding() != 2 {
			t.Fatalf("burst %d: held = %d outstanding = %d, want 2 and 2", burst, batch.Held(), c.Outstanding())
		}
		if rec.count() != burst {
			t.Fatalf("burst %d: final callback fired before Release", burst)
		}
		if n := batch.Release(); n != 2 {
			t.Errorf("Release() = %d, want 2", n)
		}
		if rec.count() != burst+1 || len(rec.last().Loaded()) != 2 {
			t.Fatalf("burst %d: final callbacks = %d, report %+v", burst, rec.count(), rec.last())
		}
	}

	// Released batches pass fetches straight through.
	mustArm(t, c, rec.callback)
	mustLoad(t, c, "a", "1")
	if batch.Held() != 0 || rec.count() != 3 {
		t.Errorf("released batch held = %d, final callbacks = %d", batch.Held(), rec.count())
	}
}
