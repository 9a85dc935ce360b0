// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"slices"
	"sync"
	"testing"
	"time"
)

func TestFakeClock_Now(t *testing.T) {
	t.Parallel()

	initial := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(initial)
	if got := clock.Now(); !got.Equal(initial) {
		t.Errorf("Now() = %v, want %v", got, initial)
	}

	clock = NewFakeClock(time.Time{})
	if got, want := clock.Now(), time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("Now() with zero initial = %v, want %v", got, want)
	}
}

func TestFakeClock_AdvanceAndSince(t *testing.T) {
	t.Parallel()

	initial := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(initial)

	clock.Advance(15 * time.Minute)
	if got := clock.Since(initial); got != 15*time.Minute {
		t.Errorf("Since() = %v, want 15m", got)
	}
	clock.Set(initial.Add(time.Hour))
	if got := clock.Since(initial); got != time.Hour {
		t.Errorf("Since() after Set = %v, want 1h", got)
	}
}

func TestFakeClock_AfterFunc_FiresInOrder(t *testing.T) {
	t.Parallel()

	clock := NewFakeClock(time.Time{})
	var fired []string
	clock.AfterFunc(15*time.Minute, func() { fired = append(fired, "c") })
	clock.AfterFunc(5*time.Minute, func() { fired = append(fired, "a") })
	clock.AfterFunc(10*time.Minute, func() { fired = append(fired, "b") })

	clock.Advance(7 * time.Minute)
	if !slices.Equal(fired, []string{"a"}) {
		t.Fatalf("after 7m fired = %v, want [a]", fired)
	}
	if clock.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", clock.Pending())
	}

	clock.Advance(time.Hour)
	if !slices.Equal(fired, []string{"a", "b", "c"}) {
		t.Errorf("fired = %v, want [a b c]", fired)
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", clock.Pending())
	}
}

func TestFakeClock_AfterFunc_Stop(t *testing.T) {
	t.Parallel()

	clock := NewFakeClock(time.Time{})
	fired := false
	stop := clock.AfterFunc(time.Minute, func() { fired = true })

	if !stop() {
		t.Error("first stop() should report the timer was pending")
	}
	if stop() {
		t.Error("second stop() should report false")
	}
	clock.Advance(time.Hour)
	if fired {
		t.Error("stopped timer fired")
	}

	stop = clock.AfterFunc(time.Minute, func() {})
	clock.Advance(time.Minute)
	if stop() {
		t.Error("stop() after firing should report false")
	}
}

func TestFakeClock_AfterFunc_ZeroWaitsForAdvance(t *testing.T) {
	t.Parallel()

	clock := NewFakeClock(time.Time{})
	fired := false
	clock.AfterFunc(0, func() { fired = true })
	if fired {
		t.Fatal("AfterFunc(0) must not fire synchronously")
	}
	clock.Advance(0)
	if !fired {
		t.Error("AfterFunc(0) should fire on the next Advance")
	}
}

func TestFakeClock_CallbackMaySchedule(t *testing.T) {
	t.Parallel()

	clock := NewFakeClock(time.Time{})
	count := 0
	clock.AfterFunc(time.Second, func() {
		count++
		clock.AfterFunc(time.Second, func() { count++ })
	})

	clock.Advance(time.Second)
	if count != 1 || clock.Pending() != 1 {
		t.Fatalf("count = %d pending = %d, want 1 and 1", count, clock.Pending())
	}
	clock.Advance(time.Second)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestFakeClock_Concurrent(t *testing.T) {
	t.Parallel()

	clock := NewFakeClock(time.Time{})
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fired int
	)
	for range 10 {
		wg.Go(func() {
			for range 10 {
				clock.AfterFunc(time.Millisecond, func() {
					mu.Lock()
					fired++
					mu.Unlock()
				})
				_ = clock.Now()
			}
		})
	}
	wg.Wait()

	clock.Advance(time.Second)
	if fired != 100 {
		t.Errorf("fired = %d, want 100", fired)
	}
}
