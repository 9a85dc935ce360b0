// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"slices"
	"sync"
	"time"
)

type (
	// FakeClock is a manually driven clock for timeout tests. Time only moves
	// when Advance or Set is called, and timers scheduled with AfterFunc fire
	// synchronously from that call in deadline order.
	//
	// It satisfies loader.Clock.
	FakeClock struct {
		mu      sync.Mutex
		current time.Time
		seq     uint64
		timers  []*fakeTimer
	}

	fakeTimer struct {
		id     uint64
		target time.Time
		fn     func()
	}
)

// NewFakeClock creates a FakeClock initialized to the given time.
// If initial is zero, a fixed reference time is used.
func NewFakeClock(initial time.Time) *FakeClock {
	if initial.IsZero() {
		initial = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &FakeClock{current: initial}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Since returns the fake time elapsed since t.
func (c *FakeClock) Since(t time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Sub(t)
}

// AfterFunc schedules fn to run once the clock reaches now+d. The returned
// stop function cancels the timer and reports whether it was still pending.
// A non-positive d still waits for the next Advance or Set.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) (stop func() bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &fakeTimer{id: c.seq, target: c.current.Add(d), fn: fn}
	c.timers = append(c.timers, t)

	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		i := slices.Index(c.timers, t)
		if i < 0 {
			return false
		}
		c.timers = slices.Delete(c.timers, i, i+1)
		return true
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Advance moves the fake time forward by d and fires every due timer.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	due := c.takeDue()
	c.mu.Unlock()

	fire(due)
}

// Set moves the fake time to t and fires every due timer.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	due := c.takeDue()
	c.mu.Unlock()

	fire(due)
}

// takeDue removes and returns the timers whose target has been reached,
// earliest first. Must be called with mu held.
func (c *FakeClock) takeDue() []*fakeTimer {
	var due []*fakeTimer
	remaining := c.timers[:0]
	for _, t := range c.timers {
		if c.current.Before(t.target) {
			remaining = append(remaining, t)
			continue
		}
		due = append(due, t)
	}
	c.timers = remaining
	slices.SortFunc(due, func(a, b *fakeTimer) int {
		if cmp := a.target.Compare(b.target); cmp != 0 {
			return cmp
		}
		return int(a.id) - int(b.id)
	})
	return due
}

// fire runs timer callbacks without holding the clock lock, so a callback
// may schedule or stop other timers.
func fire(due []*fakeTimer) {
	for _, t := range due {
		t.fn()
	}
}
