// SPDX-License-Identifier: MPL-2.0

package loader

import "time"

type (
	// Clock is the time source for load timeouts.
	Clock interface {
		Now() time.Time
		// AfterFunc runs f once d has elapsed. The returned stop function
		// cancels the call and reports whether it was still pending.
		AfterFunc(d time.Duration, f func()) (stop func() bool)
	}

	realClock struct{}
)

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}
