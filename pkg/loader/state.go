// SPDX-License-Identifier: MPL-2.0

package loader

const (
	// StateIdle means no burst is armed. Load fails until SetFinalCallback.
	StateIdle SessionState = iota
	// StateArmed means a final callback is set and no load has been accepted yet.
	StateArmed
	// StateLoading means at least one load is outstanding.
	StateLoading
	// StateDraining means the last load finished and the final callback is running.
	// The callback may arm the next burst from this state.
	StateDraining
)

// SessionState is the lifecycle state of the coordinator's current burst.
type SessionState int32

// String returns a human-readable representation of the state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateLoading:
		return "loading"
	case StateDraining:
		return "draining"
	default:
		return "unknown"
	}
}
