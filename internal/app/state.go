package app

import "sync/atomic"

// State tracks the application lifecycle. Transitions move forward
// only: Uninitialized, Starting, Serving, Stopping, Stopped. A startup
// failure goes straight to Stopped without ever reaching Serving.
type State int32

const (
	StateUninitialized State = iota
	StateStarting
	StateServing
	StateStopping
	StateStopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateStarting:
		return "starting"
	case StateServing:
		return "serving"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// stateHolder wraps atomic access so the state can be observed from
// other goroutines (tests, health reporting) without locks.
type stateHolder struct {
	v atomic.Int32
}

func (h *stateHolder) get() State {
	return State(h.v.Load())
}

func (h *stateHolder) set(s State) {
	h.v.Store(int32(s))
}
