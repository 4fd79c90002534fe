// Package schedule provides the timer abstraction the toast manager runs on.
//
// Implementations must deliver callbacks on the same goroutine that owns the
// state they touch, so a callback never interleaves with another mutation.
// A stopped timer must never run its callback.
package schedule

import "time"

// Timer is a handle to a pending callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped the
	// timer, false if it already fired or was stopped.
	Stop() bool
}

// Scheduler schedules callbacks and reports the current time.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}
