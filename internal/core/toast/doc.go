// Package toast implements the toast lifecycle manager: the in-memory
// collection of transient notifications, their pause/resume/auto-dismiss
// timers and the hover-driven expand/collapse of the stack.
//
// A Manager is single-threaded. Every method, and every callback delivered
// by its schedule.Scheduler, must run on the same goroutine. Operations on
// ids that are no longer present are silent no-ops so that a late timer can
// never corrupt the collection.
//
// Lifecycle of a toast:
//
//	entering --(settle delay)--> active --(timeout | dismiss)--> leaving --(exit delay)--> removed
//
// The countdown of a timed toast starts when it becomes active; the settle
// delay is not counted against its duration.
package toast
