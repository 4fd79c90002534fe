package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/flare/internal/core/schedule"
	"github.com/colonyops/flare/internal/core/toast"
)

const toastTickInterval = 100 * time.Millisecond

// cmdSource is implemented by schedulers that turn timers into commands.
type cmdSource interface {
	Cmds() tea.Cmd
	Fire(id uint64) bool
}

// ToastController binds a toast manager to the Bubble Tea loop. It owns
// the scheduler the manager runs on, routes keys into it and keeps the
// latest snapshot for rendering.
type ToastController struct {
	manager *toast.Manager
	sched   schedule.Scheduler
	cmds    cmdSource
	keys    *keyRouter

	snapshot    toast.Snapshot
	unsubscribe func()
	ticking     bool
}

// NewToastController creates a controller. A nil sched uses a tea-backed
// scheduler.
func NewToastController(sched schedule.Scheduler, opts toast.Options) *ToastController {
	if sched == nil {
		sched = newTeaScheduler(nil)
	}

	c := &ToastController{
		sched: sched,
		keys:  newKeyRouter(),
	}
	if cs, ok := sched.(cmdSource); ok {
		c.cmds = cs
	}

	c.manager = toast.NewManager(sched, opts)
	c.manager.AttachKeys(c.keys)
	c.snapshot = c.manager.Snapshot()
	c.unsubscribe = c.manager.Subscribe(func(s toast.Snapshot) {
		c.snapshot = s
	})
	return c
}

// Manager exposes the underlying toast manager.
func (c *ToastController) Manager() *toast.Manager {
	return c.manager
}

// Push shows a toast and returns its id.
func (c *ToastController) Push(req toast.Request) int64 {
	return c.manager.Show(req)
}

// HandleKey routes a key press to the manager.
func (c *ToastController) HandleKey(ev toast.KeyEvent) toast.KeyResult {
	return c.keys.Route(ev)
}

// Fire runs the scheduled callback behind a timerFiredMsg.
func (c *ToastController) Fire(id uint64) {
	if c.cmds != nil {
		c.cmds.Fire(id)
	}
}

// Cmds returns the timer commands queued by the last manager calls.
func (c *ToastController) Cmds() tea.Cmd {
	if c.cmds == nil {
		return nil
	}
	return c.cmds.Cmds()
}

// Snapshot returns the latest published state.
func (c *ToastController) Snapshot() toast.Snapshot {
	return c.snapshot
}

// HasToasts returns true if the collection is not empty.
func (c *ToastController) HasToasts() bool {
	return c.manager.Len() > 0
}

// Counting reports whether any visible toast has a running countdown, in
// which case the progress bars need redrawing.
func (c *ToastController) Counting() bool {
	for _, t := range c.snapshot.Visible {
		if t.State == toast.StateActive && !t.Paused && !t.Persistent() {
			return true
		}
	}
	return false
}

// Now returns the scheduler clock.
func (c *ToastController) Now() time.Time {
	return c.sched.Now()
}

// Ticking returns whether the frame timer is currently running.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

// SetTicking sets the frame timer state.
func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}

// Close cancels every pending toast timer.
func (c *ToastController) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.manager.Close()
}
