package toast

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/flare/internal/core/schedule"
)

const (
	// SettleDelay is the entry animation window before a toast becomes active.
	SettleDelay = 300 * time.Millisecond
	// ExitDelay is the exit animation window before a leaving toast is removed.
	ExitDelay = 200 * time.Millisecond
	// CollapseDelay debounces collapsing the stack after the pointer leaves it.
	CollapseDelay = 200 * time.Millisecond

	DefaultDuration   = 5 * time.Second
	DefaultMaxVisible = 3
	DefaultPosition   = PositionBottomEnd
)

// Options configures a Manager.
type Options struct {
	Position   Position      // default anchor for requests without one
	Duration   time.Duration // default duration, 0 = persistent
	MaxVisible int           // tail size shown while collapsed
	Expanded   bool          // initial expanded state
	Lifecycle  Lifecycle
	Logger     zerolog.Logger
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Position:   DefaultPosition,
		Duration:   DefaultDuration,
		MaxVisible: DefaultMaxVisible,
		Logger:     zerolog.Nop(),
	}
}

type entry struct {
	Toast
	// timer is the single pending action of the toast: settle while
	// entering, countdown while active, removal while leaving.
	timer schedule.Timer
}

type observer struct {
	id int
	fn func(Snapshot)
}

// Manager owns the toast collection and every timer attached to it.
type Manager struct {
	sched schedule.Scheduler
	opts  Options
	log   zerolog.Logger

	toasts        []*entry
	expanded      bool
	hovering      bool
	collapseTimer schedule.Timer
	nextID        int64

	observers  []observer
	nextObsID  int
	batchDepth int
	dirty      bool

	detachKeys func()
	closed     bool
}

// NewManager creates a manager scheduling its timers on sched.
func NewManager(sched schedule.Scheduler, opts Options) *Manager {
	if opts.MaxVisible < 1 {
		opts.MaxVisible = DefaultMaxVisible
	}
	if _, ok := ParsePosition(string(opts.Position)); !ok {
		opts.Position = DefaultPosition
	}
	if opts.Duration < 0 {
		opts.Duration = 0
	}

	return &Manager{
		sched:    sched,
		opts:     opts,
		log:      opts.Logger,
		expanded: opts.Expanded,
	}
}

// Options returns the effective options.
func (m *Manager) Options() Options {
	return m.opts
}

// Show appends a new toast in the entering state and returns its id.
// Unknown variants and positions fall back to none and the default anchor.
func (m *Manager) Show(req Request) int64 {
	if m.closed {
		return 0
	}

	variant, ok := ParseVariant(req.Variant)
	if !ok {
		m.log.Debug().Str("variant", req.Variant).Msg("dropping unknown toast variant")
	}

	position := m.opts.Position
	if req.Position != "" {
		if p, ok := ParsePosition(req.Position); ok {
			position = p
		} else {
			m.log.Debug().Str("position", req.Position).Msg("dropping unknown toast position")
		}
	}

	duration := m.opts.Duration
	if req.Duration != nil {
		duration = max(0, *req.Duration)
	}

	m.nextID++
	e := &entry{Toast: Toast{
		ID:        m.nextID,
		Text:      req.Text,
		Heading:   req.Heading,
		Variant:   variant,
		Position:  position,
		Duration:  duration,
		Remaining: duration,
		State:     StateEntering,
		CreatedAt: m.sched.Now(),
	}}

	m.toasts = append(m.toasts, e)

	id := e.ID
	m.reschedule(e, SettleDelay, func() { m.settle(id) })

	m.log.Debug().
		Int64("id", id).
		Str("variant", string(variant)).
		Str("position", string(position)).
		Dur("duration", duration).
		Msg("toast shown")

	m.opts.Lifecycle.show(e.Toast)
	m.publish()
	return id
}

// Pause stops the countdown of a toast and preserves the time left.
func (m *Manager) Pause(id int64) {
	if e := m.find(id); e != nil {
		m.pause(e)
	}
}

// Resume restarts the countdown of a paused toast from its preserved
// remaining time. A toast whose remaining time already reached zero while
// paused stays unscheduled until dismissed explicitly.
func (m *Manager) Resume(id int64) {
	if e := m.find(id); e != nil {
		m.resume(e)
	}
}

// Dismiss moves a toast to leaving and schedules its removal.
func (m *Manager) Dismiss(id int64) {
	if e := m.find(id); e != nil {
		m.dismiss(e, ReasonManual)
	}
}

// DismissAll dismisses every toast present at call time.
func (m *Manager) DismissAll() {
	m.dismissAll(ReasonAll)
}

// ExpandOnHover records that the pointer entered the stack: any pending
// collapse is cancelled, the stack expands and every timed toast pauses.
func (m *Manager) ExpandOnHover() {
	if m.closed {
		return
	}

	m.stopCollapse()
	m.hovering = true
	m.expanded = true

	m.batch(func() {
		for _, e := range m.toasts {
			if !e.Paused && !e.Persistent() {
				m.pause(e)
			}
		}
		m.publish()
	})
}

// CollapseOnLeave records that the pointer left the stack and schedules a
// debounced collapse. Hovering again before it fires cancels it.
func (m *Manager) CollapseOnLeave() {
	if m.closed {
		return
	}

	m.hovering = false
	m.stopCollapse()

	var t schedule.Timer
	t = m.sched.AfterFunc(CollapseDelay, func() {
		if m.collapseTimer != t {
			return
		}
		m.collapseTimer = nil
		m.collapse()
	})
	m.collapseTimer = t
	m.publish()
}

// ToggleExpanded flips the expanded state regardless of hover.
func (m *Manager) ToggleExpanded() {
	if m.closed {
		return
	}
	m.expanded = !m.expanded
	m.publish()
}

// Expanded reports whether the full stack is shown.
func (m *Manager) Expanded() bool {
	return m.expanded
}

// Hovering reports whether the pointer is over the stack.
func (m *Manager) Hovering() bool {
	return m.hovering
}

// Len returns the number of toasts in the collection, leaving ones included.
func (m *Manager) Len() int {
	return len(m.toasts)
}

// Get returns a copy of the toast with the given id.
func (m *Manager) Get(id int64) (Toast, bool) {
	if e := m.find(id); e != nil {
		return e.Toast, true
	}
	return Toast{}, false
}

// Visible returns the toasts to display: the whole collection when
// expanded, otherwise the most recent MaxVisible.
func (m *Manager) Visible() []Toast {
	return copyToasts(m.visible())
}

// HiddenCount returns how many toasts the collapsed view hides.
func (m *Manager) HiddenCount() int {
	if m.expanded {
		return 0
	}
	return max(0, len(m.toasts)-m.opts.MaxVisible)
}

// Close cancels every pending timer, detaches the keyboard and drops all
// observers. The manager ignores every call afterwards.
func (m *Manager) Close() {
	if m.closed {
		return
	}

	for _, e := range m.toasts {
		m.reschedule(e, 0, nil)
	}
	m.stopCollapse()

	if m.detachKeys != nil {
		m.detachKeys()
		m.detachKeys = nil
	}

	m.observers = nil
	m.closed = true
}

func (m *Manager) settle(id int64) {
	e := m.find(id)
	if e == nil || e.State != StateEntering {
		return
	}

	e.State = StateActive
	if !e.Paused && e.Remaining > 0 {
		m.startTimer(e)
	}
	m.publish()
}

// startTimer (re)starts the countdown of an active toast with its
// preserved remaining time.
func (m *Manager) startTimer(e *entry) {
	if e.Remaining <= 0 {
		return
	}

	e.StartedAt = m.sched.Now()
	id := e.ID
	m.reschedule(e, e.Remaining, func() { m.expire(id) })
}

func (m *Manager) expire(id int64) {
	e := m.find(id)
	if e == nil || e.State != StateActive {
		return
	}
	e.Remaining = 0
	m.dismiss(e, ReasonTimeout)
}

func (m *Manager) pause(e *entry) {
	if e.Paused || e.State == StateLeaving {
		return
	}

	// Entering toasts keep their settle timer; their countdown has not
	// started yet so there is nothing to deduct.
	if e.State == StateActive && e.timer != nil {
		m.reschedule(e, 0, nil)
		elapsed := m.sched.Now().Sub(e.StartedAt)
		e.Remaining = max(0, e.Remaining-elapsed)
	}

	e.Paused = true
	m.publish()
}

func (m *Manager) resume(e *entry) {
	if !e.Paused {
		return
	}

	e.Paused = false
	if e.State == StateActive && e.Remaining > 0 {
		m.startTimer(e)
	}
	m.publish()
}

func (m *Manager) dismiss(e *entry, reason DismissReason) {
	if e.State == StateLeaving {
		return
	}

	e.State = StateLeaving
	id := e.ID
	m.reschedule(e, ExitDelay, func() { m.remove(id) })

	m.log.Debug().Int64("id", id).Str("reason", string(reason)).Msg("toast dismissed")

	m.opts.Lifecycle.dismiss(e.Toast, reason)
	m.publish()
}

func (m *Manager) dismissAll(reason DismissReason) {
	if len(m.toasts) == 0 {
		return
	}

	ids := make([]int64, len(m.toasts))
	for i, e := range m.toasts {
		ids[i] = e.ID
	}

	m.batch(func() {
		for _, id := range ids {
			if e := m.find(id); e != nil {
				m.dismiss(e, reason)
			}
		}
	})
}

func (m *Manager) remove(id int64) {
	idx := m.index(id)
	if idx == -1 {
		return
	}

	removed := m.toasts[idx]
	m.reschedule(removed, 0, nil)

	next := make([]*entry, 0, len(m.toasts)-1)
	next = append(next, m.toasts[:idx]...)
	next = append(next, m.toasts[idx+1:]...)
	m.toasts = next

	m.opts.Lifecycle.remove(removed.Toast)
	m.publish()
}

func (m *Manager) collapse() {
	if m.hovering {
		return
	}

	m.expanded = false
	m.batch(func() {
		for _, e := range m.toasts {
			if e.Paused {
				m.resume(e)
			}
		}
		m.publish()
	})
}

func (m *Manager) stopCollapse() {
	if m.collapseTimer != nil {
		m.collapseTimer.Stop()
		m.collapseTimer = nil
	}
}

// reschedule is the only place a toast timer is replaced. The previous
// handle is always stopped first; a nil fn only clears it. The callback is
// ignored if the handle was superseded before it ran.
func (m *Manager) reschedule(e *entry, d time.Duration, fn func()) {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if fn == nil || m.closed {
		return
	}

	var t schedule.Timer
	t = m.sched.AfterFunc(d, func() {
		if e.timer != t {
			return
		}
		e.timer = nil
		fn()
	})
	e.timer = t
}

func (m *Manager) visible() []*entry {
	if m.expanded || len(m.toasts) <= m.opts.MaxVisible {
		return m.toasts
	}
	return m.toasts[len(m.toasts)-m.opts.MaxVisible:]
}

func (m *Manager) index(id int64) int {
	for i, e := range m.toasts {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) find(id int64) *entry {
	if m.closed {
		return nil
	}
	if idx := m.index(id); idx != -1 {
		return m.toasts[idx]
	}
	return nil
}

func copyToasts(entries []*entry) []Toast {
	out := make([]Toast, len(entries))
	for i, e := range entries {
		out[i] = e.Toast
	}
	return out
}
