package schedule

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by a virtual clock. Time only moves when
// Advance is called and callbacks run inline, in deadline order, on the
// calling goroutine. It is intended for tests.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	at      time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
	owner   *Manual
}

// NewManual returns a Manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{at: m.now.Add(d), seq: m.seq, fn: fn, owner: m}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the clock forward by d and runs every callback that becomes
// due, including callbacks scheduled by other callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.popDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.at
		next.fired = true
		m.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// popDue removes and returns the earliest live timer due at or before target.
// Caller holds m.mu.
func (m *Manual) popDue(target time.Time) *manualTimer {
	idx := -1
	for i, t := range m.pending {
		if t.stopped || t.fired || t.at.After(target) {
			continue
		}
		if idx == -1 || t.at.Before(m.pending[idx].at) ||
			(t.at.Equal(m.pending[idx].at) && t.seq < m.pending[idx].seq) {
			idx = i
		}
	}
	if idx == -1 {
		m.compact()
		return nil
	}

	t := m.pending[idx]
	m.pending = append(m.pending[:idx], m.pending[idx+1:]...)
	return t
}

func (m *Manual) compact() {
	live := m.pending[:0]
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	m.pending = live
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
