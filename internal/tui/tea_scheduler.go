package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/flare/internal/core/schedule"
)

// timerFiredMsg reports that the tea.Tick backing a scheduled callback
// elapsed.
type timerFiredMsg struct {
	id uint64
}

// teaScheduler is a schedule.Scheduler whose timers are tea.Tick commands.
// AfterFunc only records the callback and queues a command; the callback
// runs when Update handles the matching timerFiredMsg, so every toast
// mutation happens on the Bubble Tea goroutine. A stopped timer's message
// still arrives and is ignored.
type teaScheduler struct {
	now     func() time.Time
	nextID  uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

func newTeaScheduler(now func() time.Time) *teaScheduler {
	if now == nil {
		now = time.Now
	}
	return &teaScheduler{
		now:     now,
		pending: make(map[uint64]func()),
	}
}

func (s *teaScheduler) Now() time.Time {
	return s.now()
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) schedule.Timer {
	s.nextID++
	id := s.nextID
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(max(0, d), func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return &teaTimer{sched: s, id: id}
}

// Fire runs the callback registered under id. It reports false for timers
// that were stopped or already fired.
func (s *teaScheduler) Fire(id uint64) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

// Cmds returns the ticks queued since the last call.
func (s *teaScheduler) Cmds() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Pending returns the number of live timers.
func (s *teaScheduler) Pending() int {
	return len(s.pending)
}

type teaTimer struct {
	sched *teaScheduler
	id    uint64
}

func (t *teaTimer) Stop() bool {
	if _, ok := t.sched.pending[t.id]; !ok {
		return false
	}
	delete(t.sched.pending, t.id)
	return true
}
