package toast

import "time"

// Snapshot is a complete, immutable view of the manager state handed to
// the presentation layer. Observers never see a partial update.
type Snapshot struct {
	Toasts      []Toast // whole collection, oldest first
	Visible     []Toast // what should be drawn
	HiddenCount int
	Expanded    bool
	Hovering    bool
	MaxVisible  int
	At          time.Time
}

// Empty reports whether the collection is empty.
func (s Snapshot) Empty() bool {
	return len(s.Toasts) == 0
}

// Find returns the toast with the given id.
func (s Snapshot) Find(id int64) (Toast, bool) {
	for _, t := range s.Toasts {
		if t.ID == id {
			return t, true
		}
	}
	return Toast{}, false
}

// Snapshot captures the current state.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Toasts:      copyToasts(m.toasts),
		Visible:     copyToasts(m.visible()),
		HiddenCount: m.HiddenCount(),
		Expanded:    m.expanded,
		Hovering:    m.hovering,
		MaxVisible:  m.opts.MaxVisible,
		At:          m.sched.Now(),
	}
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned function removes the subscription.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	if m.closed {
		return func() {}
	}

	m.nextObsID++
	id := m.nextObsID
	m.observers = append(m.observers, observer{id: id, fn: fn})

	return func() {
		for i, o := range m.observers {
			if o.id == id {
				m.observers = append(m.observers[:i:i], m.observers[i+1:]...)
				return
			}
		}
	}
}

// batch defers change notification until fn returns so observers receive
// one snapshot for a group of mutations.
func (m *Manager) batch(fn func()) {
	m.batchDepth++
	defer func() {
		m.batchDepth--
		if m.batchDepth == 0 && m.dirty {
			m.publish()
		}
	}()
	fn()
}

func (m *Manager) publish() {
	if m.batchDepth > 0 {
		m.dirty = true
		return
	}
	m.dirty = false

	if len(m.observers) == 0 {
		return
	}

	snap := m.Snapshot()
	obs := make([]observer, len(m.observers))
	copy(obs, m.observers)
	for _, o := range obs {
		o.fn(snap)
	}
}
