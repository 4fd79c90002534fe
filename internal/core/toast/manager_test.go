package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/flare/internal/core/schedule"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type recorder struct {
	shown     []int64
	dismissed map[int64][]DismissReason
	removed   []int64
}

func (r *recorder) lifecycle() Lifecycle {
	r.dismissed = map[int64][]DismissReason{}
	return Lifecycle{
		OnShow:    func(t Toast) { r.shown = append(r.shown, t.ID) },
		OnDismiss: func(t Toast, reason DismissReason) { r.dismissed[t.ID] = append(r.dismissed[t.ID], reason) },
		OnRemove:  func(t Toast) { r.removed = append(r.removed, t.ID) },
	}
}

func newTestClock() *schedule.Manual {
	return schedule.NewManual(epoch)
}

func newTestManager(t *testing.T, mutate ...func(*Options)) (*Manager, *schedule.Manual, *recorder) {
	t.Helper()

	clock := schedule.NewManual(epoch)
	rec := &recorder{}
	opts := DefaultOptions()
	opts.Lifecycle = rec.lifecycle()
	for _, fn := range mutate {
		fn(&opts)
	}

	m := NewManager(clock, opts)
	t.Cleanup(m.Close)
	return m, clock, rec
}

func mustGet(t *testing.T, m *Manager, id int64) Toast {
	t.Helper()
	got, ok := m.Get(id)
	require.True(t, ok, "toast %d should be present", id)
	return got
}

func TestManager_Show_assigns_increasing_ids(t *testing.T) {
	m, _, rec := newTestManager(t)

	var ids []int64
	for range 5 {
		ids = append(ids, m.Show(New("hello")))
	}

	require.Equal(t, 5, m.Len())
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
	assert.Equal(t, int64(1), ids[0])
	assert.Equal(t, ids, rec.shown)

	snap := m.Snapshot()
	for i, tt := range snap.Toasts {
		assert.Equal(t, ids[i], tt.ID, "insertion order is display order")
		assert.Equal(t, StateEntering, tt.State)
	}
}

func TestManager_Show_ids_are_not_reused_after_removal(t *testing.T) {
	m, clock, _ := newTestManager(t)

	first := m.Show(New("a"))
	m.Dismiss(first)
	clock.Advance(ExitDelay)
	require.Zero(t, m.Len())

	assert.Equal(t, first+1, m.Show(New("b")))
}

func TestManager_Show_defaults(t *testing.T) {
	m, _, _ := newTestManager(t, func(o *Options) {
		o.Position = PositionTopStart
		o.Duration = 2 * time.Second
	})

	got := mustGet(t, m, m.Show(New("body")))
	assert.Equal(t, PositionTopStart, got.Position)
	assert.Equal(t, 2*time.Second, got.Duration)
	assert.Equal(t, 2*time.Second, got.Remaining)
	assert.Equal(t, VariantNone, got.Variant)
	assert.Empty(t, got.Heading)
	assert.Equal(t, epoch, got.CreatedAt)
}

func TestManager_Show_drops_invalid_variant_and_position(t *testing.T) {
	m, _, _ := newTestManager(t)

	got := mustGet(t, m, m.Show(Request{Text: "x", Variant: "sparkly", Position: "middle"}))
	assert.Equal(t, VariantNone, got.Variant)
	assert.Equal(t, DefaultPosition, got.Position)

	got = mustGet(t, m, m.Show(Request{Text: "y", Variant: "error", Position: "Top-Center"}))
	assert.Equal(t, VariantDanger, got.Variant)
	assert.Equal(t, PositionTopCenter, got.Position)
}

func TestManager_Show_negative_duration_is_persistent(t *testing.T) {
	m, _, _ := newTestManager(t)

	got := mustGet(t, m, m.Show(New("x", WithDuration(-time.Second))))
	assert.True(t, got.Persistent())
}

func TestManager_settle_delay_not_counted_against_duration(t *testing.T) {
	m, clock, rec := newTestManager(t)
	id := m.Show(New("x", WithDuration(time.Second)))

	clock.Advance(SettleDelay - time.Millisecond)
	assert.Equal(t, StateEntering, mustGet(t, m, id).State)

	clock.Advance(time.Millisecond)
	got := mustGet(t, m, id)
	assert.Equal(t, StateActive, got.State)
	assert.Equal(t, epoch.Add(SettleDelay), got.StartedAt)

	clock.Advance(time.Second - time.Millisecond)
	assert.Equal(t, StateActive, mustGet(t, m, id).State)

	clock.Advance(time.Millisecond)
	assert.Equal(t, StateLeaving, mustGet(t, m, id).State)
	assert.Equal(t, []DismissReason{ReasonTimeout}, rec.dismissed[id])

	clock.Advance(ExitDelay)
	assert.Zero(t, m.Len())
	assert.Equal(t, []int64{id}, rec.removed)
	assert.Zero(t, clock.Pending())
}

func TestManager_manual_dismiss_prevents_auto_dismiss(t *testing.T) {
	m, clock, rec := newTestManager(t)
	id := m.Show(New("x", WithDuration(time.Second)))

	clock.Advance(SettleDelay + 500*time.Millisecond)
	m.Dismiss(id)

	clock.Advance(10 * time.Second)
	assert.Equal(t, []DismissReason{ReasonManual}, rec.dismissed[id])
	assert.Zero(t, m.Len())
}

func TestManager_Dismiss_is_idempotent(t *testing.T) {
	m, clock, rec := newTestManager(t)
	id := m.Show(New("x"))
	clock.Advance(SettleDelay)

	m.Dismiss(id)
	clock.Advance(100 * time.Millisecond)
	m.Dismiss(id)

	assert.Len(t, rec.dismissed[id], 1)

	// The second call must not push the removal back.
	clock.Advance(ExitDelay - 100*time.Millisecond)
	assert.Zero(t, m.Len())
}

func TestManager_Dismiss_while_entering(t *testing.T) {
	m, clock, _ := newTestManager(t)
	id := m.Show(New("x"))

	clock.Advance(100 * time.Millisecond)
	m.Dismiss(id)
	assert.Equal(t, StateLeaving, mustGet(t, m, id).State)

	// The settle deadline passes while leaving; the toast must not come back.
	clock.Advance(ExitDelay - time.Millisecond)
	assert.Equal(t, StateLeaving, mustGet(t, m, id).State)

	clock.Advance(time.Millisecond)
	assert.Zero(t, m.Len())
}

func TestManager_operations_on_unknown_ids_are_noops(t *testing.T) {
	m, clock, _ := newTestManager(t)
	id := m.Show(New("x"))

	assert.NotPanics(t, func() {
		m.Pause(999)
		m.Resume(999)
		m.Dismiss(999)
	})

	clock.Advance(SettleDelay)
	assert.Equal(t, StateActive, mustGet(t, m, id).State)
	assert.False(t, mustGet(t, m, id).Paused)
}

func TestManager_pause_resume_preserves_remaining(t *testing.T) {
	m, clock, _ := newTestManager(t)
	id := m.Show(New("x", WithDuration(5*time.Second)))
	clock.Advance(SettleDelay)

	clock.Advance(time.Second)
	m.Pause(id)

	got := mustGet(t, m, id)
	assert.True(t, got.Paused)
	assert.Equal(t, 4*time.Second, got.Remaining)

	// Paused toasts never expire.
	clock.Advance(time.Minute)
	assert.Equal(t, StateActive, mustGet(t, m, id).State)

	m.Resume(id)
	assert.False(t, mustGet(t, m, id).Paused)

	clock.Advance(4*time.Second - time.Millisecond)
	assert.Equal(t, StateActive, mustGet(t, m, id).State)

	clock.Advance(time.Millisecond)
	assert.Equal(t, StateLeaving, mustGet(t, m, id).State)
}

func TestManager_repeated_pause_resume_only_counts_active_time(t *testing.T) {
	m, clock, _ := newTestManager(t)
	id := m.Show(New("x", WithDuration(5*time.Second)))
	clock.Advance(SettleDelay)

	for range 5 {
		clock.Advance(500 * time.Millisecond)
		m.Pause(id)
		clock.Advance(3 * time.Second)
		m.Resume(id)
	}

	assert.Equal(t, 2500*time.Millisecond, mustGet(t, m, id).Remaining)

	clock.Advance(2500*time.Millisecond - time.Millisecond)
	assert.Equal(t, StateActive, mustGet(t, m, id).State)
	clock.Advance(time.Millisecond)
	assert.Equal(t, StateLeaving, mustGet(t, m, id).State)
}

func TestManager_Pause_twice_does_not_deduct_again(t *testing.T) {
	m, clock, _ := newTestManager(t)
	id := m.Show(New("x", WithDuration(5*time.Second)))
	clock.Advance(SettleDelay + time.Second)

	m.Pause(id)
	clock.Advance(2 * time.Second)
	m.Pause(id)

	assert.Equal(t, 4*time.Second, mustGet(t, m, id).Remaining)
}

func TestManager_Resume_not_paused_is_noop(t *testing.T) {
	m, clock, _ := newTestManager(t)
	id := m.Show(New("x", WithDuration(time.Second)))
	clock.Advance(SettleDelay + 400*time.Millisecond)

	m.Resume(id)

	// Still expires on the original schedule.
	clock.Advance(600 * time.Millisecond)
	assert.Equal(t, StateLeaving, mustGet(t, m, id).State)
}

// A toast paused exactly at its deadline keeps Remaining == 0 and is left
// unscheduled on resume; only an explicit dismissal removes it.
func TestManager_Resume_at_zero_remaining_stays_unscheduled(t *testing.T) {
	clock := schedule.NewManual(epoch)
	m := NewManager(clock, DefaultOptions())
	t.Cleanup(m.Close)

	var id int64
	// Scheduled before the toast exists so it runs first at the shared deadline.
	clock.AfterFunc(SettleDelay+time.Second, func() { m.Pause(id) })
	id = m.Show(New("x", WithDuration(time.Second)))

	clock.Advance(SettleDelay + time.Second)
	got := mustGet(t, m, id)
	require.True(t, got.Paused)
	require.Zero(t, got.Remaining)

	m.Resume(id)
	clock.Advance(time.Hour)

	got = mustGet(t, m, id)
	assert.Equal(t, StateActive, got.State)
	assert.False(t, got.Paused)
	assert.Zero(t, clock.Pending())

	m.Dismiss(id)
	clock.Advance(ExitDelay)
	assert.Zero(t, m.Len())
}

func TestManager_Pause_while_entering_defers_countdown(t *testing.T) {
	m, clock, _ := newTestManager(t)
	id := m.Show(New("x", WithDuration(time.Second)))

	clock.Advance(100 * time.Millisecond)
	m.Pause(id)

	clock.Advance(time.Minute)
	got := mustGet(t, m, id)
	assert.Equal(t, StateActive, got.State, "settle still happens while paused")
	assert.True(t, got.Paused)
	assert.Equal(t, time.Second, got.Remaining)

	m.Resume(id)
	clock.Advance(time.Second)
	assert.Equal(t, StateLeaving, mustGet(t, m, id).State)
}

func TestManager_Pause_leaving_toast_is_ignored(t *testing.T) {
	m, clock, _ := newTestManager(t)
	id := m.Show(New("x"))
	clock.Advance(SettleDelay)
	m.Dismiss(id)

	m.Pause(id)
	assert.False(t, mustGet(t, m, id).Paused)

	clock.Advance(ExitDelay)
	assert.Zero(t, m.Len())
}

func TestManager_DismissAll(t *testing.T) {
	m, clock, rec := newTestManager(t)
	for range 4 {
		m.Show(New("x"))
	}
	clock.Advance(SettleDelay)

	var snaps []Snapshot
	m.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	m.DismissAll()

	require.Len(t, snaps, 1, "dismiss all publishes a single snapshot")
	for _, tt := range snaps[0].Toasts {
		assert.Equal(t, StateLeaving, tt.State)
		assert.Equal(t, []DismissReason{ReasonAll}, rec.dismissed[tt.ID])
	}

	clock.Advance(ExitDelay)
	assert.Zero(t, m.Len())
	assert.Len(t, rec.removed, 4)
}

func TestManager_DismissAll_empty_is_noop(t *testing.T) {
	m, _, _ := newTestManager(t)
	assert.NotPanics(t, m.DismissAll)
}

func TestManager_Visible_and_HiddenCount(t *testing.T) {
	m, _, _ := newTestManager(t)
	for range 5 {
		m.Show(New("x"))
	}

	visible := m.Visible()
	require.Len(t, visible, DefaultMaxVisible)
	assert.Equal(t, []int64{3, 4, 5}, []int64{visible[0].ID, visible[1].ID, visible[2].ID})
	assert.Equal(t, 2, m.HiddenCount())

	m.ToggleExpanded()
	assert.True(t, m.Expanded())
	assert.Len(t, m.Visible(), 5)
	assert.Zero(t, m.HiddenCount())

	m.ToggleExpanded()
	assert.Len(t, m.Visible(), DefaultMaxVisible)
}

func TestManager_Visible_never_exceeds_max_when_collapsed(t *testing.T) {
	tests := []struct {
		name       string
		maxVisible int
		total      int
	}{
		{name: "fewer than max", maxVisible: 3, total: 2},
		{name: "equal to max", maxVisible: 3, total: 3},
		{name: "more than max", maxVisible: 3, total: 7},
		{name: "max of one", maxVisible: 1, total: 4},
		{name: "invalid max falls back", maxVisible: 0, total: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestManager(t, func(o *Options) { o.MaxVisible = tt.maxVisible })
			for range tt.total {
				m.Show(New("x"))
			}

			limit := m.Options().MaxVisible
			assert.LessOrEqual(t, len(m.Visible()), limit)
			assert.Equal(t, max(0, tt.total-limit), m.HiddenCount())
		})
	}
}

func TestManager_starts_expanded_from_options(t *testing.T) {
	m, _, _ := newTestManager(t, func(o *Options) { o.Expanded = true })
	for range 5 {
		m.Show(New("x"))
	}

	assert.Len(t, m.Visible(), 5)
	assert.Zero(t, m.HiddenCount())
}

func TestManager_timed_and_persistent_scenario(t *testing.T) {
	m, clock, _ := newTestManager(t)

	a := m.Show(New("A", WithDuration(5*time.Second)))
	b := m.Show(New("B", Persistent()))
	clock.Advance(SettleDelay)

	assert.Zero(t, m.HiddenCount())

	m.Dismiss(a)
	clock.Advance(ExitDelay)
	require.Equal(t, 1, m.Len())

	clock.Advance(10 * time.Second)
	got := mustGet(t, m, b)
	assert.Equal(t, StateActive, got.State)
	assert.Zero(t, got.Progress())
}

func TestManager_hover_pauses_and_leave_resumes(t *testing.T) {
	m, clock, _ := newTestManager(t)

	a := m.Show(New("A", WithDuration(3*time.Second)))
	b := m.Show(New("B", WithDuration(5*time.Second)))
	c := m.Show(New("C", Persistent()))
	clock.Advance(SettleDelay + time.Second)

	m.ExpandOnHover()
	assert.True(t, m.Expanded())
	assert.True(t, m.Hovering())
	assert.True(t, mustGet(t, m, a).Paused)
	assert.True(t, mustGet(t, m, b).Paused)
	assert.False(t, mustGet(t, m, c).Paused, "persistent toasts are not paused")

	clock.Advance(time.Minute)
	assert.Equal(t, 3, m.Len())

	m.CollapseOnLeave()
	assert.False(t, m.Hovering())

	clock.Advance(CollapseDelay - time.Millisecond)
	assert.True(t, m.Expanded(), "collapse is debounced")
	assert.True(t, mustGet(t, m, a).Paused)

	clock.Advance(time.Millisecond)
	assert.False(t, m.Expanded())
	assert.False(t, mustGet(t, m, a).Paused)
	assert.False(t, mustGet(t, m, b).Paused)
	assert.Equal(t, 2*time.Second, mustGet(t, m, a).Remaining)
	assert.Equal(t, 4*time.Second, mustGet(t, m, b).Remaining)

	clock.Advance(2 * time.Second)
	assert.Equal(t, StateLeaving, mustGet(t, m, a).State)
	assert.Equal(t, StateActive, mustGet(t, m, b).State)

	clock.Advance(2 * time.Second)
	assert.Equal(t, StateLeaving, mustGet(t, m, b).State)
}

func TestManager_rehover_cancels_pending_collapse(t *testing.T) {
	m, clock, _ := newTestManager(t)
	id := m.Show(New("A", WithDuration(time.Second)))
	clock.Advance(SettleDelay)

	m.ExpandOnHover()
	m.CollapseOnLeave()
	clock.Advance(CollapseDelay / 2)
	m.ExpandOnHover()

	clock.Advance(time.Minute)
	assert.True(t, m.Expanded())
	assert.True(t, mustGet(t, m, id).Paused)
	assert.Equal(t, StateActive, mustGet(t, m, id).State)
}

func TestManager_repeated_leave_restarts_debounce(t *testing.T) {
	m, clock, _ := newTestManager(t)
	m.Show(New("A"))

	m.ExpandOnHover()
	m.CollapseOnLeave()
	clock.Advance(CollapseDelay - time.Millisecond)
	m.CollapseOnLeave()

	clock.Advance(CollapseDelay - time.Millisecond)
	assert.True(t, m.Expanded())

	clock.Advance(time.Millisecond)
	assert.False(t, m.Expanded())
}

func TestManager_hover_during_entering_keeps_toast_paused_after_settle(t *testing.T) {
	m, clock, _ := newTestManager(t)
	id := m.Show(New("A", WithDuration(time.Second)))

	m.ExpandOnHover()
	clock.Advance(SettleDelay + time.Minute)
	got := mustGet(t, m, id)
	assert.Equal(t, StateActive, got.State)
	assert.True(t, got.Paused)

	m.CollapseOnLeave()
	clock.Advance(CollapseDelay + time.Second)
	assert.Equal(t, StateLeaving, mustGet(t, m, id).State)
}

func TestManager_Subscribe_receives_snapshots(t *testing.T) {
	m, clock, _ := newTestManager(t)

	var snaps []Snapshot
	unsubscribe := m.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	id := m.Show(New("x", WithDuration(time.Second)))
	require.Len(t, snaps, 1)
	assert.Equal(t, StateEntering, snaps[0].Toasts[0].State)

	clock.Advance(SettleDelay)
	require.Len(t, snaps, 2)
	assert.Equal(t, StateActive, snaps[1].Toasts[0].State)

	// Snapshots are copies.
	snaps[1].Toasts[0].Text = "mutated"
	assert.Equal(t, "x", mustGet(t, m, id).Text)

	unsubscribe()
	m.Dismiss(id)
	assert.Len(t, snaps, 2)
}

func TestManager_Close_cancels_timers(t *testing.T) {
	clock := schedule.NewManual(epoch)
	m := NewManager(clock, DefaultOptions())

	m.Show(New("a"))
	m.Show(New("b"))
	m.ExpandOnHover()
	m.CollapseOnLeave()
	require.NotZero(t, clock.Pending())

	m.Close()
	assert.Zero(t, clock.Pending())

	assert.Zero(t, m.Show(New("ignored")))
	assert.NotPanics(t, func() {
		m.DismissAll()
		m.ExpandOnHover()
		m.ToggleExpanded()
		clock.Advance(time.Minute)
	})
}

func TestManager_independent_instances(t *testing.T) {
	m1, clock1, _ := newTestManager(t)
	m2, _, _ := newTestManager(t)

	m1.Show(New("one"))
	id := m2.Show(New("two"))

	clock1.Advance(time.Hour)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, StateEntering, mustGet(t, m2, id).State)
}

func TestToast_Progress(t *testing.T) {
	m, clock, _ := newTestManager(t)
	id := m.Show(New("x", WithDuration(4*time.Second)))
	clock.Advance(SettleDelay)

	assert.InDelta(t, 100.0, mustGet(t, m, id).Progress(), 0.001)

	clock.Advance(time.Second)
	got := mustGet(t, m, id)
	assert.InDelta(t, 75.0, got.LiveProgress(clock.Now()), 0.001)
	assert.Equal(t, 3*time.Second, got.LiveRemaining(clock.Now()))

	m.Pause(id)
	assert.InDelta(t, 75.0, mustGet(t, m, id).Progress(), 0.001)
}
