package tui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/flare/internal/core/eventbus"
	"github.com/colonyops/flare/internal/core/eventbus/testbus"
	"github.com/colonyops/flare/internal/core/schedule"
	"github.com/colonyops/flare/internal/core/toast"
	"github.com/colonyops/flare/pkg/tuitest"
)

func newTestModel(t *testing.T, opts Options) (Model, *schedule.Manual) {
	t.Helper()
	clock := schedule.NewManual(testEpoch)
	opts.Scheduler = clock
	if opts.Width == 0 {
		opts.Width = cardW
	}
	if opts.Toast.MaxVisible == 0 {
		opts.Toast = toast.DefaultOptions()
	}

	m := New(opts)
	t.Cleanup(m.Toasts().Close)

	m = update(t, m, tuitest.WindowSize(screenW, screenH))
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestModel_Init_shows_initial_and_publishes_started(t *testing.T) {
	tb := testbus.New(t)
	m, _ := newTestModel(t, Options{
		Bus:     tb.EventBus,
		Initial: []toast.Request{toast.Info("one"), toast.Info("two")},
	})

	require.NotNil(t, m.Init())

	assert.Len(t, m.Toasts().Snapshot().Toasts, 2)
	assert.True(t, tb.WaitFor(eventbus.EventTuiStarted, time.Second))
}

func TestModel_bus_requests_reach_the_manager(t *testing.T) {
	tb := testbus.New(t)
	m, clock := newTestModel(t, Options{Bus: tb.EventBus})

	tb.PublishToastShow(eventbus.ShowToastPayload{Request: toast.Success("saved")})
	require.True(t, tb.WaitFor(eventbus.EventToastShow, time.Second))

	msg := m.Requests().WaitForSignal()()
	m = update(t, m, msg)

	snap := m.Toasts().Snapshot()
	require.Len(t, snap.Toasts, 1)
	assert.Equal(t, "saved", snap.Toasts[0].Text)
	assert.Equal(t, toast.VariantSuccess, snap.Toasts[0].Variant)

	tb.PublishToastClear(eventbus.ClearToastsPayload{})
	require.True(t, tb.WaitFor(eventbus.EventToastClear, time.Second))

	m = update(t, m, m.Requests().WaitForSignal()())
	assert.Equal(t, toast.StateLeaving, m.Toasts().Snapshot().Toasts[0].State)

	clock.Advance(toast.ExitDelay)
	assert.False(t, m.Toasts().HasToasts())
}

func TestModel_escape_dismisses_newest(t *testing.T) {
	m, clock := newTestModel(t, Options{})
	for _, text := range []string{"a", "b", "c"} {
		m.Toasts().Push(toast.New(text))
	}

	m = update(t, m, tuitest.Escape())
	clock.Advance(toast.ExitDelay)

	snap := m.Toasts().Snapshot()
	require.Len(t, snap.Toasts, 2)
	assert.Equal(t, "a", snap.Toasts[0].Text)
	assert.Equal(t, "b", snap.Toasts[1].Text)
}

func TestModel_escape_also_reaches_host(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.Toasts().Push(toast.New("x"))

	m = update(t, m, tuitest.KeyPress('?'))
	require.True(t, m.showHelp)

	m = update(t, m, tuitest.Escape())
	assert.False(t, m.showHelp, "escape is handled without preventing default")
	assert.Equal(t, toast.StateLeaving, m.Toasts().Snapshot().Toasts[0].State)
}

func TestModel_dismiss_all_prevents_default(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{name: "shift escape", msg: tuitest.ShiftEscape()},
		{name: "alt d", msg: tuitest.KeyPressMod('d', tea.ModAlt)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, clock := newTestModel(t, Options{})
			m.Toasts().Push(toast.New("a"))
			m.Toasts().Push(toast.New("b"))
			m = update(t, m, tuitest.KeyPress('?'))

			m = update(t, m, tt.msg)
			assert.True(t, m.showHelp, "host never sees the key")

			clock.Advance(toast.ExitDelay)
			assert.False(t, m.Toasts().HasToasts())
		})
	}
}

func TestModel_escape_without_toasts_is_host_key(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = update(t, m, tuitest.KeyPress('?'))

	m = update(t, m, tuitest.Escape())
	assert.False(t, m.showHelp)
}

func TestModel_host_keys(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m = update(t, m, tuitest.KeyPress('n'))
	m = update(t, m, tuitest.KeyPress('n'))
	snap := m.Toasts().Snapshot()
	require.Len(t, snap.Toasts, 2)
	assert.Equal(t, toast.VariantSuccess, snap.Toasts[0].Variant)
	assert.Equal(t, toast.VariantWarning, snap.Toasts[1].Variant)

	m = update(t, m, tuitest.KeyPress('e'))
	assert.True(t, m.Toasts().Manager().Expanded())
}

func TestModel_quit_publishes_stopped(t *testing.T) {
	tb := testbus.New(t)
	m, _ := newTestModel(t, Options{Bus: tb.EventBus})

	next, cmd := m.Update(tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).Quitting())
	assert.True(t, tb.WaitFor(eventbus.EventTuiStopped, time.Second))
}

func TestModel_hover_pauses_and_leave_resumes(t *testing.T) {
	m, clock := newTestModel(t, Options{})
	id := m.Toasts().Push(toast.New("deploy 42", toast.WithDuration(2*time.Second)))
	clock.Advance(toast.SettleDelay + 500*time.Millisecond)

	x, y, ok := tuitest.Locate(m.render(), "deploy 42")
	require.True(t, ok)
	m = update(t, m, tuitest.MouseMove(x, y))

	got, _ := m.Toasts().Manager().Get(id)
	assert.True(t, got.Paused)
	assert.True(t, m.Toasts().Manager().Hovering())

	// Time spent hovering is not counted.
	clock.Advance(time.Minute)

	m = update(t, m, tuitest.MouseMove(0, 0))
	assert.False(t, m.Toasts().Manager().Hovering())
	clock.Advance(toast.CollapseDelay)

	got, _ = m.Toasts().Manager().Get(id)
	assert.False(t, got.Paused)
	assert.Equal(t, 1500*time.Millisecond, got.Remaining)

	clock.Advance(1500 * time.Millisecond)
	got, _ = m.Toasts().Manager().Get(id)
	assert.Equal(t, toast.StateLeaving, got.State)
}

func TestModel_click_dismisses_toast(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	id := m.Toasts().Push(toast.New("click"))

	box := m.toastLayout().boxes[0]
	m = update(t, m, tuitest.MouseClick(box.x+2, box.y+1))

	got, _ := m.Toasts().Manager().Get(id)
	assert.Equal(t, toast.StateLeaving, got.State)
}

func TestModel_click_more_toggles_expanded(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	for range 5 {
		m.Toasts().Push(toast.New("x"))
	}

	more := m.toastLayout().boxes[0]
	require.True(t, more.more)

	m = update(t, m, tuitest.MouseClick(more.x+1, more.y))
	assert.True(t, m.Toasts().Manager().Expanded())
	assert.Zero(t, m.Toasts().Snapshot().HiddenCount)
}

func TestModel_quit_when_empty(t *testing.T) {
	m, clock := newTestModel(t, Options{
		QuitWhenEmpty: true,
		Initial:       []toast.Request{toast.New("bye", toast.WithDuration(time.Second))},
	})
	m.Init()

	clock.Advance(toast.SettleDelay + time.Second + toast.ExitDelay)
	require.False(t, m.Toasts().HasToasts())

	// Any stale timer message re-evaluates the exit condition.
	next, cmd := m.Update(timerFiredMsg{})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).Quitting())
}

func TestModel_toast_tick_stops_without_countdown(t *testing.T) {
	m, clock := newTestModel(t, Options{})
	m.Toasts().Push(toast.New("timed"))
	clock.Advance(toast.SettleDelay)
	m.Toasts().SetTicking(true)

	_, cmd := m.Update(toastTickMsg(clock.Now()))
	assert.NotNil(t, cmd, "running countdown keeps the frame tick alive")

	m.Toasts().Manager().ExpandOnHover()
	_, cmd = m.Update(toastTickMsg(clock.Now()))
	assert.Nil(t, cmd)
	assert.False(t, m.Toasts().Ticking())
}

func TestModel_render_overlays_toasts(t *testing.T) {
	m, _ := newTestModel(t, Options{Title: "demo host"})
	m.Toasts().Push(toast.Danger("Build failed", toast.WithHeading("CI")))

	lines := tuitest.Lines(m.render())
	require.Len(t, lines, screenH)

	out := tuitest.StripANSI(m.render())
	assert.Contains(t, out, "demo host")
	assert.Contains(t, out, "Build failed")
	assert.Contains(t, out, "CI")
}

func TestModel_wait_for_input_delays_quit(t *testing.T) {
	m, clock := newTestModel(t, Options{QuitWhenEmpty: true, WaitForInput: true})

	m.Toasts().Push(toast.New("first", toast.WithDuration(time.Second)))
	clock.Advance(toast.SettleDelay + time.Second + toast.ExitDelay)

	m = update(t, m, timerFiredMsg{})
	assert.False(t, m.Quitting(), "input is still open")

	m.Requests().CloseInput()
	next, cmd := m.Update(m.Requests().WaitForSignal()())
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).Quitting())
}
