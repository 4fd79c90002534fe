// Package tui implements the Bubble Tea host that draws toasts over the
// terminal and feeds keyboard and mouse input back into the toast manager.
package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/flare/internal/core/eventbus"
	"github.com/colonyops/flare/internal/core/logging"
	"github.com/colonyops/flare/internal/core/schedule"
	"github.com/colonyops/flare/internal/core/styles"
	"github.com/colonyops/flare/internal/core/toast"
	"github.com/colonyops/flare/internal/tui/components"
)

// Options configures the TUI behavior.
type Options struct {
	Bus           *eventbus.EventBus // toast.show / toast.clear source (optional)
	Toast         toast.Options      // manager configuration
	Width         int                // toast card width
	Markdown      bool               // render toast text as markdown
	QuitWhenEmpty bool               // exit once the last toast is removed
	WaitForInput  bool               // with QuitWhenEmpty, hold off until the bus reports input.closed
	Initial       []toast.Request    // toasts shown on start
	Title         string             // background heading
	Scheduler     schedule.Scheduler // nil uses tea ticks
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	bus             *eventbus.EventBus
	requests        *RequestBuffer
	toastController *ToastController
	toastView       *ToastView
	keys            KeyMap
	helpDialog      *components.Shortcuts
	log             zerolog.Logger

	title         string
	initial       []toast.Request
	quitWhenEmpty bool
	inputOpen     bool

	width     int
	height    int
	showHelp  bool
	demoCount int
	quitting  bool
}

// New creates a model and, when a bus is given, subscribes it to toast
// requests.
func New(opts Options) Model {
	if opts.Title == "" {
		opts.Title = "flare"
	}

	logger := logging.Component("tui")
	if opts.Toast.Logger.GetLevel() == zerolog.Disabled {
		opts.Toast.Logger = logging.Component("toast")
	}

	requests := NewRequestBuffer()
	if opts.Bus != nil {
		eventbus.NewToastRouter(opts.Bus, requests).Register()
	}

	keys := DefaultKeyMap()
	help := components.NewShortcuts("Shortcuts", "? close",
		components.Group{Title: "Toasts", Shortcuts: components.Bindings(keys.Dismiss, keys.DismissAll, keys.Expand)},
		components.Group{Title: "Mouse", Shortcuts: []components.Shortcut{
			{Input: "hover", Action: "pause and expand"},
			{Input: "click", Action: "dismiss toast"},
			{Input: "click +N", Action: "show hidden toasts"},
		}},
		components.Group{Title: "App", Shortcuts: components.Bindings(keys.Demo, keys.Help, keys.Quit)},
	)

	return Model{
		bus:             opts.Bus,
		requests:        requests,
		toastController: NewToastController(opts.Scheduler, opts.Toast),
		toastView:       NewToastView(opts.Width, opts.Markdown),
		keys:            keys,
		helpDialog:      help,
		log:             logger,
		title:           opts.Title,
		initial:         opts.Initial,
		quitWhenEmpty:   opts.QuitWhenEmpty,
		inputOpen:       opts.WaitForInput,
	}
}

// Requests returns the buffer feeding toast requests into the model. It
// is safe for use from other goroutines.
func (m Model) Requests() *RequestBuffer {
	return m.requests
}

// Toasts exposes the toast controller.
func (m Model) Toasts() *ToastController {
	return m.toastController
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.bus != nil {
		m.bus.PublishTuiStarted(eventbus.TUIStartedPayload{})
	}

	for _, req := range m.initial {
		m.toastController.Push(req)
	}

	return tea.Batch(
		m.requests.WaitForSignal(),
		m.toastController.Cmds(),
		m.ensureToastTick(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case timerFiredMsg:
		m.toastController.Fire(msg.id)
		return m.afterToastChange()
	case drainRequestsMsg:
		return m.handleDrainRequests()
	case toastTickMsg:
		return m.handleToastTick()

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)
	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)
	}

	return m, nil
}

func (m Model) handleDrainRequests() (tea.Model, tea.Cmd) {
	for _, op := range m.requests.Drain() {
		switch op.kind {
		case opShow:
			m.toastController.Push(op.req)
		case opClear:
			m.toastController.Manager().DismissAll()
		case opCloseInput:
			m.inputOpen = false
		}
	}

	next, cmd := m.afterToastChange()
	return next, tea.Batch(cmd, m.requests.WaitForSignal())
}

func (m Model) handleToastTick() (tea.Model, tea.Cmd) {
	if m.toastController.Counting() {
		return m, scheduleToastTick()
	}
	m.toastController.SetTicking(false)
	return m, nil
}

// handleKey gives the toast manager the first look at every key press and
// falls through to the host bindings unless the manager prevents it.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if ev, ok := keyEventFromMsg(msg); ok {
		res := m.toastController.HandleKey(ev)
		if res.PreventDefault {
			return m.afterToastChange()
		}
		if res.Handled {
			next, cmd := m.handleHostKey(msg)
			model := next.(Model)
			after, afterCmd := model.afterToastChange()
			return after, tea.Batch(cmd, afterCmd)
		}
	}

	return m.handleHostKey(msg)
}

func (m Model) handleHostKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case m.showHelp && key.Matches(msg, m.keys.Dismiss):
		m.showHelp = false
		return m, nil
	case key.Matches(msg, m.keys.Demo):
		m.demoCount++
		m.toastController.Push(demoRequest(m.demoCount))
		return m.afterToastChange()
	case key.Matches(msg, m.keys.Expand):
		m.toastController.Manager().ToggleExpanded()
		return m.afterToastChange()
	}
	return m, nil
}

// afterToastChange collects the timer commands queued by the manager,
// keeps the frame tick alive and exits once the stack drains when asked to.
func (m Model) afterToastChange() (tea.Model, tea.Cmd) {
	if m.quitWhenEmpty && !m.inputOpen && !m.toastController.HasToasts() {
		return m.quit()
	}
	return m, tea.Batch(m.toastController.Cmds(), m.ensureToastTick())
}

func (m Model) ensureToastTick() tea.Cmd {
	if m.toastController.Ticking() || !m.toastController.HasToasts() {
		return nil
	}
	m.toastController.SetTicking(true)
	return scheduleToastTick()
}

// quit sets the quitting flag and emits tui.stopped.
func (m Model) quit() (Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.quitting = true
	m.toastController.Close()
	if m.bus != nil {
		m.bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})
	}
	m.log.Debug().Msg("tui stopped")
	return m, tea.Quit
}

// Quitting reports whether the model asked the program to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) toastLayout() ToastLayout {
	return m.toastView.Layout(m.toastController.Snapshot(), m.toastController.Now(), m.width, m.height)
}

// View renders the host screen with the toast overlay on top.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

func (m Model) render() string {
	content := m.renderBackground()
	if m.showHelp && m.width > 0 {
		content = m.helpDialog.Overlay(content, m.width, m.height)
	}
	if m.toastController.HasToasts() && m.width > 0 {
		content = m.toastView.Overlay(content, m.toastLayout())
	}
	return content
}

func (m Model) renderBackground() string {
	snap := m.toastController.Snapshot()

	status := "no toasts"
	if n := len(snap.Toasts); n > 0 {
		status = fmt.Sprintf("%d toast(s), %d hidden", n, snap.HiddenCount)
	}
	if snap.Expanded {
		status += " · expanded"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.CommandHeaderStyle.Render(m.title),
		styles.DividerStyle.Render(strings.Repeat("─", 24)),
		styles.CommandStyle.Render(status),
		"",
		styles.TextMutedStyle.Render("? help · n demo · q quit"),
	)

	if m.width <= 0 || m.height <= 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func demoRequest(n int) toast.Request {
	v := toast.Variants[(n-1)%len(toast.Variants)]
	heading := strings.ToUpper(string(v[:1])) + string(v[1:])
	return toast.Request{
		Text:    fmt.Sprintf("Demo toast **#%d**. Hover the stack to pause it.", n),
		Heading: heading,
		Variant: string(v),
	}
}
