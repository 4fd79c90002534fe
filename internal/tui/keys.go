package tui

import (
	"unicode"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/flare/internal/core/toast"
)

// KeyMap holds the host key bindings. The toast bindings are only listed
// for help; the toast manager matches those keys itself.
type KeyMap struct {
	Quit   key.Binding
	Demo   key.Binding
	Expand key.Binding
	Help   key.Binding

	Dismiss    key.Binding
	DismissAll key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Demo: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "show a demo toast"),
		),
		Expand: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand/collapse stack"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss newest"),
		),
		DismissAll: key.NewBinding(
			key.WithKeys("shift+esc", "alt+d"),
			key.WithHelp("alt+d", "dismiss all"),
		),
	}
}

// keyRouter fans key presses out to the handlers subscribed by toast
// managers. It implements toast.KeySource.
type keyRouter struct {
	nextID   int
	handlers []routedHandler
}

type routedHandler struct {
	id int
	fn toast.KeyHandler
}

func newKeyRouter() *keyRouter {
	return &keyRouter{}
}

func (r *keyRouter) SubscribeKeys(h toast.KeyHandler) func() {
	r.nextID++
	id := r.nextID
	r.handlers = append(r.handlers, routedHandler{id: id, fn: h})

	return func() {
		for i, rh := range r.handlers {
			if rh.id == id {
				r.handlers = append(r.handlers[:i:i], r.handlers[i+1:]...)
				return
			}
		}
	}
}

// Route delivers ev to every handler and merges the results.
func (r *keyRouter) Route(ev toast.KeyEvent) toast.KeyResult {
	var out toast.KeyResult
	for _, rh := range r.handlers {
		res := rh.fn(ev)
		out.Handled = out.Handled || res.Handled
		out.PreventDefault = out.PreventDefault || res.PreventDefault
	}
	return out
}

// keyEventFromMsg converts a Bubble Tea key press into a host-neutral
// event. Keys other than escape and printable characters are not
// translated.
func keyEventFromMsg(msg tea.KeyPressMsg) (toast.KeyEvent, bool) {
	k := msg.Key()

	var name string
	switch {
	case k.Code == tea.KeyEscape:
		name = toast.KeyEscape
	case unicode.IsPrint(k.Code):
		name = string(k.Code)
		if k.Mod.Contains(tea.ModCapsLock) || k.Mod.Contains(tea.ModShift) {
			if k.ShiftedCode != 0 {
				name = string(k.ShiftedCode)
			}
		}
	default:
		return toast.KeyEvent{}, false
	}

	return toast.KeyEvent{
		Key:   name,
		Shift: k.Mod.Contains(tea.ModShift),
		Alt:   k.Mod.Contains(tea.ModAlt),
		Meta:  k.Mod.Contains(tea.ModMeta) || k.Mod.Contains(tea.ModSuper),
		Ctrl:  k.Mod.Contains(tea.ModCtrl),
	}, true
}
