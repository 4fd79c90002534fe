package toast

import "strings"

// KeyEscape is the key name of the escape key.
const KeyEscape = "Escape"

// KeyEvent is a host-neutral key press.
type KeyEvent struct {
	Key   string // "Escape" or the printable character
	Shift bool
	Alt   bool
	Meta  bool
	Ctrl  bool
}

// KeyResult tells the host what the manager did with a key press.
type KeyResult struct {
	Handled bool
	// PreventDefault asks the host to suppress its own handling of the key.
	PreventDefault bool
}

// KeyHandler receives key presses from a KeySource.
type KeyHandler func(KeyEvent) KeyResult

// KeySource delivers key presses to subscribed handlers on the manager's
// goroutine.
type KeySource interface {
	SubscribeKeys(KeyHandler) (unsubscribe func())
}

// AttachKeys subscribes the manager to src. The subscription is owned by
// the manager and released by Close or by attaching another source.
func (m *Manager) AttachKeys(src KeySource) {
	if m.closed {
		return
	}
	if m.detachKeys != nil {
		m.detachKeys()
	}
	m.detachKeys = src.SubscribeKeys(m.HandleKey)
}

// HandleKey applies the keyboard shortcuts. They are only active while at
// least one toast exists:
//
//	Escape         dismiss the most recent toast
//	Shift+Escape   dismiss every toast
//	Alt/Meta+d     dismiss every toast
func (m *Manager) HandleKey(ev KeyEvent) KeyResult {
	if m.closed || len(m.toasts) == 0 {
		return KeyResult{}
	}

	switch {
	case ev.Key == KeyEscape && ev.Shift:
		m.dismissAll(ReasonKeyboard)
		return KeyResult{Handled: true, PreventDefault: true}
	case ev.Key == KeyEscape:
		if e := m.newestLive(); e != nil {
			m.dismiss(e, ReasonKeyboard)
		}
		return KeyResult{Handled: true}
	case (ev.Alt || ev.Meta) && strings.EqualFold(ev.Key, "d") && !ev.Shift:
		m.dismissAll(ReasonKeyboard)
		return KeyResult{Handled: true, PreventDefault: true}
	}

	return KeyResult{}
}

// newestLive returns the most recently added toast that is not already
// leaving, so repeated presses peel the stack one toast at a time.
func (m *Manager) newestLive() *entry {
	for i := len(m.toasts) - 1; i >= 0; i-- {
		if m.toasts[i].State != StateLeaving {
			return m.toasts[i]
		}
	}
	return nil
}
