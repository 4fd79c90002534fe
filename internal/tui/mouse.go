package tui

import (
	tea "charm.land/bubbletea/v2"
)

// handleMouseMotion turns pointer movement into hover enter/leave on the
// toast stack.
func (m Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	if !m.toastController.HasToasts() {
		return m, nil
	}

	mouse := msg.Mouse()
	inside := m.toastLayout().Contains(mouse.X, mouse.Y)
	mgr := m.toastController.Manager()

	switch {
	case inside && !mgr.Hovering():
		mgr.ExpandOnHover()
	case !inside && mgr.Hovering():
		mgr.CollapseOnLeave()
	default:
		return m, nil
	}
	return m.afterToastChange()
}

// handleMouseClick dismisses the clicked toast. Clicking the "+N more"
// line toggles the expanded stack.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft || !m.toastController.HasToasts() {
		return m, nil
	}

	box, ok := m.toastLayout().HitTest(mouse.X, mouse.Y)
	if !ok {
		return m, nil
	}

	mgr := m.toastController.Manager()
	if box.more {
		mgr.ToggleExpanded()
	} else {
		mgr.Dismiss(box.id)
	}
	return m.afterToastChange()
}
