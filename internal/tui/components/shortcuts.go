// Package components holds view pieces of the toast host that are not
// toasts themselves.
package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/flare/internal/core/styles"
)

// Shortcut pairs an input with what it does.
type Shortcut struct {
	Input  string
	Action string
}

// Group is a titled list of shortcuts.
type Group struct {
	Title     string
	Shortcuts []Shortcut
}

// Bindings lists the help text of the enabled bindings.
func Bindings(bindings ...key.Binding) []Shortcut {
	out := make([]Shortcut, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, Shortcut{Input: h.Key, Action: h.Desc})
	}
	return out
}

// Shortcuts is the help panel toggled with "?".
type Shortcuts struct {
	title  string
	groups []Group
	hint   string
}

// NewShortcuts builds a panel. hint is rendered as the last line.
func NewShortcuts(title, hint string, groups ...Group) *Shortcuts {
	return &Shortcuts{title: title, groups: groups, hint: hint}
}

// View renders the panel.
func (s *Shortcuts) View() string {
	// One input column shared by every group keeps actions aligned.
	inputW := 0
	for _, g := range s.groups {
		for _, sc := range g.Shortcuts {
			inputW = max(inputW, lipgloss.Width(sc.Input))
		}
	}

	blocks := []string{styles.TextForegroundBoldStyle.Render(s.title)}
	for _, g := range s.groups {
		if len(g.Shortcuts) == 0 {
			continue
		}

		rows := []string{"", styles.ShortcutsGroupStyle.Render(g.Title)}
		for _, sc := range g.Shortcuts {
			pad := strings.Repeat(" ", inputW-lipgloss.Width(sc.Input)+2)
			rows = append(rows, styles.TextAccentBoldStyle.Render(sc.Input)+pad+styles.TextForegroundStyle.Render(sc.Action))
		}
		blocks = append(blocks, rows...)
	}

	if s.hint != "" {
		blocks = append(blocks, styles.ShortcutsHintStyle.Render(s.hint))
	}

	return styles.ShortcutsPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

// Overlay draws the panel centered on background, which is width x height
// cells.
func (s *Shortcuts) Overlay(background string, width, height int) string {
	panel := s.View()
	x := max(0, (width-lipgloss.Width(panel))/2)
	y := max(0, (height-lipgloss.Height(panel))/2)

	return lipgloss.NewCompositor(
		lipgloss.NewLayer(background),
		lipgloss.NewLayer(panel).X(x).Y(y).Z(1),
	).Render()
}
