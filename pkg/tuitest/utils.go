// Package tuitest builds input messages and inspects rendered frames for
// tests of the toast host.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape codes and trailing blanks from a frame.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	var result []string
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " ")
		result = append(result, trimmed)
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// KeyPress creates a key press message for a single rune.
func KeyPress(key rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: key, Text: string(key)})
}

// KeyPressMod creates a key press message for a rune with modifiers.
func KeyPressMod(key rune, mod tea.KeyMod) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: key, Mod: mod})
}

// Escape creates an escape key press message.
func Escape() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
}

// ShiftEscape creates a shift+escape key press message.
func ShiftEscape() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape, Mod: tea.ModShift})
}

// MouseMove creates a pointer motion message at the given cell.
func MouseMove(x, y int) tea.Msg {
	return tea.MouseMotionMsg(tea.Mouse{X: x, Y: y})
}

// MouseClick creates a left click message at the given cell.
func MouseClick(x, y int) tea.Msg {
	return tea.MouseClickMsg(tea.Mouse{X: x, Y: y, Button: tea.MouseLeft})
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}

// Lines splits stripped view output into lines.
func Lines(view string) []string {
	return strings.Split(StripANSI(view), "\n")
}

// Locate returns the cell of the first occurrence of text in a rendered
// frame. Columns are counted in display width, so wide glyphs such as the
// variant icons before it shift the result correctly.
func Locate(view, text string) (x, y int, ok bool) {
	for row, line := range Lines(view) {
		if i := strings.Index(line, text); i >= 0 {
			return ansi.StringWidth(line[:i]), row, true
		}
	}
	return 0, 0, false
}
