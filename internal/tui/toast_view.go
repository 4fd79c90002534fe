package tui

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/flare/internal/core/styles"
	"github.com/colonyops/flare/internal/core/toast"
)

const (
	defaultToastWidth = 44
	minToastWidth     = 16

	// Fade applied per step of depth to collapsed toasts behind the newest.
	depthFade   = 0.2
	maxFade     = 0.6
	leavingFade = 0.7
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// hitBox is a clickable region of the overlay: a toast card, or the
// "+N more" line when more is set.
type hitBox struct {
	id         int64
	more       bool
	x, y, w, h int
}

func (b hitBox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// toastStack is the rendered column of one anchor.
type toastStack struct {
	position toast.Position
	content  string
	x, y     int
}

// ToastLayout is the overlay computed from one snapshot.
type ToastLayout struct {
	stacks []toastStack
	boxes  []hitBox
}

// Empty reports whether there is nothing to draw.
func (l ToastLayout) Empty() bool {
	return len(l.stacks) == 0
}

// HitTest returns the region under the given cell.
func (l ToastLayout) HitTest(x, y int) (hitBox, bool) {
	for _, b := range l.boxes {
		if b.contains(x, y) {
			return b, true
		}
	}
	return hitBox{}, false
}

// Contains reports whether the cell lies on any part of the overlay.
func (l ToastLayout) Contains(x, y int) bool {
	_, ok := l.HitTest(x, y)
	return ok
}

// ToastView renders toast snapshots and composites them as an overlay.
type ToastView struct {
	width    int
	markdown *markdownRenderer
}

// NewToastView creates a view drawing cards of the given width.
func NewToastView(width int, markdown bool) *ToastView {
	if width <= 0 {
		width = defaultToastWidth
	}
	return &ToastView{
		width:    max(width, minToastWidth),
		markdown: newMarkdownRenderer(markdown),
	}
}

// Layout places the visible toasts of snap on a screen of the given size.
// Toasts are grouped per anchor; the newest toast of a stack sits closest
// to its screen edge.
func (v *ToastView) Layout(snap toast.Snapshot, now time.Time, screenW, screenH int) ToastLayout {
	var layout ToastLayout
	if snap.Empty() {
		return layout
	}

	cardW := min(v.width, max(minToastWidth, screenW-2))

	groups := make(map[toast.Position][]toast.Toast)
	for _, t := range snap.Visible {
		groups[t.Position] = append(groups[t.Position], t)
	}

	morePos := toast.Position("")
	if snap.HiddenCount > 0 && !snap.Expanded {
		morePos = snap.Toasts[snap.HiddenCount-1].Position
	}

	for _, pos := range toast.Positions {
		cards := groups[pos]
		hidden := 0
		if pos == morePos {
			hidden = snap.HiddenCount
		}
		if len(cards) == 0 && hidden == 0 {
			continue
		}

		v.layoutStack(&layout, pos, cards, hidden, snap.Expanded, now, cardW, screenW, screenH)
	}

	return layout
}

func (v *ToastView) layoutStack(
	layout *ToastLayout,
	pos toast.Position,
	cards []toast.Toast,
	hidden int,
	expanded bool,
	now time.Time,
	cardW, screenW, screenH int,
) {
	type part struct {
		content string
		id      int64
		more    bool
	}

	// cards arrive oldest first; depth 0 is the newest.
	parts := make([]part, 0, len(cards)+1)
	for i, t := range cards {
		depth := len(cards) - 1 - i
		parts = append(parts, part{content: v.renderCard(t, depth, expanded, now, cardW), id: t.ID})
	}
	if pos.Top() {
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
	}

	if hidden > 0 {
		more := part{content: renderMore(hidden, cardW), more: true}
		if pos.Top() {
			parts = append(parts, more)
		} else {
			parts = append([]part{more}, parts...)
		}
	}

	rendered := make([]string, len(parts))
	for i, p := range parts {
		rendered[i] = p.content
	}
	content := lipgloss.JoinVertical(lipgloss.Left, rendered...)

	stackW := lipgloss.Width(content)
	stackH := lipgloss.Height(content)
	x, y := anchorOrigin(pos, stackW, stackH, screenW, screenH)

	layout.stacks = append(layout.stacks, toastStack{position: pos, content: content, x: x, y: y})

	offset := y
	for _, p := range parts {
		h := lipgloss.Height(p.content)
		layout.boxes = append(layout.boxes, hitBox{
			id:   p.id,
			more: p.more,
			x:    x,
			y:    offset,
			w:    lipgloss.Width(p.content),
			h:    h,
		})
		offset += h
	}
}

// anchorOrigin returns the top-left cell of a stack.
func anchorOrigin(pos toast.Position, w, h, screenW, screenH int) (int, int) {
	var x, y int
	switch {
	case strings.HasSuffix(string(pos), "start"):
		x = 1
	case strings.HasSuffix(string(pos), "center"):
		x = (screenW - w) / 2
	default:
		x = screenW - w - 1
	}

	if !pos.Top() {
		y = screenH - h
	}
	return max(0, x), max(0, y)
}

func (v *ToastView) renderCard(t toast.Toast, depth int, expanded bool, now time.Time, width int) string {
	accent := styles.VariantColor(t.Variant)

	fade := 0.0
	if !expanded {
		fade = min(maxFade, depthFade*float64(depth))
	}
	if t.State == toast.StateLeaving {
		fade = leavingFade
	}
	accent = styles.Fade(accent, fade)

	// Two border cells plus one cell of padding on each side.
	inner := max(1, width-4)

	textStyle := styles.ToastTextStyle
	headingStyle := styles.ToastHeadingStyle
	if t.State == toast.StateLeaving {
		textStyle = styles.ToastLeavingStyle
		headingStyle = styles.ToastLeavingStyle
	}

	icon := lipgloss.NewStyle().Foreground(accent).Render(styles.VariantIcon(t.Variant))

	var lines []string
	header := icon
	if t.Heading != "" {
		header += " " + headingStyle.Render(ansi.Truncate(flatten(t.Heading), inner-2, "…"))
	}
	if t.Paused && !t.Persistent() {
		header += " " + styles.ToastHintStyle.Render("paused")
	}

	body := v.markdown.Render(t.Text, inner)
	if t.Heading == "" {
		// Keep the icon on the first line of the body.
		body = ansi.Wrap(icon+" "+textStyle.Render(body), inner, "")
	} else {
		lines = append(lines, header)
		body = ansi.Wrap(textStyle.Render(body), inner, "")
	}
	if t.Heading == "" && t.Paused && !t.Persistent() {
		lines = append(lines, styles.ToastHintStyle.Render("paused"))
	}
	lines = append(lines, body)

	if !t.Persistent() {
		lines = append(lines, renderProgress(t.LiveProgress(now), inner, accent))
	}

	return styles.ToastStyle.
		BorderForeground(accent).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

func renderProgress(percent float64, width int, accent color.Color) string {
	filled := int(math.Round(percent / 100 * float64(width)))
	filled = min(width, max(0, filled))

	return styles.ProgressFilledStyle.Foreground(accent).Render(strings.Repeat("━", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("─", width-filled))
}

func renderMore(hidden, width int) string {
	return styles.ToastMoreStyle.Width(width).Render(fmt.Sprintf("+%d more", hidden))
}

// flatten joins multi-line text into one line.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Overlay composites layout over background.
func (v *ToastView) Overlay(background string, layout ToastLayout) string {
	if layout.Empty() {
		return background
	}

	layers := make([]*lipgloss.Layer, 0, len(layout.stacks)+1)
	layers = append(layers, lipgloss.NewLayer(background))
	for _, s := range layout.stacks {
		layers = append(layers, lipgloss.NewLayer(s.content).X(s.x).Y(s.y).Z(2))
	}

	compositor := lipgloss.NewCompositor(layers...)
	return compositor.Render()
}
