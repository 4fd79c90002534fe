package toast

import (
	"strings"
	"time"
)

// Variant is the presentational category of a toast.
type Variant string

const (
	VariantNone    Variant = ""
	VariantSuccess Variant = "success"
	VariantWarning Variant = "warning"
	VariantDanger  Variant = "danger"
	VariantInfo    Variant = "info"
)

// Variants lists the named variants in display order.
var Variants = []Variant{VariantSuccess, VariantWarning, VariantDanger, VariantInfo}

// ParseVariant normalizes s into a Variant. "error" is accepted as an alias
// of danger. The empty string parses as VariantNone.
func ParseVariant(s string) (Variant, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return VariantNone, true
	case "success":
		return VariantSuccess, true
	case "warning":
		return VariantWarning, true
	case "danger", "error":
		return VariantDanger, true
	case "info":
		return VariantInfo, true
	}
	return VariantNone, false
}

// Position is one of the six screen anchors a toast stack can attach to.
type Position string

const (
	PositionTopStart     Position = "top start"
	PositionTopCenter    Position = "top center"
	PositionTopEnd       Position = "top end"
	PositionBottomStart  Position = "bottom start"
	PositionBottomCenter Position = "bottom center"
	PositionBottomEnd    Position = "bottom end"
)

// Positions lists every anchor.
var Positions = []Position{
	PositionTopStart,
	PositionTopCenter,
	PositionTopEnd,
	PositionBottomStart,
	PositionBottomCenter,
	PositionBottomEnd,
}

// ParsePosition normalizes s ("Top-End", "bottom_start", "top center") into
// a Position.
func ParsePosition(s string) (Position, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	norm = strings.Join(strings.Fields(norm), " ")

	for _, p := range Positions {
		if string(p) == norm {
			return p, true
		}
	}
	return "", false
}

// Top reports whether the anchor is on the top edge.
func (p Position) Top() bool {
	return strings.HasPrefix(string(p), "top")
}

// State is the lifecycle phase of a toast.
type State string

const (
	StateEntering State = "entering"
	StateActive   State = "active"
	StateLeaving  State = "leaving"
)

// Toast is a single notification as observed by the presentation layer.
// Values handed out in snapshots are copies.
type Toast struct {
	ID        int64
	Text      string
	Heading   string
	Variant   Variant
	Position  Position
	Duration  time.Duration // 0 means persistent
	Remaining time.Duration
	State     State
	Paused    bool
	StartedAt time.Time // when the countdown last (re)started
	CreatedAt time.Time
}

// Persistent reports whether the toast only leaves on explicit dismissal.
func (t Toast) Persistent() bool {
	return t.Duration <= 0
}

// Progress returns Remaining as a percentage of Duration. Persistent toasts
// report 0.
func (t Toast) Progress() float64 {
	if t.Persistent() {
		return 0
	}
	return float64(t.Remaining) / float64(t.Duration) * 100
}

// LiveRemaining returns the time left at now, accounting for a countdown
// that is currently running.
func (t Toast) LiveRemaining(now time.Time) time.Duration {
	if t.State != StateActive || t.Paused || t.Persistent() || t.StartedAt.IsZero() {
		return t.Remaining
	}
	return max(0, t.Remaining-now.Sub(t.StartedAt))
}

// LiveProgress is Progress computed from LiveRemaining.
func (t Toast) LiveProgress(now time.Time) float64 {
	if t.Persistent() {
		return 0
	}
	return float64(t.LiveRemaining(now)) / float64(t.Duration) * 100
}
