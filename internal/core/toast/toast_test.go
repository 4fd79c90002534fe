package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in     string
		want   Variant
		wantOK bool
	}{
		{in: "", want: VariantNone, wantOK: true},
		{in: "success", want: VariantSuccess, wantOK: true},
		{in: " Warning ", want: VariantWarning, wantOK: true},
		{in: "DANGER", want: VariantDanger, wantOK: true},
		{in: "error", want: VariantDanger, wantOK: true},
		{in: "info", want: VariantInfo, wantOK: true},
		{in: "fatal", want: VariantNone, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseVariant(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in     string
		want   Position
		wantOK bool
	}{
		{in: "top start", want: PositionTopStart, wantOK: true},
		{in: "Top-Center", want: PositionTopCenter, wantOK: true},
		{in: "top_end", want: PositionTopEnd, wantOK: true},
		{in: "  bottom   start ", want: PositionBottomStart, wantOK: true},
		{in: "bottom-center", want: PositionBottomCenter, wantOK: true},
		{in: "BOTTOM END", want: PositionBottomEnd, wantOK: true},
		{in: "", wantOK: false},
		{in: "middle", wantOK: false},
		{in: "top left", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePosition(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestPosition_Top(t *testing.T) {
	assert.True(t, PositionTopCenter.Top())
	assert.False(t, PositionBottomStart.Top())
}

func TestRequestHelpers(t *testing.T) {
	d := 2 * time.Second

	tests := []struct {
		name string
		got  Request
		want Request
	}{
		{name: "new", got: New("plain"), want: Request{Text: "plain"}},
		{name: "success", got: Success("ok"), want: Request{Text: "ok", Variant: "success"}},
		{name: "warning", got: Warning("hm"), want: Request{Text: "hm", Variant: "warning"}},
		{name: "danger", got: Danger("no"), want: Request{Text: "no", Variant: "danger"}},
		{name: "error aliases danger", got: Error("no"), want: Request{Text: "no", Variant: "danger"}},
		{name: "info", got: Info("fyi"), want: Request{Text: "fyi", Variant: "info"}},
		{
			name: "helper variant wins over option",
			got:  Success("ok", WithVariant(VariantDanger)),
			want: Request{Text: "ok", Variant: "success"},
		},
		{
			name: "options",
			got:  New("x", WithHeading("H"), WithDuration(d), WithPosition(PositionTopEnd), WithVariant(VariantInfo)),
			want: Request{Text: "x", Heading: "H", Duration: &d, Position: "top end", Variant: "info"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestPersistentOption(t *testing.T) {
	r := New("x", Persistent())
	if assert.NotNil(t, r.Duration) {
		assert.Zero(t, *r.Duration)
	}
}

func TestLifecycle_Merge(t *testing.T) {
	var calls []string

	a := Lifecycle{OnShow: func(Toast) { calls = append(calls, "a.show") }}
	b := Lifecycle{
		OnShow:    func(Toast) { calls = append(calls, "b.show") },
		OnDismiss: func(Toast, DismissReason) { calls = append(calls, "b.dismiss") },
	}

	merged := a.Merge(b)
	merged.show(Toast{})
	merged.dismiss(Toast{}, ReasonManual)
	merged.remove(Toast{})

	assert.Equal(t, []string{"a.show", "b.show", "b.dismiss"}, calls)
}
