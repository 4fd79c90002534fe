// Package headless runs a toast manager without a terminal UI. Lifecycle
// transitions are written as JSON lines, which makes the manager usable
// from scripts and other programs.
package headless

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/flare/internal/core/schedule"
	"github.com/colonyops/flare/internal/core/toast"
	"github.com/colonyops/flare/pkg/iojson"
)

// Event is one line of output.
type Event struct {
	Type     string    `json:"type"` // shown, dismissed, removed
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	Heading  string    `json:"heading,omitempty"`
	Variant  string    `json:"variant,omitempty"`
	Position string    `json:"position"`
	Duration int64     `json:"duration_ms"`
	Reason   string    `json:"reason,omitempty"`
	At       time.Time `json:"at"`
}

// Options configures a Host.
type Options struct {
	Toast toast.Options
	// ExitWhenIdle stops Run once input is closed and the last toast has
	// been removed.
	ExitWhenIdle bool
}

// Host owns a toast manager driven by a schedule.Loop. Show and Clear may
// be called from any goroutine; it implements eventbus.Sink.
type Host struct {
	loop    *schedule.Loop
	manager *toast.Manager
	log     zerolog.Logger

	out *iojson.LineWriter

	exitWhenIdle bool
	inputClosed  bool
	cancel       context.CancelFunc
}

// New creates a host writing events to w.
func New(w io.Writer, opts Options) *Host {
	h := &Host{
		loop:         schedule.NewLoop(64),
		log:          opts.Toast.Logger,
		out:          iojson.NewLineWriter(w),
		exitWhenIdle: opts.ExitWhenIdle,
	}

	own := toast.Lifecycle{
		OnShow: func(t toast.Toast) {
			h.emit("shown", t, "")
		},
		OnDismiss: func(t toast.Toast, reason toast.DismissReason) {
			h.emit("dismissed", t, reason)
		},
		OnRemove: func(t toast.Toast) {
			h.emit("removed", t, "")
		},
	}

	topts := opts.Toast
	topts.Lifecycle = own.Merge(opts.Toast.Lifecycle)
	h.manager = toast.NewManager(h.loop, topts)
	h.manager.Subscribe(func(toast.Snapshot) { h.checkIdle() })

	return h
}

// Show queues a request. Requests arriving after Run returned are dropped.
func (h *Host) Show(req toast.Request) {
	if !h.loop.Post(func() { h.manager.Show(req) }) {
		h.log.Debug().Msg("host stopped, dropping toast request")
	}
}

// Clear dismisses every toast.
func (h *Host) Clear() {
	h.loop.Post(h.manager.DismissAll)
}

// CloseInput records that no further requests will arrive.
func (h *Host) CloseInput() {
	h.loop.Post(func() {
		h.inputClosed = true
		h.checkIdle()
	})
}

// Do runs fn on the host goroutine with the manager and waits for it.
func (h *Host) Do(fn func(*toast.Manager)) bool {
	done := make(chan struct{})
	if !h.loop.Post(func() {
		fn(h.manager)
		close(done)
	}) {
		return false
	}

	select {
	case <-done:
		return true
	case <-h.loop.Done():
		return false
	}
}

// Run processes requests and timers until ctx is cancelled or, with
// ExitWhenIdle, until the host goes idle.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	h.cancel = cancel

	h.loop.Run(ctx)
	h.manager.Close()
	return nil
}

// Done is closed when Run returns.
func (h *Host) Done() <-chan struct{} {
	return h.loop.Done()
}

func (h *Host) checkIdle() {
	if h.exitWhenIdle && h.inputClosed && h.manager.Len() == 0 && h.cancel != nil {
		h.cancel()
	}
}

func (h *Host) emit(kind string, t toast.Toast, reason toast.DismissReason) {
	err := h.out.Write(Event{
		Type:     kind,
		ID:       t.ID,
		Text:     t.Text,
		Heading:  t.Heading,
		Variant:  string(t.Variant),
		Position: string(t.Position),
		Duration: t.Duration.Milliseconds(),
		Reason:   string(reason),
		At:       h.loop.Now(),
	})
	if err != nil {
		h.log.Warn().Err(err).Str("type", kind).Msg("failed to write event")
	}
}
