// Package testbus runs a real EventBus for tests and records what its
// subscribers receive, in delivery order.
package testbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/colonyops/flare/internal/core/eventbus"
	"github.com/colonyops/flare/internal/core/toast"
)

// RecordedEvent is one delivered event.
type RecordedEvent struct {
	Event   eventbus.Event
	Payload any
}

// Bus is a started EventBus that records every delivery.
type Bus struct {
	*eventbus.EventBus

	mu      sync.Mutex
	events  []RecordedEvent
	changed chan struct{}
}

// New starts a recording bus that stops when the test ends.
func New(t *testing.T) *Bus {
	t.Helper()

	tb := &Bus{
		EventBus: eventbus.New(64),
		changed:  make(chan struct{}, 1),
	}

	tb.SubscribeToastShow(func(p eventbus.ShowToastPayload) { tb.record(eventbus.EventToastShow, p) })
	tb.SubscribeToastClear(func(p eventbus.ClearToastsPayload) { tb.record(eventbus.EventToastClear, p) })
	tb.SubscribeInputClosed(func(p eventbus.InputClosedPayload) { tb.record(eventbus.EventInputClosed, p) })
	tb.SubscribeTuiStarted(func(p eventbus.TUIStartedPayload) { tb.record(eventbus.EventTuiStarted, p) })
	tb.SubscribeTuiStopped(func(p eventbus.TUIStoppedPayload) { tb.record(eventbus.EventTuiStopped, p) })

	ctx, cancel := context.WithCancel(context.Background())
	go tb.Start(ctx)
	t.Cleanup(cancel)

	return tb
}

func (tb *Bus) record(event eventbus.Event, payload any) {
	tb.mu.Lock()
	tb.events = append(tb.events, RecordedEvent{Event: event, Payload: payload})
	tb.mu.Unlock()

	select {
	case tb.changed <- struct{}{}:
	default:
	}
}

// Events returns the deliveries so far.
func (tb *Bus) Events() []RecordedEvent {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return append([]RecordedEvent(nil), tb.events...)
}

// Shown returns the requests delivered on toast.show, oldest first.
func (tb *Bus) Shown() []toast.Request {
	var out []toast.Request
	for _, e := range tb.Events() {
		if p, ok := e.Payload.(eventbus.ShowToastPayload); ok {
			out = append(out, p.Request)
		}
	}
	return out
}

// Count returns how many events of the given type were delivered.
func (tb *Bus) Count(event eventbus.Event) int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	n := 0
	for _, e := range tb.events {
		if e.Event == event {
			n++
		}
	}
	return n
}

// WaitFor reports whether event is delivered before timeout.
func (tb *Bus) WaitFor(event eventbus.Event, timeout time.Duration) bool {
	return tb.WaitForCount(event, 1, timeout)
}

// WaitForCount reports whether n events of the type are delivered before
// timeout.
func (tb *Bus) WaitForCount(event eventbus.Event, n int, timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for tb.Count(event) < n {
		select {
		case <-tb.changed:
		case <-deadline.C:
			return tb.Count(event) >= n
		}
	}
	return true
}
