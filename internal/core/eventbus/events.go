// Package eventbus provides a typed publish/subscribe event bus that carries
// toast requests from producers (commands, pipes, other goroutines) to the
// host that owns the toast manager.
package eventbus

import (
	"context"

	"github.com/colonyops/flare/internal/core/toast"
)

const (
	// Keep list sorted A-Z
	EventInputClosed Event = "input.closed"
	EventToastClear  Event = "toast.clear"
	EventToastShow   Event = "toast.show"
	EventTuiStarted  Event = "tui.started"
	EventTuiStopped  Event = "tui.stopped"
)

// ShowToastPayload asks the host to show a toast.
type ShowToastPayload struct {
	Request toast.Request
}

// ClearToastsPayload asks the host to dismiss every toast.
type ClearToastsPayload struct{}

// InputClosedPayload tells the host that the request source is exhausted.
// It is delivered after every request published before it.
type InputClosedPayload struct{}

// TUIStartedPayload is emitted when the TUI starts.
type TUIStartedPayload struct{}

// TUIStoppedPayload is emitted when the TUI stops.
type TUIStoppedPayload struct{}

func (bus *EventBus) PublishToastShow(p ShowToastPayload) {
	bus.send(EventToastShow, p)
}

// PublishToastShowWait is PublishToastShow for stream producers: it blocks
// while the buffer is full rather than dropping the request.
func (bus *EventBus) PublishToastShowWait(ctx context.Context, p ShowToastPayload) error {
	return bus.sendWait(ctx, EventToastShow, p)
}

func (bus *EventBus) SubscribeToastShow(fn func(ShowToastPayload)) {
	bus.subscribe(EventToastShow, func(p any) { fn(p.(ShowToastPayload)) })
}

func (bus *EventBus) PublishToastClear(p ClearToastsPayload) {
	bus.send(EventToastClear, p)
}

func (bus *EventBus) PublishToastClearWait(ctx context.Context, p ClearToastsPayload) error {
	return bus.sendWait(ctx, EventToastClear, p)
}

func (bus *EventBus) SubscribeToastClear(fn func(ClearToastsPayload)) {
	bus.subscribe(EventToastClear, func(p any) { fn(p.(ClearToastsPayload)) })
}

func (bus *EventBus) PublishInputClosed(p InputClosedPayload) {
	bus.send(EventInputClosed, p)
}

func (bus *EventBus) PublishInputClosedWait(ctx context.Context, p InputClosedPayload) error {
	return bus.sendWait(ctx, EventInputClosed, p)
}

func (bus *EventBus) SubscribeInputClosed(fn func(InputClosedPayload)) {
	bus.subscribe(EventInputClosed, func(p any) { fn(p.(InputClosedPayload)) })
}

func (bus *EventBus) PublishTuiStarted(p TUIStartedPayload) {
	bus.send(EventTuiStarted, p)
}

func (bus *EventBus) SubscribeTuiStarted(fn func(TUIStartedPayload)) {
	bus.subscribe(EventTuiStarted, func(p any) { fn(p.(TUIStartedPayload)) })
}

func (bus *EventBus) PublishTuiStopped(p TUIStoppedPayload) {
	bus.send(EventTuiStopped, p)
}

func (bus *EventBus) SubscribeTuiStopped(fn func(TUIStoppedPayload)) {
	bus.subscribe(EventTuiStopped, func(p any) { fn(p.(TUIStoppedPayload)) })
}
