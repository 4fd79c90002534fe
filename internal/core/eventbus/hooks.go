package eventbus

import (
	"context"
	"sync"
)

// DropReason says why an event never reached the subscribers.
type DropReason string

const (
	// DropFull is reported by Publish* when the buffer has no room.
	DropFull DropReason = "full"
	// DropCancelled is reported by Publish*Wait when its context ends first.
	DropCancelled DropReason = "cancelled"
)

// hookList is a copy-on-read list of callbacks.
type hookList[F any] struct {
	mu  sync.RWMutex
	fns []F
}

func (l *hookList[F]) add(fn F) {
	l.mu.Lock()
	l.fns = append(l.fns, fn)
	l.mu.Unlock()
}

func (l *hookList[F]) snapshot() []F {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]F(nil), l.fns...)
}

type hooks struct {
	publishes  hookList[func(Event, any)]
	drops      hookList[func(Event, any, DropReason)]
	subscribes hookList[func(Event)]
	panics     hookList[func(Event, any, any)]
}

// OnPublish registers fn to run after an event is enqueued.
func (bus *EventBus) OnPublish(fn func(Event, any)) { bus.hooks.publishes.add(fn) }

// OnDrop registers fn to run when an event is discarded instead of enqueued.
func (bus *EventBus) OnDrop(fn func(Event, any, DropReason)) { bus.hooks.drops.add(fn) }

// OnSubscribe registers fn to run after a subscriber is added.
func (bus *EventBus) OnSubscribe(fn func(Event)) { bus.hooks.subscribes.add(fn) }

// OnPanic registers fn to run when a subscriber panics. A panicking hook
// is ignored.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) { bus.hooks.panics.add(fn) }

// send enqueues without blocking; a full buffer drops the event.
func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		bus.published(event, payload)
	default:
		bus.dropped(event, payload, DropFull)
	}
}

// sendWait enqueues, waiting for room. It fails only when ctx ends first.
func (bus *EventBus) sendWait(ctx context.Context, event Event, payload any) error {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		bus.published(event, payload)
		return nil
	case <-ctx.Done():
		bus.dropped(event, payload, DropCancelled)
		return ctx.Err()
	}
}

func (bus *EventBus) published(event Event, payload any) {
	for _, fn := range bus.hooks.publishes.snapshot() {
		fn(event, payload)
	}
}

func (bus *EventBus) dropped(event Event, payload any, reason DropReason) {
	for _, fn := range bus.hooks.drops.snapshot() {
		fn(event, payload, reason)
	}
}

func (bus *EventBus) subscribed(event Event) {
	for _, fn := range bus.hooks.subscribes.snapshot() {
		fn(event)
	}
}

func (bus *EventBus) panicked(event Event, payload any, recovered any) {
	for _, fn := range bus.hooks.panics.snapshot() {
		func() {
			defer func() { _ = recover() }()
			fn(event, payload, recovered)
		}()
	}
}
