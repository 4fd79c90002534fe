package eventbus

import (
	"context"
	"sync"
)

// Event names a topic on the bus.
type Event string

type envelope struct {
	event   Event
	payload any
}

// EventBus is a buffered, single-consumer publish/subscribe bus. Publish*
// never blocks: events that do not fit in the buffer are dropped and
// reported through OnDrop hooks. Publish*Wait blocks for room instead.
// Subscribers run on the goroutine that called Start, in publish order.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with room for buffer pending events.
func New(buffer int) *EventBus {
	if buffer < 1 {
		buffer = 1
	}
	return &EventBus{
		ch:   make(chan envelope, buffer),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events to subscribers until ctx is cancelled.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()

	bus.subscribed(event)
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					bus.panicked(env.event, env.payload, r)
				}
			}()
			fn(env.payload)
		}()
	}
}
