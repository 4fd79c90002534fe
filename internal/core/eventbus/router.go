package eventbus

import "github.com/colonyops/flare/internal/core/toast"

// Sink receives toast requests routed off the bus. Methods are called on
// the bus goroutine, so implementations hand the work over to the goroutine
// that owns the toast manager.
type Sink interface {
	Show(req toast.Request)
	Clear()
	CloseInput()
}

// ToastRouter forwards toast events to a Sink.
type ToastRouter struct {
	bus  *EventBus
	sink Sink
}

// NewToastRouter constructs a router delivering toast events to sink.
func NewToastRouter(bus *EventBus, sink Sink) *ToastRouter {
	return &ToastRouter{bus: bus, sink: sink}
}

// Register subscribes the toast events.
func (r *ToastRouter) Register() {
	if r == nil || r.bus == nil || r.sink == nil {
		return
	}

	r.bus.SubscribeToastShow(func(p ShowToastPayload) {
		r.sink.Show(p.Request)
	})

	r.bus.SubscribeToastClear(func(ClearToastsPayload) {
		r.sink.Clear()
	})

	r.bus.SubscribeInputClosed(func(InputClosedPayload) {
		r.sink.CloseInput()
	})
}
