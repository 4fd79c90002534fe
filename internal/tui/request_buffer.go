package tui

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/flare/internal/core/toast"
)

type opKind int

const (
	opShow opKind = iota
	opClear
	opCloseInput
)

// bufferedOp is one request routed off the bus.
type bufferedOp struct {
	kind opKind
	req  toast.Request
}

// RequestBuffer buffers toast requests arriving from other goroutines and
// emits coalesced drain signals into the Bubble Tea loop. It implements
// eventbus.Sink.
type RequestBuffer struct {
	mu     sync.Mutex
	ops    []bufferedOp
	signal chan struct{}
}

// NewRequestBuffer constructs a buffer for async request delivery.
func NewRequestBuffer() *RequestBuffer {
	return &RequestBuffer{
		ops:    make([]bufferedOp, 0),
		signal: make(chan struct{}, 1),
	}
}

// Show queues a show request and emits a non-blocking drain signal.
func (b *RequestBuffer) Show(req toast.Request) {
	b.push(bufferedOp{kind: opShow, req: req})
}

// Clear queues a dismiss-all. Requests queued before it are still shown
// first, so they are dismissed too.
func (b *RequestBuffer) Clear() {
	b.push(bufferedOp{kind: opClear})
}

// CloseInput queues the end-of-input marker behind every pending request.
func (b *RequestBuffer) CloseInput() {
	b.push(bufferedOp{kind: opCloseInput})
}

func (b *RequestBuffer) push(op bufferedOp) {
	b.mu.Lock()
	b.ops = append(b.ops, op)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered operations in arrival order and clears the buffer.
func (b *RequestBuffer) Drain() []bufferedOp {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.ops) == 0 {
		return nil
	}

	out := make([]bufferedOp, len(b.ops))
	copy(out, b.ops)
	b.ops = b.ops[:0]
	return out
}

// WaitForSignal blocks until there are requests ready to drain.
func (b *RequestBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainRequestsMsg{}
	}
}

type drainRequestsMsg struct{}
