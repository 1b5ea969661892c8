package observer

import (
	"sync"

	"github.com/ling-streams/rx/pkg/ack"
)

type connectableEvent[T any] struct {
	isTerminal bool
	isError    bool
	value      T
	err        error
	resolve    *ack.Async
}

// Connectable buffers every event it receives until Connect is called, at
// which point the buffer is replayed to downstream in order and the
// observer switches to forwarding events live. This backs multicast's
// publish family, where subscribers must be able to attach to a source
// before the underlying subscription is actually established.
type Connectable[T any] struct {
	downstream Observer[T]

	mu        sync.Mutex
	connected bool
	buffer    []connectableEvent[T]
}

// NewConnectable wraps downstream, holding back every event until Connect
// is called.
func NewConnectable[T any](downstream Observer[T]) *Connectable[T] {
	return &Connectable[T]{downstream: downstream}
}

// Connect flushes any buffered events to downstream and switches the
// observer to live forwarding. Calling Connect more than once has no
// additional effect.
func (c *Connectable[T]) Connect() {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return
	}
	c.connected = true
	buffered := c.buffer
	c.buffer = nil
	c.mu.Unlock()

	for _, evt := range buffered {
		c.deliver(evt)
	}
}

func (c *Connectable[T]) deliver(evt connectableEvent[T]) {
	switch {
	case evt.isTerminal && evt.isError:
		c.downstream.OnError(evt.err)
	case evt.isTerminal:
		c.downstream.OnComplete()
	default:
		signal := c.downstream.OnNext(evt.value).Wait()
		if evt.resolve != nil {
			evt.resolve.Resolve(signal)
		}
	}
}

func (c *Connectable[T]) OnNext(value T) ack.Ack {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return c.downstream.OnNext(value)
	}
	resolve := ack.NewAsync()
	c.buffer = append(c.buffer, connectableEvent[T]{value: value, resolve: resolve})
	c.mu.Unlock()
	return ack.Pending(resolve)
}

func (c *Connectable[T]) OnComplete() {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		c.downstream.OnComplete()
		return
	}
	c.buffer = append(c.buffer, connectableEvent[T]{isTerminal: true})
	c.mu.Unlock()
}

func (c *Connectable[T]) OnError(err error) {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		c.downstream.OnError(err)
		return
	}
	c.buffer = append(c.buffer, connectableEvent[T]{isTerminal: true, isError: true, err: err})
	c.mu.Unlock()
}
