package observer

import (
	"sync"

	"github.com/ling-streams/rx/pkg/ack"
)

type bufferedItem[T any] struct {
	value   T
	resolve *ack.Async
}

// Buffered decouples the producer from the downstream Observer with an
// unbounded FIFO queue drained by a single goroutine, so a slow downstream
// never blocks the caller of OnNext: every OnNext returns a pending Ack that
// resolves once the drain fiber has actually delivered the value and
// received downstream's signal. This generalizes backpressureSubscriber's
// buffer-channel-plus-process-goroutine design from a bounded channel and a
// request-based pull protocol to an unbounded queue under the Ack push
// protocol.
type Buffered[T any] struct {
	downstream Observer[T]

	mu       sync.Mutex
	cond     *sync.Cond
	queue    []bufferedItem[T]
	draining bool
	stopped  bool
}

// NewBuffered wraps downstream with an unbounded async queue.
func NewBuffered[T any](downstream Observer[T]) *Buffered[T] {
	b := &Buffered[T]{downstream: downstream}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *Buffered[T]) OnNext(value T) ack.Ack {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return ack.NowDone
	}
	resolve := ack.NewAsync()
	b.queue = append(b.queue, bufferedItem[T]{value: value, resolve: resolve})
	startDrain := !b.draining
	if startDrain {
		b.draining = true
	}
	b.mu.Unlock()

	if startDrain {
		go b.drain()
	}
	return ack.Pending(resolve)
}

func (b *Buffered[T]) drain() {
	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.draining = false
			b.cond.Broadcast()
			b.mu.Unlock()
			return
		}
		item := b.queue[0]
		b.queue = b.queue[1:]
		stopped := b.stopped
		b.mu.Unlock()

		if stopped {
			item.resolve.Resolve(ack.Done)
			continue
		}

		signal := b.downstream.OnNext(item.value).Wait()
		item.resolve.Resolve(signal)
		if signal == ack.Done {
			b.mu.Lock()
			b.stopped = true
			remaining := b.queue
			b.queue = nil
			b.draining = false
			b.cond.Broadcast()
			b.mu.Unlock()
			for _, rest := range remaining {
				rest.resolve.Resolve(ack.Done)
			}
			return
		}
	}
}

func (b *Buffered[T]) OnComplete() {
	b.waitForDrain()
	b.downstream.OnComplete()
}

func (b *Buffered[T]) OnError(err error) {
	b.waitForDrain()
	b.downstream.OnError(err)
}

// waitForDrain blocks until the queue has been fully drained, since
// terminal events must only be forwarded after every queued value has
// reached downstream.
func (b *Buffered[T]) waitForDrain() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.draining || len(b.queue) != 0 {
		b.cond.Wait()
	}
}
