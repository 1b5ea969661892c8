// Package mergebuf implements the merge acknowledgement buffer: the
// serialization point the merge operator uses to fan multiple concurrently
// emitting inner observables into a single downstream observer without
// interleaving two onNext deliveries at once.
package mergebuf

import (
	"sync"

	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/observer"
)

// Buffer serializes concurrent OnNext calls from any number of upstream
// producers into a single chain of calls against downstream, so that two
// inner observables racing to emit never deliver two values to downstream
// at once. Each producer calls ScheduleNext and gets back an Ack that
// resolves once downstream has actually processed that specific value
// (after everything scheduled ahead of it).
type Buffer[T any] struct {
	downstream observer.Observer[T]

	mu      sync.Mutex
	pending int // number of producer references still allowed to emit
	chain   chan struct{}
	done    bool
	signal  ack.Signal
}

// New creates a merge buffer with refs outstanding producer references; the
// downstream terminal is only forwarded once every reference has called
// ScheduleDone and every scheduled value has drained.
func New[T any](downstream observer.Observer[T], refs int) *Buffer[T] {
	b := &Buffer[T]{downstream: downstream, pending: refs}
	b.chain = make(chan struct{}, 1)
	b.chain <- struct{}{}
	return b
}

// ScheduleNext enqueues value for delivery to downstream once every
// previously scheduled value has been acknowledged, and returns an Ack that
// resolves with downstream's signal for this specific value.
func (b *Buffer[T]) ScheduleNext(value T) ack.Ack {
	async := ack.NewAsync()
	go func() {
		<-b.chain
		b.mu.Lock()
		alreadyDone := b.done
		b.mu.Unlock()

		if alreadyDone {
			async.Resolve(ack.Done)
			b.chain <- struct{}{}
			return
		}

		signal := b.downstream.OnNext(value).Wait()
		async.Resolve(signal)
		if signal == ack.Done {
			b.mu.Lock()
			b.done = true
			b.signal = ack.Done
			b.mu.Unlock()
		}
		b.chain <- struct{}{}
	}()
	return ack.Pending(async)
}

// ScheduleOnError marks the buffer terminated with err, behind the same
// ordering chain every ScheduleNext uses, so an error racing with an
// in-flight value is still delivered after that value settles.
func (b *Buffer[T]) ScheduleOnError(err error) {
	go func() {
		<-b.chain
		b.mu.Lock()
		already := b.done
		b.done = true
		b.mu.Unlock()
		if !already {
			b.downstream.OnError(err)
		}
		b.chain <- struct{}{}
	}()
}

// ScheduleDone records that one producer reference has finished emitting.
// Once every reference has called ScheduleDone, OnComplete is delivered to
// downstream behind the ordering chain, unless the buffer already
// terminated via ScheduleOnError or a downstream Done ack.
func (b *Buffer[T]) ScheduleDone() {
	go func() {
		<-b.chain
		b.mu.Lock()
		b.pending--
		fire := b.pending == 0 && !b.done
		if fire {
			b.done = true
		}
		b.mu.Unlock()
		if fire {
			b.downstream.OnComplete()
		}
		b.chain <- struct{}{}
	}()
}
