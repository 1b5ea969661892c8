package observer

import (
	"fmt"
	"sync/atomic"

	"github.com/ling-streams/rx/pkg/ack"
)

// Safe wraps a downstream Observer and enforces the at-most-one-terminal
// grammar even if the upstream source misbehaves: once OnComplete or
// OnError has run, further calls of any kind are silently dropped rather
// than forwarded, and OnNext after a Done ack is likewise dropped. A panic
// raised by downstream's OnNext is recovered and delivered as OnError, and
// that OnNext returns Done. This
// mirrors backpressureSubscriber's CAS-guarded terminal flag, generalized
// from a one-shot cancel to a full event grammar.
type Safe[T any] struct {
	downstream Observer[T]
	terminated int32
	doneAcked  int32
}

// NewSafe wraps downstream.
func NewSafe[T any](downstream Observer[T]) *Safe[T] {
	return &Safe[T]{downstream: downstream}
}

func (s *Safe[T]) OnNext(value T) (result ack.Ack) {
	if atomic.LoadInt32(&s.terminated) == 1 || atomic.LoadInt32(&s.doneAcked) == 1 {
		return ack.NowDone
	}
	defer func() {
		if r := recover(); r != nil {
			atomic.StoreInt32(&s.doneAcked, 1)
			s.OnError(fmt.Errorf("observer: OnNext panicked: %v", r))
			result = ack.NowDone
		}
	}()
	a := s.downstream.OnNext(value)
	return a.Map(func(sig ack.Signal) ack.Ack {
		if sig == ack.Done {
			atomic.StoreInt32(&s.doneAcked, 1)
		}
		return ack.Now(sig)
	})
}

func (s *Safe[T]) OnComplete() {
	if !atomic.CompareAndSwapInt32(&s.terminated, 0, 1) {
		return
	}
	s.downstream.OnComplete()
}

func (s *Safe[T]) OnError(err error) {
	if !atomic.CompareAndSwapInt32(&s.terminated, 0, 1) {
		return
	}
	s.downstream.OnError(err)
}

// IsDone reports whether a terminal event has already been delivered or the
// downstream has signaled it no longer wants more values.
func (s *Safe[T]) IsDone() bool {
	return atomic.LoadInt32(&s.terminated) == 1 || atomic.LoadInt32(&s.doneAcked) == 1
}
