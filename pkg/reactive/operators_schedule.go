package reactive

import (
	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/cancelable"
	"github.com/ling-streams/rx/pkg/observer"
	"github.com/ling-streams/rx/pkg/scheduler"
)

// ObserveOn moves delivery of every event to downstream onto sched, so a
// producer running on one goroutine never blocks on a slow observer
// running arbitrary user code on its own.
func ObserveOn[T any](src Observable[T], sched scheduler.Scheduler) Observable[T] {
	return lift[T, T](src, func(downstream observer.Observer[T]) observer.Observer[T] {
		return observer.Func[T]{
			Next: func(v T) ack.Ack {
				async := ack.NewAsync()
				sched.Submit(func() {
					async.Resolve(downstream.OnNext(v).Wait())
				})
				return ack.Pending(async)
			},
			Complete: func() { sched.Submit(downstream.OnComplete) },
			Error:    func(err error) { sched.Submit(func() { downstream.OnError(err) }) },
		}
	})
}

// SubscribeOn moves the act of subscribing to src (and therefore any
// synchronous work src's subscribe function does before returning) onto
// sched.
func SubscribeOn[T any](src Observable[T], sched scheduler.Scheduler) Observable[T] {
	return Create[T](func(downstream observer.Observer[T]) cancelable.Cancelable {
		handle := cancelable.NewSingleAssignment()
		sched.Submit(func() {
			handle.Set(src.subscribe(downstream))
		})
		return handle
	})
}
