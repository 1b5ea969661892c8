package reactive

import (
	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/cancelable"
	"github.com/ling-streams/rx/pkg/notification"
	"github.com/ling-streams/rx/pkg/observer"
)

// Map applies f to every value emitted by src. A panic inside f is recovered
// and delivered downstream as onError instead of crashing the producer.
func Map[T, R any](src Observable[T], f func(T) R) Observable[R] {
	return lift[T, R](src, func(downstream observer.Observer[R]) observer.Observer[T] {
		return observer.Func[T]{
			Next: func(v T) ack.Ack {
				result, err := guardUser(func() R { return f(v) })
				if err != nil {
					downstream.OnError(err)
					return ack.NowDone
				}
				return downstream.OnNext(result)
			},
			Complete: downstream.OnComplete,
			Error:    downstream.OnError,
		}
	})
}

// Filter emits only the values for which pred returns true. A panic inside
// pred is recovered and delivered downstream as onError.
func Filter[T any](src Observable[T], pred func(T) bool) Observable[T] {
	return lift[T, T](src, func(downstream observer.Observer[T]) observer.Observer[T] {
		return observer.Func[T]{
			Next: func(v T) ack.Ack {
				keep, err := guardUser(func() bool { return pred(v) })
				if err != nil {
					downstream.OnError(err)
					return ack.NowDone
				}
				if !keep {
					return ack.NowContinue
				}
				return downstream.OnNext(v)
			},
			Complete: downstream.OnComplete,
			Error:    downstream.OnError,
		}
	})
}

// Scan emits every intermediate accumulator value produced by folding f
// over src's emissions, starting from seed. Unlike FoldLeft, every step is
// emitted, not just the final one. A panic inside f is recovered and
// delivered downstream as onError.
func Scan[T, R any](src Observable[T], seed R, f func(acc R, value T) R) Observable[R] {
	return lift[T, R](src, func(downstream observer.Observer[R]) observer.Observer[T] {
		acc := seed
		return observer.Func[T]{
			Next: func(v T) ack.Ack {
				next, err := guardUser(func() R { return f(acc, v) })
				if err != nil {
					downstream.OnError(err)
					return ack.NowDone
				}
				acc = next
				return downstream.OnNext(acc)
			},
			Complete: downstream.OnComplete,
			Error:    downstream.OnError,
		}
	})
}

// FoldLeft emits a single value: the result of folding f over every value
// src emits, starting from seed. Nothing is emitted until src completes. A
// panic inside f is recovered and delivered downstream as onError.
func FoldLeft[T, R any](src Observable[T], seed R, f func(acc R, value T) R) Observable[R] {
	return Create[R](func(downstream observer.Observer[R]) cancelable.Cancelable {
		acc := seed
		upstream := cancelable.NewSingleAssignment()
		sub := src.subscribe(observer.Func[T]{
			Next: func(v T) ack.Ack {
				next, err := guardUser(func() R { return f(acc, v) })
				if err != nil {
					downstream.OnError(err)
					upstream.Cancel()
					return ack.NowDone
				}
				acc = next
				return ack.NowContinue
			},
			Complete: func() {
				downstream.OnNext(acc).Then(func(ack.Signal) { downstream.OnComplete() })
			},
			Error: downstream.OnError,
		})
		upstream.Set(sub)
		return upstream
	})
}

// Reduce is FoldLeft using src's first emitted value as the seed. If src
// completes without emitting anything, the result Observable also
// completes without emitting. A panic inside f is recovered and delivered
// downstream as onError.
func Reduce[T any](src Observable[T], f func(acc, value T) T) Observable[T] {
	return Create[T](func(downstream observer.Observer[T]) cancelable.Cancelable {
		var acc T
		seen := false
		upstream := cancelable.NewSingleAssignment()
		sub := src.subscribe(observer.Func[T]{
			Next: func(v T) ack.Ack {
				if !seen {
					acc = v
					seen = true
					return ack.NowContinue
				}
				next, err := guardUser(func() T { return f(acc, v) })
				if err != nil {
					downstream.OnError(err)
					upstream.Cancel()
					return ack.NowDone
				}
				acc = next
				return ack.NowContinue
			},
			Complete: func() {
				if !seen {
					downstream.OnComplete()
					return
				}
				downstream.OnNext(acc).Then(func(ack.Signal) { downstream.OnComplete() })
			},
			Error: downstream.OnError,
		})
		upstream.Set(sub)
		return upstream
	})
}

// Materialize reifies every event src produces (onNext/onComplete/onError)
// into a notification.Notification value, so downstream sees a normal
// onNext stream that itself completes exactly once, right after the
// reified terminal notification.
func Materialize[T any](src Observable[T]) Observable[notification.Notification[T]] {
	return Create[notification.Notification[T]](func(downstream observer.Observer[notification.Notification[T]]) cancelable.Cancelable {
		return src.subscribe(observer.Func[T]{
			Next: func(v T) ack.Ack {
				return downstream.OnNext(notification.Next(v))
			},
			Complete: func() {
				downstream.OnNext(notification.Complete[T]()).Then(func(ack.Signal) { downstream.OnComplete() })
			},
			Error: func(err error) {
				downstream.OnNext(notification.Error[T](err)).Then(func(ack.Signal) { downstream.OnComplete() })
			},
		})
	})
}
