package reactive

import (
	"time"

	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/cancelable"
	"github.com/ling-streams/rx/pkg/observer"
)

// Empty returns an Observable that completes immediately without emitting
// any value.
func Empty[T any]() Observable[T] {
	return Create[T](func(obs observer.Observer[T]) cancelable.Cancelable {
		obs.OnComplete()
		return cancelable.Empty
	})
}

// Unit returns an Observable that emits value once and then completes.
func Unit[T any](value T) Observable[T] {
	return Create[T](func(obs observer.Observer[T]) cancelable.Cancelable {
		obs.OnNext(value).Then(func(ack.Signal) { obs.OnComplete() })
		return cancelable.Empty
	})
}

// Error returns an Observable that immediately terminates with err.
func Error[T any](err error) Observable[T] {
	return Create[T](func(obs observer.Observer[T]) cancelable.Cancelable {
		obs.OnError(err)
		return cancelable.Empty
	})
}

// Never returns an Observable that never emits and never terminates.
func Never[T any]() Observable[T] {
	return Create[T](func(obs observer.Observer[T]) cancelable.Cancelable {
		return cancelable.Empty
	})
}

// Range emits the integers [start, start+count) in order, then completes.
func Range(start, count int) Observable[int] {
	return Create[int](func(obs observer.Observer[int]) cancelable.Cancelable {
		cancel := cancelable.NewBoolean(nil)
		go func() {
			for i := 0; i < count; i++ {
				if cancel.IsCanceled() {
					return
				}
				if obs.OnNext(start+i).Wait() == ack.Done {
					return
				}
			}
			obs.OnComplete()
		}()
		return cancel
	})
}

// FromSlice emits every element of items in order, then completes.
func FromSlice[T any](items []T) Observable[T] {
	return Create[T](func(obs observer.Observer[T]) cancelable.Cancelable {
		cancel := cancelable.NewBoolean(nil)
		go func() {
			for _, item := range items {
				if cancel.IsCanceled() {
					return
				}
				if obs.OnNext(item).Wait() == ack.Done {
					return
				}
			}
			obs.OnComplete()
		}()
		return cancel
	})
}

// Interval emits successive integers 0, 1, 2, ... spaced period apart,
// running forever until canceled.
func Interval(period time.Duration) Observable[int] {
	return Create[int](func(obs observer.Observer[int]) cancelable.Cancelable {
		stop := make(chan struct{})
		cancel := cancelable.NewBoolean(func() { close(stop) })
		go func() {
			ticker := time.NewTicker(period)
			defer ticker.Stop()
			n := 0
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					if obs.OnNext(n).Wait() == ack.Done {
						return
					}
					n++
				}
			}
		}()
		return cancel
	})
}

// Continuous repeatedly emits value, as fast as downstream acknowledges
// each one, with no delay between emissions and no termination of its own.
func Continuous[T any](value T) Observable[T] {
	return Create[T](func(obs observer.Observer[T]) cancelable.Cancelable {
		cancel := cancelable.NewBoolean(nil)
		go func() {
			for {
				if cancel.IsCanceled() {
					return
				}
				if obs.OnNext(value).Wait() == ack.Done {
					return
				}
			}
		}()
		return cancel
	})
}
