package reactive

import (
	"sync"

	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/cancelable"
	"github.com/ling-streams/rx/pkg/observer"
)

// Take emits at most the first n values src produces, then completes and
// cancels the upstream subscription.
func Take[T any](src Observable[T], n int) Observable[T] {
	if n <= 0 {
		return Empty[T]()
	}
	return Create[T](func(downstream observer.Observer[T]) cancelable.Cancelable {
		var mu sync.Mutex
		count := 0
		upstream := cancelable.NewSingleAssignment()

		sub := src.subscribe(observer.Func[T]{
			Next: func(v T) ack.Ack {
				mu.Lock()
				count++
				reachedLimit := count >= n
				mu.Unlock()

				sig := downstream.OnNext(v).Wait()
				if sig == ack.Done {
					return ack.NowDone
				}
				if reachedLimit {
					downstream.OnComplete()
					upstream.Cancel()
					return ack.NowDone
				}
				return ack.NowContinue
			},
			Complete: downstream.OnComplete,
			Error:    downstream.OnError,
		})
		upstream.Set(sub)
		return upstream
	})
}

// TakeRight emits only the last n values src produces, delivered in order
// once src completes. It must buffer up to n values.
func TakeRight[T any](src Observable[T], n int) Observable[T] {
	if n <= 0 {
		return Create[T](func(downstream observer.Observer[T]) cancelable.Cancelable {
			return src.subscribe(observer.Func[T]{
				Complete: downstream.OnComplete,
				Error:    downstream.OnError,
			})
		})
	}
	return Create[T](func(downstream observer.Observer[T]) cancelable.Cancelable {
		var mu sync.Mutex
		buf := make([]T, 0, n)
		return src.subscribe(observer.Func[T]{
			Next: func(v T) ack.Ack {
				mu.Lock()
				buf = append(buf, v)
				if len(buf) > n {
					buf = buf[len(buf)-n:]
				}
				mu.Unlock()
				return ack.NowContinue
			},
			Complete: func() {
				mu.Lock()
				items := buf
				mu.Unlock()
				emitAllThenComplete(downstream, items)
			},
			Error: downstream.OnError,
		})
	})
}

func emitAllThenComplete[T any](downstream observer.Observer[T], items []T) {
	var emit func(i int)
	emit = func(i int) {
		if i >= len(items) {
			downstream.OnComplete()
			return
		}
		downstream.OnNext(items[i]).Then(func(sig ack.Signal) {
			if sig == ack.Done {
				return
			}
			emit(i + 1)
		})
	}
	emit(0)
}

// Drop skips the first n values src produces and emits everything after.
func Drop[T any](src Observable[T], n int) Observable[T] {
	return lift[T, T](src, func(downstream observer.Observer[T]) observer.Observer[T] {
		var mu sync.Mutex
		count := 0
		return observer.Func[T]{
			Next: func(v T) ack.Ack {
				mu.Lock()
				count++
				skip := count <= n
				mu.Unlock()
				if skip {
					return ack.NowContinue
				}
				return downstream.OnNext(v)
			},
			Complete: downstream.OnComplete,
			Error:    downstream.OnError,
		}
	})
}

// TakeWhile emits values while pred holds, then completes and cancels the
// upstream subscription the first time pred returns false. A panic inside
// pred is recovered and delivered downstream as onError.
func TakeWhile[T any](src Observable[T], pred func(T) bool) Observable[T] {
	return Create[T](func(downstream observer.Observer[T]) cancelable.Cancelable {
		upstream := cancelable.NewSingleAssignment()
		sub := src.subscribe(observer.Func[T]{
			Next: func(v T) ack.Ack {
				keep, err := guardUser(func() bool { return pred(v) })
				if err != nil {
					downstream.OnError(err)
					upstream.Cancel()
					return ack.NowDone
				}
				if !keep {
					downstream.OnComplete()
					upstream.Cancel()
					return ack.NowDone
				}
				return downstream.OnNext(v)
			},
			Complete: downstream.OnComplete,
			Error:    downstream.OnError,
		})
		upstream.Set(sub)
		return upstream
	})
}

// DropWhile skips values while pred holds, then emits everything from the
// first value for which pred returns false onward, including that value. A
// panic inside pred is recovered and delivered downstream as onError.
func DropWhile[T any](src Observable[T], pred func(T) bool) Observable[T] {
	return lift[T, T](src, func(downstream observer.Observer[T]) observer.Observer[T] {
		var mu sync.Mutex
		dropping := true
		return observer.Func[T]{
			Next: func(v T) ack.Ack {
				mu.Lock()
				if dropping {
					keep, err := guardUser(func() bool { return pred(v) })
					if err != nil {
						mu.Unlock()
						downstream.OnError(err)
						return ack.NowDone
					}
					if keep {
						mu.Unlock()
						return ack.NowContinue
					}
					dropping = false
				}
				mu.Unlock()
				return downstream.OnNext(v)
			},
			Complete: downstream.OnComplete,
			Error:    downstream.OnError,
		}
	})
}
