package reactive

import (
	"sync"

	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/cancelable"
	"github.com/ling-streams/rx/pkg/mergebuf"
	"github.com/ling-streams/rx/pkg/observer"
)

// Concat subscribes to each source in order, only starting the next once
// the previous has completed, and forwards every value in sequence.
func Concat[T any](sources ...Observable[T]) Observable[T] {
	return Create[T](func(downstream observer.Observer[T]) cancelable.Cancelable {
		upstream := cancelable.NewComposite()
		var subscribeNext func(i int)
		subscribeNext = func(i int) {
			if i >= len(sources) {
				downstream.OnComplete()
				return
			}
			sub := sources[i].subscribe(observer.Func[T]{
				Next:     downstream.OnNext,
				Complete: func() { subscribeNext(i + 1) },
				Error:    downstream.OnError,
			})
			upstream.Add(sub)
		}
		subscribeNext(0)
		return upstream
	})
}

// Merge subscribes to every source concurrently and forwards every value as
// it arrives, serialized through a merge buffer so two sources racing to
// emit never interleave two deliveries to downstream. The merged
// Observable completes once every source has completed.
func Merge[T any](sources ...Observable[T]) Observable[T] {
	return Create[T](func(downstream observer.Observer[T]) cancelable.Cancelable {
		if len(sources) == 0 {
			downstream.OnComplete()
			return cancelable.Empty
		}
		buf := mergebuf.New[T](downstream, len(sources))
		composite := cancelable.NewComposite()
		for _, src := range sources {
			sub := src.subscribe(observer.Func[T]{
				Next:     buf.ScheduleNext,
				Complete: buf.ScheduleDone,
				Error:    buf.ScheduleOnError,
			})
			composite.Add(sub)
		}
		return composite
	})
}

// Flatten subscribes to src's outer stream and, as each inner Observable
// arrives, subscribes to it immediately, forwarding every inner value
// through the same merge buffer Merge uses so two inners racing to emit
// never interleave two deliveries downstream. The result completes once the
// outer stream has completed and every inner it produced has also
// completed, tracked via a reference-counted cancelable so a still-running
// inner keeps the whole subscription alive after the outer itself is done.
func Flatten[T any](src Observable[Observable[T]]) Observable[T] {
	return Create[T](func(downstream observer.Observer[T]) cancelable.Cancelable {
		buf := mergebuf.New[T](downstream, 1)
		composite := cancelable.NewComposite()
		finish := cancelable.NewBoolean(func() { buf.ScheduleDone() })
		refs := cancelable.NewRefCounted(finish)

		outer := src.subscribe(observer.Func[Observable[T]]{
			Next: func(inner Observable[T]) ack.Ack {
				child := refs.Acquire()
				sub := inner.subscribe(observer.Func[T]{
					Next:     buf.ScheduleNext,
					Complete: child.Cancel,
					Error: func(err error) {
						buf.ScheduleOnError(err)
						child.Cancel()
					},
				})
				composite.Add(sub)
				return ack.NowContinue
			},
			Complete: refs.MarkPrimaryDone,
			Error:    buf.ScheduleOnError,
		})
		composite.Add(outer)
		return composite
	})
}

// FlatMap maps every value src emits into an inner Observable and flattens
// the results into a single stream, subscribing to each inner as soon as it
// is produced. It is Map followed by Flatten.
func FlatMap[T, R any](src Observable[T], f func(T) Observable[R]) Observable[R] {
	return Flatten(Map(src, f))
}

// zipItem is one value sitting in a Zip branch's queue, paired with the Ack
// its producer is blocked on until that value is actually consumed into a
// combined row.
type zipItem[T any] struct {
	value T
	async *ack.Async
}

// Zip pairs up the i-th value from each source into a slice, emitting one
// combined slice per index once every source has produced a value at that
// index. Each branch gets its own queue of pending values; a branch that
// outruns the others is back-pressured directly, since its producer's Ack
// does not resolve until its buffered value is actually paired into a row
// and accepted downstream, rather than resolving immediately. It completes
// once any source completes with its own queue drained.
func Zip[T any](sources ...Observable[T]) Observable[[]T] {
	return Create[[]T](func(downstream observer.Observer[[]T]) cancelable.Cancelable {
		n := len(sources)
		if n == 0 {
			downstream.OnComplete()
			return cancelable.Empty
		}

		var mu sync.Mutex
		buffers := make([][]zipItem[T], n)
		completedSrc := make([]bool, n)
		done := false
		composite := cancelable.NewComposite()

		// resolvePendingDone releases any branch still blocked on a buffered
		// value's Ack once the zip has ended, so a fast branch waiting on
		// backpressure doesn't hang forever behind a source that will never
		// pair with it again.
		resolvePendingDone := func() {
			mu.Lock()
			var pending []*ack.Async
			for i := range buffers {
				for _, it := range buffers[i] {
					pending = append(pending, it.async)
				}
				buffers[i] = nil
			}
			mu.Unlock()
			for _, a := range pending {
				a.Resolve(ack.Done)
			}
		}
		finish := func() {
			downstream.OnComplete()
			composite.Cancel()
			resolvePendingDone()
		}
		fail := func(err error) {
			downstream.OnError(err)
			composite.Cancel()
			resolvePendingDone()
		}

		drain := func() {
			for {
				mu.Lock()
				if done {
					mu.Unlock()
					return
				}
				ready := true
				for _, b := range buffers {
					if len(b) == 0 {
						ready = false
						break
					}
				}
				if !ready {
					exhausted := false
					for i, b := range buffers {
						if completedSrc[i] && len(b) == 0 {
							exhausted = true
							break
						}
					}
					if exhausted {
						done = true
					}
					mu.Unlock()
					if exhausted {
						finish()
					}
					return
				}

				row := make([]T, n)
				items := make([]zipItem[T], n)
				for i := range buffers {
					items[i] = buffers[i][0]
					row[i] = items[i].value
					buffers[i] = buffers[i][1:]
				}
				mu.Unlock()

				sig := downstream.OnNext(row).Wait()
				for _, it := range items {
					it.async.Resolve(sig)
				}
				if sig == ack.Done {
					mu.Lock()
					done = true
					mu.Unlock()
					composite.Cancel()
					resolvePendingDone()
					return
				}
			}
		}

		for idx, src := range sources {
			i := idx
			sub := src.subscribe(observer.Func[T]{
				Next: func(v T) ack.Ack {
					mu.Lock()
					if done {
						mu.Unlock()
						return ack.NowDone
					}
					async := ack.NewAsync()
					buffers[i] = append(buffers[i], zipItem[T]{value: v, async: async})
					mu.Unlock()
					drain()
					return ack.Pending(async)
				},
				Complete: func() {
					mu.Lock()
					completedSrc[i] = true
					exhausted := !done && len(buffers[i]) == 0
					if exhausted {
						done = true
					}
					mu.Unlock()
					if exhausted {
						finish()
					}
				},
				Error: func(err error) {
					mu.Lock()
					already := done
					done = true
					mu.Unlock()
					if !already {
						fail(err)
					}
				},
			})
			composite.Add(sub)
		}
		return composite
	})
}
