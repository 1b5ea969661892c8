package reactive

import (
	"github.com/ling-streams/rx/pkg/cancelable"
	"github.com/ling-streams/rx/pkg/mergebuf"
	"github.com/ling-streams/rx/pkg/observer"
)

// Buffered wraps downstream delivery in an unbounded async queue, so a
// slow downstream observer never blocks whatever goroutine src is emitting
// from. Use this when src may emit faster than downstream can keep up and
// memory, not latency, is the acceptable tradeoff.
func Buffered[T any](src Observable[T]) Observable[T] {
	return lift[T, T](src, func(downstream observer.Observer[T]) observer.Observer[T] {
		return observer.NewBuffered[T](downstream)
	})
}

// Sync wraps downstream delivery behind a single-reference merge buffer,
// so concurrent OnNext calls from src (e.g. a source that itself fans in
// from multiple goroutines before reaching this operator) are serialized
// into one well-ordered call sequence against downstream rather than
// risking an interleaved or racing delivery.
func Sync[T any](src Observable[T]) Observable[T] {
	return Create[T](func(downstream observer.Observer[T]) cancelable.Cancelable {
		buf := mergebuf.New[T](downstream, 1)
		return src.subscribe(observer.Func[T]{
			Next:     buf.ScheduleNext,
			Complete: buf.ScheduleDone,
			Error:    buf.ScheduleOnError,
		})
	})
}
