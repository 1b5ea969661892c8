package reactive

import (
	"github.com/ling-streams/rx/pkg/cancelable"
	"github.com/ling-streams/rx/pkg/circuitbreaker"
	"github.com/ling-streams/rx/pkg/observer"
)

// CircuitBreak guards resubscription to a source that has recently been
// failing. Each Subscribe call on the returned Observable is one request
// through breaker: if the breaker is open, the subscription attempt is
// short-circuited with a synthetic onError(ErrCircuitOpen) instead of
// running src's subscribeFn again; otherwise src is subscribed normally and
// the eventual onComplete/onError records a success or a failure with the
// breaker, so a source that keeps failing after it recovers from one burst
// trips the breaker again rather than being retried indefinitely.
func CircuitBreak[T any](src Observable[T], breaker *circuitbreaker.CircuitBreaker) Observable[T] {
	return Create[T](func(downstream observer.Observer[T]) cancelable.Cancelable {
		if !breaker.TryAcquire() {
			downstream.OnError(ErrCircuitOpen)
			return cancelable.Empty
		}
		return src.subscribe(observer.Func[T]{
			Next: downstream.OnNext,
			Complete: func() {
				breaker.RecordSuccess()
				downstream.OnComplete()
			},
			Error: func(err error) {
				breaker.RecordFailure()
				downstream.OnError(err)
			},
		})
	})
}
