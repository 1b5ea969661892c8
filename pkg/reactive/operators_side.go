package reactive

import (
	"context"

	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/cancelable"
	"github.com/ling-streams/rx/pkg/observer"
)

// DoOnComplete runs sideEffect immediately before forwarding the completion
// event downstream, without otherwise altering the stream.
func DoOnComplete[T any](src Observable[T], sideEffect func()) Observable[T] {
	return lift[T, T](src, func(downstream observer.Observer[T]) observer.Observer[T] {
		return observer.Func[T]{
			Next: downstream.OnNext,
			Complete: func() {
				sideEffect()
				downstream.OnComplete()
			},
			Error: downstream.OnError,
		}
	})
}

// AsFuture subscribes to src and resolves once the first value arrives (in
// which case the subscription is canceled and no further values are
// requested) or the source terminates. It resolves with ErrEmptySource if
// src completes without ever emitting a value, and with ctx.Err() if ctx is
// canceled first.
func AsFuture[T any](ctx context.Context, src Observable[T]) (T, error) {
	type result struct {
		value T
		err   error
	}
	resultCh := make(chan result, 1)
	var zero T

	var upstream cancelable.Cancelable
	upstream = src.Subscribe(observer.Func[T]{
		Next: func(v T) ack.Ack {
			select {
			case resultCh <- result{value: v}:
			default:
			}
			return ack.NowDone
		},
		Complete: func() {
			select {
			case resultCh <- result{err: ErrEmptySource}:
			default:
			}
		},
		Error: func(err error) {
			select {
			case resultCh <- result{err: err}:
			default:
			}
		},
	})

	select {
	case r := <-resultCh:
		return r.value, r.err
	case <-ctx.Done():
		upstream.Cancel()
		return zero, ctx.Err()
	}
}
