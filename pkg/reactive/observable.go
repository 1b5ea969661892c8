// Package reactive implements the Observable side of the push-model
// Observer protocol: a source that, once subscribed, calls a downstream
// Observer's OnNext any number of times followed by at most one terminal
// event, honoring whatever Ack each OnNext returns.
package reactive

import (
	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/cancelable"
	"github.com/ling-streams/rx/pkg/observer"
)

// SubscribeFunc is the low-level shape every Observable is built from: given
// a downstream observer, start emitting to it and return a handle the
// caller can use to stop early.
type SubscribeFunc[T any] func(obs observer.Observer[T]) cancelable.Cancelable

// Observable is a (possibly asynchronous, possibly multicast) source of
// values of type T. The zero value is not usable; build one with Create or
// one of the constructors in this package.
type Observable[T any] struct {
	subscribe SubscribeFunc[T]
}

// Create builds an Observable directly from a subscribe function. fn is
// responsible for calling obs.OnNext/OnComplete/OnError according to the
// observer grammar (any number of acknowledged OnNext calls, then at most
// one terminal call) and for honoring cancellation.
func Create[T any](fn SubscribeFunc[T]) Observable[T] {
	return Observable[T]{subscribe: fn}
}

// Subscribe attaches obs to the source, wrapping it in a Safe observer so a
// misbehaving source can't violate the grammar downstream ever sees.
func (o Observable[T]) Subscribe(obs observer.Observer[T]) cancelable.Cancelable {
	safe := observer.NewSafe[T](obs)
	return o.subscribe(safe)
}

// SubscribeFuncs attaches plain callback functions as the observer.
func (o Observable[T]) SubscribeFuncs(onNext func(T) ack.Ack, onComplete func(), onError func(error)) cancelable.Cancelable {
	return o.Subscribe(observer.Func[T]{Next: onNext, Complete: onComplete, Error: onError})
}

// lift builds a new Observable whose subscribe function wraps the
// receiver's subscribe function, pushing downstream through wrapDownstream.
// This is the shared shape every single-source operator in this package is
// built from.
func lift[T, R any](src Observable[T], wrapDownstream func(downstream observer.Observer[R]) observer.Observer[T]) Observable[R] {
	return Create[R](func(downstream observer.Observer[R]) cancelable.Cancelable {
		return src.subscribe(wrapDownstream(downstream))
	})
}
