// Package observer implements the push-model Observer contract: any number
// of acknowledged onNext calls followed by at most one terminal event, with
// no further events permitted after a terminal or after any Ack resolves
// Done.
package observer

import "github.com/ling-streams/rx/pkg/ack"

// Observer receives values pushed by an Observable. Implementations must
// not call OnNext after OnComplete/OnError, must not call OnComplete/OnError
// more than once in total, and must not call OnNext again after a
// previously returned Ack resolved to ack.Done.
type Observer[T any] interface {
	OnNext(value T) ack.Ack
	OnComplete()
	OnError(err error)
}

// Func adapts three plain functions into an Observer.
type Func[T any] struct {
	Next     func(T) ack.Ack
	Complete func()
	Error    func(error)
}

func (f Func[T]) OnNext(value T) ack.Ack {
	if f.Next == nil {
		return ack.NowContinue
	}
	return f.Next(value)
}

func (f Func[T]) OnComplete() {
	if f.Complete != nil {
		f.Complete()
	}
}

func (f Func[T]) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}

// Noop is an Observer that discards every event and always continues.
func Noop[T any]() Observer[T] {
	return Func[T]{}
}
