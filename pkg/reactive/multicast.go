package reactive

import (
	"sync"

	"github.com/ling-streams/rx/pkg/cancelable"
	"github.com/ling-streams/rx/pkg/observer"
	"github.com/ling-streams/rx/pkg/subject"
)

// subjectLike is the shape every concrete Subject in pkg/subject shares:
// it is both an Observer values can be pushed into and a source new
// subscribers can attach to.
type subjectLike[T any] interface {
	observer.Observer[T]
	Subscribe(observer.Observer[T]) cancelable.Cancelable
}

// Connectable is an Observable that does not start producing values until
// Connect is called, no matter how many downstream observers have already
// subscribed to it. This is how multicast turns a cold source into a
// shared, hot one: every subscriber attaches to the same underlying
// subject, and the underlying source is only ever subscribed to once, at
// Connect time.
type Connectable[T any] struct {
	Observable[T]
	connect func() cancelable.Cancelable
}

// Connect subscribes the underlying source to the shared subject, starting
// value production. Calling Connect more than once has no additional
// effect beyond the first call.
func (c *Connectable[T]) Connect() cancelable.Cancelable {
	return c.connect()
}

// Multicast shares src across every subscriber via subj: every downstream
// observer subscribes to subj directly, and src is only ever subscribed to
// once, when Connect is called.
func Multicast[T any](src Observable[T], subj subjectLike[T]) *Connectable[T] {
	connectOnce := cancelable.NewSingleAssignment()
	var once sync.Once

	return &Connectable[T]{
		Observable: Create[T](func(downstream observer.Observer[T]) cancelable.Cancelable {
			return subj.Subscribe(downstream)
		}),
		connect: func() cancelable.Cancelable {
			once.Do(func() { connectOnce.Set(src.Subscribe(subj)) })
			return connectOnce
		},
	}
}

// Publish multicasts src through a PublishSubject: subscribers only see
// values emitted after they attached and after Connect has been called.
func Publish[T any](src Observable[T]) *Connectable[T] {
	return Multicast[T](src, subject.NewPublishSubject[T]())
}

// PublishBehavior multicasts src through a BehaviorSubject seeded with
// initial: every subscriber immediately receives the most recently emitted
// value (or initial, if nothing has been emitted yet).
func PublishBehavior[T any](src Observable[T], initial T) *Connectable[T] {
	return Multicast[T](src, subject.NewBehaviorSubject(initial))
}

// PublishReplay multicasts src through a ReplaySubject: every subscriber
// receives the full history retained so far (bounded to capacity entries
// if capacity > 0) before it starts receiving live values.
func PublishReplay[T any](src Observable[T], capacity int) *Connectable[T] {
	return Multicast[T](src, subject.NewReplaySubject[T](capacity))
}
