// Package subject implements multicast Subjects: values that are both
// Observer and Observable, backed by a lock-free CAS state machine that
// transitions monotonically Empty -> Active -> Complete.
package subject

import (
	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/atomiccell"
	"github.com/ling-streams/rx/pkg/cancelable"
	"github.com/ling-streams/rx/pkg/observer"
)

// Subject is both an Observer (values pushed into it fan out to every
// current subscriber) and a source new subscribers can attach to.
// cachesValues and cacheLimit control what, if anything, a newly attached
// subscriber is replayed before it starts receiving live values:
// PublishSubject caches nothing, BehaviorSubject caches the single latest
// value, ReplaySubject caches a bounded or unbounded history. State
// transitions run through atomiccell.Cell's pointer-identity CAS retry
// loop rather than the value-equality CompareAndSet helper, since a state
// snapshot holds subscriber and cache slices and so is not comparable.
type Subject[T any] struct {
	cell         *atomiccell.Cell[state[T]]
	cacheLimit   int
	cachesValues bool
}

func newSubject[T any](cachesValues bool, cacheLimit int) *Subject[T] {
	return &Subject[T]{
		cell:         atomiccell.New(newEmptyState[T]()),
		cacheLimit:   cacheLimit,
		cachesValues: cachesValues,
	}
}

type subscribeOutcome[T any] struct {
	id            int
	registered    bool
	cacheToReplay []T
	completedErr  error
	wasComplete   bool
}

// Subscribe attaches obs to the subject. If the subject already completed,
// obs immediately receives any cached history followed by the terminal
// event. Otherwise obs is registered to receive every future value, after
// first receiving whatever history the subject retains.
func (s *Subject[T]) Subscribe(obs observer.Observer[T]) cancelable.Cancelable {
	outcome := atomiccell.TransformAndExtract(s.cell, func(cur state[T]) (state[T], subscribeOutcome[T]) {
		if cur.kind == kindComplete {
			return cur, subscribeOutcome[T]{wasComplete: true, completedErr: cur.err, cacheToReplay: cur.cache}
		}
		next, id := cur.withSubscriberAdded(obs)
		return next, subscribeOutcome[T]{id: id, registered: true, cacheToReplay: cur.cache}
	})

	replayCache(obs, outcome.cacheToReplay)
	if outcome.wasComplete {
		if outcome.completedErr != nil {
			obs.OnError(outcome.completedErr)
		} else {
			obs.OnComplete()
		}
		return cancelable.Empty
	}
	return cancelable.NewBoolean(func() { s.remove(outcome.id) })
}

func replayCache[T any](obs observer.Observer[T], cache []T) {
	for _, v := range cache {
		if obs.OnNext(v).Wait() == ack.Done {
			return
		}
	}
}

func (s *Subject[T]) remove(id int) {
	s.cell.Transform(func(cur state[T]) state[T] {
		if cur.kind != kindActive {
			return cur
		}
		return cur.withSubscriberRemoved(id)
	})
}

// OnNext fans value out to every current subscriber and, if this subject
// caches values (Behavior/Replay), retains it for future subscribers.
// Subscribers that return a Done ack are dropped.
func (s *Subject[T]) OnNext(value T) ack.Ack {
	var delivered bool
	next := s.cell.TransformAndGet(func(cur state[T]) state[T] {
		if cur.kind == kindComplete {
			delivered = false
			return cur
		}
		delivered = true
		if s.cachesValues {
			return cur.withCached(value, s.cacheLimit)
		}
		return cur
	})
	if !delivered {
		return ack.NowDone
	}

	for _, entry := range next.subscribers {
		if entry.obs.OnNext(value).Wait() == ack.Done {
			s.remove(entry.id)
		}
	}
	return ack.NowContinue
}

func (s *Subject[T]) OnComplete()       { s.terminate(nil) }
func (s *Subject[T]) OnError(err error) { s.terminate(err) }

func (s *Subject[T]) terminate(err error) {
	prior := s.cell.GetAndTransform(func(cur state[T]) state[T] {
		if cur.kind == kindComplete {
			return cur
		}
		return cur.withCompleted(err)
	})
	if prior.kind == kindComplete {
		return
	}

	for _, entry := range prior.subscribers {
		if err != nil {
			entry.obs.OnError(err)
		} else {
			entry.obs.OnComplete()
		}
	}
}

// SubscriberCount reports how many observers are currently attached.
func (s *Subject[T]) SubscriberCount() int {
	return len(s.cell.Get().subscribers)
}

// IsComplete reports whether the subject has already terminated.
func (s *Subject[T]) IsComplete() bool {
	return s.cell.Get().kind == kindComplete
}
