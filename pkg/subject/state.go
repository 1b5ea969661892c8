package subject

import "github.com/ling-streams/rx/pkg/observer"

// stateKind distinguishes the three points in a subject's lifecycle:
// Empty (never subscribed to, may already hold cached values for a
// behavior/replay subject), Active (subscribers attached), and Complete
// (terminated, no further transitions possible).
type stateKind int

const (
	kindEmpty stateKind = iota
	kindActive
	kindComplete
)

// subscriberEntry pairs a subscriber's Observer with the id used to remove
// it again on cancel.
type subscriberEntry[T any] struct {
	id  int
	obs observer.Observer[T]
}

// state is an immutable snapshot of a subject's lifecycle; every
// transition allocates a new state and installs it via CAS, never mutating
// a state in place. cache holds whatever values a Behavior or Replay
// subject retains for late subscribers; a plain PublishSubject's cache is
// always empty.
type state[T any] struct {
	kind        stateKind
	subscribers []subscriberEntry[T]
	nextID      int
	cache       []T
	err         error
}

func newEmptyState[T any]() state[T] {
	return state[T]{kind: kindEmpty}
}

// withSubscriberAdded returns a new Active state with entry appended,
// leaving the receiver untouched.
func (s state[T]) withSubscriberAdded(obs observer.Observer[T]) (state[T], int) {
	id := s.nextID
	next := state[T]{
		kind:        kindActive,
		subscribers: append(append([]subscriberEntry[T]{}, s.subscribers...), subscriberEntry[T]{id: id, obs: obs}),
		nextID:      id + 1,
		cache:       s.cache,
	}
	return next, id
}

// withSubscriberRemoved returns a new state with the subscriber matching id
// removed. The kind is preserved (removing the last subscriber does not
// revert an Active subject back to Empty).
func (s state[T]) withSubscriberRemoved(id int) state[T] {
	remaining := make([]subscriberEntry[T], 0, len(s.subscribers))
	for _, entry := range s.subscribers {
		if entry.id != id {
			remaining = append(remaining, entry)
		}
	}
	return state[T]{
		kind:        s.kind,
		subscribers: remaining,
		nextID:      s.nextID,
		cache:       s.cache,
	}
}

// withCached returns a state identical to the receiver but with value
// appended to cache, trimmed to at most limit entries (limit <= 0 means
// unbounded).
func (s state[T]) withCached(value T, limit int) state[T] {
	cache := append(append([]T{}, s.cache...), value)
	if limit > 0 && len(cache) > limit {
		cache = cache[len(cache)-limit:]
	}
	return state[T]{
		kind:        s.kind,
		subscribers: s.subscribers,
		nextID:      s.nextID,
		cache:       cache,
	}
}

func (s state[T]) withCompleted(err error) state[T] {
	return state[T]{
		kind:        kindComplete,
		subscribers: nil,
		nextID:      s.nextID,
		cache:       s.cache,
		err:         err,
	}
}
