package subject

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Registry keys PublishSubjects by an application-defined name (e.g. a
// topic or room id), creating one lazily on first use and evicting the
// least recently used entry once size exceeds its bound. This backs
// fan-out scenarios where the set of live multicast channels is unbounded
// in principle (user-supplied topic names) but only a working set is ever
// active at once.
type Registry[T any] struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *PublishSubject[T]]
}

// NewRegistry creates a Registry holding at most size subjects at once.
// Evicting a subject completes it, so any late OnNext against a stale
// reference is a no-op rather than a leak.
func NewRegistry[T any](size int) *Registry[T] {
	c, _ := lru.NewWithEvict[string, *PublishSubject[T]](size, func(_ string, evicted *PublishSubject[T]) {
		evicted.OnComplete()
	})
	return &Registry[T]{cache: c}
}

// GetOrCreate returns the subject registered under key, creating a fresh
// PublishSubject if none exists yet.
func (r *Registry[T]) GetOrCreate(key string) *PublishSubject[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.cache.Get(key); ok {
		return existing
	}
	created := NewPublishSubject[T]()
	r.cache.Add(key, created)
	return created
}

// Remove evicts and completes the subject registered under key, if any.
func (r *Registry[T]) Remove(key string) {
	r.cache.Remove(key)
}

// Len reports how many subjects are currently registered.
func (r *Registry[T]) Len() int {
	return r.cache.Len()
}
