package subject

// BehaviorSubject always retains the single most recently emitted value (or
// an initial seed value if nothing has been emitted yet) and replays it to
// every new subscriber before they start receiving live values.
type BehaviorSubject[T any] struct {
	*Subject[T]
}

// NewBehaviorSubject creates a BehaviorSubject seeded with initial.
func NewBehaviorSubject[T any](initial T) *BehaviorSubject[T] {
	b := &BehaviorSubject[T]{Subject: newSubject[T](true, 1)}
	b.cell.Set(state[T]{kind: kindEmpty, cache: []T{initial}})
	return b
}

// Value returns the most recently retained value. If the subject has
// already completed, it still returns the last value seen before
// termination.
func (b *BehaviorSubject[T]) Value() T {
	cur := b.cell.Get()
	var zero T
	if len(cur.cache) == 0 {
		return zero
	}
	return cur.cache[len(cur.cache)-1]
}
