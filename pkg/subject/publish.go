package subject

// PublishSubject multicasts every value it receives to whichever
// subscribers are attached at the moment of emission. A subscriber that
// attaches late misses everything emitted before it subscribed.
type PublishSubject[T any] struct {
	*Subject[T]
}

// NewPublishSubject creates an empty PublishSubject.
func NewPublishSubject[T any]() *PublishSubject[T] {
	return &PublishSubject[T]{Subject: newSubject[T](false, 0)}
}
