package cancelable

import "sync"

// SingleAssignment holds at most one inner Cancelable, assigned after
// construction (subscriptions often can't produce their cancel handle until
// the subscribe call underneath has started running). Assigning a second
// inner cancelable replaces and cancels the first; if the SingleAssignment
// itself was already canceled, a freshly assigned inner is canceled
// immediately instead of being retained.
type SingleAssignment struct {
	mu       sync.Mutex
	inner    Cancelable
	canceled bool
}

// NewSingleAssignment creates an empty SingleAssignment.
func NewSingleAssignment() *SingleAssignment {
	return &SingleAssignment{}
}

// Set installs inner as the current delegate, canceling whatever was
// previously set. If the SingleAssignment has already been canceled, inner
// is canceled immediately and not retained.
func (s *SingleAssignment) Set(inner Cancelable) {
	s.mu.Lock()
	if s.canceled {
		s.mu.Unlock()
		if inner != nil {
			inner.Cancel()
		}
		return
	}
	prev := s.inner
	s.inner = inner
	s.mu.Unlock()
	if prev != nil {
		prev.Cancel()
	}
}

func (s *SingleAssignment) Cancel() {
	s.mu.Lock()
	if s.canceled {
		s.mu.Unlock()
		return
	}
	s.canceled = true
	inner := s.inner
	s.inner = nil
	s.mu.Unlock()
	if inner != nil {
		inner.Cancel()
	}
}

func (s *SingleAssignment) IsCanceled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canceled
}
