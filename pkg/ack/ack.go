// Package ack implements the two-valued back-pressure signal producers
// await between onNext calls: Continue or Done, optionally resolved
// asynchronously so a slow consumer never forces the producer to block.
package ack

import "sync"

// Signal is the resolved value of an Ack.
type Signal int

const (
	// Continue tells the producer it may send the next item.
	Continue Signal = iota
	// Done tells the producer to stop; no further onNext calls are permitted.
	Done
)

func (s Signal) String() string {
	if s == Done {
		return "Done"
	}
	return "Continue"
}

// Ack is either an already-resolved Signal or a pending Async that will
// resolve to one. Observer.OnNext returns an Ack; operators must not call
// onNext again until it resolves.
type Ack struct {
	signal Signal
	async  *Async
}

// Now wraps an already-resolved signal. This is the hot path: no allocation
// beyond the two-word Ack value itself.
func Now(s Signal) Ack {
	return Ack{signal: s}
}

// NowContinue and NowDone are convenience constants for the common cases.
var (
	NowContinue = Now(Continue)
	NowDone     = Now(Done)
)

// Pending wraps an Async that has not resolved yet.
func Pending(a *Async) Ack {
	return Ack{async: a}
}

// IsPending reports whether this Ack is still waiting on an Async.
func (a Ack) IsPending() bool {
	return a.async != nil
}

// Wait blocks the calling goroutine until the Ack resolves and returns the
// signal. Operators on the hot path should prefer Then to avoid blocking a
// scheduler thread; Wait exists for synchronous callers (tests, asFuture).
func (a Ack) Wait() Signal {
	if a.async == nil {
		return a.signal
	}
	return a.async.wait()
}

// Then registers a continuation invoked with the resolved signal. If the Ack
// is already resolved, f runs synchronously on the calling goroutine;
// otherwise it runs on whichever goroutine calls Async.Resolve. Then never
// blocks, which is how the core avoids reentrant producer->consumer->producer
// call chains (spec 5 "Deadlocks").
func (a Ack) Then(f func(Signal)) {
	if a.async == nil {
		f(a.signal)
		return
	}
	a.async.then(f)
}

// Map transforms a resolved Done/Continue signal into another Ack, without
// ever synchronously blocking. Useful for operators that must fold one
// upstream Ack into a synthesized downstream one.
func (a Ack) Map(f func(Signal) Ack) Ack {
	if a.async == nil {
		return f(a.signal)
	}
	out := NewAsync()
	a.async.then(func(s Signal) {
		f(s).Then(out.Resolve)
	})
	return Pending(out)
}

// Async is a single-resolution future for an Ack signal. It is resolved at
// most once; subsequent Resolve calls are no-ops, matching the grammar rule
// that after Done no further state change is observable.
type Async struct {
	mu      sync.Mutex
	done    bool
	signal  Signal
	waiters []func(Signal)
	ch      chan struct{}
}

// NewAsync creates an unresolved Async.
func NewAsync() *Async {
	return &Async{ch: make(chan struct{})}
}

// Resolve settles the Async. Only the first call has effect.
func (a *Async) Resolve(s Signal) {
	a.mu.Lock()
	if a.done {
		a.mu.Unlock()
		return
	}
	a.done = true
	a.signal = s
	waiters := a.waiters
	a.waiters = nil
	close(a.ch)
	a.mu.Unlock()

	for _, w := range waiters {
		w(s)
	}
}

func (a *Async) then(f func(Signal)) {
	a.mu.Lock()
	if a.done {
		s := a.signal
		a.mu.Unlock()
		f(s)
		return
	}
	a.waiters = append(a.waiters, f)
	a.mu.Unlock()
}

func (a *Async) wait() Signal {
	<-a.ch
	a.mu.Lock()
	s := a.signal
	a.mu.Unlock()
	return s
}
