package ack

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNowResolvesSynchronously(t *testing.T) {
	assert.Equal(t, Continue, NowContinue.Wait())
	assert.Equal(t, Done, NowDone.Wait())
	assert.False(t, NowContinue.IsPending())
}

func TestPendingResolvesOnceAsyncSettles(t *testing.T) {
	a := NewAsync()
	pending := Pending(a)
	assert.True(t, pending.IsPending())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.Equal(t, Continue, pending.Wait())
	}()

	a.Resolve(Continue)
	wg.Wait()
}

func TestResolveIsIdempotent(t *testing.T) {
	a := NewAsync()
	a.Resolve(Continue)
	a.Resolve(Done) // second resolve must be ignored
	assert.Equal(t, Continue, a.wait())
}

func TestThenRunsSynchronouslyWhenAlreadyResolved(t *testing.T) {
	called := false
	NowDone.Then(func(s Signal) {
		called = true
		assert.Equal(t, Done, s)
	})
	assert.True(t, called)
}

func TestThenQueuesUntilResolved(t *testing.T) {
	a := NewAsync()
	var got Signal = -1
	Pending(a).Then(func(s Signal) { got = s })
	assert.Equal(t, Signal(-1), got)

	a.Resolve(Done)
	assert.Equal(t, Done, got)
}

func TestMapChainsWithoutBlocking(t *testing.T) {
	a := NewAsync()
	mapped := Pending(a).Map(func(s Signal) Ack {
		if s == Done {
			return NowDone
		}
		return NowContinue
	})

	done := make(chan Signal, 1)
	mapped.Then(func(s Signal) { done <- s })

	a.Resolve(Continue)
	assert.Equal(t, Continue, <-done)
}
