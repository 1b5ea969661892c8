package reactive

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/observer"
)

// collector is a test-only Observer that records every event synchronously
// and safely under concurrent producers.
type collector[T any] struct {
	mu         sync.Mutex
	values     []T
	completed  bool
	err        error
	nextResult ack.Signal
}

func newCollector[T any]() *collector[T] {
	return &collector[T]{nextResult: ack.Continue}
}

func (c *collector[T]) observer() observer.Observer[T] {
	return observer.Func[T]{
		Next: func(v T) ack.Ack {
			c.mu.Lock()
			c.values = append(c.values, v)
			result := c.nextResult
			c.mu.Unlock()
			return ack.Now(result)
		},
		Complete: func() {
			c.mu.Lock()
			c.completed = true
			c.mu.Unlock()
		},
		Error: func(err error) {
			c.mu.Lock()
			c.err = err
			c.mu.Unlock()
		},
	}
}

func (c *collector[T]) snapshot() ([]T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.values))
	copy(out, c.values)
	return out, c.completed, c.err
}

// stopAfterNext arranges for this and every subsequent OnNext call to
// resolve Done, simulating a downstream observer that wants no more values.
func (c *collector[T]) stopAfterNext() {
	c.mu.Lock()
	c.nextResult = ack.Done
	c.mu.Unlock()
}

func (c *collector[T]) isTerminated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed || c.err != nil
}

// waitTerminated blocks until c has observed a terminal event, since most
// sources in this package emit from a goroutine spawned by Subscribe.
func waitTerminated[T any](t *testing.T, c *collector[T]) {
	t.Helper()
	require.Eventually(t, c.isTerminated, time.Second, time.Millisecond)
}
