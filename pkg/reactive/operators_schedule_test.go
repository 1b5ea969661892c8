package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ling-streams/rx/pkg/scheduler"
)

func TestObserveOnMovesDeliveryToScheduler(t *testing.T) {
	sched := scheduler.NewTrampoline()
	c := newCollector[int]()
	ObserveOn(FromSlice([]int{1, 2, 3}), sched).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, _ := c.snapshot()
	assert.Equal(t, []int{1, 2, 3}, values)
	assert.True(t, completed)
}

func TestSubscribeOnMovesSubscribeCallToScheduler(t *testing.T) {
	sched := scheduler.NewImmediate()
	c := newCollector[int]()
	SubscribeOn(Range(0, 3), sched).Subscribe(c.observer())
	waitTerminated(t, c)
	values, _, _ := c.snapshot()
	assert.Equal(t, []int{0, 1, 2}, values)
}
