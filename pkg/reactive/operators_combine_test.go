package reactive

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/cancelable"
	"github.com/ling-streams/rx/pkg/observer"
)

func TestConcatRunsSourcesSequentially(t *testing.T) {
	c := newCollector[int]()
	Concat(FromSlice([]int{1, 2}), FromSlice([]int{3, 4})).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, _ := c.snapshot()
	assert.Equal(t, []int{1, 2, 3, 4}, values)
	assert.True(t, completed)
}

func TestConcatWithNoSourcesCompletesImmediately(t *testing.T) {
	c := newCollector[int]()
	Concat[int]().Subscribe(c.observer())
	values, completed, _ := c.snapshot()
	assert.Empty(t, values)
	assert.True(t, completed)
}

func TestMergeInterleavesAllSourcesAndCompletesAfterAll(t *testing.T) {
	c := newCollector[int]()
	Merge(FromSlice([]int{1, 2}), FromSlice([]int{10, 20})).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, _ := c.snapshot()
	assert.True(t, completed)
	assert.ElementsMatch(t, []int{1, 2, 10, 20}, values)
}

func TestMergeWithNoSourcesCompletesImmediately(t *testing.T) {
	c := newCollector[int]()
	Merge[int]().Subscribe(c.observer())
	values, completed, _ := c.snapshot()
	assert.Empty(t, values)
	assert.True(t, completed)
}

func TestFlattenSubscribesToEachInnerAndForwardsAllValues(t *testing.T) {
	c := newCollector[int]()
	inners := FromSlice([]Observable[int]{
		FromSlice([]int{1, 2}),
		FromSlice([]int{10, 20}),
	})
	Flatten(inners).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, _ := c.snapshot()
	assert.True(t, completed)
	assert.ElementsMatch(t, []int{1, 2, 10, 20}, values)
}

func TestFlattenWithNoInnersCompletes(t *testing.T) {
	c := newCollector[int]()
	Flatten(Empty[Observable[int]]()).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, _ := c.snapshot()
	assert.Empty(t, values)
	assert.True(t, completed)
}

func TestFlattenWaitsForSlowInnerAfterOuterCompletes(t *testing.T) {
	c := newCollector[int]()
	slow := Create[int](func(obs observer.Observer[int]) cancelable.Cancelable {
		go func() {
			time.Sleep(10 * time.Millisecond)
			obs.OnNext(99).Then(func(ack.Signal) { obs.OnComplete() })
		}()
		return cancelable.Empty
	})
	Flatten(Unit(slow)).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, _ := c.snapshot()
	assert.Equal(t, []int{99}, values)
	assert.True(t, completed)
}

func TestFlattenPropagatesInnerError(t *testing.T) {
	boom := errors.New("boom")
	c := newCollector[int]()
	Flatten(Unit(Error[int](boom))).Subscribe(c.observer())
	waitTerminated(t, c)
	_, completed, err := c.snapshot()
	assert.False(t, completed)
	assert.ErrorIs(t, err, boom)
}

func TestFlatMapIsMapFollowedByFlatten(t *testing.T) {
	c := newCollector[int]()
	FlatMap(FromSlice([]int{1, 2, 3}), func(v int) Observable[int] {
		return FromSlice([]int{v, v * 10})
	}).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, _ := c.snapshot()
	assert.True(t, completed)
	assert.ElementsMatch(t, []int{1, 10, 2, 20, 3, 30}, values)
}

func TestZipPairsValuesByIndex(t *testing.T) {
	c := newCollector[[]int]()
	Zip(FromSlice([]int{1, 2, 3}), FromSlice([]int{10, 20, 30})).Subscribe(c.observer())
	waitTerminated(t, c)
	values, _, _ := c.snapshot()
	assert.Equal(t, [][]int{{1, 10}, {2, 20}, {3, 30}}, values)
}

func TestZipCompletesWhenShortestSourceCompletes(t *testing.T) {
	c := newCollector[[]int]()
	Zip(FromSlice([]int{1, 2, 3}), FromSlice([]int{10})).Subscribe(c.observer())
	waitTerminated(t, c)
	values, _, _ := c.snapshot()
	assert.Equal(t, [][]int{{1, 10}}, values)
}

func TestZipWithNoSourcesCompletesImmediately(t *testing.T) {
	c := newCollector[[]int]()
	Zip[int]().Subscribe(c.observer())
	values, completed, _ := c.snapshot()
	assert.Empty(t, values)
	assert.True(t, completed)
}
