package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ling-streams/rx/pkg/notification"
)

func TestMapAppliesFunctionToEveryValue(t *testing.T) {
	c := newCollector[int]()
	Map(FromSlice([]int{1, 2, 3}), func(v int) int { return v * 10 }).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, _ := c.snapshot()
	assert.Equal(t, []int{10, 20, 30}, values)
	assert.True(t, completed)
}

func TestFilterKeepsOnlyMatchingValues(t *testing.T) {
	c := newCollector[int]()
	Filter(FromSlice([]int{1, 2, 3, 4, 5}), func(v int) bool { return v%2 == 0 }).Subscribe(c.observer())
	waitTerminated(t, c)
	values, _, _ := c.snapshot()
	assert.Equal(t, []int{2, 4}, values)
}

func TestScanEmitsEveryIntermediateAccumulator(t *testing.T) {
	c := newCollector[int]()
	Scan(FromSlice([]int{1, 2, 3}), 0, func(acc, v int) int { return acc + v }).Subscribe(c.observer())
	waitTerminated(t, c)
	values, _, _ := c.snapshot()
	assert.Equal(t, []int{1, 3, 6}, values)
}

func TestFoldLeftEmitsOnlyFinalValue(t *testing.T) {
	c := newCollector[int]()
	FoldLeft(FromSlice([]int{1, 2, 3}), 0, func(acc, v int) int { return acc + v }).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, _ := c.snapshot()
	assert.Equal(t, []int{6}, values)
	assert.True(t, completed)
}

func TestReduceUsesFirstValueAsSeed(t *testing.T) {
	c := newCollector[int]()
	Reduce(FromSlice([]int{5, 2, 3}), func(acc, v int) int {
		if v > acc {
			return v
		}
		return acc
	}).Subscribe(c.observer())
	waitTerminated(t, c)
	values, _, _ := c.snapshot()
	assert.Equal(t, []int{5}, values)
}

func TestReduceOnEmptySourceCompletesWithoutEmitting(t *testing.T) {
	c := newCollector[int]()
	Reduce(Empty[int](), func(acc, v int) int { return acc + v }).Subscribe(c.observer())
	values, completed, _ := c.snapshot()
	assert.Empty(t, values)
	assert.True(t, completed)
}

func TestMapRecoversPanicIntoOnError(t *testing.T) {
	c := newCollector[int]()
	Map(FromSlice([]int{1, 2, 3}), func(v int) int {
		if v == 2 {
			panic("boom")
		}
		return v
	}).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, err := c.snapshot()
	assert.Equal(t, []int{1}, values)
	assert.False(t, completed)
	assert.Error(t, err)
}

func TestFilterRecoversPanicIntoOnError(t *testing.T) {
	c := newCollector[int]()
	Filter(FromSlice([]int{1, 2, 3}), func(v int) bool {
		if v == 2 {
			panic("boom")
		}
		return true
	}).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, err := c.snapshot()
	assert.Equal(t, []int{1}, values)
	assert.False(t, completed)
	assert.Error(t, err)
}

func TestScanRecoversPanicIntoOnError(t *testing.T) {
	c := newCollector[int]()
	Scan(FromSlice([]int{1, 2, 3}), 0, func(acc, v int) int {
		if v == 2 {
			panic("boom")
		}
		return acc + v
	}).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, err := c.snapshot()
	assert.Equal(t, []int{1}, values)
	assert.False(t, completed)
	assert.Error(t, err)
}

func TestFoldLeftRecoversPanicIntoOnError(t *testing.T) {
	c := newCollector[int]()
	FoldLeft(FromSlice([]int{1, 2, 3}), 0, func(acc, v int) int {
		if v == 2 {
			panic("boom")
		}
		return acc + v
	}).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, err := c.snapshot()
	assert.Empty(t, values)
	assert.False(t, completed)
	assert.Error(t, err)
}

func TestReduceRecoversPanicIntoOnError(t *testing.T) {
	c := newCollector[int]()
	Reduce(FromSlice([]int{1, 2, 3}), func(acc, v int) int {
		if v == 3 {
			panic("boom")
		}
		return acc + v
	}).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, err := c.snapshot()
	assert.Empty(t, values)
	assert.False(t, completed)
	assert.Error(t, err)
}

func TestMaterializeReifiesEveryEvent(t *testing.T) {
	c := newCollector[notification.Notification[int]]()
	Materialize(FromSlice([]int{1, 2})).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, _ := c.snapshot()
	assert.True(t, completed)
	if assert.Len(t, values, 3) {
		assert.True(t, values[0].IsNext())
		assert.Equal(t, 1, values[0].Value())
		assert.True(t, values[1].IsNext())
		assert.Equal(t, 2, values[1].Value())
		assert.True(t, values[2].IsComplete())
	}
}
