package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTakeEmitsOnlyFirstNValues(t *testing.T) {
	c := newCollector[int]()
	Take(Range(0, 100), 3).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, _ := c.snapshot()
	assert.Equal(t, []int{0, 1, 2}, values)
	assert.True(t, completed)
}

func TestTakeZeroIsEmpty(t *testing.T) {
	c := newCollector[int]()
	Take(Range(0, 10), 0).Subscribe(c.observer())
	values, completed, _ := c.snapshot()
	assert.Empty(t, values)
	assert.True(t, completed)
}

func TestTakeRightEmitsLastNValuesInOrder(t *testing.T) {
	c := newCollector[int]()
	TakeRight(FromSlice([]int{1, 2, 3, 4, 5}), 2).Subscribe(c.observer())
	waitTerminated(t, c)
	values, _, _ := c.snapshot()
	assert.Equal(t, []int{4, 5}, values)
}

func TestTakeRightWithFewerValuesThanNEmitsAll(t *testing.T) {
	c := newCollector[int]()
	TakeRight(FromSlice([]int{1, 2}), 5).Subscribe(c.observer())
	waitTerminated(t, c)
	values, _, _ := c.snapshot()
	assert.Equal(t, []int{1, 2}, values)
}

func TestDropSkipsFirstNValues(t *testing.T) {
	c := newCollector[int]()
	Drop(FromSlice([]int{1, 2, 3, 4}), 2).Subscribe(c.observer())
	waitTerminated(t, c)
	values, _, _ := c.snapshot()
	assert.Equal(t, []int{3, 4}, values)
}

func TestTakeWhileStopsAtFirstFailingPredicate(t *testing.T) {
	c := newCollector[int]()
	TakeWhile(Range(0, 100), func(v int) bool { return v < 3 }).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, _ := c.snapshot()
	assert.Equal(t, []int{0, 1, 2}, values)
	assert.True(t, completed)
}

func TestDropWhileStartsEmittingAtFirstFailingPredicate(t *testing.T) {
	c := newCollector[int]()
	DropWhile(FromSlice([]int{1, 2, 3, 4, 1}), func(v int) bool { return v < 3 }).Subscribe(c.observer())
	waitTerminated(t, c)
	values, _, _ := c.snapshot()
	assert.Equal(t, []int{3, 4, 1}, values)
}

func TestTakeWhileRecoversPanicIntoOnError(t *testing.T) {
	c := newCollector[int]()
	TakeWhile(Range(0, 100), func(v int) bool {
		if v == 2 {
			panic("boom")
		}
		return true
	}).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, err := c.snapshot()
	assert.Equal(t, []int{0, 1}, values)
	assert.False(t, completed)
	assert.Error(t, err)
}

func TestDropWhileRecoversPanicIntoOnError(t *testing.T) {
	c := newCollector[int]()
	DropWhile(FromSlice([]int{1, 2, 3}), func(v int) bool {
		if v == 2 {
			panic("boom")
		}
		return true
	}).Subscribe(c.observer())
	waitTerminated(t, c)
	values, completed, err := c.snapshot()
	assert.Empty(t, values)
	assert.False(t, completed)
	assert.Error(t, err)
}
