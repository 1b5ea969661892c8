package atomiccell

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	c := New(10)
	assert.Equal(t, 10, c.Get())
	c.Set(20)
	assert.Equal(t, 20, c.Get())
}

func TestGetAndSet(t *testing.T) {
	c := New("a")
	old := c.GetAndSet("b")
	assert.Equal(t, "a", old)
	assert.Equal(t, "b", c.Get())
}

func TestTransformUnderContention(t *testing.T) {
	c := New(0)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Transform(func(v int) int { return v + 1 })
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, c.Get())
}

func TestTransformAndGetGetAndTransform(t *testing.T) {
	c := New(5)
	got := c.TransformAndGet(func(v int) int { return v * 2 })
	assert.Equal(t, 10, got)

	old := c.GetAndTransform(func(v int) int { return v + 1 })
	assert.Equal(t, 10, old)
	assert.Equal(t, 11, c.Get())
}

func TestCompareAndSet(t *testing.T) {
	c := New(1)
	assert.True(t, CompareAndSet(c, 1, 2))
	assert.Equal(t, 2, c.Get())
	assert.False(t, CompareAndSet(c, 1, 3))
	assert.Equal(t, 2, c.Get())
}

func TestTransformAndExtract(t *testing.T) {
	c := New([]int{1, 2, 3})
	popped := TransformAndExtract(c, func(xs []int) ([]int, int) {
		last := xs[len(xs)-1]
		return xs[:len(xs)-1], last
	})
	assert.Equal(t, 3, popped)
	assert.Equal(t, []int{1, 2}, c.Get())
}

func TestInt64CellFetchAdd(t *testing.T) {
	c := NewInt64Cell(0)
	assert.Equal(t, int64(1), c.IncrementAndGet())
	assert.Equal(t, int64(2), c.IncrementAndGet())
	assert.Equal(t, int64(2), c.GetAndAdd(20))
	assert.Equal(t, int64(22), c.GetAndAdd(20))
	assert.Equal(t, int64(42), c.Get())
}

func TestBigIntCellRetryLoop(t *testing.T) {
	c := NewBigIntCell(100)
	assert.Equal(t, "101", c.IncrementAndGet().String())
	assert.Equal(t, "102", c.IncrementAndGet().String())
	assert.Equal(t, "122", c.AddAndGet(20).String())
	assert.Equal(t, "142", c.AddAndGet(20).String())
}
