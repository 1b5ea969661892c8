package mergebuf

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/observer"
)

func TestScheduleNextSerializesConcurrentProducers(t *testing.T) {
	var mu sync.Mutex
	var order []int
	inner := observer.Func[int]{
		Next: func(v int) ack.Ack {
			mu.Lock()
			order = append(order, v)
			mu.Unlock()
			time.Sleep(time.Millisecond)
			return ack.NowContinue
		},
	}
	buf := New[int](&inner, 2)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			buf.ScheduleNext(v).Wait()
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, order, 20, "every scheduled value must reach downstream exactly once")
}

func TestScheduleDoneFiresOnlyAfterAllRefsDone(t *testing.T) {
	completed := make(chan struct{})
	inner := observer.Func[int]{
		Complete: func() { close(completed) },
	}
	buf := New[int](&inner, 2)

	buf.ScheduleDone()
	select {
	case <-completed:
		t.Fatal("completed after only one of two refs finished")
	case <-time.After(50 * time.Millisecond):
	}

	buf.ScheduleDone()
	select {
	case <-completed:
	case <-time.After(time.Second):
		t.Fatal("never completed after all refs finished")
	}
}

func TestScheduleOnErrorStopsFurtherValues(t *testing.T) {
	var mu sync.Mutex
	var got []int
	errored := make(chan error, 1)
	inner := observer.Func[int]{
		Next: func(v int) ack.Ack {
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
			return ack.NowContinue
		},
		Error: func(err error) { errored <- err },
	}
	buf := New[int](&inner, 1)

	sig1 := buf.ScheduleNext(1).Wait()
	assert.Equal(t, ack.Continue, sig1)

	buf.ScheduleOnError(assert.AnError)

	select {
	case err := <-errored:
		assert.Equal(t, assert.AnError, err)
	case <-time.After(time.Second):
		t.Fatal("error never delivered")
	}

	sig2 := buf.ScheduleNext(2).Wait()
	assert.Equal(t, ack.Done, sig2, "values scheduled after termination must resolve Done")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1}, got)
}
