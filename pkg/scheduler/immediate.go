package scheduler

import "time"

// Immediate runs every submitted task on its own goroutine right away.
// Passed to observeOn or subscribeOn, it moves work off the emitting
// goroutine.
type Immediate struct{}

// NewImmediate creates an Immediate scheduler.
func NewImmediate() *Immediate { return &Immediate{} }

func (Immediate) Submit(task func()) {
	go task()
}

func (Immediate) SubmitAfter(delay time.Duration, task func()) Cancel {
	timer := time.AfterFunc(delay, task)
	return func() { timer.Stop() }
}

func (s Immediate) SubmitRecurring(spec string, task func()) (Cancel, error) {
	return submitRecurringViaCron(s, spec, task)
}
