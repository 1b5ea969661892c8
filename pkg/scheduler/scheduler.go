// Package scheduler implements the execution contexts operators run
// user-supplied callbacks on: immediate goroutine dispatch, synchronous
// trampolining, and cron-driven recurring dispatch, plus a failure
// reporter that turns scheduled-task errors into structured alerts the way
// the framework's log-alert manager does. A panicking task is not recovered.
package scheduler

import (
	"context"
	"time"
)

// Cancel stops a scheduled task. Calling it after the task has already run
// or already been canceled is a no-op.
type Cancel func()

// Scheduler runs tasks according to some execution policy: immediately on a
// new goroutine, synchronously trampolined on the calling goroutine, or on
// a recurring cron-like cadence.
type Scheduler interface {
	// Submit runs task as soon as the scheduler's policy allows.
	Submit(task func())
	// SubmitAfter runs task once, after delay has elapsed.
	SubmitAfter(delay time.Duration, task func()) Cancel
	// SubmitRecurring runs task on the recurring cadence described by spec,
	// which follows the same 5- or 6-field cron syntax the underlying cron
	// engine accepts. It returns an error if spec cannot be parsed.
	SubmitRecurring(spec string, task func()) (Cancel, error)
}

// FailureReporter observes task failures across a window of time and
// decides when repeated failures cross a threshold worth surfacing.
type FailureReporter interface {
	ReportFailure(taskName string, err error)
}

// ExecuteWithContext runs fn with a context bound by timeout, reporting any
// returned error to reporter under taskName. The schedulers in this package
// do not call it; callers wrap their own tasks with it.
func ExecuteWithContext(ctx context.Context, timeout time.Duration, reporter FailureReporter, taskName string, fn func(context.Context) error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := fn(runCtx); err != nil && reporter != nil {
		reporter.ReportFailure(taskName, err)
	}
}
