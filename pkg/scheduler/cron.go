package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// parseCronSchedule accepts both the standard 5-field cron syntax and the
// 6-field (with-seconds) syntax, trying the seconds variant only if the
// standard parse fails.
func parseCronSchedule(spec string) (cron.Schedule, error) {
	if sched, err := cron.ParseStandard(spec); err == nil {
		return sched, nil
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	sched, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return sched, nil
}

// submitRecurringViaCron drives task on the recurring cadence described by
// spec, dispatching each firing through dispatcher.Submit so the caller's
// own execution policy (immediate goroutine, trampoline) still governs how
// each individual firing actually runs.
func submitRecurringViaCron(dispatcher interface{ Submit(func()) }, spec string, task func()) (Cancel, error) {
	if _, err := parseCronSchedule(spec); err != nil {
		return nil, err
	}

	c := cron.New(cron.WithSeconds())
	entryID, err := c.AddFunc(normalizeToSixFields(spec), func() {
		dispatcher.Submit(task)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	c.Start()

	return func() {
		c.Remove(entryID)
		c.Stop()
	}, nil
}

// normalizeToSixFields prefixes a standard 5-field expression with a
// leading "0" seconds field, since the shared cron.Cron instance is always
// constructed WithSeconds.
func normalizeToSixFields(spec string) string {
	if _, err := cron.ParseStandard(spec); err == nil {
		return "0 " + spec
	}
	return spec
}

// CronScheduler is a standalone recurring-only scheduler for callers that
// want a dedicated cron engine (e.g. distinct lifecycle, separate
// stop/start) rather than piggybacking on Immediate or Trampoline.
type CronScheduler struct {
	cron *cron.Cron
}

// NewCronScheduler creates a CronScheduler and starts its underlying cron
// engine.
func NewCronScheduler() *CronScheduler {
	s := &CronScheduler{cron: cron.New(cron.WithSeconds())}
	s.cron.Start()
	return s
}

func (s *CronScheduler) Submit(task func()) {
	go task()
}

func (s *CronScheduler) SubmitAfter(delay time.Duration, task func()) Cancel {
	timer := time.AfterFunc(delay, task)
	return func() { timer.Stop() }
}

func (s *CronScheduler) SubmitRecurring(spec string, task func()) (Cancel, error) {
	if _, err := parseCronSchedule(spec); err != nil {
		return nil, err
	}
	entryID, err := s.cron.AddFunc(normalizeToSixFields(spec), task)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return func() { s.cron.Remove(entryID) }, nil
}

// Stop halts the underlying cron engine, waiting for in-flight jobs to
// finish.
func (s *CronScheduler) Stop() {
	<-s.cron.Stop().Done()
}
