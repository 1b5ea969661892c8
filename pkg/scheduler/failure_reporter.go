package scheduler

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// LoggingFailureReporterConfig tunes when repeated task failures escalate
// from an individual warning log to an aggregated error-level alert log.
type LoggingFailureReporterConfig struct {
	// Threshold is the number of failures within Window that triggers an
	// aggregated alert log.
	Threshold int
	// Window is the rolling period failures are counted over.
	Window time.Duration
	// Cooldown is the minimum time between two aggregated alert logs for
	// the same task name.
	Cooldown time.Duration
}

// DefaultLoggingFailureReporterConfig mirrors sensible defaults for a
// low-volume scheduler: five failures in a minute triggers an alert, and
// alerts for the same task are throttled to one per five minutes.
func DefaultLoggingFailureReporterConfig() LoggingFailureReporterConfig {
	return LoggingFailureReporterConfig{
		Threshold: 5,
		Window:    time.Minute,
		Cooldown:  5 * time.Minute,
	}
}

type failureWindow struct {
	count       int
	windowStart time.Time
	lastAlert   time.Time
}

// LoggingFailureReporter logs every individual task failure at warn level,
// and additionally logs an aggregated error-level alert once a task's
// failure count within Window crosses Threshold, throttled by Cooldown.
// This generalizes the log-derived alert manager's error/warning threshold
// and cooldown bookkeeping from log-level counts to named-task failure
// counts.
type LoggingFailureReporter struct {
	config LoggingFailureReporterConfig
	log    *zap.Logger

	mu      sync.Mutex
	byTask  map[string]*failureWindow
	nowFunc func() time.Time
}

// NewLoggingFailureReporter creates a reporter that logs through log.
func NewLoggingFailureReporter(log *zap.Logger, config LoggingFailureReporterConfig) *LoggingFailureReporter {
	return &LoggingFailureReporter{
		config:  config,
		log:     log,
		byTask:  make(map[string]*failureWindow),
		nowFunc: time.Now,
	}
}

func (r *LoggingFailureReporter) ReportFailure(taskName string, err error) {
	r.log.Warn("scheduled task failed", zap.String("task", taskName), zap.Error(err))

	r.mu.Lock()
	now := r.nowFunc()
	w, ok := r.byTask[taskName]
	if !ok {
		w = &failureWindow{windowStart: now}
		r.byTask[taskName] = w
	}
	if now.Sub(w.windowStart) > r.config.Window {
		w.windowStart = now
		w.count = 0
	}
	w.count++

	shouldAlert := w.count >= r.config.Threshold && now.Sub(w.lastAlert) >= r.config.Cooldown
	if shouldAlert {
		w.lastAlert = now
	}
	count := w.count
	windowStart := w.windowStart
	r.mu.Unlock()

	if shouldAlert {
		r.log.Error("task failure threshold exceeded",
			zap.String("task", taskName),
			zap.Int("count", count),
			zap.Time("windowStart", windowStart),
			zap.Duration("window", r.config.Window),
			zap.Error(err))
	}
}
