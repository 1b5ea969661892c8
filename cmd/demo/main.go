// Command demo wires together a small end-to-end pipeline over the
// reactive streams core: a source of orders is transformed, moved onto a
// scheduler, fanned out to a keyed subject per customer, and guarded by a
// circuit breaker before being logged. It exists to exercise the module's
// own components the way a real caller would, not as a test.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/circuitbreaker"
	"github.com/ling-streams/rx/pkg/config"
	"github.com/ling-streams/rx/pkg/logger"
	"github.com/ling-streams/rx/pkg/reactive"
	"github.com/ling-streams/rx/pkg/scheduler"
	"github.com/ling-streams/rx/pkg/subject"
)

type order struct {
	customer string
	amount   int
}

func main() {
	mode := flag.String("mode", "", "running environment (development, test, production)")
	flag.Parse()

	if *mode != "" {
		os.Setenv("MODE", *mode)
	}

	if err := config.Load(); err != nil {
		panic("config load failed: " + err.Error())
	}

	if err := logger.Init(&config.GlobalConfig.Log, config.GlobalConfig.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting demo pipeline", zap.String("mode", config.GlobalConfig.Mode))

	orders := []order{
		{customer: "alice", amount: 42},
		{customer: "bob", amount: 7},
		{customer: "alice", amount: 15},
		{customer: "carol", amount: -3},
		{customer: "bob", amount: 99},
	}

	registry := subject.NewRegistry[order](config.GlobalConfig.SubjectRegistrySize)
	for _, o := range orders {
		registry.GetOrCreate(o.customer)
	}

	failures := scheduler.NewLoggingFailureReporter(logger.Lg, scheduler.DefaultLoggingFailureReporterConfig())
	sched := scheduler.NewImmediate()
	breaker := circuitbreaker.New(circuitbreaker.DefaultConfig("demo-pipeline"))

	valid := reactive.Filter(reactive.FromSlice(orders), func(o order) bool { return o.amount > 0 })
	routed := reactive.ObserveOn(valid, sched)
	guarded := reactive.CircuitBreak(routed, breaker)

	done := make(chan struct{})
	guarded.SubscribeFuncs(
		func(o order) ack.Ack {
			topic := registry.GetOrCreate(o.customer)
			topic.OnNext(o)
			fmt.Printf("routed order: customer=%s amount=%d\n", o.customer, o.amount)
			return ack.NowContinue
		},
		func() {
			logger.Info("demo pipeline complete")
			close(done)
		},
		func(err error) {
			failures.ReportFailure("demo-pipeline", err)
			logger.Error("demo pipeline failed", zap.Error(err))
			close(done)
		},
	)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		logger.Warn("demo pipeline timed out")
	}
}
