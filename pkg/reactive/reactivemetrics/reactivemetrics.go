// Package reactivemetrics exposes opt-in prometheus.Collector instruments
// for the reactive streams core: live subscriber counts per subject,
// per-operator items-forwarded counters, and circuit breaker state
// gauges. Recording a metric never affects an Ack — these collectors only
// observe the stream, they never participate in its backpressure.
package reactivemetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ling-streams/rx/pkg/circuitbreaker"
)

const namespace = "rx"

// SubjectCollector reports live subscriber counts for one or more named
// subjects. Call Observe after every Subscribe/unsubscribe/terminate to
// keep the gauge current; nothing in pkg/subject calls this automatically,
// since metrics collection is opt-in per SPEC_FULL.md §11.6.
type SubjectCollector struct {
	subscriberCount *prometheus.GaugeVec
}

// NewSubjectCollector returns a new SubjectCollector.
func NewSubjectCollector() *SubjectCollector {
	return &SubjectCollector{
		subscriberCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "subject",
				Name:      "subscriber_count",
				Help:      "Current number of live subscribers attached to a subject.",
			},
			[]string{"subject"},
		),
	}
}

// Observe records the current subscriber count for the named subject.
func (c *SubjectCollector) Observe(name string, count int) {
	c.subscriberCount.WithLabelValues(name).Set(float64(count))
}

// Describe is part of the prometheus.Collector interface.
func (c *SubjectCollector) Describe(ch chan<- *prometheus.Desc) {
	c.subscriberCount.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *SubjectCollector) Collect(ch chan<- prometheus.Metric) {
	c.subscriberCount.Collect(ch)
}

// OperatorCollector counts items forwarded by a named operator instance.
// Call Inc for every item the operator forwards; no operator in pkg/reactive
// calls it on its own.
type OperatorCollector struct {
	itemsForwarded *prometheus.CounterVec
}

// NewOperatorCollector returns a new OperatorCollector.
func NewOperatorCollector() *OperatorCollector {
	return &OperatorCollector{
		itemsForwarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "operator",
				Name:      "items_forwarded_total",
				Help:      "Total number of items an operator instance has forwarded downstream.",
			},
			[]string{"operator"},
		),
	}
}

// Inc increments the forwarded-items counter for the named operator.
func (c *OperatorCollector) Inc(name string) {
	c.itemsForwarded.WithLabelValues(name).Inc()
}

// Describe is part of the prometheus.Collector interface.
func (c *OperatorCollector) Describe(ch chan<- *prometheus.Desc) {
	c.itemsForwarded.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *OperatorCollector) Collect(ch chan<- prometheus.Metric) {
	c.itemsForwarded.Collect(ch)
}

// BreakerStateGauge reports a circuit breaker's current state (0 = closed,
// 1 = open, 2 = half-open, matching circuitbreaker.State's own ordering)
// as a gauge, polled on demand via Set rather than pushed, since the
// breaker itself has no subscriber hook.
type BreakerStateGauge struct {
	state *prometheus.GaugeVec
}

// NewBreakerStateGauge returns a new BreakerStateGauge.
func NewBreakerStateGauge() *BreakerStateGauge {
	return &BreakerStateGauge{
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Current circuit breaker state: 0=closed, 1=open, 2=half-open.",
			},
			[]string{"breaker"},
		),
	}
}

// Set records the named breaker's current state.
func (g *BreakerStateGauge) Set(name string, state float64) {
	g.state.WithLabelValues(name).Set(state)
}

// Observe reads breaker's current state directly and records it.
func (g *BreakerStateGauge) Observe(breaker *circuitbreaker.CircuitBreaker) {
	g.Set(breaker.Name(), float64(breaker.State()))
}

// Describe is part of the prometheus.Collector interface.
func (g *BreakerStateGauge) Describe(ch chan<- *prometheus.Desc) {
	g.state.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (g *BreakerStateGauge) Collect(ch chan<- prometheus.Metric) {
	g.state.Collect(ch)
}
