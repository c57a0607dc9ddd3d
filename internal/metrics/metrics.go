// Package metrics exposes counters about test runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "utester"

type Metrics struct {
	Testers        *prometheus.CounterVec
	TesterDuration *prometheus.HistogramVec
	Runs           *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. A nil reg leaves them
// unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Testers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "testers_total",
			Help:      "Number of tester invocations by suite and status.",
		}, []string{"suite", "status"}),
		TesterDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tester_duration_seconds",
			Help:      "Run time of tester invocations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"suite"}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Number of suite runs by result.",
		}, []string{"result"}),
	}

	if reg != nil {
		reg.MustRegister(m.Testers, m.TesterDuration, m.Runs)
	}
	return m
}

func (m *Metrics) ObserveTester(suite string, status string, d time.Duration) {
	m.Testers.WithLabelValues(suite, status).Inc()
	m.TesterDuration.WithLabelValues(suite).Observe(d.Seconds())
}

// ObserveRun counts a suite run. result is "ok", "failed" or "rejected".
func (m *Metrics) ObserveRun(result string) {
	m.Runs.WithLabelValues(result).Inc()
}
