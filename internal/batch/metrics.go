package batch

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors a Runner updates.
type Metrics struct {
	Evaluations prometheus.Counter
	Failures    prometheus.Counter

	// Infeasible counts scenarios exceeding a resource's global baseline,
	// labelled by resource.
	Infeasible *prometheus.CounterVec

	// Duration observes wall time per scenario evaluation in seconds.
	Duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aipower",
			Name:      "scenario_evaluations_total",
			Help:      "Scenarios evaluated.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aipower",
			Name:      "scenario_failures_total",
			Help:      "Scenario evaluations that returned an error.",
		}),
		Infeasible: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aipower",
			Name:      "scenario_infeasible_total",
			Help:      "Scenarios exceeding a resource's global baseline.",
		}, []string{"resource"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aipower",
			Name:      "scenario_evaluation_seconds",
			Help:      "Wall time of one scenario evaluation.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	reg.MustRegister(m.Evaluations, m.Failures, m.Infeasible, m.Duration)
	return m
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format, for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
