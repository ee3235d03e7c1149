package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-answerform/pkg/answer"
)

// Metrics holds the counters exported on /metrics.
type Metrics struct {
	Registry *prometheus.Registry
	Syncs    prometheus.Counter
	Issues   *prometheus.CounterVec
}

// NewMetrics registers the answer form counters on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Syncs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "answerform_syncs_total",
			Help: "Stored answers written back to the host.",
		}),
		Issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "answerform_issues_total",
			Help: "Definition, load and conflict issues reported.",
		}, []string{"kind"}),
	}
	m.Registry.MustRegister(m.Syncs, m.Issues)
	return m
}

// Observe counts issues by kind.
func (m *Metrics) Observe(issues answer.Issues) {
	for kind, n := range issues.Counts() {
		m.Issues.WithLabelValues(kind).Add(float64(n))
	}
}
