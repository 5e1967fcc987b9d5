// Package metrics exposes Prometheus metrics for the guardrail pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ValidationLatencyBuckets are latency buckets for the guardrail pipeline.
// The classification path is regex-bound; the ask path includes a model call.
var ValidationLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0}

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// ValidationTotal counts pipeline runs by outcome
	ValidationTotal *prometheus.CounterVec

	// ValidationLatency tracks pipeline duration per operation
	ValidationLatency *prometheus.HistogramVec

	// IssuesTotal counts guardrail issues by flag and severity
	IssuesTotal *prometheus.CounterVec

	// ReviewsPending gauges decisions waiting for a human reviewer
	ReviewsPending prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		ValidationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guardrail_validation_total",
				Help: "Total guardrail pipeline runs",
			},
			[]string{"operation", "outcome"},
		),
		ValidationLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "guardrail_validation_latency_seconds",
				Help:    "Guardrail pipeline duration in seconds",
				Buckets: ValidationLatencyBuckets,
			},
			[]string{"operation"},
		),
		IssuesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guardrail_issues_total",
				Help: "Guardrail issues by flag and severity",
			},
			[]string{"flag", "severity"},
		),
		ReviewsPending: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "guardrail_reviews_pending",
				Help: "Decisions currently waiting for human review",
			},
		),
	}

	prometheus.MustRegister(
		m.ValidationTotal,
		m.ValidationLatency,
		m.IssuesTotal,
		m.ReviewsPending,
	)

	// Pre-initialize labels so dashboards see zeroes immediately
	for _, operation := range []string{"validate", "ask", "check"} {
		m.ValidationLatency.WithLabelValues(operation)
		for _, outcome := range []string{"passed", "failed", "rejected", "review"} {
			m.ValidationTotal.WithLabelValues(operation, outcome)
		}
	}
	m.ReviewsPending.Set(0)

	return m
}

// ObserveValidation records one pipeline run.
func (m *Metrics) ObserveValidation(operation, outcome string, duration time.Duration) {
	m.ValidationTotal.WithLabelValues(operation, outcome).Inc()
	m.ValidationLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
