package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	ErrorsTotal      *prometheus.CounterVec
	EnrichmentsTotal *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seoconsole_requests_total",
			Help: "The total number of API requests handled",
		}, []string{"route"}),
		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seoconsole_errors_total",
			Help: "The total number of errors encountered",
		}, []string{"type"}), // e.g., 'conflict', 'upstream_failed', 'enrich_failed'
		EnrichmentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seoconsole_enrichments_total",
			Help: "The total number of enrichment jobs run",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncRequests(route string) {
	m.RequestsTotal.WithLabelValues(route).Inc()
}

func (m *Metrics) IncErrors(errorType string) {
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

func (m *Metrics) IncEnrichments(outcome string) {
	m.EnrichmentsTotal.WithLabelValues(outcome).Inc()
}
