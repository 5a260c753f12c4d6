package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emimeter_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "emimeter_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"route", "method"},
	)

	computationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emimeter_computations_total",
			Help: "Total number of emission report computations",
		},
		[]string{"operation", "status"},
	)

	liveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "emimeter_live_sessions",
			Help: "Number of live calculator sessions",
		},
	)

	sessionsPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emimeter_sessions_pruned_total",
			Help: "Total number of sessions dropped after idle TTL expiry",
		},
	)
)

// recordComputation counts one report computation under the operation
// that triggered it.
func recordComputation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	computationsTotal.WithLabelValues(operation, status).Inc()
}
