package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outbound API client metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citas_client_requests_total",
			Help: "Outbound API requests by method and status code",
		},
		[]string{"method", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "citas_client_request_duration_seconds",
			Help:    "Outbound API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	TokenClears = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "citas_client_token_clears_total",
			Help: "Times the stored token was cleared after a 401",
		},
	)

	SessionRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citas_session_refreshes_total",
			Help: "Session router refreshes by trigger",
		},
		[]string{"trigger"},
	)
)
