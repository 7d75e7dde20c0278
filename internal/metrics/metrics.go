// Package metrics registers the Prometheus collectors served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daycare_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "daycare_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// NotificationsSent counts guardian emails by kind (incident, reminder)
	// and result (sent, failed).
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daycare_notifications_total",
			Help: "Guardian notification emails by kind and result.",
		},
		[]string{"kind", "result"},
	)

	RecordsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daycare_records_created_total",
			Help: "Records created by entity.",
		},
		[]string{"entity"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daycare_login_attempts_total",
			Help: "Login attempts by role and result.",
		},
		[]string{"role", "result"},
	)
)

// Result label values
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultSuccess = "success"
)
