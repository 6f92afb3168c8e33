package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	// AuthEvents counts session manager operations by outcome.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surfclub_auth_events_total",
		Help: "Total number of authentication and session operations",
	}, []string{"operation", "outcome"})

	// SessionsRevoked counts refresh tokens revoked, labelled by reason
	// (logout, rotation, revoke_all, account_deleted).
	SessionsRevoked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surfclub_sessions_revoked_total",
		Help: "Total number of refresh token revocations",
	}, []string{"reason"})

	// HTTPRequests counts served requests by route pattern and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surfclub_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPDuration tracks request latency.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "surfclub_http_request_duration_seconds",
		Help:    "Histogram of HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// RecordAuth records one session manager operation.
func RecordAuth(operation string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	AuthEvents.WithLabelValues(operation, outcome).Inc()
}
