package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route template, method and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkblog_http_requests_total",
		Help: "The total number of HTTP requests",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkblog_http_request_duration_seconds",
		Help:    "The HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	RegistrationAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkblog_registration_attempts_total",
		Help: "The total number of registration attempts",
	}, []string{"status"})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkblog_login_attempts_total",
		Help: "The total number of login attempts",
	}, []string{"status"})

	EmailsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkblog_emails_sent_total",
		Help: "The total number of outbound emails by kind and outcome",
	}, []string{"kind", "status"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkblog_rate_limited_requests_total",
		Help: "The total number of requests rejected by the rate limiter",
	})
)
