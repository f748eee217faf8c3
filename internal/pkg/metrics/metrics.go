package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Booking
	AdmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeclean_order_admissions_total",
			Help: "Order creation attempts by admission outcome",
		},
		[]string{"outcome"}, // admitted, conflict, invalid, error
	)

	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeclean_order_transitions_total",
			Help: "Order status transition requests by source and result",
		},
		[]string{"source", "to", "result"}, // applied, idempotent, rejected, error
	)

	TransitionRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeclean_order_transition_retries_total",
			Help: "Transition re-evaluations after a lost conditional update or a reduced-payload retry",
		},
		[]string{"reason"}, // concurrent_update, schema_drift
	)

	// Webhook
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeclean_payment_webhook_events_total",
			Help: "Payment webhook deliveries by result",
		},
		[]string{"result"},
	)

	// HTTP server
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeclean_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "homeclean_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func RecordAdmission(outcome string) {
	AdmissionsTotal.WithLabelValues(outcome).Inc()
}

func RecordTransition(source, to, result string) {
	TransitionsTotal.WithLabelValues(source, to, result).Inc()
}

func RecordTransitionRetry(reason string) {
	TransitionRetries.WithLabelValues(reason).Inc()
}

func RecordWebhookEvent(result string) {
	WebhookEventsTotal.WithLabelValues(result).Inc()
}

func RecordHTTPRequest(method, route, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}
