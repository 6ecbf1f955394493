package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	ActiveSessionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "active_sessions_total",
			Help: "Current number of live reservation sessions",
		},
		[]string{"service"},
	)

	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offer_searches_total",
			Help: "Total number of offer searches by service kind and outcome",
		},
		[]string{"service", "kind", "outcome"},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Total number of payment attempts by method and outcome",
		},
		[]string{"service", "method", "outcome"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Total number of bookings appended to the ledger",
		},
		[]string{"service", "kind"},
	)
)

// RecordHTTPMetrics records counter and duration for a completed request.
func RecordHTTPMetrics(service, method, path string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	HttpRequestsTotal.WithLabelValues(service, method, path, statusStr).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, statusStr).Observe(duration.Seconds())
}

// RecordSearch records a finished search.
func RecordSearch(service, kind, outcome string) {
	SearchesTotal.WithLabelValues(service, kind, outcome).Inc()
}

// RecordPayment records a terminal payment outcome.
func RecordPayment(service, method, outcome string) {
	PaymentsTotal.WithLabelValues(service, method, outcome).Inc()
}

// RecordBooking records a booking appended to the ledger.
func RecordBooking(service, kind string) {
	BookingsTotal.WithLabelValues(service, kind).Inc()
}
