// Package metrics provides Prometheus metrics collection for the portal API.
// It exports HTTP server metrics plus domain counters:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - medication_checks_total: Counter with overall risk label
//   - prep_packs_total: Counter with source label (ai or rules)
//   - ai_requests_total: Counter with outcome label (ok, error, fallback)
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	MedicationChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medication_checks_total",
			Help: "Total medication safety checks by overall risk level",
		},
		[]string{"risk"},
	)

	PrepPacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prep_packs_total",
			Help: "Total appointment prep packs generated, by source",
		},
		[]string{"source"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total requests to the generative text service by outcome",
		},
		[]string{"outcome"},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets currently tracked",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(MedicationChecksTotal)
	prometheus.MustRegister(PrepPacksTotal)
	prometheus.MustRegister(AIRequestsTotal)
	prometheus.MustRegister(RateLimiterBucketsTotal)
}
