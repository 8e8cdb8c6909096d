// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catering_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catering_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catering_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catering_api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// Facility write coordinator
	FacilityWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catering_facility_writes_total",
			Help: "Facility create/update transactions by outcome",
		},
		[]string{"op", "outcome"}, // op: create|update|delete|add_tags|remove_tags; outcome: committed|rolled_back|invalid
	)

	// Tag reconciliation
	TagsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catering_tags_resolved_total",
			Help: "Tag names resolved to ids, split by whether a new row was created",
		},
		[]string{"result"}, // existing|created
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordFacilityWrite counts a coordinator transaction outcome.
func RecordFacilityWrite(op, outcome string) {
	FacilityWrites.WithLabelValues(op, outcome).Inc()
}

// RecordTagResolved counts a resolved tag.
func RecordTagResolved(created bool) {
	result := "existing"
	if created {
		result = "created"
	}
	TagsResolved.WithLabelValues(result).Inc()
}
