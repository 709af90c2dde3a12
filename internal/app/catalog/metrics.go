// internal/app/catalog/metrics.go
package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Endpoint labels.
const (
	endpointList   = "list"
	endpointSearch = "search"
	endpointInfo   = "info"
)

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamecenter_catalog_requests_total",
		Help: "Requests sent to the catalog API.",
	}, []string{"endpoint", "result"}) // result: ok, http_error, transport_error

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gamecenter_catalog_request_duration_seconds",
		Help:    "Duration of catalog API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamecenter_catalog_cache_lookups_total",
		Help: "Revalidation cache lookups.",
	}, []string{"endpoint", "state"}) // state: fresh, stale, miss

	Outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamecenter_catalog_outcomes_total",
		Help: "Adapter outcomes by operation.",
	}, []string{"operation", "outcome"})
)

func recordUpstream(endpoint, result string, start time.Time) {
	UpstreamRequests.WithLabelValues(endpoint, result).Inc()
	UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func recordOutcome(operation string, o Outcome) {
	Outcomes.WithLabelValues(operation, o.String()).Inc()
}
