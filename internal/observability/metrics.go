package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registerOnce            sync.Once
	registry                *prometheus.Registry
	analyticsRequestsTotal  *prometheus.CounterVec
	analyticsLatencySeconds *prometheus.HistogramVec
	analyticsErrorsTotal    *prometheus.CounterVec
	sourceSelectionsTotal   *prometheus.CounterVec
	buildSeconds            *prometheus.HistogramVec
	cacheLookupsTotal       *prometheus.CounterVec
)

// RegisterMetrics initialises the analytics collectors on a dedicated registry along
// with the Go runtime and process collectors.
func RegisterMetrics() {
	registerOnce.Do(func() {
		registry = prometheus.NewRegistry()

		analyticsRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analytics_requests_total",
			Help: "Total number of analytics API requests served.",
		}, []string{"method", "route", "status"})

		analyticsLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "analytics_latency_seconds",
			Help:    "Latency distribution for analytics API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		analyticsErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analytics_errors_total",
			Help: "Total number of error responses returned by analytics endpoints.",
		}, []string{"method", "route", "status"})

		sourceSelectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analytics_source_selections_total",
			Help: "Data source chosen per request (live store or snapshot fallback).",
		}, []string{"mode"})

		buildSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "analytics_build_seconds",
			Help:    "Time spent assembling a persona payload.",
			Buckets: prometheus.DefBuckets,
		}, []string{"persona", "mode"})

		cacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analytics_cache_lookups_total",
			Help: "Analytics payload cache lookups by persona and result.",
		}, []string{"persona", "result"})

		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			analyticsRequestsTotal,
			analyticsLatencySeconds,
			analyticsErrorsTotal,
			sourceSelectionsTotal,
			buildSeconds,
			cacheLookupsTotal,
		)
	})
}

// Registry returns the registry served on /metrics.
func Registry() *prometheus.Registry {
	RegisterMetrics()
	return registry
}

// AnalyticsRequests exposes the counter for analytics requests.
func AnalyticsRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return analyticsRequestsTotal
}

// AnalyticsLatency exposes the latency histogram for analytics requests.
func AnalyticsLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return analyticsLatencySeconds
}

// AnalyticsErrors exposes the counter for analytics error responses.
func AnalyticsErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return analyticsErrorsTotal
}

// SourceSelections counts data source decisions.
func SourceSelections() *prometheus.CounterVec {
	RegisterMetrics()
	return sourceSelectionsTotal
}

// BuildDuration exposes the payload assembly histogram.
func BuildDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return buildSeconds
}

// CacheLookups counts payload cache hits and misses.
func CacheLookups() *prometheus.CounterVec {
	RegisterMetrics()
	return cacheLookupsTotal
}
