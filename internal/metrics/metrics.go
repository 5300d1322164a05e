package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Target resolution outcomes by kind: found, missing or skipped
	TargetResolutions *prometheus.CounterVec

	SideEffectFailures *prometheus.CounterVec
	SagaCompensations  *prometheus.CounterVec

	FeedAssemblyDuration *prometheus.HistogramVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Get returns the process-wide metrics, registering them on first use
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			CacheHitsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_hits_total",
					Help: "Total number of cache hits",
				},
				[]string{"cache"},
			),
			CacheMissesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_misses_total",
					Help: "Total number of cache misses",
				},
				[]string{"cache"},
			),
			TargetResolutions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "target_resolutions_total",
					Help: "Polymorphic target resolutions by kind and outcome",
				},
				[]string{"kind", "outcome"},
			),
			SideEffectFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "side_effect_failures_total",
					Help: "Best-effort side effects that failed after the primary write",
				},
				[]string{"effect"},
			),
			SagaCompensations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "saga_compensations_total",
					Help: "Compensating actions run after a failed cascading delete",
				},
				[]string{"saga", "result"},
			),
			FeedAssemblyDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "feed_assembly_duration_seconds",
					Help:    "Time spent assembling a feed page",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"view"},
			),
		}
	})
	return instance
}
