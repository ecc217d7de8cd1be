package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Adjustment metrics
	AdjustmentsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_adjustments_computed_total",
			Help: "Total number of rate adjustments computed",
		},
		[]string{"tier"},
	)

	AdjustmentFactor = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rate_adjustment_factor",
			Help:    "Distribution of total adjustment factors",
			Buckets: []float64{0.9, 1.0, 1.1, 1.25, 1.4, 1.6, 1.8, 2.0, 2.2, 2.5},
		},
	)

	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rate_adjustment_batch_size",
			Help:    "Number of tuples per batch computation",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
		},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rate_adjustment_batch_duration_seconds",
			Help:    "Batch computation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Cache metrics
	CacheHit = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "adjustment_cache_hit_total",
			Help: "Total number of adjustment cache hits",
		},
	)

	CacheMiss = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "adjustment_cache_miss_total",
			Help: "Total number of adjustment cache misses",
		},
	)

	// Publisher metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_events_published_total",
			Help: "Total number of pricing events published",
		},
		[]string{"status"},
	)
)
