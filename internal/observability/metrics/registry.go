// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track application-specific operations.
// HTTP transport metrics live in the handler/http package next to the
// middleware that records them.
var (
	// QuotesTotal tracks total number of quotes in database
	QuotesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quotes_total",
			Help: "Total number of quotes in the database",
		},
	)

	// QuotesFetchedTotal counts quotes fetched from each external source
	QuotesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotes_fetched_total",
			Help: "Total number of quotes fetched from external sources",
		},
		[]string{"source"},
	)

	// QuoteLikesTotal counts like operations
	QuoteLikesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quote_likes_total",
			Help: "Total number of quote like operations",
		},
	)

	// RecommendationCacheHitsTotal counts cache hits by tier
	RecommendationCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
		[]string{"tier"}, // tier: ephemeral, persistent
	)

	// RecommendationCacheMissesTotal counts full cache misses (both tiers)
	RecommendationCacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Total number of recommendation cache misses across both tiers",
		},
	)

	// RecommendationInvalidationsTotal counts cache invalidations after likes
	RecommendationInvalidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_invalidations_total",
			Help: "Total number of recommendation cache invalidations",
		},
	)

	// SimilarityComputeDuration measures time to rank the pool against a target
	SimilarityComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "similarity_compute_duration_seconds",
			Help:    "Time taken to compute a similarity ranking over the full pool",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	// RandomSelectionsTotal counts random quote selections by mode
	RandomSelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "random_selections_total",
			Help: "Total number of random quote selections",
		},
		[]string{"mode"}, // mode: weighted, uniform
	)

	// QuoteCrawlDuration measures time to crawl an external quote source
	QuoteCrawlDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quote_crawl_duration_seconds",
			Help:    "Time taken to crawl an external quote source",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"source"},
	)

	// QuoteCrawlErrors counts errors during quote crawling
	QuoteCrawlErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_crawl_errors_total",
			Help: "Total number of quote crawl errors",
		},
		[]string{"source", "error_type"},
	)
)

// Database metrics track connection pool state
var (
	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
