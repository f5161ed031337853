package metrics

import "time"

// Cache tier label values for recommendation cache metrics.
const (
	TierEphemeral  = "ephemeral"
	TierPersistent = "persistent"
)

// Selection mode label values for random selection metrics.
const (
	ModeWeighted = "weighted"
	ModeUniform  = "uniform"
)

// RecordCacheHit records a recommendation cache hit on the given tier.
func RecordCacheHit(tier string) {
	RecommendationCacheHitsTotal.WithLabelValues(tier).Inc()
}

// RecordCacheMiss records a full cache miss: neither tier held the ranking
// and it had to be computed live.
func RecordCacheMiss() {
	RecommendationCacheMissesTotal.Inc()
}

// RecordInvalidation records a like-triggered cache invalidation.
func RecordInvalidation() {
	RecommendationInvalidationsTotal.Inc()
}

// RecordSimilarityComputed records the time taken to rank the full pool
// against a target quote.
func RecordSimilarityComputed(duration time.Duration) {
	SimilarityComputeDuration.Observe(duration.Seconds())
}

// RecordRandomSelection records a random quote selection.
// Mode should be ModeWeighted or ModeUniform.
func RecordRandomSelection(mode string) {
	RandomSelectionsTotal.WithLabelValues(mode).Inc()
}

// RecordQuoteLiked records a successful like operation.
func RecordQuoteLiked() {
	QuoteLikesTotal.Inc()
}

// RecordQuotesFetched records the number of quotes fetched from an
// external source during a crawl.
func RecordQuotesFetched(source string, count int) {
	QuotesFetchedTotal.WithLabelValues(source).Add(float64(count))
}

// RecordQuoteCrawl records metrics for a single source crawl.
func RecordQuoteCrawl(source string, duration time.Duration) {
	QuoteCrawlDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordQuoteCrawlError records an error during quote crawling.
func RecordQuoteCrawlError(source, errorType string) {
	QuoteCrawlErrors.WithLabelValues(source, errorType).Inc()
}

// UpdateQuotesTotal updates the total count of quotes in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdateQuotesTotal(count int64) {
	QuotesTotal.Set(float64(count))
}
