// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes application metrics including:
//   - Business metrics (quotes, likes, crawls)
//   - Recommendation cache metrics (hits, misses, invalidations)
//   - Database connection pool metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "github.com/makhmudjon-inadullaev/quote-service/internal/observability/metrics"
//
//	func crawlSource(source string) {
//	    start := time.Now()
//	    // ... fetch quotes ...
//	    count := 10
//
//	    metrics.RecordQuotesFetched(source, count)
//	    metrics.RecordQuoteCrawl(source, time.Since(start))
//	}
package metrics
