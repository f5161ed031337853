package slo

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	requestsMetricName = "http_requests_total"
	durationMetricName = "http_request_duration_seconds"
)

// StartUpdater launches a goroutine that recomputes the SLO gauges from the
// HTTP transport metrics at the given interval. It stops when ctx is done.
func StartUpdater(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := updateFromGatherer(prometheus.DefaultGatherer); err != nil {
					logger.Warn("failed to update SLO metrics", slog.Any("error", err))
				}
			}
		}
	}()
}

// updateFromGatherer gathers the registered metrics and derives the SLO
// gauges from http_requests_total and http_request_duration_seconds.
// Values are cumulative since process start, which is sufficient for the
// exported gauges; rate-windowed views belong in the monitoring backend.
func updateFromGatherer(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	var totalRequests, errorRequests float64
	var histograms []*dto.Histogram

	for _, mf := range families {
		switch mf.GetName() {
		case requestsMetricName:
			for _, m := range mf.GetMetric() {
				count := m.GetCounter().GetValue()
				totalRequests += count
				if isServerError(m.GetLabel()) {
					errorRequests += count
				}
			}
		case durationMetricName:
			for _, m := range mf.GetMetric() {
				if h := m.GetHistogram(); h != nil {
					histograms = append(histograms, h)
				}
			}
		}
	}

	if totalRequests > 0 {
		UpdateAvailability((totalRequests - errorRequests) / totalRequests)
		UpdateErrorRate(errorRequests / totalRequests)
	}

	if merged := mergeHistograms(histograms); merged != nil {
		UpdateLatencyP95(quantileFromHistogram(merged, 0.95))
		UpdateLatencyP99(quantileFromHistogram(merged, 0.99))
	}
	return nil
}

func isServerError(labels []*dto.LabelPair) bool {
	for _, lp := range labels {
		if lp.GetName() == "status" {
			return strings.HasPrefix(lp.GetValue(), "5")
		}
	}
	return false
}

// bucket is a cumulative histogram bucket after merging all label series.
type bucket struct {
	upperBound      float64
	cumulativeCount uint64
}

type mergedHistogram struct {
	sampleCount uint64
	buckets     []bucket
}

// mergeHistograms combines histograms across label series. All series of one
// histogram vec share the same bucket layout, so buckets are merged by index.
func mergeHistograms(hs []*dto.Histogram) *mergedHistogram {
	if len(hs) == 0 {
		return nil
	}
	merged := &mergedHistogram{
		buckets: make([]bucket, len(hs[0].GetBucket())),
	}
	for i, b := range hs[0].GetBucket() {
		merged.buckets[i].upperBound = b.GetUpperBound()
	}
	for _, h := range hs {
		if len(h.GetBucket()) != len(merged.buckets) {
			continue
		}
		merged.sampleCount += h.GetSampleCount()
		for i, b := range h.GetBucket() {
			merged.buckets[i].cumulativeCount += b.GetCumulativeCount()
		}
	}
	if merged.sampleCount == 0 {
		return nil
	}
	return merged
}

// quantileFromHistogram estimates a quantile using linear interpolation
// within the bucket that contains the target rank, the same approach as
// Prometheus' histogram_quantile.
func quantileFromHistogram(h *mergedHistogram, q float64) float64 {
	rank := q * float64(h.sampleCount)
	var prevBound float64
	var prevCount uint64
	for _, b := range h.buckets {
		if float64(b.cumulativeCount) >= rank {
			inBucket := float64(b.cumulativeCount - prevCount)
			if inBucket == 0 {
				return b.upperBound
			}
			fraction := (rank - float64(prevCount)) / inBucket
			return prevBound + (b.upperBound-prevBound)*fraction
		}
		prevBound = b.upperBound
		prevCount = b.cumulativeCount
	}
	// Rank falls in the +Inf bucket, report the highest finite bound.
	if len(h.buckets) > 0 {
		return h.buckets[len(h.buckets)-1].upperBound
	}
	return 0
}
