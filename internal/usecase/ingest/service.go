// Package ingest provides the quote crawling use case.
// It pulls quotes from external sources, de-duplicates them against the
// repository by content fingerprint, and stores the new ones.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	"github.com/makhmudjon-inadullaev/quote-service/internal/observability/metrics"
	"github.com/makhmudjon-inadullaev/quote-service/internal/repository"
)

const crawlParallelism = 3 // concurrent source crawls

// FetchedQuote represents a single quote pulled from an external source,
// before validation and de-duplication.
type FetchedQuote struct {
	Text   string
	Author string
	Tags   []string
	Source entity.Source
}

// QuoteFetcher is an interface for pulling a batch of quotes from one
// external source. Implementations live under internal/infra/fetcher and
// internal/infra/scraper.
type QuoteFetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]FetchedQuote, error)
}

// Service provides the quote crawling use case.
// It orchestrates fetching from all configured sources, de-duplicating by
// fingerprint, and storing new quotes.
type Service struct {
	Repo     repository.QuoteRepository
	Fetchers []QuoteFetcher
}

// NewService creates a new ingest Service with the provided dependencies.
func NewService(repo repository.QuoteRepository, fetchers []QuoteFetcher) Service {
	return Service{Repo: repo, Fetchers: fetchers}
}

// CrawlStats contains statistics about a crawl operation.
type CrawlStats struct {
	Sources    int
	Fetched    int64
	Inserted   int64
	Duplicated int64
	Invalid    int64
	Duration   time.Duration
}

// CrawlAll fetches and stores quotes from all configured sources.
// Sources are crawled concurrently with bounded parallelism. A failing
// source is logged and skipped so the others still complete. Returns crawl
// statistics including counts of fetched, inserted, and duplicated quotes.
func (s *Service) CrawlAll(ctx context.Context) (*CrawlStats, error) {
	logger := slog.Default()
	startAll := time.Now()
	stats := &CrawlStats{Sources: len(s.Fetchers)}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(crawlParallelism)

	for _, fetcher := range s.Fetchers {
		f := fetcher
		eg.Go(func() error {
			return s.crawlSource(egCtx, f, stats)
		})
	}
	if err := eg.Wait(); err != nil {
		return stats, err
	}

	if total, err := s.Repo.Count(ctx); err == nil {
		metrics.UpdateQuotesTotal(total)
	}

	stats.Duration = time.Since(startAll)
	logger.Info("all sources crawl completed",
		slog.Int("sources", stats.Sources),
		slog.Int64("fetched", atomic.LoadInt64(&stats.Fetched)),
		slog.Int64("inserted", atomic.LoadInt64(&stats.Inserted)),
		slog.Int64("duplicated", atomic.LoadInt64(&stats.Duplicated)),
		slog.Int64("invalid", atomic.LoadInt64(&stats.Invalid)),
		slog.Duration("duration", stats.Duration),
	)

	return stats, nil
}

// crawlSource crawls a single source and updates the stats atomically.
// Returns an error only for critical failures (context cancellation,
// repository write errors). Fetch and batch check failures are logged and
// the source is skipped.
func (s *Service) crawlSource(ctx context.Context, fetcher QuoteFetcher, stats *CrawlStats) error {
	logger := slog.Default()
	sourceStart := time.Now()
	source := fetcher.Name()

	fetched, err := fetcher.Fetch(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		logger.Warn("failed to fetch quotes",
			slog.String("source", source),
			slog.Any("error", err))
		metrics.RecordQuoteCrawlError(source, "fetch_failed")
		// Continue with other sources even if one fails
		return nil
	}
	atomic.AddInt64(&stats.Fetched, int64(len(fetched)))

	if len(fetched) == 0 {
		logger.Info("source returned no quotes", slog.String("source", source))
		return nil
	}

	// N+1問題解消: 事前に全指紋をバッチで存在チェック
	candidates := make([]*entity.Quote, 0, len(fetched))
	fingerprints := make([]string, 0, len(fetched))
	for _, fq := range fetched {
		q := &entity.Quote{
			Text:   fq.Text,
			Author: fq.Author,
			Tags:   entity.NormalizeTags(fq.Tags),
			Source: fq.Source,
		}
		candidates = append(candidates, q)
		fingerprints = append(fingerprints, q.Fingerprint())
	}
	existsMap, err := s.Repo.ExistsByFingerprintBatch(ctx, fingerprints)
	if err != nil {
		logger.Warn("failed to batch check fingerprints",
			slog.String("source", source),
			slog.Any("error", err))
		metrics.RecordQuoteCrawlError(source, "batch_check_failed")
		return nil
	}

	var inserted int64
	seen := make(map[string]bool, len(candidates))
	for i, q := range candidates {
		fp := fingerprints[i]

		// 既に存在する引用、同一バッチ内の重複はスキップ
		if existsMap[fp] || seen[fp] {
			atomic.AddInt64(&stats.Duplicated, 1)
			continue
		}
		seen[fp] = true

		if err := entity.ValidateQuote(q); err != nil {
			atomic.AddInt64(&stats.Invalid, 1)
			logger.Warn("fetched quote failed validation, skipping",
				slog.String("source", source),
				slog.String("author", q.Author),
				slog.Any("error", err))
			continue
		}

		now := time.Now().UTC()
		q.ID = uuid.NewString()
		q.CreatedAt = now
		q.UpdatedAt = now
		if err := s.Repo.Create(ctx, q); err != nil {
			return fmt.Errorf("create quote from %s: %w", source, err)
		}
		inserted++
	}
	atomic.AddInt64(&stats.Inserted, inserted)

	sourceDuration := time.Since(sourceStart)
	metrics.RecordQuotesFetched(source, int(inserted))
	metrics.RecordQuoteCrawl(source, sourceDuration)

	logger.Info("source crawl completed",
		slog.String("source", source),
		slog.Int("fetched", len(fetched)),
		slog.Int64("inserted", inserted),
		slog.Duration("duration", sourceDuration),
	)

	return nil
}
