package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/makhmudjon-inadullaev/quote-service/internal/cache"
	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	"github.com/makhmudjon-inadullaev/quote-service/internal/observability/metrics"
	"github.com/makhmudjon-inadullaev/quote-service/internal/recommend"
	"github.com/makhmudjon-inadullaev/quote-service/internal/repository"
)

// DefaultTTL is the time-to-live applied to ephemeral cache entries
// when no explicit TTL is configured.
const DefaultTTL = time.Hour

// Service provides quote recommendation use cases.
// It orchestrates similarity ranking and weighted random selection, and
// maintains a two-tier result cache: an ephemeral TTL tier in front of a
// durable per-quote tier. Cache failures on either tier are absorbed and
// treated as misses so that recommendations always fall back to a live
// computation.
type Service struct {
	Quotes     repository.QuoteRepository
	Similarity repository.SimilarityRepository
	Ephemeral  cache.Cache
	Selector   *recommend.Selector
	TTL        time.Duration
}

// GetSimilar returns up to limit quotes ranked by similarity to the target.
// A limit of 0 is replaced with recommend.DefaultLimit; limits outside the
// allowed range return ErrInvalidLimit. Results are served from the
// ephemeral tier when present, then from the durable tier (backfilling the
// ephemeral tier), and computed from the full quote pool otherwise. Computed
// rankings are stored at full length so any later limit can be served from
// cache by truncation.
func (s *Service) GetSimilar(ctx context.Context, targetID string, limit int) ([]recommend.ScoredQuote, error) {
	if limit == 0 {
		limit = recommend.DefaultLimit
	}
	if limit < recommend.MinLimit || limit > recommend.MaxLimit {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	target, err := s.Quotes.Get(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, targetID)
	}

	key := cacheKey(targetID)

	if ranked, ok := s.readEphemeral(ctx, key); ok {
		metrics.RecordCacheHit(metrics.TierEphemeral)
		return truncate(ranked, limit), nil
	}
	if ranked, ok := s.readPersistent(ctx, targetID); ok {
		metrics.RecordCacheHit(metrics.TierPersistent)
		s.writeEphemeral(ctx, key, ranked)
		return truncate(ranked, limit), nil
	}

	// 両tierともmissの場合のみmissとして記録する
	metrics.RecordCacheMiss()

	pool, err := s.Quotes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	start := time.Now()
	ranked := recommend.Rank(target, pool, recommend.MaxLimit)
	metrics.RecordSimilarityComputed(time.Since(start))

	if err := s.Similarity.Store(ctx, targetID, ranked); err != nil {
		slog.WarnContext(ctx, "store similarity ranking failed",
			slog.String("quote_id", targetID),
			slog.String("error", err.Error()),
		)
	}
	s.writeEphemeral(ctx, key, ranked)

	return truncate(ranked, limit), nil
}

// RandomQuote picks a random quote from the pool, excluding the given IDs.
// When weighted is true the draw is biased by likes+1, so every quote keeps
// a nonzero chance, and quotes below minLikes are filtered out first. The
// uniform draw ignores likes entirely, minLikes included. Returns (nil, nil)
// when no quote survives the filters.
func (s *Service) RandomQuote(ctx context.Context, exclude []string, minLikes int64, weighted bool) (*entity.Quote, error) {
	pool, err := s.Quotes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	entries := make([]recommend.PoolEntry, len(pool))
	byID := make(map[string]*entity.Quote, len(pool))
	for i, q := range pool {
		entries[i] = recommend.PoolEntry{ID: q.ID, Likes: q.Likes}
		byID[q.ID] = q
	}

	excludeSet := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excludeSet[id] = struct{}{}
	}

	var (
		id string
		ok bool
	)
	if weighted {
		id, ok = s.Selector.PickWeighted(entries, excludeSet, minLikes)
		metrics.RecordRandomSelection(metrics.ModeWeighted)
	} else {
		id, ok = s.Selector.PickUniform(entries, excludeSet)
		metrics.RecordRandomSelection(metrics.ModeUniform)
	}
	if !ok {
		return nil, nil
	}
	return byID[id], nil
}

// OnQuoteLiked invalidates the cached similarity ranking for the liked quote
// in both tiers. Rankings for other quotes are left untouched and refresh
// lazily as their own entries expire or get invalidated. Failures are logged
// and absorbed.
func (s *Service) OnQuoteLiked(ctx context.Context, id string) {
	if err := s.Ephemeral.Delete(ctx, cacheKey(id)); err != nil {
		slog.WarnContext(ctx, "invalidate ephemeral ranking failed",
			slog.String("quote_id", id),
			slog.String("error", err.Error()),
		)
	}
	if err := s.Similarity.Delete(ctx, id); err != nil {
		slog.WarnContext(ctx, "invalidate persistent ranking failed",
			slog.String("quote_id", id),
			slog.String("error", err.Error()),
		)
	}
	metrics.RecordInvalidation()
}

func (s *Service) readEphemeral(ctx context.Context, key string) ([]recommend.ScoredQuote, bool) {
	data, ok, err := s.Ephemeral.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "ephemeral cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var ranked []recommend.ScoredQuote
	if err := json.Unmarshal(data, &ranked); err != nil {
		slog.WarnContext(ctx, "ephemeral cache entry corrupt",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return ranked, true
}

func (s *Service) readPersistent(ctx context.Context, targetID string) ([]recommend.ScoredQuote, bool) {
	ranked, err := s.Similarity.Fetch(ctx, targetID)
	if err != nil {
		slog.WarnContext(ctx, "persistent cache read failed",
			slog.String("quote_id", targetID),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	if ranked == nil {
		return nil, false
	}
	return ranked, true
}

func (s *Service) writeEphemeral(ctx context.Context, key string, ranked []recommend.ScoredQuote) {
	data, err := json.Marshal(ranked)
	if err != nil {
		slog.WarnContext(ctx, "marshal ranking failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := s.Ephemeral.Set(ctx, key, data, ttl); err != nil {
		slog.WarnContext(ctx, "ephemeral cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func cacheKey(id string) string {
	return "similar:" + id
}

func truncate(ranked []recommend.ScoredQuote, limit int) []recommend.ScoredQuote {
	if len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
