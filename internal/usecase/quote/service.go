package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	"github.com/makhmudjon-inadullaev/quote-service/internal/observability/metrics"
	"github.com/makhmudjon-inadullaev/quote-service/internal/repository"
)

// DefaultRecentLimit bounds ListRecent when no limit is given.
const DefaultRecentLimit = 20

// SubmitInput represents the input parameters for submitting a new quote.
type SubmitInput struct {
	Text   string
	Author string
	Tags   []string
}

// Invalidator receives a notification when a quote's like count changes,
// so dependent caches can drop stale entries.
type Invalidator interface {
	OnQuoteLiked(ctx context.Context, id string)
}

// Service provides quote management use cases.
// It handles business logic for quote operations and delegates persistence
// to the repository. When Invalidator is set, likes trigger cache
// invalidation for the liked quote.
type Service struct {
	Repo        repository.QuoteRepository
	Invalidator Invalidator
}

// List retrieves all quotes from the repository.
func (s *Service) List(ctx context.Context) ([]*entity.Quote, error) {
	quotes, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return quotes, nil
}

// ListRecent retrieves up to limit quotes, newest first.
// Non-positive limits fall back to DefaultRecentLimit.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*entity.Quote, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	quotes, err := s.Repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent quotes: %w", err)
	}
	return quotes, nil
}

// Get retrieves a single quote by ID.
// Returns ErrQuoteNotFound if no quote with that ID exists.
func (s *Service) Get(ctx context.Context, id string) (*entity.Quote, error) {
	q, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	return q, nil
}

// Like atomically increments the like counter and returns the updated quote.
// The cached similarity ranking for the liked quote is invalidated so that
// future recommendations see the new weight. Returns ErrQuoteNotFound if
// the quote does not exist.
func (s *Service) Like(ctx context.Context, id string) (*entity.Quote, error) {
	q, err := s.Repo.IncrementLikes(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("increment likes: %w", err)
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}

	metrics.RecordQuoteLiked()
	if s.Invalidator != nil {
		s.Invalidator.OnQuoteLiked(ctx, id)
	}
	return q, nil
}

// Submit validates and stores a user-submitted quote.
// Tags are normalized to lowercase and deduplicated before validation.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*entity.Quote, error) {
	now := time.Now().UTC()
	q := &entity.Quote{
		ID:        uuid.NewString(),
		Text:      in.Text,
		Author:    in.Author,
		Tags:      entity.NormalizeTags(in.Tags),
		Source:    entity.SourceUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := entity.ValidateQuote(q); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	return q, nil
}

// Count returns the total number of quotes in the repository.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}
	return n, nil
}
