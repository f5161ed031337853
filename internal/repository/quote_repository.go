// Package repository defines the persistence interfaces consumed by the
// use case layer. Implementations live under internal/infra/adapter.
package repository

import (
	"context"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
)

// QuoteRepository is the persistence collaborator for quotes.
// Absent rows are reported as (nil, nil), not as errors.
type QuoteRepository interface {
	// List retrieves the full quote pool ordered by creation time.
	// The pool is the input snapshot for similarity ranking and
	// weighted random selection.
	List(ctx context.Context) ([]*entity.Quote, error)
	// ListRecent retrieves up to limit quotes, newest first.
	ListRecent(ctx context.Context, limit int) ([]*entity.Quote, error)
	// Get retrieves a single quote by ID. Returns (nil, nil) if absent.
	Get(ctx context.Context, id string) (*entity.Quote, error)
	Create(ctx context.Context, quote *entity.Quote) error
	// IncrementLikes atomically bumps the like counter and returns the
	// updated quote. Returns (nil, nil) if the quote does not exist.
	// Likes only ever increase; there is no decrement path.
	IncrementLikes(ctx context.Context, id string) (*entity.Quote, error)
	Count(ctx context.Context) (int64, error)
	// ExistsByFingerprintBatch はバッチで指紋の存在チェックを行い、N+1問題を解消する
	ExistsByFingerprintBatch(ctx context.Context, fingerprints []string) (map[string]bool, error)
}
