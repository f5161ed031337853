package repository

import (
	"context"

	"github.com/makhmudjon-inadullaev/quote-service/internal/recommend"
)

// SimilarityRepository is the durable tier of the recommendation cache.
// It stores previously computed rankings keyed by target quote id.
// Entries are considered fresh until explicitly deleted.
type SimilarityRepository interface {
	// Fetch retrieves the stored ranking for a target quote.
	// Returns (nil, nil) if no entry exists.
	Fetch(ctx context.Context, targetID string) ([]recommend.ScoredQuote, error)
	// Store upserts the ranking for a target quote, replacing any
	// previous entry. Last writer wins under concurrent recomputation.
	Store(ctx context.Context, targetID string, results []recommend.ScoredQuote) error
	// Delete removes the entry for a target quote. Deleting an absent
	// entry is not an error.
	Delete(ctx context.Context, targetID string) error
}
