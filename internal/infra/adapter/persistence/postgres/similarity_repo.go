package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/makhmudjon-inadullaev/quote-service/internal/recommend"
	"github.com/makhmudjon-inadullaev/quote-service/internal/repository"
)

// SimilarityRepo stores computed similarity rankings as JSONB payloads
// keyed by target quote id. It is the durable tier of the recommendation
// cache; entries survive restarts and are dropped only by invalidation.
type SimilarityRepo struct {
	db *sql.DB
}

func NewSimilarityRepo(db *sql.DB) repository.SimilarityRepository {
	return &SimilarityRepo{db: db}
}

func (repo *SimilarityRepo) Fetch(ctx context.Context, targetID string) ([]recommend.ScoredQuote, error) {
	const query = `
SELECT results
FROM similarity_cache
WHERE quote_id = $1
LIMIT 1`
	var payload []byte
	err := repo.db.QueryRowContext(ctx, query, targetID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Fetch: %w", err)
	}

	var results []recommend.ScoredQuote
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, fmt.Errorf("Fetch: Unmarshal: %w", err)
	}
	return results, nil
}

func (repo *SimilarityRepo) Store(ctx context.Context, targetID string, results []recommend.ScoredQuote) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("Store: Marshal: %w", err)
	}

	// 同時再計算時は後勝ち
	const query = `
INSERT INTO similarity_cache (quote_id, results, computed_at)
VALUES ($1, $2, NOW())
ON CONFLICT (quote_id)
DO UPDATE SET results = EXCLUDED.results, computed_at = EXCLUDED.computed_at`
	if _, err := repo.db.ExecContext(ctx, query, targetID, payload); err != nil {
		return fmt.Errorf("Store: %w", err)
	}
	return nil
}

func (repo *SimilarityRepo) Delete(ctx context.Context, targetID string) error {
	const query = `DELETE FROM similarity_cache WHERE quote_id = $1`
	if _, err := repo.db.ExecContext(ctx, query, targetID); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
