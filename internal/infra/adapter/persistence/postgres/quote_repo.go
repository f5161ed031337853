package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	"github.com/makhmudjon-inadullaev/quote-service/internal/repository"
)

type QuoteRepo struct {
	db *sql.DB
}

func NewQuoteRepo(db *sql.DB) repository.QuoteRepository {
	return &QuoteRepo{db: db}
}

func (repo *QuoteRepo) List(ctx context.Context) ([]*entity.Quote, error) {
	const query = `
SELECT id, text, author, tags, likes, source, created_at, updated_at
FROM quotes
ORDER BY created_at ASC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	quotes := make([]*entity.Quote, 0, 100)
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		quotes = append(quotes, quote)
	}
	return quotes, rows.Err()
}

func (repo *QuoteRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Quote, error) {
	const query = `
SELECT id, text, author, tags, likes, source, created_at, updated_at
FROM quotes
ORDER BY created_at DESC, id DESC
LIMIT $1`
	rows, err := repo.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	quotes := make([]*entity.Quote, 0, limit)
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("ListRecent: Scan: %w", err)
		}
		quotes = append(quotes, quote)
	}
	return quotes, rows.Err()
}

func (repo *QuoteRepo) Get(ctx context.Context, id string) (*entity.Quote, error) {
	const query = `
SELECT id, text, author, tags, likes, source, created_at, updated_at
FROM quotes
WHERE id = $1
LIMIT 1`
	quote, err := scanQuote(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return quote, nil
}

func (repo *QuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	const query = `
INSERT INTO quotes
	   (id, text, author, tags, likes, source, fingerprint, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := repo.db.ExecContext(ctx, query,
		quote.ID, quote.Text, quote.Author, pq.Array(quote.Tags),
		quote.Likes, string(quote.Source), quote.Fingerprint(),
		quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// IncrementLikes bumps the like counter inside the database so concurrent
// likes never lose an increment.
func (repo *QuoteRepo) IncrementLikes(ctx context.Context, id string) (*entity.Quote, error) {
	const query = `
UPDATE quotes
SET likes = likes + 1, updated_at = NOW()
WHERE id = $1
RETURNING id, text, author, tags, likes, source, created_at, updated_at`
	quote, err := scanQuote(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("IncrementLikes: %w", err)
	}
	return quote, nil
}

func (repo *QuoteRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM quotes`
	var count int64
	err := repo.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// ExistsByFingerprintBatch はバッチで指紋存在チェックを行い、N+1問題を解消する
func (repo *QuoteRepo) ExistsByFingerprintBatch(ctx context.Context, fingerprints []string) (map[string]bool, error) {
	if len(fingerprints) == 0 {
		return make(map[string]bool), nil
	}

	const query = `SELECT fingerprint FROM quotes WHERE fingerprint = ANY($1)`
	rows, err := repo.db.QueryContext(ctx, query, pq.Array(fingerprints))
	if err != nil {
		return nil, fmt.Errorf("ExistsByFingerprintBatch: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]bool)
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("ExistsByFingerprintBatch: Scan: %w", err)
		}
		result[fp] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ExistsByFingerprintBatch: rows.Err: %w", err)
	}

	return result, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*entity.Quote, error) {
	var quote entity.Quote
	var source string
	if err := row.Scan(&quote.ID, &quote.Text, &quote.Author,
		pq.Array(&quote.Tags), &quote.Likes, &source,
		&quote.CreatedAt, &quote.UpdatedAt); err != nil {
		return nil, err
	}
	quote.Source = entity.Source(source)
	return &quote, nil
}
