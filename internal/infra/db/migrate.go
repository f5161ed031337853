package db

import (
	"database/sql"
	_ "embed"
)

//go:embed seeds/quotes.sql
var seedQuotesSQL string

func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS quotes (
    id          UUID PRIMARY KEY,
    text        TEXT NOT NULL,
    author      TEXT NOT NULL,
    tags        TEXT[] NOT NULL DEFAULT '{}',
    likes       BIGINT NOT NULL DEFAULT 0 CHECK (likes >= 0),
    source      VARCHAR(20) NOT NULL DEFAULT 'user',
    fingerprint TEXT NOT NULL UNIQUE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	// 類似度キャッシュの永続ティア。明示的な無効化でのみ削除される
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS similarity_cache (
    quote_id    UUID PRIMARY KEY REFERENCES quotes(id) ON DELETE CASCADE,
    results     JSONB NOT NULL,
    computed_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	// パフォーマンス最適化: インデックス追加
	indexes := []string{
		// ORDER BY created_at で使用(プール取得・最新一覧で使用)
		`CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes(created_at DESC)`,
		// ソース別集計用
		`CREATE INDEX IF NOT EXISTS idx_quotes_source ON quotes(source)`,
		// 人気順取得用
		`CREATE INDEX IF NOT EXISTS idx_quotes_likes ON quotes(likes DESC)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// source 制約追加
	// PostgreSQL特有の制約構文のため、エラーを無視(既に存在する場合)
	_, _ = db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_quote_source'
    ) THEN
        ALTER TABLE quotes ADD CONSTRAINT chk_quote_source
        CHECK (source IN ('quotable', 'dummyjson', 'toscrape', 'rss', 'user'));
    END IF;
END $$;
`)

	if _, err := db.Exec(seedQuotesSQL); err != nil {
		return err
	}

	return nil
}

// MigrateDown rolls back the schema. Intended for tests and local resets.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS similarity_cache CASCADE`,
		`DROP INDEX IF EXISTS idx_quotes_created_at`,
		`DROP INDEX IF EXISTS idx_quotes_source`,
		`DROP INDEX IF EXISTS idx_quotes_likes`,
		`DROP TABLE IF EXISTS quotes CASCADE`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
