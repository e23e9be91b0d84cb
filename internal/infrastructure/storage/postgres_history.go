package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

// PostgresHistory records published articles for audit. It is optional: the
// pipeline runs fully without it when no DSN is configured.
type PostgresHistory struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.HistoryStore = (*PostgresHistory)(nil)

// NewPostgresHistory wires a sql.DB implementation.
func NewPostgresHistory(db *sql.DB) *PostgresHistory {
	return &PostgresHistory{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*PostgresHistory, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewPostgresHistory(db), nil
}

// SavePublished upserts the published-article snapshot keyed by slug.
func (h *PostgresHistory) SavePublished(ctx context.Context, rec domain.PublishedRecord) error {
	if h.db == nil {
		return nil
	}

	query, args, err := h.builder.
		Insert("published_articles").
		Columns("slug", "title", "language", "category", "word_count", "indexed").
		Values(rec.Slug, rec.Title, rec.Language, rec.Category, rec.WordCount, rec.Indexed).
		Suffix(`ON CONFLICT (slug) DO UPDATE
                SET title = EXCLUDED.title,
                    language = EXCLUDED.language,
                    category = EXCLUDED.category,
                    word_count = EXCLUDED.word_count,
                    indexed = EXCLUDED.indexed,
                    updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := h.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert published: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (h *PostgresHistory) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}
