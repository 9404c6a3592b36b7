package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/ports"
)

const (
	kvTable      = "kv_records"
	summaryTable = "summaries"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS kv_records (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS summaries (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		url TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		published_at BIGINT,
		image_url TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		summary_text TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		reading_time INTEGER NOT NULL,
		word_count INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries(created_at)`,
}

var summaryColumns = []string{
	"id", "title", "content", "url", "source", "category", "published_at",
	"image_url", "author", "summary_text", "created_at", "reading_time", "word_count",
}

// SQLStore keeps the session record and the summary history in a SQL
// database. Queries are built with squirrel so the same code serves SQLite
// ("?" placeholders) and Postgres ("$n" placeholders).
type SQLStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	now     func() time.Time
}

var (
	_ ports.KeyValueStore     = (*SQLStore)(nil)
	_ ports.SummaryRepository = (*SQLStore)(nil)
)

func newSQLStore(db *sql.DB, placeholder sq.PlaceholderFormat) *SQLStore {
	return &SQLStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		now:     time.Now,
	}
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) createTables(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Get returns the value stored under key.
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := s.builder.
		Select("value").
		From(kvTable).
		Where(sq.Eq{"name": key}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build kv select: %w", err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query kv %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Put upserts value under key.
func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	query, args, err := s.builder.
		Insert(kvTable).
		Columns("name", "value", "updated_at").
		Values(key, string(value), s.now().UnixNano()).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build kv upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert kv %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query, args, err := s.builder.
		Delete(kvTable).
		Where(sq.Eq{"name": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build kv delete: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete kv %s: %w", key, err)
	}
	return nil
}

// Save inserts or replaces a summary.
func (s *SQLStore) Save(ctx context.Context, summary domain.Summary) error {
	var publishedAt any
	if summary.Article.PublishedAt != nil {
		publishedAt = summary.Article.PublishedAt.UnixNano()
	}

	query, args, err := s.builder.
		Insert(summaryTable).
		Columns(summaryColumns...).
		Values(
			summary.ID,
			summary.Article.Title,
			summary.Article.Content,
			summary.Article.URL,
			summary.Article.Source,
			string(summary.Article.Category),
			publishedAt,
			summary.Article.ImageURL,
			summary.Article.Author,
			summary.Text,
			summary.CreatedAt.UnixNano(),
			summary.ReadingTimeMinutes,
			summary.SummaryWordCount,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE
              SET summary_text = excluded.summary_text,
                  reading_time = excluded.reading_time,
                  word_count = excluded.word_count`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build summary insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert summary %s: %w", summary.ID, err)
	}
	return nil
}

// Recent returns up to limit summaries, newest first.
func (s *SQLStore) Recent(ctx context.Context, limit int) ([]domain.Summary, error) {
	if limit <= 0 {
		return nil, nil
	}

	query, args, err := s.builder.
		Select(summaryColumns...).
		From(summaryTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build summary select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}

	result := make([]domain.Summary, 0, limit)
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		result = append(result, summary)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// Prune deletes everything but the keep newest summaries.
func (s *SQLStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}

	query, args, err := s.builder.
		Delete(summaryTable).
		Where(sq.Expr("id NOT IN (SELECT id FROM summaries ORDER BY created_at DESC, id DESC LIMIT ?)", keep)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build summary prune: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune summaries: %w", err)
	}
	return nil
}

func scanSummary(rows *sql.Rows) (domain.Summary, error) {
	var (
		summary     domain.Summary
		category    string
		publishedAt sql.NullInt64
		createdAt   int64
	)

	err := rows.Scan(
		&summary.ID,
		&summary.Article.Title,
		&summary.Article.Content,
		&summary.Article.URL,
		&summary.Article.Source,
		&category,
		&publishedAt,
		&summary.Article.ImageURL,
		&summary.Article.Author,
		&summary.Text,
		&createdAt,
		&summary.ReadingTimeMinutes,
		&summary.SummaryWordCount,
	)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("scan summary: %w", err)
	}

	summary.Article.Category = domain.Category(category)
	summary.CreatedAt = time.Unix(0, createdAt).UTC()
	if publishedAt.Valid {
		t := time.Unix(0, publishedAt.Int64).UTC()
		summary.Article.PublishedAt = &t
	}
	return summary, nil
}
