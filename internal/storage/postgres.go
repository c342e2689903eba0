package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"trendpress/internal/logger"
)

// KeywordRecord is a persisted, accepted trending term. Keyword always
// holds the normalized form; Processed only ever flips false -> true.
type KeywordRecord struct {
	ID         int64
	Keyword    string
	Source     string
	Rank       int
	DetectedAt time.Time
	Processed  bool
}

// ArticleRecord is one generated article tied to the keyword it covers.
type ArticleRecord struct {
	ID         int64
	Keyword    string
	Title      string
	Summary    string
	Content    string
	Slug       string
	SourceURLs []string
	CreatedAt  time.Time
}

// InsertResult makes the difference between "new row" and "suppressed by
// the recency window" explicit at the call site. A write failure is an
// error, never a silent zero-change result.
type InsertResult int

const (
	Inserted InsertResult = iota
	SkippedRecentDuplicate
)

// Store is the single logical writer for keywords and articles.
type Store struct {
	db *sql.DB
}

func New(connectionString string) (*Store, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("postgres store connected")
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trend_keywords (
		id BIGSERIAL PRIMARY KEY,
		keyword TEXT NOT NULL,
		source VARCHAR(50) NOT NULL,
		rank INTEGER,
		detected_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		processed BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_trend_keywords_recency
		ON trend_keywords(lower(keyword), detected_at);
	CREATE INDEX IF NOT EXISTS idx_trend_keywords_unprocessed
		ON trend_keywords(processed, detected_at);

	CREATE TABLE IF NOT EXISTS articles (
		id BIGSERIAL PRIMARY KEY,
		keyword TEXT NOT NULL,
		title TEXT NOT NULL,
		summary TEXT,
		content TEXT NOT NULL,
		slug VARCHAR(200) UNIQUE NOT NULL,
		source_urls TEXT[],
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_articles_keyword
		ON articles(lower(keyword), created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// InsertKeyword persists a normalized keyword unless the same text was
// already detected inside the recency window. The window check and the
// insert are the store-level half of deduplication; batch-level dedup has
// already run by the time this is called.
func (s *Store) InsertKeyword(ctx context.Context, keyword, source string, rank int, recencyWindow time.Duration) (InsertResult, error) {
	dup, err := s.IsRecentDuplicate(ctx, keyword, recencyWindow)
	if err != nil {
		return 0, err
	}
	if dup {
		return SkippedRecentDuplicate, nil
	}

	query := `
		INSERT INTO trend_keywords (keyword, source, rank, detected_at, processed)
		VALUES ($1, $2, $3, NOW(), FALSE)
	`
	if _, err := s.db.ExecContext(ctx, query, keyword, source, nullableRank(rank)); err != nil {
		return 0, fmt.Errorf("failed to insert keyword: %w", err)
	}
	return Inserted, nil
}

// IsRecentDuplicate reports whether the keyword was detected within the
// given window, case-insensitively.
func (s *Store) IsRecentDuplicate(ctx context.Context, keyword string, window time.Duration) (bool, error) {
	cutoff := time.Now().Add(-window)

	var exists bool
	query := `SELECT EXISTS(
		SELECT 1 FROM trend_keywords
		WHERE lower(keyword) = lower($1) AND detected_at > $2
	)`
	if err := s.db.QueryRowContext(ctx, query, keyword, cutoff).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check recent duplicate: %w", err)
	}
	return exists, nil
}

// QueryUnprocessed returns unprocessed keywords, most recently detected
// first (id as tiebreak). This is the processing order of a pipeline run.
func (s *Store) QueryUnprocessed(ctx context.Context, limit int) ([]KeywordRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `
		SELECT id, keyword, source, COALESCE(rank, 0), detected_at, processed
		FROM trend_keywords
		WHERE processed = FALSE
		ORDER BY detected_at DESC, id DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed keywords: %w", err)
	}
	defer rows.Close()

	return scanKeywords(rows)
}

// MarkProcessed flips the processed flag. There is no way back to false.
func (s *Store) MarkProcessed(ctx context.Context, id int64) error {
	query := `UPDATE trend_keywords SET processed = TRUE WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to mark keyword %d processed: %w", id, err)
	}
	return nil
}

// QueryRecent returns keywords detected within the window, newest first.
// Used to render the trend list on the index page.
func (s *Store) QueryRecent(ctx context.Context, window time.Duration) ([]KeywordRecord, error) {
	cutoff := time.Now().Add(-window)

	query := `
		SELECT id, keyword, source, COALESCE(rank, 0), detected_at, processed
		FROM trend_keywords
		WHERE detected_at > $1
		ORDER BY detected_at DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent keywords: %w", err)
	}
	defer rows.Close()

	return scanKeywords(rows)
}

// HasArticleForKeyword reports whether an article for this keyword was
// created within the window. Prevents duplicate articles for one trend.
func (s *Store) HasArticleForKeyword(ctx context.Context, keyword string, window time.Duration) (bool, error) {
	cutoff := time.Now().Add(-window)

	var exists bool
	query := `SELECT EXISTS(
		SELECT 1 FROM articles
		WHERE lower(keyword) = lower($1) AND created_at > $2
	)`
	if err := s.db.QueryRowContext(ctx, query, keyword, cutoff).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing article: %w", err)
	}
	return exists, nil
}

// InsertArticle stores a generated article and returns its id. A slug
// collision updates the existing row instead of failing the run.
func (s *Store) InsertArticle(ctx context.Context, a *ArticleRecord) (int64, error) {
	query := `
		INSERT INTO articles (keyword, title, summary, content, slug, source_urls, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			content = EXCLUDED.content,
			source_urls = EXCLUDED.source_urls
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		a.Keyword, a.Title, a.Summary, a.Content, a.Slug, pq.Array(a.SourceURLs),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert article: %w", err)
	}
	return id, nil
}

// RecentArticles returns the newest articles for index rendering.
func (s *Store) RecentArticles(ctx context.Context, limit int) ([]ArticleRecord, error) {
	query := `
		SELECT id, keyword, title, COALESCE(summary, ''), content, slug, source_urls, created_at
		FROM articles
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent articles: %w", err)
	}
	defer rows.Close()

	var articles []ArticleRecord
	for rows.Next() {
		var a ArticleRecord
		var urls pq.StringArray
		if err := rows.Scan(&a.ID, &a.Keyword, &a.Title, &a.Summary, &a.Content, &a.Slug, &urls, &a.CreatedAt); err != nil {
			logger.Warn("error scanning article row", "error", err)
			continue
		}
		a.SourceURLs = urls
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// CleanupKeywords removes keyword rows older than the retention period.
func (s *Store) CleanupKeywords(ctx context.Context, retention time.Duration) error {
	cutoff := time.Now().Add(-retention)

	result, err := s.db.ExecContext(ctx, `DELETE FROM trend_keywords WHERE detected_at < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup keywords: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows > 0 {
		logger.Info("cleaned up old keyword rows", "rows", rows)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func scanKeywords(rows *sql.Rows) ([]KeywordRecord, error) {
	var records []KeywordRecord
	for rows.Next() {
		var r KeywordRecord
		if err := rows.Scan(&r.ID, &r.Keyword, &r.Source, &r.Rank, &r.DetectedAt, &r.Processed); err != nil {
			logger.Warn("error scanning keyword row", "error", err)
			continue
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func nullableRank(rank int) sql.NullInt64 {
	if rank <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(rank), Valid: true}
}
