package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"trendpress/internal/article"
	"trendpress/internal/keyword"
	"trendpress/internal/logger"
	"trendpress/internal/metrics"
	"trendpress/internal/newsfetch"
	"trendpress/internal/ratelimit"
	"trendpress/internal/storage"
	"trendpress/internal/trends"
)

// KeywordStore is the keyword half of the persistence layer.
type KeywordStore interface {
	InsertKeyword(ctx context.Context, keyword, source string, rank int, recencyWindow time.Duration) (storage.InsertResult, error)
	QueryUnprocessed(ctx context.Context, limit int) ([]storage.KeywordRecord, error)
	MarkProcessed(ctx context.Context, id int64) error
	QueryRecent(ctx context.Context, window time.Duration) ([]storage.KeywordRecord, error)
	CleanupKeywords(ctx context.Context, retention time.Duration) error
}

// ArticleStore is the article half of the persistence layer.
type ArticleStore interface {
	HasArticleForKeyword(ctx context.Context, keyword string, window time.Duration) (bool, error)
	InsertArticle(ctx context.Context, a *storage.ArticleRecord) (int64, error)
	RecentArticles(ctx context.Context, limit int) ([]storage.ArticleRecord, error)
}

// NewsProvider supplies news context for one keyword. Must not fail; an
// empty Result is the worst case.
type NewsProvider interface {
	FetchNewsForKeyword(ctx context.Context, keyword string) *newsfetch.Result
}

// Generator produces an article or an explicit "no article" error.
type Generator interface {
	Generate(ctx context.Context, keyword string, news *newsfetch.Result) (*article.Article, error)
}

// Publisher renders articles and the index page.
type Publisher interface {
	Publish(a *article.Article) error
	RefreshIndex(articles []storage.ArticleRecord, trendKeywords []storage.KeywordRecord) error
}

// Config holds the pipeline tunables.
type Config struct {
	RecencyWindow         time.Duration // suppress keywords re-detected within this window
	ExistingArticleWindow time.Duration // skip keywords that already have an article
	ProcessDelay          time.Duration // pause after each processed keyword
	KeywordRetention      time.Duration // delete keyword rows older than this at finalize
	IndexArticleCount     int           // articles shown on the index page
}

// Deps wires the collaborators into the pipeline.
type Deps struct {
	Sources    []trends.Source
	Keywords   KeywordStore
	Articles   ArticleStore
	News       NewsProvider
	Generator  Generator
	Publisher  Publisher
	Classifier *keyword.Classifier
	Rate       *ratelimit.Window
}

// Pipeline runs one collection cycle end to end: fan-out collection,
// filter and persist, then rate-limited sequential processing of
// unprocessed keywords into published articles. Every stage is isolated:
// a bad source, a bad keyword or a failed generation never aborts the run.
type Pipeline struct {
	cfg     Config
	deps    Deps
	running atomic.Bool
}

func New(cfg Config, deps Deps) *Pipeline {
	if cfg.KeywordRetention <= 0 {
		cfg.KeywordRetention = 7 * 24 * time.Hour
	}
	if cfg.IndexArticleCount <= 0 {
		cfg.IndexArticleCount = 30
	}
	return &Pipeline{cfg: cfg, deps: deps}
}

// RunStats summarizes one run for logging and tests.
type RunStats struct {
	Candidates int
	Inserted   int
	Processed  int
	Skipped    int
	Failed     int
}

// Run executes one full cycle. Overlapping runs are not allowed: if a
// timer tick fires while the previous run is still in flight, the tick is
// a logged no-op. A panic escaping a stage aborts the run but leaves the
// process healthy for the next tick.
func (p *Pipeline) Run(ctx context.Context) (stats RunStats, err error) {
	if !p.running.CompareAndSwap(false, true) {
		logger.Warn("previous pipeline run still in flight, skipping tick")
		metrics.Global.IncrementRunsSkipped()
		return RunStats{}, nil
	}
	defer p.running.Store(false)

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline run panicked: %v", r)
			logger.Error("pipeline run aborted", "panic", fmt.Sprint(r))
			metrics.Global.SetError(err.Error())
		}
		metrics.Global.RecordRunDuration(time.Since(start))
	}()

	// COLLECT
	candidates := trends.FetchAll(ctx, p.deps.Sources)
	stats.Candidates = len(candidates)
	metrics.Global.AddKeywordsCollected(len(candidates))

	// FILTER_PERSIST
	stats.Inserted = p.filterAndPersist(ctx, candidates)

	// SELECT_UNPROCESSED + PROCESS_EACH
	stats.Processed, stats.Skipped, stats.Failed = p.processUnprocessed(ctx)

	// FINALIZE runs even when nothing new came in, so the index stays fresh.
	p.finalize(ctx)

	metrics.Global.SetLastRun()
	logger.Info("pipeline run complete",
		"candidates", stats.Candidates,
		"inserted", stats.Inserted,
		"processed", stats.Processed,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"duration", time.Since(start).Round(time.Millisecond))
	return stats, nil
}

// filterAndPersist pushes every merged candidate through normalize ->
// classify -> batch dedup -> store-level recency dedup -> insert, and
// returns the number of new keyword rows.
func (p *Pipeline) filterAndPersist(ctx context.Context, candidates []trends.Candidate) int {
	deduper := keyword.NewBatchDeduper()
	inserted := 0

	for _, c := range candidates {
		normalized := keyword.Normalize(c.Text)
		if normalized == "" {
			continue
		}

		verdict := p.deps.Classifier.Classify(normalized)
		if !verdict.Accepted {
			logger.Debug("keyword rejected", "keyword", normalized, "reason", verdict.Reason, "source", c.Source)
			metrics.Global.IncrementKeywordsRejected()
			continue
		}

		// First occurrence in the batch wins, keeping its source and rank.
		if deduper.Seen(normalized) {
			continue
		}

		result, err := p.deps.Keywords.InsertKeyword(ctx, normalized, c.Source, c.Rank, p.cfg.RecencyWindow)
		if err != nil {
			logger.Error("keyword insert failed", "keyword", normalized, "error", err)
			continue
		}
		if result == storage.SkippedRecentDuplicate {
			// Expected steady state: sources re-emit their top terms
			// every few minutes.
			logger.Debug("keyword seen recently, skipping", "keyword", normalized)
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}

		inserted++
		metrics.Global.IncrementKeywordsInserted()
		logger.Info("new trend keyword", "keyword", normalized, "source", c.Source, "rank", c.Rank)
	}

	return inserted
}

type itemResult int

const (
	itemProcessed itemResult = iota
	itemSkippedDuplicate
	itemFailed
)

// processUnprocessed selects unprocessed keywords bounded by the remaining
// hourly budget and works through them strictly sequentially. Keywords
// left over when the budget runs out stay unprocessed for the next run.
func (p *Pipeline) processUnprocessed(ctx context.Context) (processed, skipped, failed int) {
	remaining := p.deps.Rate.Remaining()
	if remaining == 0 {
		logger.Info("hourly article budget exhausted, skipping processing")
		return 0, 0, 0
	}

	records, err := p.deps.Keywords.QueryUnprocessed(ctx, remaining)
	if err != nil {
		logger.Error("failed to query unprocessed keywords", "error", err)
		return 0, 0, 0
	}
	if len(records) == 0 {
		return 0, 0, 0
	}

	for _, rec := range records {
		if !p.deps.Rate.Allow() {
			logger.Info("rate budget exhausted mid-run, deferring remaining keywords")
			break
		}

		switch p.processOne(ctx, rec) {
		case itemProcessed:
			// Only successful articles consume budget.
			p.deps.Rate.Consume()
			processed++
			metrics.Global.IncrementArticlesGenerated()
		case itemSkippedDuplicate:
			skipped++
		case itemFailed:
			failed++
			metrics.Global.IncrementArticlesFailed()
		}

		// Fixed pause between items so downstream services aren't hammered.
		if p.cfg.ProcessDelay > 0 {
			select {
			case <-ctx.Done():
				return processed, skipped, failed
			case <-time.After(p.cfg.ProcessDelay):
			}
		}
	}

	return processed, skipped, failed
}

// processOne handles a single keyword record. Whatever happens, the record
// ends up marked processed — there are no retries, a broken keyword must
// not wedge the queue.
func (p *Pipeline) processOne(ctx context.Context, rec storage.KeywordRecord) itemResult {
	has, err := p.deps.Articles.HasArticleForKeyword(ctx, rec.Keyword, p.cfg.ExistingArticleWindow)
	if err != nil {
		logger.Error("existing-article check failed", "keyword", rec.Keyword, "error", err)
	}
	if err == nil && has {
		logger.Debug("article already exists for keyword, skipping", "keyword", rec.Keyword)
		p.markProcessed(ctx, rec)
		return itemSkippedDuplicate
	}

	news := p.deps.News.FetchNewsForKeyword(ctx, rec.Keyword)

	a, err := p.deps.Generator.Generate(ctx, rec.Keyword, news)
	if err != nil {
		logger.Warn("article generation failed", "keyword", rec.Keyword, "error", err)
		p.markProcessed(ctx, rec)
		return itemFailed
	}

	if _, err := p.deps.Articles.InsertArticle(ctx, &storage.ArticleRecord{
		Keyword:    a.Keyword,
		Title:      a.Title,
		Summary:    a.Summary,
		Content:    a.Content,
		Slug:       a.Slug,
		SourceURLs: a.SourceURLs,
		CreatedAt:  a.CreatedAt,
	}); err != nil {
		logger.Error("article insert failed", "keyword", rec.Keyword, "error", err)
		p.markProcessed(ctx, rec)
		return itemFailed
	}

	if err := p.deps.Publisher.Publish(a); err != nil {
		logger.Error("article publish failed", "keyword", rec.Keyword, "error", err)
		p.markProcessed(ctx, rec)
		return itemFailed
	}

	p.markProcessed(ctx, rec)
	return itemProcessed
}

func (p *Pipeline) markProcessed(ctx context.Context, rec storage.KeywordRecord) {
	if err := p.deps.Keywords.MarkProcessed(ctx, rec.ID); err != nil {
		logger.Error("failed to mark keyword processed", "id", rec.ID, "keyword", rec.Keyword, "error", err)
	}
}

// finalize refreshes derived artifacts. Failures here are logged and
// dropped; the next run rebuilds everything anyway.
func (p *Pipeline) finalize(ctx context.Context) {
	articles, err := p.deps.Articles.RecentArticles(ctx, p.cfg.IndexArticleCount)
	if err != nil {
		logger.Error("failed to load recent articles for index", "error", err)
	}

	keywords, err := p.deps.Keywords.QueryRecent(ctx, p.cfg.RecencyWindow)
	if err != nil {
		logger.Error("failed to load recent keywords for index", "error", err)
	}

	if err := p.deps.Publisher.RefreshIndex(articles, keywords); err != nil {
		logger.Error("index refresh failed", "error", err)
	}

	if err := p.deps.Keywords.CleanupKeywords(ctx, p.cfg.KeywordRetention); err != nil {
		logger.Error("keyword cleanup failed", "error", err)
	}
}
