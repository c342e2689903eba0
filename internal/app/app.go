package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"trendpress/internal/article"
	"trendpress/internal/config"
	"trendpress/internal/keyword"
	"trendpress/internal/logger"
	"trendpress/internal/newsfetch"
	"trendpress/internal/pipeline"
	"trendpress/internal/publish"
	"trendpress/internal/ratelimit"
	"trendpress/internal/storage"
	"trendpress/internal/trends"
)

// Run wires the pipeline together and drives it: one immediate run at
// startup, then one run per collection interval until SIGINT/SIGTERM.
func Run() error {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	sources, err := trends.LoadSources(cfg.SourcesConfigPath, cfg.AdapterTimeout)
	if err != nil {
		return err
	}
	logger.Info("trend sources loaded", "count", len(sources))

	generator, err := article.NewGenerator(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return err
	}
	defer generator.Close()

	publisher, err := publish.New(cfg.OutputDir, cfg.SiteTitle, cfg.SiteURL)
	if err != nil {
		return err
	}

	provider := newsfetch.NewProvider(cfg.RequestTimeout, cfg.RetryAttempts, cfg.RetryDelay)

	pipe := pipeline.New(
		pipeline.Config{
			RecencyWindow:         cfg.RecencyWindow,
			ExistingArticleWindow: cfg.ExistingArticleWindow,
			ProcessDelay:          cfg.ProcessDelay,
		},
		pipeline.Deps{
			Sources:    sources,
			Keywords:   store,
			Articles:   store,
			News:       provider,
			Generator:  generator,
			Publisher:  publisher,
			Classifier: keyword.NewClassifier(cfg.KeywordMinLen, cfg.KeywordMaxLen, cfg.AcronymMinLen),
			Rate:       ratelimit.New(cfg.ArticlesPerHour),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runOnce := func() {
		if _, err := pipe.Run(ctx); err != nil {
			// The run already logged details; the process stays up and the
			// next tick starts fresh.
			logger.Error("pipeline run failed", "error", err)
		}
	}

	logger.Info("trendpress started",
		"interval", cfg.CollectInterval,
		"articles_per_hour", cfg.ArticlesPerHour,
		"recency_window", cfg.RecencyWindow)
	runOnce()

	ticker := time.NewTicker(cfg.CollectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil
		case <-ticker.C:
			runOnce()
		}
	}
}
