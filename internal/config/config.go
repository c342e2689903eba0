package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings for the trend pipeline.
type Config struct {
	// Database settings
	DatabaseURL string

	// Gemini settings
	GeminiAPIKey string
	GeminiModel  string

	// Collection settings
	SourcesConfigPath string
	CollectInterval   time.Duration
	AdapterTimeout    time.Duration

	// Keyword filter settings
	KeywordMinLen int // minimum keyword length in runes
	KeywordMaxLen int // maximum keyword length in runes
	AcronymMinLen int // minimum length for pure-Latin acronyms

	// Dedup settings
	RecencyWindow time.Duration // suppress keywords seen within this window

	// Processing settings
	ArticlesPerHour       int           // hourly cap on generated articles
	ProcessDelay          time.Duration // pause between processed keywords
	ExistingArticleWindow time.Duration // skip keywords that already have an article

	// Publishing settings
	OutputDir string
	SiteTitle string
	SiteURL   string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		GeminiModel:           "gemini-1.5-flash",
		SourcesConfigPath:     "configs/sources.yaml",
		CollectInterval:       3 * time.Minute,
		AdapterTimeout:        10 * time.Second,
		KeywordMinLen:         2,
		KeywordMaxLen:         15,
		AcronymMinLen:         3,
		RecencyWindow:         6 * time.Hour,
		ArticlesPerHour:       10,
		ProcessDelay:          2 * time.Second,
		ExistingArticleWindow: 24 * time.Hour,
		OutputDir:             "public",
		SiteTitle:             "TrendPress",
		SiteURL:               "https://trendpress.example.com",
		RequestTimeout:        15 * time.Second,
		RetryAttempts:         2,
		RetryDelay:            2 * time.Second,
	}

	// Load from environment
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}

	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesConfigPath)
	cfg.OutputDir = getEnvOrDefault("OUTPUT_DIR", cfg.OutputDir)
	cfg.SiteTitle = getEnvOrDefault("SITE_TITLE", cfg.SiteTitle)
	cfg.SiteURL = getEnvOrDefault("SITE_URL", cfg.SiteURL)

	if v := getEnvIntOrDefault("COLLECT_INTERVAL_MINUTES", 0); v > 0 {
		cfg.CollectInterval = time.Duration(v) * time.Minute
	}
	if v := getEnvIntOrDefault("ADAPTER_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.AdapterTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("KEYWORD_MIN_LEN", 0); v > 0 {
		cfg.KeywordMinLen = v
	}
	if v := getEnvIntOrDefault("KEYWORD_MAX_LEN", 0); v > 0 {
		cfg.KeywordMaxLen = v
	}
	if v := getEnvIntOrDefault("ACRONYM_MIN_LEN", 0); v > 0 {
		cfg.AcronymMinLen = v
	}
	// Observed deployments used 6h, 40min and 3h here at different times.
	// There is no single "correct" value; 6h is the default.
	if v := getEnvIntOrDefault("RECENCY_WINDOW_MINUTES", 0); v > 0 {
		cfg.RecencyWindow = time.Duration(v) * time.Minute
	}
	if v := getEnvIntOrDefault("ARTICLES_PER_HOUR", 0); v > 0 {
		cfg.ArticlesPerHour = v
	}
	if v := getEnvIntOrDefault("PROCESS_DELAY_SECONDS", 0); v > 0 {
		cfg.ProcessDelay = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("EXISTING_ARTICLE_WINDOW_HOURS", 0); v > 0 {
		cfg.ExistingArticleWindow = time.Duration(v) * time.Hour
	}
	if v := getEnvIntOrDefault("RETRY_ATTEMPTS", 0); v > 0 {
		cfg.RetryAttempts = v
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.KeywordMinLen >= c.KeywordMaxLen {
		return fmt.Errorf("KEYWORD_MIN_LEN must be smaller than KEYWORD_MAX_LEN")
	}
	if c.ArticlesPerHour <= 0 {
		return fmt.Errorf("ARTICLES_PER_HOUR must be positive")
	}
	return nil
}
