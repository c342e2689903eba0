package metrics

import (
	"sync"
	"time"
)

// Metrics tracks pipeline counters exposed on the monitoring endpoints.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	KeywordsCollected  int64
	KeywordsRejected   int64
	DuplicatesFiltered int64
	KeywordsInserted   int64
	ArticlesGenerated  int64
	ArticlesFailed     int64
	RunsSkipped        int64 // ticks ignored because a run was still in flight

	// Timings
	LastRunDuration    time.Duration
	TotalRunDuration   time.Duration
	AverageRunDuration time.Duration
	RunCount           int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddKeywordsCollected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.KeywordsCollected += int64(n)
}

func (m *Metrics) IncrementKeywordsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.KeywordsRejected++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementKeywordsInserted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.KeywordsInserted++
}

func (m *Metrics) IncrementArticlesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesGenerated++
}

func (m *Metrics) IncrementArticlesFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFailed++
}

func (m *Metrics) IncrementRunsSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunsSkipped++
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++

	if m.RunCount > 0 {
		m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"keywords_collected":      m.KeywordsCollected,
		"keywords_rejected":       m.KeywordsRejected,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"keywords_inserted":       m.KeywordsInserted,
		"articles_generated":      m.ArticlesGenerated,
		"articles_failed":         m.ArticlesFailed,
		"runs_skipped":            m.RunsSkipped,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
