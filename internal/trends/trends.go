package trends

import (
	"context"
	"fmt"
	"sync"

	"trendpress/internal/logger"
)

// Candidate is one raw trending-term observation from one source, before
// normalization and filtering. Rank is the source's own display order
// (1 = most prominent).
type Candidate struct {
	Text   string
	Source string
	Rank   int
}

// Source fetches and parses one external trend signal. Implementations own
// their request timeout and selector logic; a Fetch error never aborts the
// batch, it just costs that source's candidates.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Candidate, error)
}

// FetchAll invokes every source concurrently and merges the results in
// registration order, not completion order, so downstream filtering stays
// deterministic. A failed source is logged and contributes zero candidates.
func FetchAll(ctx context.Context, sources []Source) []Candidate {
	results := make([][]Candidate, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			results[i] = fetchOne(ctx, src)
		}(i, src)
	}
	wg.Wait()

	var merged []Candidate
	for i, src := range sources {
		logger.Debug("source fetched", "source", src.Name(), "candidates", len(results[i]))
		merged = append(merged, results[i]...)
	}
	return merged
}

// fetchOne isolates a single source: panics and errors both end up as an
// empty slice with a log line.
func fetchOne(ctx context.Context, src Source) (candidates []Candidate) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("source panicked", "source", src.Name(), "panic", fmt.Sprint(r))
			candidates = nil
		}
	}()

	candidates, err := src.Fetch(ctx)
	if err != nil {
		logger.Warn("source fetch failed", "source", src.Name(), "error", err)
		return nil
	}
	return candidates
}
