package trends

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSSource reads trending terms from an RSS feed, e.g. the Google Trends
// daily feed for Korea. Item order in the feed is the rank.
type RSSSource struct {
	name    string
	url     string
	limit   int
	timeout time.Duration
	parser  *gofeed.Parser
}

func NewRSSSource(name, url string, limit int, timeout time.Duration) *RSSSource {
	return &RSSSource{
		name:    name,
		url:     url,
		limit:   limit,
		timeout: timeout,
		parser:  gofeed.NewParser(),
	}
}

func (s *RSSSource) Name() string { return s.name }

func (s *RSSSource) Fetch(ctx context.Context) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.url, err)
	}

	var candidates []Candidate
	for i, item := range feed.Items {
		if i >= s.limit {
			break
		}
		if item.Title == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Text:   item.Title,
			Source: s.name,
			Rank:   i + 1,
		})
	}
	return candidates, nil
}
