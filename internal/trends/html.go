package trends

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlSource scrapes ranked keyword lists out of a portal front page. Each
// portal gets its own selector fallback list because their markup changes
// every redesign; the first selector that yields anything wins.
type htmlSource struct {
	name      string
	url       string
	limit     int
	client    *http.Client
	selectors []string
}

// NewNateSource scrapes the Nate portal's real-time issue keyword box.
func NewNateSource(name, url string, limit int, client *http.Client) Source {
	return &htmlSource{
		name:   name,
		url:    url,
		limit:  limit,
		client: client,
		selectors: []string{
			".kwd_finder .kwd_list li a .txt_kwd",
			".issue_keyword_area li a span.kw",
			"ol.rank_list li a",
		},
	}
}

// NewZumSource scrapes the Zum portal's trending search widget.
func NewZumSource(name, url string, limit int, client *http.Client) Source {
	return &htmlSource{
		name:   name,
		url:    url,
		limit:  limit,
		client: client,
		selectors: []string{
			"#issue_keyword .d_btm_wrap a span.txt",
			".issue_keyword_wrap li a .keyword",
			".ranking_keyword li a",
		},
	}
}

func (s *htmlSource) Name() string { return s.name }

func (s *htmlSource) Fetch(ctx context.Context) ([]Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	// Portals serve a stripped page to unknown agents.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; trendpress/1.0)")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load page %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	candidates := s.extract(doc)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no keywords matched any selector (markup changed?)")
	}
	return candidates, nil
}

func (s *htmlSource) extract(doc *goquery.Document) []Candidate {
	var candidates []Candidate

	for _, selector := range s.selectors {
		doc.Find(selector).Each(func(i int, sel *goquery.Selection) {
			if len(candidates) >= s.limit {
				return
			}
			text := strings.TrimSpace(sel.Text())
			if text == "" {
				return
			}
			candidates = append(candidates, Candidate{
				Text:   text,
				Source: s.name,
				Rank:   len(candidates) + 1,
			})
		})
		if len(candidates) > 0 {
			break
		}
	}

	return candidates
}
