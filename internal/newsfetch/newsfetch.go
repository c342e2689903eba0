package newsfetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"trendpress/internal/cache"
	"trendpress/internal/logger"
	"trendpress/internal/retry"
)

// Headline is one news search hit for a keyword.
type Headline struct {
	Title     string
	URL       string
	Snippet   string
	Published time.Time
}

// FullArticle carries the scraped body of one top headline.
type FullArticle struct {
	Title   string
	URL     string
	Content string
}

// Result is the news context handed to the article generator. It may be
// empty; a keyword with no coverage still produces a Result, never an error.
type Result struct {
	Keyword     string
	Headlines   []Headline
	TopArticles []FullArticle
}

// Empty reports whether no usable context was found.
func (r *Result) Empty() bool {
	return len(r.Headlines) == 0 && len(r.TopArticles) == 0
}

const (
	googleNewsRSS   = "https://news.google.com/rss/search?q=%s&hl=ko&gl=KR&ceid=KR:ko"
	naverNewsSearch = "https://search.naver.com/search.naver?where=news&query=%s"

	maxHeadlines   = 10
	maxTopArticles = 3
	resultCacheTTL = 10 * time.Minute
)

// Provider fetches news context for a keyword from two sources in
// parallel, each with its own timeout. Failures degrade to empty results.
type Provider struct {
	client     *http.Client
	parser     *gofeed.Parser
	retryCfg   retry.Config
	results    *cache.Cache[*Result]
	fetchDelay time.Duration
}

func NewProvider(timeout time.Duration, retryAttempts int, retryDelay time.Duration) *Provider {
	return &Provider{
		client:   &http.Client{Timeout: timeout},
		parser:   gofeed.NewParser(),
		// Cap the grown backoff so a flaky news site can't stall a whole
		// sequential body-fetch pass.
		retryCfg: retry.Config{MaxAttempts: retryAttempts, Delay: retryDelay, MaxDelay: 5 * time.Second, Backoff: true},
		results:  cache.New[*Result](),
		// Small pause between body fetches, don't overload news sites
		fetchDelay: 300 * time.Millisecond,
	}
}

// FetchNewsForKeyword gathers headlines from Google News RSS and Naver
// news search concurrently, then scrapes the bodies of the top hits.
func (p *Provider) FetchNewsForKeyword(ctx context.Context, keyword string) *Result {
	if cached, ok := p.results.Get(keyword); ok {
		logger.Debug("news context cache hit", "keyword", keyword)
		return cached
	}

	var (
		wg     sync.WaitGroup
		google []Headline
		naver  []Headline
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		google, err = p.fetchGoogleNews(ctx, keyword)
		if err != nil {
			logger.Warn("google news fetch failed", "keyword", keyword, "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		naver, err = p.fetchNaverNews(ctx, keyword)
		if err != nil {
			logger.Warn("naver news fetch failed", "keyword", keyword, "error", err)
		}
	}()
	wg.Wait()

	result := &Result{Keyword: keyword}
	result.Headlines = mergeHeadlines(google, naver, maxHeadlines)
	result.TopArticles = p.fetchTopArticles(ctx, result.Headlines)

	p.results.Set(keyword, result, resultCacheTTL)
	logger.Debug("news context fetched", "keyword", keyword,
		"headlines", len(result.Headlines), "full_articles", len(result.TopArticles))
	return result
}

func (p *Provider) fetchGoogleNews(ctx context.Context, keyword string) ([]Headline, error) {
	feedURL := fmt.Sprintf(googleNewsRSS, url.QueryEscape(keyword))

	feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var headlines []Headline
	for _, item := range feed.Items {
		if len(headlines) >= maxHeadlines {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		h := Headline{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: strings.TrimSpace(item.Description),
		}
		if item.PublishedParsed != nil {
			h.Published = *item.PublishedParsed
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}

// Selector fallbacks for the Naver news search result list.
var naverResultSelectors = []string{
	"a.news_tit",
	".news_area a.news_tit",
	".group_news .news_tit",
}

func (p *Provider) fetchNaverNews(ctx context.Context, keyword string) ([]Headline, error) {
	searchURL := fmt.Sprintf(naverNewsSearch, url.QueryEscape(keyword))

	doc, err := p.fetchDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var headlines []Headline
	for _, selector := range naverResultSelectors {
		doc.Find(selector).Each(func(i int, sel *goquery.Selection) {
			if len(headlines) >= maxHeadlines {
				return
			}
			title := strings.TrimSpace(sel.Text())
			href, _ := sel.Attr("href")
			if title == "" || href == "" {
				return
			}
			headlines = append(headlines, Headline{Title: title, URL: href})
		})
		if len(headlines) > 0 {
			break
		}
	}
	return headlines, nil
}

// fetchTopArticles scrapes full bodies for the first headlines, strictly
// sequentially with a small pause between requests.
func (p *Provider) fetchTopArticles(ctx context.Context, headlines []Headline) []FullArticle {
	var articles []FullArticle

	for _, h := range headlines {
		if len(articles) >= maxTopArticles {
			break
		}

		doc, err := p.fetchDocument(ctx, h.URL)
		if err != nil {
			logger.Debug("article body fetch failed", "url", h.URL, "error", err)
			continue
		}

		content := extractContent(doc)
		if len(content) < 100 {
			logger.Debug("article body too short", "url", h.URL)
			continue
		}

		articles = append(articles, FullArticle{
			Title:   h.Title,
			URL:     h.URL,
			Content: content,
		})

		select {
		case <-ctx.Done():
			return articles
		case <-time.After(p.fetchDelay):
		}
	}
	return articles
}

func (p *Provider) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	var doc *goquery.Document

	err := retry.Do(ctx, p.retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; trendpress/1.0)")

		resp, err := p.client.Do(req)
		if err != nil {
			return fmt.Errorf("error loading page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("HTTP error: %d", resp.StatusCode)
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return fmt.Errorf("error parsing HTML: %w", err)
		}
		return nil
	})
	return doc, err
}

// mergeHeadlines interleaves nothing fancy: Google first, then Naver,
// skipping duplicate URLs and titles.
func mergeHeadlines(google, naver []Headline, limit int) []Headline {
	seen := make(map[string]struct{})
	var merged []Headline

	for _, h := range append(google, naver...) {
		if len(merged) >= limit {
			break
		}
		key := h.URL
		if key == "" {
			key = strings.ToLower(h.Title)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, h)
	}
	return merged
}
