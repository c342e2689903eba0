package publish

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trendpress/internal/article"
	"trendpress/internal/logger"
	"trendpress/internal/storage"
)

// Publisher renders generated articles and the index page into a static
// output directory served by any web server or object store.
type Publisher struct {
	outputDir   string
	siteTitle   string
	siteURL     string
	articleTmpl *template.Template
	indexTmpl   *template.Template
}

func New(outputDir, siteTitle, siteURL string) (*Publisher, error) {
	articleTmpl, err := template.New("article").Parse(articleTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse article template: %w", err)
	}
	indexTmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(outputDir, "articles"), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	return &Publisher{
		outputDir:   outputDir,
		siteTitle:   siteTitle,
		siteURL:     siteURL,
		articleTmpl: articleTmpl,
		indexTmpl:   indexTmpl,
	}, nil
}

type articlePage struct {
	SiteTitle  string
	Title      string
	Summary    string
	Keyword    string
	Paragraphs []string
	SourceURLs []string
	CreatedAt  string
	Generated  bool
}

// Publish writes one article page to articles/<slug>.html.
func (p *Publisher) Publish(a *article.Article) error {
	page := articlePage{
		SiteTitle:  p.siteTitle,
		Title:      a.Title,
		Summary:    a.Summary,
		Keyword:    a.Keyword,
		Paragraphs: splitParagraphs(a.Content),
		SourceURLs: a.SourceURLs,
		CreatedAt:  a.CreatedAt.Format("2006-01-02 15:04"),
		Generated:  a.Generated,
	}

	path := filepath.Join(p.outputDir, "articles", a.Slug+".html")
	if err := p.render(p.articleTmpl, path, page); err != nil {
		return err
	}

	logger.Info("article published", "slug", a.Slug, "keyword", a.Keyword)
	return nil
}

type indexPage struct {
	SiteTitle   string
	GeneratedAt string
	Articles    []indexArticle
	Trends      []string
}

type indexArticle struct {
	Title     string
	Summary   string
	Keyword   string
	Slug      string
	CreatedAt string
}

// RefreshIndex rewrites index.html from the recent articles and the
// currently trending keywords. Runs at the end of every pipeline run so
// the page stays fresh even when nothing new was collected.
func (p *Publisher) RefreshIndex(articles []storage.ArticleRecord, trendKeywords []storage.KeywordRecord) error {
	page := indexPage{
		SiteTitle:   p.siteTitle,
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
	}

	for _, a := range articles {
		page.Articles = append(page.Articles, indexArticle{
			Title:     a.Title,
			Summary:   a.Summary,
			Keyword:   a.Keyword,
			Slug:      a.Slug,
			CreatedAt: a.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	seen := make(map[string]struct{})
	for _, k := range trendKeywords {
		if _, dup := seen[k.Keyword]; dup {
			continue
		}
		seen[k.Keyword] = struct{}{}
		page.Trends = append(page.Trends, k.Keyword)
		if len(page.Trends) >= 20 {
			break
		}
	}

	path := filepath.Join(p.outputDir, "index.html")
	if err := p.render(p.indexTmpl, path, page); err != nil {
		return err
	}

	logger.Debug("index refreshed", "articles", len(page.Articles), "trends", len(page.Trends))
	return nil
}

// render writes atomically via a temp file so a crash mid-write never
// leaves a half page behind.
func (p *Publisher) render(tmpl *template.Template, path string, data any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmpl.Execute(tmp, data); err != nil {
		tmp.Close()
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func splitParagraphs(content string) []string {
	var paragraphs []string
	for _, p := range strings.Split(content, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
