package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendpress/internal/article"
	"trendpress/internal/storage"
)

func TestPublishWritesArticlePage(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir, "트렌드프레스", "https://trendpress.example.com")
	require.NoError(t, err)

	a := &article.Article{
		Keyword:    "손흥민",
		Title:      "손흥민 복귀전 결승골",
		Summary:    "복귀전에서 결승골을 넣었다.",
		Content:    "첫 문단입니다. 자세한 내용이 이어집니다.\n\n두 번째 문단입니다.",
		Slug:       "손흥민-abcd1234",
		SourceURLs: []string{"https://news.example.com/1"},
		Generated:  true,
		CreatedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(a))

	raw, err := os.ReadFile(filepath.Join(dir, "articles", "손흥민-abcd1234.html"))
	require.NoError(t, err)
	html := string(raw)

	assert.Contains(t, html, "손흥민 복귀전 결승골")
	assert.Contains(t, html, "첫 문단입니다.")
	assert.Contains(t, html, "두 번째 문단입니다.")
	assert.Contains(t, html, "https://news.example.com/1")
	assert.Contains(t, html, "트렌드프레스")
}

func TestPublishEscapesMarkup(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir, "site", "")
	require.NoError(t, err)

	a := &article.Article{
		Keyword:   "키워드",
		Title:     `<script>alert("x")</script>`,
		Content:   "본문 내용입니다.",
		Slug:      "escape-test",
		CreatedAt: time.Now(),
	}
	require.NoError(t, p.Publish(a))

	raw, err := os.ReadFile(filepath.Join(dir, "articles", "escape-test.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "<script>alert")
}

func TestRefreshIndex(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir, "트렌드프레스", "")
	require.NoError(t, err)

	articles := []storage.ArticleRecord{
		{Keyword: "손흥민", Title: "손흥민 복귀", Summary: "요약", Slug: "son-1", CreatedAt: time.Now()},
		{Keyword: "김민수", Title: "김민수 소식", Summary: "요약", Slug: "kim-1", CreatedAt: time.Now()},
	}
	keywords := []storage.KeywordRecord{
		{Keyword: "손흥민"},
		{Keyword: "손흥민"}, // re-detected, shown once
		{Keyword: "아이폰15"},
	}

	require.NoError(t, p.RefreshIndex(articles, keywords))

	raw, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	html := string(raw)

	assert.Contains(t, html, "손흥민 복귀")
	assert.Contains(t, html, "articles/son-1.html")
	assert.Contains(t, html, "articles/kim-1.html")
	assert.Contains(t, html, "아이폰15")
	assert.Equal(t, 1, strings.Count(html, "<li>손흥민</li>"), "trend list dedups keywords")
}

func TestRefreshIndexEmptyInputs(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir, "site", "")
	require.NoError(t, err)

	require.NoError(t, p.RefreshIndex(nil, nil))
	_, err = os.Stat(filepath.Join(dir, "index.html"))
	assert.NoError(t, err)
}

func TestSplitParagraphs(t *testing.T) {
	got := splitParagraphs("하나\n\n\n\n둘\n\n  \n\n셋")
	assert.Equal(t, []string{"하나", "둘", "셋"}, got)
}

func TestRenderLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir, "site", "")
	require.NoError(t, err)
	require.NoError(t, p.RefreshIndex(nil, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}
