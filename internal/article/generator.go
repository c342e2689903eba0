package article

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"trendpress/internal/logger"
	"trendpress/internal/newsfetch"
)

// ErrNoArticle is returned when there is no news context at all and the
// fallback cannot assemble anything worth publishing.
var ErrNoArticle = errors.New("no article could be produced for keyword")

// Generator turns a keyword plus its news context into an article via
// Gemini. Any Gemini failure degrades to a locally assembled article, so
// callers only ever see success or ErrNoArticle.
type Generator struct {
	client *genai.Client
	model  string
}

func NewGenerator(apiKey, model string) (*Generator, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Generator{client: client, model: model}, nil
}

func (g *Generator) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

// Generate produces an article for the keyword. The news context may be
// empty; with neither Gemini output nor context, ErrNoArticle is returned.
func (g *Generator) Generate(ctx context.Context, keyword string, news *newsfetch.Result) (*Article, error) {
	if news == nil {
		news = &newsfetch.Result{Keyword: keyword}
	}

	a, err := g.generateWithGemini(ctx, keyword, news)
	if err != nil {
		logger.Warn("gemini generation failed, using fallback", "keyword", keyword, "error", err)
		a = assembleFallback(keyword, news)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoArticle, keyword)
	}

	now := time.Now()
	a.Keyword = keyword
	a.CreatedAt = now
	a.Slug = MakeSlug(keyword, now)
	for _, fa := range news.TopArticles {
		a.SourceURLs = append(a.SourceURLs, fa.URL)
	}
	return a, nil
}

const maxPromptRunes = 6000

func (g *Generator) generateWithGemini(ctx context.Context, keyword string, news *newsfetch.Result) (*Article, error) {
	model := g.client.GenerativeModel(g.model)

	prompt := buildPrompt(keyword, news)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	response, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return parseResponse(response)
}

// responseText unwraps the first candidate's first part. Content can be
// nil on a safety-blocked finish, which must read as "no response", not
// panic.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func buildPrompt(keyword string, news *newsfetch.Result) string {
	var ctx strings.Builder
	for i, h := range news.Headlines {
		if i >= 8 {
			break
		}
		ctx.WriteString("- " + h.Title + "\n")
	}
	for _, fa := range news.TopArticles {
		ctx.WriteString("\n[기사 본문]\n")
		ctx.WriteString(fa.Content)
		ctx.WriteString("\n")
	}

	context := ctx.String()
	if utf8.RuneCountInString(context) > maxPromptRunes {
		runes := []rune(context)
		trimmed := string(runes[:maxPromptRunes])
		if idx := strings.LastIndex(trimmed, ". "); idx > 1000 {
			trimmed = trimmed[:idx+1]
		}
		context = trimmed + "\n[TRUNCATED]"
	}

	return fmt.Sprintf(`당신은 실시간 검색어를 다루는 뉴스 블로그의 편집자입니다.

검색어: %s

아래는 이 검색어와 관련된 최신 뉴스 헤드라인과 기사 본문입니다:
%s

작업:
1. 이 검색어가 왜 화제인지 설명하는 블로그 글을 작성하세요 (600~1200자).
2. 한 문장 요약을 작성하세요.
3. 독자의 관심을 끄는 제목을 만드세요 (40자 이내).

요구사항:
- 기사 내용에 없는 사실을 지어내지 마세요.
- 제공된 정보가 부족하면 아는 범위 안에서만 쓰세요.
- 응답은 아래 형식을 정확히 지키세요.

제목: <제목>

요약: <한 문장 요약>

본문: <블로그 글>
`, keyword, context)
}

// Labels Gemini should emit; English variants show up occasionally.
var sectionLabels = []struct {
	name     string
	prefixes []string
}{
	{"title", []string{"제목:", "TITLE:", "제목 :"}},
	{"summary", []string{"요약:", "SUMMARY:", "요약 :"}},
	{"content", []string{"본문:", "CONTENT:", "본문 :"}},
}

func parseResponse(response string) (*Article, error) {
	sections := map[string]*strings.Builder{
		"title":   {},
		"summary": {},
		"content": {},
	}

	current := ""
	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		matched := false
		for _, label := range sectionLabels {
			for _, prefix := range label.prefixes {
				if strings.HasPrefix(line, prefix) {
					current = label.name
					rest := strings.TrimSpace(strings.TrimPrefix(line, prefix))
					appendSection(sections[current], rest)
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if matched {
			continue
		}

		if current != "" {
			appendSection(sections[current], line)
		}
	}

	title := strings.TrimSpace(sections["title"].String())
	summary := strings.TrimSpace(sections["summary"].String())
	content := strings.TrimSpace(sections["content"].String())

	if title == "" || content == "" {
		return nil, fmt.Errorf("could not parse Gemini response: missing fields (title=%t summary=%t content=%t)",
			title != "", summary != "", content != "")
	}

	return &Article{
		Title:     title,
		Summary:   summary,
		Content:   content,
		Generated: true,
	}, nil
}

func appendSection(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(text)
}

// assembleFallback builds a low-quality but honest article straight from
// the news context. Returns nil when there is nothing to assemble.
func assembleFallback(keyword string, news *newsfetch.Result) *Article {
	if news.Empty() {
		return nil
	}

	title := fmt.Sprintf("%s 관련 최신 소식", keyword)
	if len(news.Headlines) > 0 {
		title = news.Headlines[0].Title
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("'%s'(이)가 실시간 검색어에 올랐습니다. 관련 보도를 정리했습니다.\n\n", keyword))

	for _, fa := range news.TopArticles {
		if excerpt := pickSentences(fa.Content, 2); excerpt != "" {
			b.WriteString(excerpt)
			b.WriteString("\n\n")
		}
	}
	if len(news.TopArticles) == 0 {
		for i, h := range news.Headlines {
			if i >= 5 {
				break
			}
			b.WriteString("- " + h.Title + "\n")
		}
	}

	content := strings.TrimSpace(b.String())
	summary := fmt.Sprintf("'%s' 관련 보도 모음", keyword)

	return &Article{
		Title:     title,
		Summary:   summary,
		Content:   content,
		Generated: false,
	}
}

// pickSentences takes the first n reasonably long sentences of a text.
func pickSentences(content string, n int) string {
	c := strings.TrimSpace(content)
	if c == "" {
		return ""
	}

	var picked []string
	for _, s := range strings.Split(c, ".") {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) < 15 {
			continue
		}
		picked = append(picked, s)
		if len(picked) >= n {
			break
		}
	}
	if len(picked) == 0 {
		runes := []rune(c)
		if len(runes) > 160 {
			return string(runes[:160]) + "..."
		}
		return c
	}
	return strings.Join(picked, ". ") + "."
}
