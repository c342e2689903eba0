package article

import (
	"strings"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendpress/internal/newsfetch"
)

func TestMakeSlug(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)

	slug := MakeSlug("손흥민 복귀", at)
	assert.True(t, strings.HasPrefix(slug, "손흥민-복귀-"), "got %q", slug)
	assert.Len(t, strings.TrimPrefix(slug, "손흥민-복귀-"), 8)

	// Same keyword in the same hour yields the same slug; a later hour
	// gets a fresh hash.
	assert.Equal(t, slug, MakeSlug("손흥민 복귀", at.Add(10*time.Minute)))
	assert.NotEqual(t, slug, MakeSlug("손흥민 복귀", at.Add(time.Hour)))
}

func TestMakeSlugPunctuationOnly(t *testing.T) {
	slug := MakeSlug("!!!", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	assert.Len(t, slug, 8, "falls back to the bare hash")
}

func TestParseResponse(t *testing.T) {
	resp := `제목: 손흥민, 리그 복귀전에서 결승골

요약: 손흥민이 부상 복귀전에서 결승골을 넣었다.

본문: 손흥민이 오랜 부상에서 돌아왔다.
복귀전에서 곧바로 결승골을 기록하며 팀을 승리로 이끌었다.`

	a, err := parseResponse(resp)
	require.NoError(t, err)

	assert.Equal(t, "손흥민, 리그 복귀전에서 결승골", a.Title)
	assert.Equal(t, "손흥민이 부상 복귀전에서 결승골을 넣었다.", a.Summary)
	assert.Equal(t, "손흥민이 오랜 부상에서 돌아왔다.\n복귀전에서 곧바로 결승골을 기록하며 팀을 승리로 이끌었다.", a.Content)
	assert.True(t, a.Generated)
}

func TestParseResponseEnglishLabels(t *testing.T) {
	a, err := parseResponse("TITLE: A headline\nSUMMARY: one line\nCONTENT: body text here")
	require.NoError(t, err)
	assert.Equal(t, "A headline", a.Title)
	assert.Equal(t, "body text here", a.Content)
}

func TestParseResponseMissingContent(t *testing.T) {
	_, err := parseResponse("제목: 제목만 있음\n요약: 본문이 없다")
	assert.Error(t, err)
}

func TestParseResponseEmpty(t *testing.T) {
	_, err := parseResponse("")
	assert.Error(t, err)
}

func TestResponseText(t *testing.T) {
	got, err := responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("제목: t")}}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "제목: t", got)
}

func TestResponseTextBlockedCandidate(t *testing.T) {
	// A safety-blocked finish yields a candidate with nil Content.
	_, err := responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: nil}},
	})
	assert.Error(t, err)

	_, err = responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	})
	assert.Error(t, err)
}

func TestAssembleFallback(t *testing.T) {
	news := &newsfetch.Result{
		Keyword: "손흥민",
		Headlines: []newsfetch.Headline{
			{Title: "손흥민 복귀전 결승골", URL: "https://news.example.com/1"},
			{Title: "손흥민 인터뷰", URL: "https://news.example.com/2"},
		},
		TopArticles: []newsfetch.FullArticle{
			{
				URL:     "https://news.example.com/1",
				Content: "손흥민이 부상에서 복귀해 결승골을 넣으며 팀 승리를 이끌었다. 감독은 그의 복귀가 팀에 큰 힘이 된다고 말했다. 다음 경기는 주말에 열린다.",
			},
		},
	}

	a := assembleFallback("손흥민", news)
	require.NotNil(t, a)

	assert.Equal(t, "손흥민 복귀전 결승골", a.Title, "first headline becomes the title")
	assert.False(t, a.Generated)
	assert.Contains(t, a.Content, "손흥민이 부상에서 복귀해 결승골을 넣으며 팀 승리를 이끌었다")
	assert.Contains(t, a.Summary, "손흥민")
}

func TestAssembleFallbackHeadlinesOnly(t *testing.T) {
	news := &newsfetch.Result{
		Keyword:   "김민수",
		Headlines: []newsfetch.Headline{{Title: "김민수 관련 보도"}},
	}

	a := assembleFallback("김민수", news)
	require.NotNil(t, a)
	assert.Contains(t, a.Content, "- 김민수 관련 보도")
}

func TestAssembleFallbackEmptyNews(t *testing.T) {
	assert.Nil(t, assembleFallback("김민수", &newsfetch.Result{Keyword: "김민수"}))
}

func TestPickSentences(t *testing.T) {
	text := "짧다. 손흥민이 부상에서 복귀해 결승골을 넣으며 팀 승리를 이끌었다. 감독은 그의 복귀가 팀에 큰 힘이 된다고 말했다. 다음 경기는 주말에 열린다."

	got := pickSentences(text, 2)
	assert.Equal(t, "손흥민이 부상에서 복귀해 결승골을 넣으며 팀 승리를 이끌었다. 감독은 그의 복귀가 팀에 큰 힘이 된다고 말했다.", got)
}

func TestPickSentencesNoLongSentence(t *testing.T) {
	assert.Equal(t, "짧은 문장", pickSentences("짧은 문장", 2))
	assert.Equal(t, "", pickSentences("   ", 2))
}
