package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := Default()

	tests := []struct {
		term     string
		accepted bool
		reason   string
	}{
		// length bounds
		{"김", false, "length"},
		{"아주아주아주아주아주아주아주아주", false, "length"},

		// exact stopword match
		{"확인", false, "stopword"},
		{"속보", false, "stopword"},
		{"오피니언", false, "stopword"},
		{"서울", false, "stopword"},

		// sentence fragments
		{"오늘 날씨 정말 최악", false, "token-count"},
		{"이게 진짜 말이 되나", false, "token-count"},

		// two tokens where one half is generic
		{"대통령 발언", false, "stopword-token"},
		{"손흥민 근황", false, "stopword-token"},

		// conjugation endings / sentence-final forms
		{"떠났다", false, "fragment-suffix"},
		{"궁금해요", false, "fragment-suffix"},
		{"밝혀졌다", false, "fragment-suffix"},
		{"공개된다", false, "fragment-suffix"},

		// one syllable plus particle
		{"그는", false, "particle-tail"},
		{"집에", false, "particle-tail"},

		// numeric and numeric-plus-unit
		{"123", false, "numeric"},
		{"3월", false, "numeric"},
		{"10km", false, "numeric"},

		// short Latin acronyms
		{"TV", false, "short-acronym"},
		{"PC", false, "short-acronym"},

		// headline fragments
		{"그들의 비밀", false, "headline-fragment"},
		{"회장님의 최후", false, "headline-fragment"},

		// genuine search terms
		{"김민수", true, "ok"},
		{"손흥민", true, "ok"},
		{"아이폰15", true, "ok"},
		{"삼성전자 주가", true, "ok"},
		{"SBS", true, "ok"},
		{"누리호 발사", true, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			v := c.Classify(tt.term)
			assert.Equal(t, tt.accepted, v.Accepted, "term %q", tt.term)
			assert.Equal(t, tt.reason, v.Reason, "term %q", tt.term)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := Default()
	for i := 0; i < 3; i++ {
		assert.Equal(t, Verdict{Accepted: true, Reason: "ok"}, c.Classify("김민수"))
		assert.Equal(t, Verdict{Accepted: false, Reason: "stopword"}, c.Classify("확인"))
	}
}

func TestClassifyConfigurableBounds(t *testing.T) {
	// A wider upper bound lets longer terms through.
	wide := NewClassifier(2, 20, 3)
	long := "아주아주아주아주아주아주아주아주" // 16 runes

	assert.False(t, Default().Classify(long).Accepted)
	assert.True(t, wide.Classify(long).Accepted)

	// A higher acronym threshold starts rejecting 3-letter acronyms.
	strict := NewClassifier(2, 15, 4)
	assert.Equal(t, "short-acronym", strict.Classify("SBS").Reason)
}
