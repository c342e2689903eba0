package keyword

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Verdict is the classifier outcome for one normalized term. Reason holds
// the tag of the rule that rejected it ("ok" on accept) and is what ends
// up in the debug logs when a candidate is dropped.
type Verdict struct {
	Accepted bool
	Reason   string
}

// Classifier decides whether a normalized term is a genuine search term or
// headline noise. It runs an ordered first-match rule chain: every rule
// either rejects with its tag or passes to the next one, and a term that
// survives the whole chain is accepted.
type Classifier struct {
	minLen        int
	maxLen        int
	acronymMinLen int
	rules         []rule
}

type rule struct {
	tag    string
	reject func(c *Classifier, term string, tokens []string) bool
}

// NewClassifier builds the rule chain with the given length bounds.
// Rules are kept in a table so regressions can be pinned to one rule and
// new rules added without touching control flow.
func NewClassifier(minLen, maxLen, acronymMinLen int) *Classifier {
	c := &Classifier{
		minLen:        minLen,
		maxLen:        maxLen,
		acronymMinLen: acronymMinLen,
	}
	c.rules = []rule{
		{"length", rejectLength},
		{"stopword", rejectStopword},
		{"token-count", rejectTokenCount},
		{"stopword-token", rejectStopwordToken},
		{"fragment-suffix", rejectFragmentSuffix},
		{"particle-tail", rejectParticleTail},
		{"numeric", rejectNumeric},
		{"short-acronym", rejectShortAcronym},
		{"headline-fragment", rejectHeadlineFragment},
	}
	return c
}

// Default returns a classifier with the standard bounds (2..15 runes,
// acronyms shorter than 3 letters rejected).
func Default() *Classifier {
	return NewClassifier(2, 15, 3)
}

// Classify is pure: the same term always yields the same Verdict.
func (c *Classifier) Classify(term string) Verdict {
	tokens := strings.Fields(term)
	for _, r := range c.rules {
		if r.reject(c, term, tokens) {
			return Verdict{Accepted: false, Reason: r.tag}
		}
	}
	return Verdict{Accepted: true, Reason: "ok"}
}

func rejectLength(c *Classifier, term string, _ []string) bool {
	n := utf8.RuneCountInString(term)
	return n < c.minLen || n > c.maxLen
}

func rejectStopword(_ *Classifier, term string, _ []string) bool {
	return IsStopword(term)
}

// Three or more tokens is a sentence fragment, not a search term.
func rejectTokenCount(_ *Classifier, _ string, tokens []string) bool {
	return len(tokens) >= 3
}

// Catches "[role] [name]" and similar patterns where one half is generic.
func rejectStopwordToken(_ *Classifier, _ string, tokens []string) bool {
	if len(tokens) != 2 {
		return false
	}
	return IsStopword(tokens[0]) || IsStopword(tokens[1])
}

// Verb/adjective conjugation endings and sentence-final forms. A term that
// ends in one of these is a clipped headline clause.
var fragmentSuffixes = []string{
	"했다", "한다", "된다", "됐다", "이다", "있다", "없다", "졌다", "왔다",
	"간다", "떴다", "났다", "하다", "되다",
	"습니다", "입니다", "답니다", "네요", "세요", "어요", "아요", "해요", "대요",
	"라고", "하고", "하며", "라며", "면서",
	"을까", "일까", "까요", "다는", "다가", "려고",
}

func rejectFragmentSuffix(_ *Classifier, term string, tokens []string) bool {
	// Suffix must leave at least one rune of stem.
	for _, suf := range fragmentSuffixes {
		if strings.HasSuffix(term, suf) &&
			utf8.RuneCountInString(term) > utf8.RuneCountInString(suf) {
			return true
		}
	}
	return false
}

// Subject/object/topic particles and similar one-syllable grammar markers.
var tailParticles = "이가은는도만을를에의와과로요랑께서"

// A 2-character term whose second character is a particle is one semantic
// syllable plus grammar ("그는", "집에") and has no search value.
func rejectParticleTail(_ *Classifier, term string, _ []string) bool {
	runes := []rune(term)
	if len(runes) != 2 {
		return false
	}
	if !isHangul(runes[0]) {
		return false
	}
	return strings.ContainsRune(tailParticles, runes[1])
}

// Pure numbers and number-plus-short-unit tokens ("123", "3월", "10km").
var numericPattern = regexp.MustCompile(`^[0-9]+([가-힣a-zA-Z%]{1,2})?$`)

func rejectNumeric(_ *Classifier, term string, _ []string) bool {
	return numericPattern.MatchString(term)
}

// Very short Latin acronyms are ambiguous between search terms and site
// chrome ("TV", "PC"); the threshold is configurable.
func rejectShortAcronym(c *Classifier, term string, _ []string) bool {
	if utf8.RuneCountInString(term) >= c.acronymMinLen {
		return false
	}
	for _, r := range term {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return term != ""
}

// Abstract nouns that complete the "~의 X" clickbait headline pattern.
var abstractNouns = []string{
	"진실", "비밀", "이유", "정체", "최후", "근황", "운명", "미래",
	"결말", "전말", "민낯", "실체", "최후통첩",
}

// "[noun]의 [abstract noun]" is a headline fragment ("그들의 비밀"), not
// something people type into a search box.
func rejectHeadlineFragment(_ *Classifier, _ string, tokens []string) bool {
	if len(tokens) != 2 {
		return false
	}
	if !strings.HasSuffix(tokens[0], "의") {
		return false
	}
	for _, noun := range abstractNouns {
		if strings.HasSuffix(tokens[1], noun) {
			return true
		}
	}
	return false
}

func isHangul(r rune) bool {
	return r >= 0xAC00 && r <= 0xD7A3
}
