package newsfetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selector fallback lists per news host family. Korean news sites rotate
// their markup often, so each family gets several candidates and the first
// one that yields paragraphs wins.
var contentSelectors = []string{
	"article#dic_area",       // Naver news body
	"#articleBodyContents",   // older Naver markup
	".article_view p",        // Daum
	"#article-view-content-div p",
	".news_body_area p",
	"article p",
	".article-body p",
	".article_body p",
	"#articleBody p",
	".content p",
	"main p",
}

// Boilerplate fragments Korean outlets append to every article body.
var junkPhrases = []string{
	"무단 전재 및 재배포 금지",
	"무단전재 및 재배포 금지",
	"무단 전재-재배포 금지",
	"저작권자 ⓒ",
	"저작권자(c)",
	"기사제보 및 보도자료",
	"네이버에서 구독하세요",
	"카카오톡 채널 추가",
	"구독하기",
	"기자 구독",
	"ⓒ",
}

var junkLineIndicators = []string{
	"무단전재", "재배포", "저작권", "기사제보", "광고문의", "구독", "앱 다운로드",
}

const maxContentRunes = 2000

// extractContent pulls the article body text out of a parsed page using
// the selector fallback chain, then strips boilerplate.
func extractContent(doc *goquery.Document) string {
	var paragraphs []string

	for _, selector := range contentSelectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text != "" && len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) > 0 {
			break
		}
	}

	return cleanContent(strings.Join(paragraphs, "\n\n"))
}

// cleanContent removes outlet boilerplate and normalizes paragraphs.
func cleanContent(content string) string {
	if content == "" {
		return ""
	}

	for _, phrase := range junkPhrases {
		content = strings.ReplaceAll(content, phrase, "")
	}

	var cleanLines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 8 {
			continue
		}

		isJunk := false
		for _, indicator := range junkLineIndicators {
			if strings.Contains(line, indicator) {
				isJunk = true
				break
			}
		}
		if isJunk {
			continue
		}

		cleanLines = append(cleanLines, line)
	}

	result := strings.Join(cleanLines, "\n\n")

	// Collapse runaway whitespace left by tag stripping
	for strings.Contains(result, "  ") {
		result = strings.ReplaceAll(result, "  ", " ")
	}
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}
	result = strings.TrimSpace(result)

	// Cap length on paragraph boundaries
	runes := []rune(result)
	if len(runes) > maxContentRunes {
		paragraphs := strings.Split(result, "\n\n")
		var kept []string
		total := 0
		for _, p := range paragraphs {
			if total+len([]rune(p)) > maxContentRunes {
				break
			}
			kept = append(kept, p)
			total += len([]rune(p)) + 2
		}
		if len(kept) > 0 {
			result = strings.Join(kept, "\n\n")
		} else {
			result = string(runes[:maxContentRunes])
		}
	}

	return result
}
