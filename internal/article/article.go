package article

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"
	"unicode"
)

// Article is one generated piece ready for storage and publishing.
type Article struct {
	Keyword    string
	Title      string
	Summary    string
	Content    string
	Slug       string
	SourceURLs []string
	Generated  bool // false when the local fallback assembled it
	CreatedAt  time.Time
}

// MakeSlug builds a URL-safe slug from the keyword plus a short hash so
// repeat articles for the same keyword on different days don't collide.
func MakeSlug(keyword string, t time.Time) string {
	var b strings.Builder
	for _, r := range strings.ToLower(keyword) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('-')
		}
	}

	h := sha1.New()
	h.Write([]byte(keyword))
	h.Write([]byte(t.Format("2006010215")))
	hash := hex.EncodeToString(h.Sum(nil))[:8]

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return hash
	}
	return slug + "-" + hash
}
