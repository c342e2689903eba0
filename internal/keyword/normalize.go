package keyword

import (
	"strings"
	"unicode"
)

// Characters some portals wrap around trending terms (quotes, brackets).
const enclosingPunct = "\"'`「」『』【】[](){}<>‘’“”"

// Normalize cleans a raw trending term into its canonical stored form:
// trim, collapse whitespace runs, drop standalone leading/trailing integer
// tokens (rank prefixes and comment-count suffixes some portals embed) and
// strip enclosing quote/bracket punctuation. An empty result means the
// term should be discarded.
//
// Stripping quotes can expose a new integer token, so the steps repeat
// until the value stops changing. Each pass strictly shrinks the string,
// so the loop terminates, and running to the fixed point makes Normalize
// idempotent.
func Normalize(raw string) string {
	s := raw
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeOnce(s string) string {
	fields := strings.Fields(s)

	// Standalone integer tokens only; a term that is nothing but a number
	// is left for the classifier to reject with a proper reason.
	if len(fields) > 1 && isIntegerToken(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	if len(fields) > 1 && isIntegerToken(fields[0]) {
		fields = fields[1:]
	}

	s = strings.Join(fields, " ")
	s = strings.TrimFunc(s, func(r rune) bool {
		return strings.ContainsRune(enclosingPunct, r)
	})
	return strings.TrimSpace(s)
}

func isIntegerToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
