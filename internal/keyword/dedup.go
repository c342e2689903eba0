package keyword

import "strings"

// BatchDeduper collapses duplicates inside one collection batch. The first
// candidate that normalizes to a given case-insensitive text wins and keeps
// its source and rank; later ones are dropped before persistence is even
// attempted. It does not replace the store-level recency check — sources
// re-emit the same top terms across pipeline runs, and only the store
// remembers those.
type BatchDeduper struct {
	seen map[string]struct{}
}

func NewBatchDeduper() *BatchDeduper {
	return &BatchDeduper{seen: make(map[string]struct{})}
}

// Seen records the normalized term and reports whether it was already in
// this batch.
func (d *BatchDeduper) Seen(normalized string) bool {
	key := strings.ToLower(normalized)
	if _, dup := d.seen[key]; dup {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}
