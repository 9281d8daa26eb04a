package textmatch

import "strings"

// DefaultDescriptionThreshold is the token overlap ratio at which two item
// descriptions are considered the same item.
const DefaultDescriptionThreshold = 0.6

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {},
	"of": {}, "in": {}, "for": {}, "with": {},
}

// DescriptionEquivalent reports whether two item descriptions name the same
// item using DefaultDescriptionThreshold.
func DescriptionEquivalent(a, b string) bool {
	return DescriptionEquivalentAt(a, b, DefaultDescriptionThreshold)
}

// DescriptionEquivalentAt compares descriptions by word overlap:
// |A ∩ B| / min(|A|, |B|) over the case-folded word sets with stop words
// removed. An empty word set never matches.
func DescriptionEquivalentAt(a, b string, threshold float64) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	wa, wb := wordSet(a), wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return false
	}

	overlap := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			overlap++
		}
	}
	smaller := min(len(wa), len(wb))
	return float64(overlap)/float64(smaller) >= threshold
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
