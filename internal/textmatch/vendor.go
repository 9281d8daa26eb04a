// Package textmatch holds the approximate-equality checks used when a
// document names a vendor or an item differently from the purchase order.
package textmatch

import "strings"

// legalSuffixes are entity designators dropped from the end of a vendor name.
var legalSuffixes = map[string]struct{}{
	"inc":          {},
	"incorporated": {},
	"corp":         {},
	"corporation":  {},
	"llc":          {},
	"ltd":          {},
	"limited":      {},
	"co":           {},
	"company":      {},
}

// VendorEquivalent reports whether two organisation names refer to the same
// vendor. Names are compared case-insensitively; trailing legal-entity
// suffixes are removed and the names match when one contains the other.
func VendorEquivalent(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	ca, cb := stripLegalSuffixes(a), stripLegalSuffixes(b)
	if ca == "" || cb == "" {
		return false
	}
	return strings.Contains(ca, cb) || strings.Contains(cb, ca)
}

// VendorEqualFold is the strict vendor check: case-insensitive equality of
// the trimmed names.
func VendorEqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func stripLegalSuffixes(name string) string {
	words := strings.Fields(name)
	for i := range words {
		words[i] = strings.TrimRight(words[i], ".,;")
	}
	for len(words) > 0 {
		last := words[len(words)-1]
		if last == "" {
			words = words[:len(words)-1]
			continue
		}
		if _, ok := legalSuffixes[last]; !ok {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}
