package orders

import (
	"strings"
	"unicode"
)

// CanonicalPrefix is the order-number prefix the ERP uses in its exports.
const CanonicalPrefix = "PO"

// prefixArtifacts are stripped from order numbers, longest first.
var prefixArtifacts = []string{"PO-", "PO", "#"}

// Normalize turns an order number as written on a document ("po-12345",
// "PO #12345", "12345") into the canonical lookup key ("12345"). The result
// is a fixed point: Normalize(Normalize(x)) == Normalize(x).
func Normalize(number string) string {
	key := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToUpper(number))

	for {
		next := key
		for _, artifact := range prefixArtifacts {
			next = strings.ReplaceAll(next, artifact, "")
		}
		if next == key {
			return key
		}
		key = next
	}
}
