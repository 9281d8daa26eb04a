package reconciliation

import (
	"fmt"

	"github.com/verifyap/threeway/internal/textmatch"
)

// VendorMatchMode selects how strictly a document's vendor must match the
// order's vendor.
type VendorMatchMode string

const (
	// VendorFuzzy ignores case, legal suffixes and containment differences.
	VendorFuzzy VendorMatchMode = "fuzzy"
	// VendorStrict only ignores case and surrounding whitespace.
	VendorStrict VendorMatchMode = "strict"
)

// Options are the matching policy knobs.
type Options struct {
	// PriceTolerance is the largest relative unit-price gap that still passes.
	PriceTolerance float64
	// TotalTolerance is the largest relative invoice-total gap before a warning.
	TotalTolerance float64
	// DescriptionThreshold is the word-overlap ratio for item equivalence.
	DescriptionThreshold float64
	// ReceiptVendorMatch applies to packing slips, InvoiceVendorMatch to invoices.
	ReceiptVendorMatch VendorMatchMode
	InvoiceVendorMatch VendorMatchMode
}

// DefaultOptions returns the standing payment policy.
func DefaultOptions() Options {
	return Options{
		PriceTolerance:       0.01,
		TotalTolerance:       0.05,
		DescriptionThreshold: textmatch.DefaultDescriptionThreshold,
		ReceiptVendorMatch:   VendorFuzzy,
		InvoiceVendorMatch:   VendorStrict,
	}
}

// Validate rejects tolerances that would make every check pass or fail.
func (o Options) Validate() error {
	if o.PriceTolerance < 0 || o.PriceTolerance >= 1 {
		return fmt.Errorf("price tolerance %v out of range [0,1)", o.PriceTolerance)
	}
	if o.TotalTolerance < 0 || o.TotalTolerance >= 1 {
		return fmt.Errorf("total tolerance %v out of range [0,1)", o.TotalTolerance)
	}
	if o.DescriptionThreshold <= 0 || o.DescriptionThreshold > 1 {
		return fmt.Errorf("description threshold %v out of range (0,1]", o.DescriptionThreshold)
	}
	for _, m := range []VendorMatchMode{o.ReceiptVendorMatch, o.InvoiceVendorMatch} {
		if m != VendorFuzzy && m != VendorStrict {
			return fmt.Errorf("unknown vendor match mode %q", m)
		}
	}
	return nil
}

func (m VendorMatchMode) equivalent(a, b string) bool {
	if m == VendorStrict {
		return textmatch.VendorEqualFold(a, b)
	}
	return textmatch.VendorEquivalent(a, b)
}
