package reconciliation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verifyap/threeway/internal/domain"
	"github.com/verifyap/threeway/internal/textmatch"
)

// ReceiptMatcher reconciles packing slips against purchase orders.
type ReceiptMatcher struct {
	opts Options
}

func NewReceiptMatcher(opts Options) *ReceiptMatcher {
	return &ReceiptMatcher{opts: opts}
}

// Match resolves the receipt's order through lookup and compares what arrived
// with what was ordered. Each received item takes the first order line whose
// description is equivalent, or whose item ID contains the received
// description. Order lines no received description is equivalent to are
// reported as missing from the shipment.
func (m *ReceiptMatcher) Match(receipt *domain.Receipt, lookup OrderLookup) (*domain.ReceiptMatch, error) {
	if err := ValidateReceipt(receipt); err != nil {
		return nil, err
	}

	po, found := lookup.Get(receipt.PONumber)
	if !found {
		unmatched := make([]domain.ReceivedItem, len(receipt.Items))
		copy(unmatched, receipt.Items)
		return &domain.ReceiptMatch{
			POFound:          false,
			PONumber:         receipt.PONumber,
			VendorMatch:      false,
			Discrepancies:    []string{fmt.Sprintf("PO %s not found in database", receipt.PONumber)},
			MatchedItems:     []domain.MatchedItem{},
			UnmatchedItems:   unmatched,
			HasDiscrepancies: true,
		}, nil
	}

	res := &domain.ReceiptMatch{
		POFound:        true,
		PONumber:       po.Number,
		VendorMatch:    m.opts.ReceiptVendorMatch.equivalent(receipt.VendorName, po.VendorName),
		Discrepancies:  []string{},
		MatchedItems:   []domain.MatchedItem{},
		UnmatchedItems: []domain.ReceivedItem{},
	}
	if !res.VendorMatch {
		res.Discrepancies = append(res.Discrepancies,
			fmt.Sprintf("Vendor mismatch: Slip shows '%s' but PO is for '%s'", receipt.VendorName, po.VendorName))
	}

	for _, item := range receipt.Items {
		line := m.firstMatchingLine(item.Description, po.Lines)
		if line == nil {
			res.UnmatchedItems = append(res.UnmatchedItems, item)
			res.Discrepancies = append(res.Discrepancies,
				fmt.Sprintf("Item not in PO: %s (Qty: %s)", item.Description, formatQty(item.QuantityReceived)))
			continue
		}

		matched := domain.MatchedItem{
			Description: item.Description,
			QtyReceived: item.QuantityReceived,
			QtyOrdered:  line.QuantityOrdered,
			POItemID:    line.ItemID,
			MatchType:   domain.MatchExact,
		}
		if item.QuantityReceived != line.QuantityOrdered {
			msg := fmt.Sprintf("%s: Received %s but PO ordered %s (Difference: %s)",
				line.Description,
				formatQty(item.QuantityReceived),
				formatQty(line.QuantityOrdered),
				signedQty(item.QuantityReceived-line.QuantityOrdered))
			res.Discrepancies = append(res.Discrepancies, msg)
			matched.MatchType = domain.MatchDiscrepancy
			matched.Discrepancy = msg
		}
		if item.HasHandwrittenNotes {
			res.Discrepancies = append(res.Discrepancies,
				fmt.Sprintf("%s: Handwritten note found - '%s'", line.Description, item.HandwrittenNotes))
			matched.Notes = item.HandwrittenNotes
		}
		res.MatchedItems = append(res.MatchedItems, matched)
	}

	for _, line := range po.Lines {
		if !m.anyReceived(line.Description, receipt.Items) {
			res.Discrepancies = append(res.Discrepancies,
				fmt.Sprintf("Missing from shipment: %s (PO ordered %s)", line.Description, formatQty(line.QuantityOrdered)))
		}
	}

	res.HasDiscrepancies = len(res.Discrepancies) > 0
	return res, nil
}

func (m *ReceiptMatcher) firstMatchingLine(desc string, lines []domain.OrderLine) *domain.OrderLine {
	needle := strings.ToLower(strings.TrimSpace(desc))
	for i := range lines {
		if textmatch.DescriptionEquivalentAt(desc, lines[i].Description, m.opts.DescriptionThreshold) {
			return &lines[i]
		}
		if needle != "" && strings.Contains(strings.ToLower(lines[i].ItemID), needle) {
			return &lines[i]
		}
	}
	return nil
}

func (m *ReceiptMatcher) anyReceived(orderDesc string, items []domain.ReceivedItem) bool {
	for _, item := range items {
		if textmatch.DescriptionEquivalentAt(item.Description, orderDesc, m.opts.DescriptionThreshold) {
			return true
		}
	}
	return false
}

func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func signedQty(d float64) string {
	if d > 0 {
		return "+" + formatQty(d)
	}
	return formatQty(d)
}
