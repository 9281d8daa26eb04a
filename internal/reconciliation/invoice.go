package reconciliation

import (
	"fmt"
	"strings"

	"github.com/verifyap/threeway/internal/domain"
	"github.com/verifyap/threeway/internal/money"
)

// Verdict summaries.
const (
	summaryApprove  = "All checks passed - Ready for payment"
	summaryReview   = "%d discrepancies found - Needs review"
	summaryReject   = "%d discrepancies found - Do not pay"
	summaryNotFound = "Cannot match - PO not found in system"
)

// InvoiceMatcher performs the three-way match of invoice, order and receipt.
type InvoiceMatcher struct {
	opts Options
}

func NewInvoiceMatcher(opts Options) *InvoiceMatcher {
	return &InvoiceMatcher{opts: opts}
}

// Match reconciles an invoice against its already resolved order and, when
// receipt is non-nil, against what was received. A nil order is rejected
// outright.
//
// Billed lines are paired with order and receipt lines by case-insensitive
// description; the first line carrying a description wins.
func (m *InvoiceMatcher) Match(inv *domain.Invoice, po *domain.PurchaseOrder, receipt *domain.Receipt) (*domain.InvoiceMatch, error) {
	if err := ValidateInvoice(inv); err != nil {
		return nil, err
	}
	if receipt != nil {
		if err := ValidateReceipt(receipt); err != nil {
			return nil, err
		}
	}

	if po == nil {
		return &domain.InvoiceMatch{
			Status:           domain.VerdictReject,
			POFound:          false,
			PONumber:         inv.PONumber,
			Discrepancies:    []string{fmt.Sprintf("No PO found for PO# %s", inv.PONumber)},
			Warnings:         []string{},
			Summary:          summaryNotFound,
			MatchedItems:     []domain.BilledItem{},
			UnmatchedItems:   []domain.InvoiceLine{},
			HasDiscrepancies: true,
		}, nil
	}

	res := &domain.InvoiceMatch{
		POFound:        true,
		PONumber:       po.Number,
		VendorMatch:    m.opts.InvoiceVendorMatch.equivalent(inv.VendorName, po.VendorName),
		Discrepancies:  []string{},
		Warnings:       []string{},
		MatchedItems:   []domain.BilledItem{},
		UnmatchedItems: []domain.InvoiceLine{},
	}
	if !res.VendorMatch {
		res.Discrepancies = append(res.Discrepancies,
			fmt.Sprintf("Vendor mismatch: Invoice shows '%s' but PO shows '%s'", inv.VendorName, po.VendorName))
	}

	orderLines := make(map[string]*domain.OrderLine, len(po.Lines))
	for i := range po.Lines {
		key := descriptionKey(po.Lines[i].Description)
		if _, seen := orderLines[key]; !seen {
			orderLines[key] = &po.Lines[i]
		}
	}

	var received map[string]*domain.ReceivedItem
	if receipt != nil {
		received = make(map[string]*domain.ReceivedItem, len(receipt.Items))
		for i := range receipt.Items {
			key := descriptionKey(receipt.Items[i].Description)
			if _, seen := received[key]; !seen {
				received[key] = &receipt.Items[i]
			}
		}
	}

	for _, billed := range inv.Lines {
		key := descriptionKey(billed.Description)
		ordered, ok := orderLines[key]
		if !ok {
			res.UnmatchedItems = append(res.UnmatchedItems, billed)
			res.Discrepancies = append(res.Discrepancies,
				fmt.Sprintf("Invoice line '%s' not found on PO", billed.Description))
			continue
		}

		item := domain.BilledItem{
			Description:      billed.Description,
			QtyBilled:        billed.Quantity,
			QtyOrdered:       ordered.QuantityOrdered,
			BilledUnitPrice:  billed.UnitPrice,
			OrderedUnitPrice: ordered.UnitPrice,
			MatchType:        domain.MatchExact,
		}

		diff := money.RelativeDiff(billed.UnitPrice, ordered.UnitPrice)
		item.PriceDifferencePct = money.Round2(diff * 100)
		if diff > m.opts.PriceTolerance {
			res.Discrepancies = append(res.Discrepancies,
				fmt.Sprintf("%s: Price mismatch - Invoice %s vs PO %s (%s difference)",
					billed.Description, money.Format(billed.UnitPrice), money.Format(ordered.UnitPrice), money.Percent(diff)))
			item.MatchType = domain.MatchDiscrepancy
		}

		if got, ok := received[key]; ok {
			qty := got.QuantityReceived
			item.QtyReceived = &qty
			switch {
			case billed.Quantity > qty:
				res.Discrepancies = append(res.Discrepancies,
					fmt.Sprintf("%s: Billing for %s but only received %s",
						billed.Description, formatQty(billed.Quantity), formatQty(qty)))
				item.MatchType = domain.MatchDiscrepancy
			case billed.Quantity < qty:
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("%s: Received %s but only billed for %s",
						billed.Description, formatQty(qty), formatQty(billed.Quantity)))
			}
		}

		res.MatchedItems = append(res.MatchedItems, item)
	}

	extended := make([]float64, len(po.Lines))
	for i, l := range po.Lines {
		extended[i] = money.Extend(l.QuantityOrdered, l.UnitPrice)
	}
	poTotal := money.Sum(extended...)
	if money.RelativeDiff(inv.TotalAmount, poTotal) > m.opts.TotalTolerance {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("Total amount difference: Invoice %s vs PO expected %s",
				money.Format(inv.TotalAmount), money.Format(poTotal)))
	}

	res.Status = Classify(len(res.Discrepancies), len(res.Warnings))
	res.Summary = summarize(res.Status, len(res.Discrepancies))
	res.HasDiscrepancies = len(res.Discrepancies) > 0
	res.Details = &domain.InvoiceDetails{
		InvoiceTotal:   inv.TotalAmount,
		POTotal:        poTotal,
		ItemsChecked:   len(inv.Lines),
		HasPackingSlip: receipt != nil,
	}
	return res, nil
}

// Classify maps finding counts to a verdict:
//
//	0 discrepancies                    APPROVE
//	1-2 discrepancies, any warning     REVIEW
//	otherwise                          REJECT
func Classify(discrepancies, warnings int) domain.Verdict {
	switch {
	case discrepancies == 0:
		return domain.VerdictApprove
	case discrepancies <= 2 && warnings > 0:
		return domain.VerdictReview
	default:
		return domain.VerdictReject
	}
}

func summarize(v domain.Verdict, discrepancies int) string {
	switch v {
	case domain.VerdictApprove:
		return summaryApprove
	case domain.VerdictReview:
		return fmt.Sprintf(summaryReview, discrepancies)
	default:
		return fmt.Sprintf(summaryReject, discrepancies)
	}
}

func descriptionKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
