package reconciliation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/verifyap/threeway/internal/domain"
)

// Service reconciles receipts and invoices against the current orders.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	orders   OrderLookup
	receipts *ReceiptMatcher
	invoices *InvoiceMatcher
	logger   *slog.Logger
}

// NewService creates a new reconciliation service.
func NewService(orders OrderLookup, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		orders:   orders,
		receipts: NewReceiptMatcher(opts),
		invoices: NewInvoiceMatcher(opts),
		logger:   logger,
	}
}

// MatchReceipt runs the two-document match of a packing slip.
func (s *Service) MatchReceipt(ctx context.Context, receipt *domain.Receipt) (*domain.ReceiptMatch, error) {
	res, err := s.receipts.Match(receipt, s.orders)
	if err != nil {
		s.logger.WarnContext(ctx, "[reconciliation] receipt rejected", "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "[reconciliation] receipt matched",
		"po", res.PONumber,
		"po_found", res.POFound,
		"matched", len(res.MatchedItems),
		"unmatched", len(res.UnmatchedItems),
		"discrepancies", len(res.Discrepancies))
	return res, nil
}

// MatchInvoice runs the three-way match. The order is resolved from the
// invoice's PO number, or from the receipt's when the invoice carries none.
// receipt may be nil.
func (s *Service) MatchInvoice(ctx context.Context, inv *domain.Invoice, receipt *domain.Receipt) (*domain.InvoiceMatch, error) {
	if inv == nil {
		return nil, &domain.InputError{Field: "invoice", Reason: "is required"}
	}

	number := strings.TrimSpace(inv.PONumber)
	if number == "" && receipt != nil {
		number = strings.TrimSpace(receipt.PONumber)
		withPO := *inv
		withPO.PONumber = number
		inv = &withPO
	}

	var po *domain.PurchaseOrder
	if number != "" {
		if found, ok := s.orders.Get(number); ok {
			po = found
		}
	}

	res, err := s.invoices.Match(inv, po, receipt)
	if err != nil {
		s.logger.WarnContext(ctx, "[reconciliation] invoice rejected", "invoice", inv.InvoiceNumber, "error", err)
		return nil, err
	}
	s.logger.InfoContext(ctx, "[reconciliation] invoice matched",
		"invoice", inv.InvoiceNumber,
		"po", res.PONumber,
		"status", res.Status,
		"discrepancies", len(res.Discrepancies),
		"warnings", len(res.Warnings))
	return res, nil
}
