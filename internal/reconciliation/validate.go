package reconciliation

import (
	"fmt"

	"github.com/verifyap/threeway/internal/domain"
	"github.com/verifyap/threeway/internal/money"
)

// ValidateReceipt rejects receipts whose quantities cannot be reconciled.
func ValidateReceipt(r *domain.Receipt) error {
	if r == nil {
		return &domain.InputError{Field: "receipt", Reason: "is required"}
	}
	for i, item := range r.Items {
		if !money.Valid(item.QuantityReceived) {
			return &domain.InputError{
				Field:  fmt.Sprintf("line_items[%d].quantity_received", i),
				Reason: fmt.Sprintf("must be a non-negative number, got %v", item.QuantityReceived),
			}
		}
	}
	return nil
}

// ValidateInvoice rejects invoices with negative or non-finite amounts.
func ValidateInvoice(inv *domain.Invoice) error {
	if inv == nil {
		return &domain.InputError{Field: "invoice", Reason: "is required"}
	}
	for i, line := range inv.Lines {
		checks := []struct {
			field string
			v     float64
		}{
			{"quantity", line.Quantity},
			{"unit_price", line.UnitPrice},
			{"line_total", line.LineTotal},
		}
		for _, c := range checks {
			if !money.Valid(c.v) {
				return &domain.InputError{
					Field:  fmt.Sprintf("line_items[%d].%s", i, c.field),
					Reason: fmt.Sprintf("must be a non-negative number, got %v", c.v),
				}
			}
		}
	}
	if !money.Valid(inv.TotalAmount) {
		return &domain.InputError{Field: "total_amount", Reason: fmt.Sprintf("must be a non-negative number, got %v", inv.TotalAmount)}
	}
	if inv.TaxAmount != nil && !money.Valid(*inv.TaxAmount) {
		return &domain.InputError{Field: "tax_amount", Reason: fmt.Sprintf("must be a non-negative number, got %v", *inv.TaxAmount)}
	}
	if inv.ShippingAmount != nil && !money.Valid(*inv.ShippingAmount) {
		return &domain.InputError{Field: "shipping_amount", Reason: fmt.Sprintf("must be a non-negative number, got %v", *inv.ShippingAmount)}
	}
	return nil
}
