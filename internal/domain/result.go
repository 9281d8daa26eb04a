package domain

// MatchType classifies a matched line item.
type MatchType string

const (
	MatchExact       MatchType = "exact"
	MatchDiscrepancy MatchType = "discrepancy"
)

// MatchedItem pairs a received item with the order line it was matched to.
type MatchedItem struct {
	Description string    `json:"description"`
	QtyReceived float64   `json:"qty_received"`
	QtyOrdered  float64   `json:"qty_ordered"`
	POItemID    string    `json:"po_item_id"`
	MatchType   MatchType `json:"match_type"`
	Discrepancy string    `json:"discrepancy,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// ReceiptMatch is the outcome of reconciling a receipt against an order.
type ReceiptMatch struct {
	POFound          bool           `json:"po_found"`
	PONumber         string         `json:"po_number"`
	VendorMatch      bool           `json:"vendor_match"`
	Discrepancies    []string       `json:"discrepancies"`
	MatchedItems     []MatchedItem  `json:"matched_items"`
	UnmatchedItems   []ReceivedItem `json:"unmatched_items"`
	HasDiscrepancies bool           `json:"has_discrepancies"`
}

// Verdict is the payment decision of a three-way match.
type Verdict string

const (
	VerdictApprove Verdict = "APPROVE"
	VerdictReview  Verdict = "REVIEW"
	VerdictReject  Verdict = "REJECT"
)

// BilledItem pairs a billed line with the order line it was matched to.
// QtyReceived is set only when a receipt was supplied and carried the item.
type BilledItem struct {
	Description        string    `json:"description"`
	QtyBilled          float64   `json:"qty_billed"`
	QtyOrdered         float64   `json:"qty_ordered"`
	QtyReceived        *float64  `json:"qty_received,omitempty"`
	BilledUnitPrice    float64   `json:"billed_unit_price"`
	OrderedUnitPrice   float64   `json:"ordered_unit_price"`
	PriceDifferencePct float64   `json:"price_difference_pct"`
	MatchType          MatchType `json:"match_type"`
}

// InvoiceDetails summarises the figures a three-way match was decided on.
type InvoiceDetails struct {
	InvoiceTotal   float64 `json:"invoice_total"`
	POTotal        float64 `json:"po_total"`
	ItemsChecked   int     `json:"items_checked"`
	HasPackingSlip bool    `json:"has_packing_slip"`
}

// InvoiceMatch is the outcome of reconciling an invoice against an order
// and, optionally, a receipt.
type InvoiceMatch struct {
	Status           Verdict         `json:"match_status"`
	POFound          bool            `json:"po_found"`
	PONumber         string          `json:"po_number,omitempty"`
	VendorMatch      bool            `json:"vendor_match"`
	Discrepancies    []string        `json:"discrepancies"`
	Warnings         []string        `json:"warnings"`
	Summary          string          `json:"summary"`
	MatchedItems     []BilledItem    `json:"matched_items"`
	UnmatchedItems   []InvoiceLine   `json:"unmatched_items"`
	HasDiscrepancies bool            `json:"has_discrepancies"`
	Details          *InvoiceDetails `json:"details,omitempty"`
}
