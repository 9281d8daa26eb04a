package domain

// ReceivedItem is one line of a packing slip as extracted upstream.
type ReceivedItem struct {
	Description         string  `json:"description"`
	QuantityReceived    float64 `json:"quantity_received"`
	HasHandwrittenNotes bool    `json:"has_handwritten_notes"`
	HandwrittenNotes    string  `json:"handwritten_notes,omitempty"`
}

// Receipt is a packing slip / goods-receipt record: what physically arrived.
type Receipt struct {
	PONumber   string         `json:"po_number"`
	VendorName string         `json:"vendor_name"`
	Items      []ReceivedItem `json:"line_items"`
}

// InvoiceLine is one billed line item.
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// Invoice is a billing record: what the vendor is charging for.
type Invoice struct {
	InvoiceNumber  string        `json:"invoice_number"`
	PONumber       string        `json:"po_number,omitempty"`
	VendorName     string        `json:"vendor"`
	InvoiceDate    string        `json:"invoice_date,omitempty"`
	Lines          []InvoiceLine `json:"line_items"`
	TotalAmount    float64       `json:"total_amount"`
	TaxAmount      *float64      `json:"tax_amount,omitempty"`
	ShippingAmount *float64      `json:"shipping_amount,omitempty"`
}
