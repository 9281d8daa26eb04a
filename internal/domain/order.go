package domain

// FeedRow is one line item of the purchase-order feed. The feed carries one
// row per order line; rows sharing an order number belong to the same order.
type FeedRow struct {
	Line             int     `json:"-"`
	OrderNumber      string  `json:"po_number"`
	VendorName       string  `json:"vendor_name"`
	VendorID         string  `json:"vendor_id"`
	OrderDate        string  `json:"po_date"`
	ExpectedDelivery string  `json:"expected_delivery"`
	Status           string  `json:"status"`
	ItemID           string  `json:"item_id"`
	Description      string  `json:"item_description"`
	QuantityOrdered  float64 `json:"quantity_ordered"`
	UnitPrice        float64 `json:"unit_price"`
	LineTotal        float64 `json:"line_total"`
}

// DefaultOrderStatus is used when a feed row leaves the status blank.
const DefaultOrderStatus = "Open"

// OrderLine is a single line item of a purchase order. Total is carried as
// exported and is never re-derived from quantity and price.
type OrderLine struct {
	ItemID          string  `json:"item_id"`
	Description     string  `json:"description"`
	QuantityOrdered float64 `json:"quantity_ordered"`
	UnitPrice       float64 `json:"unit_price"`
	Total           float64 `json:"total"`
}

// PurchaseOrder is the authoritative record of what was ordered from a
// vendor. Orders are built once per feed load and never modified afterwards.
type PurchaseOrder struct {
	Number           string      `json:"po_number"`
	VendorName       string      `json:"vendor_name"`
	VendorID         string      `json:"vendor_id"`
	OrderDate        string      `json:"po_date"`
	ExpectedDelivery string      `json:"expected_delivery_date"`
	Status           string      `json:"status"`
	TotalAmount      float64     `json:"total_amount"`
	Lines            []OrderLine `json:"line_items"`
}
