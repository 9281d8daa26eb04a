package ingestion

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/verifyap/threeway/internal/domain"
)

// Feed column names as exported by the ERP.
const (
	ColOrderNumber      = "PO Number"
	ColVendorName       = "Vendor Name"
	ColVendorID         = "Vendor ID"
	ColOrderDate        = "PO Date"
	ColExpectedDelivery = "Expected Delivery"
	ColStatus           = "Status"
	ColItemID           = "Item ID"
	ColDescription      = "Item Description"
	ColQuantityOrdered  = "Quantity Ordered"
	ColUnitPrice        = "Unit Price"
	ColLineTotal        = "Line Total"
)

// Every other column is optional: absent or blank cells read as "" or 0.
var requiredColumns = []string{
	ColOrderNumber,
	ColVendorName,
}

// columnIndex maps lowercased column names to their position in the header.
type columnIndex map[string]int

func newColumnIndex(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if name == "" {
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.FeedError{Field: "header", Reason: "missing columns " + strings.Join(missing, ", ")}
	}
	return idx, nil
}

func (c columnIndex) text(record []string, col string) string {
	i, ok := c[strings.ToLower(col)]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (c columnIndex) number(record []string, col string, line int) (float64, error) {
	raw := c.text(record, col)
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &domain.FeedError{Line: line, Field: col, Reason: fmt.Sprintf("%q is not a number", raw)}
	}
	return v, nil
}

// rowsFromRecords converts tabular records into feed rows. firstLine is the
// source line number of records[0]. Blank records are skipped.
func rowsFromRecords(header []string, records [][]string, firstLine int) ([]domain.FeedRow, error) {
	cols, err := newColumnIndex(header)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.FeedRow, 0, len(records))
	for i, rec := range records {
		if blank(rec) {
			continue
		}
		line := firstLine + i

		qty, err := cols.number(rec, ColQuantityOrdered, line)
		if err != nil {
			return nil, err
		}
		price, err := cols.number(rec, ColUnitPrice, line)
		if err != nil {
			return nil, err
		}
		total, err := cols.number(rec, ColLineTotal, line)
		if err != nil {
			return nil, err
		}

		rows = append(rows, domain.FeedRow{
			Line:             line,
			OrderNumber:      cols.text(rec, ColOrderNumber),
			VendorName:       cols.text(rec, ColVendorName),
			VendorID:         cols.text(rec, ColVendorID),
			OrderDate:        cols.text(rec, ColOrderDate),
			ExpectedDelivery: cols.text(rec, ColExpectedDelivery),
			Status:           cols.text(rec, ColStatus),
			ItemID:           cols.text(rec, ColItemID),
			Description:      cols.text(rec, ColDescription),
			QuantityOrdered:  qty,
			UnitPrice:        price,
			LineTotal:        total,
		})
	}
	return rows, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
