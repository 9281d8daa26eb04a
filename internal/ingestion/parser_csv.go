package ingestion

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/verifyap/threeway/internal/domain"
)

// ParseCSV parses a purchase-order feed exported as comma-separated values.
//
// Expected header (order and case do not matter, extra columns are ignored):
//
//	PO Number,Vendor Name,Vendor ID,PO Date,Expected Delivery,Status,Item ID,Item Description,Quantity Ordered,Unit Price,Line Total
func ParseCSV(data []byte) ([]domain.FeedRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &domain.FeedError{Field: "header", Reason: "feed is empty"}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records [][]string
	lineNum := 1
	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", lineNum, domain.ErrInvalidFeed, err)
		}
		records = append(records, row)
	}

	return rowsFromRecords(header, records, 2)
}
