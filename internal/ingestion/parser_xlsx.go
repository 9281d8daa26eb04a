package ingestion

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/verifyap/threeway/internal/domain"
)

// ParseXLSX parses a purchase-order feed from an Excel workbook. The first
// row of the sheet is the header, with the same columns as ParseCSV. An empty
// sheet name selects the first sheet.
func ParseXLSX(data []byte, sheet string) ([]domain.FeedRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w: %w", domain.ErrInvalidFeed, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &domain.FeedError{Field: "sheet", Reason: "workbook has no sheets"}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w: %w", sheet, domain.ErrInvalidFeed, err)
	}
	if len(rows) == 0 {
		return nil, &domain.FeedError{Field: "header", Reason: fmt.Sprintf("sheet %q is empty", sheet)}
	}

	return rowsFromRecords(rows[0], rows[1:], 2)
}
