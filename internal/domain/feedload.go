package domain

import "time"

// FeedSource names where a purchase-order feed is read from.
type FeedSource string

const (
	SourceCSV    FeedSource = "csv"
	SourceXLSX   FeedSource = "xlsx"
	SourceSQLite FeedSource = "sqlite"
)

// FeedLoad records one successful load of the order feed.
type FeedLoad struct {
	ID         string     `json:"id"`
	Source     FeedSource `json:"source"`
	Location   string     `json:"location"`
	Hash       string     `json:"hash"`
	RowCount   int        `json:"row_count"`
	OrderCount int        `json:"order_count"`
	LoadedAt   time.Time  `json:"loaded_at"`
}
