package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verifyap/threeway/internal/domain"
)

// DetectSource infers the feed source from a file extension.
func DetectSource(path string) (domain.FeedSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return domain.SourceCSV, nil
	case ".xlsx", ".xlsm":
		return domain.SourceXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return domain.SourceSQLite, nil
	default:
		return "", fmt.Errorf("cannot infer feed source from %q", path)
	}
}

// Parse decodes feed content of the given file source.
func Parse(source domain.FeedSource, data []byte, sheet string) ([]domain.FeedRow, error) {
	switch source {
	case domain.SourceCSV:
		return ParseCSV(data)
	case domain.SourceXLSX:
		return ParseXLSX(data, sheet)
	default:
		return nil, fmt.Errorf("unsupported file source: %s", source)
	}
}

// ParseFile reads and parses a CSV or XLSX feed from disk.
func ParseFile(path, sheet string) ([]domain.FeedRow, error) {
	source, err := DetectSource(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	return Parse(source, data, sheet)
}
