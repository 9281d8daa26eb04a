package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens (or creates) a SQLite database at the given path and ensures
// the feed tables exist. Pass ":memory:" for an in-memory database.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Each connection to ":memory:" is its own database.
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS purchase_order_lines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_line INTEGER NOT NULL,
			po_number TEXT NOT NULL,
			vendor_name TEXT NOT NULL,
			vendor_id TEXT NOT NULL DEFAULT '',
			po_date TEXT NOT NULL DEFAULT '',
			expected_delivery TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			item_id TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			quantity_ordered REAL NOT NULL,
			unit_price REAL NOT NULL,
			line_total REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_po_lines_number ON purchase_order_lines(po_number)`,

		`CREATE TABLE IF NOT EXISTS feed_loads (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			location TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			order_count INTEGER NOT NULL,
			loaded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_feed_loads_hash ON feed_loads(content_hash)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}

	return nil
}
