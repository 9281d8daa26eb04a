package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/verifyap/threeway/internal/domain"
)

// LoadRepo keeps the history of applied feed loads.
type LoadRepo struct {
	db *sql.DB
}

func NewLoadRepo(db *sql.DB) *LoadRepo {
	return &LoadRepo{db: db}
}

func (r *LoadRepo) Insert(ctx context.Context, l *domain.FeedLoad) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feed_loads
		(id, source, location, content_hash, row_count, order_count, loaded_at)
		VALUES (?,?,?,?,?,?,?)`,
		l.ID, string(l.Source), l.Location, l.Hash, l.RowCount, l.OrderCount,
		l.LoadedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert feed load: %w", err)
	}
	return nil
}

// DefaultLoadLimit is the page size used when no positive limit is given.
const DefaultLoadLimit = 50

// List returns up to limit loads, newest first.
func (r *LoadRepo) List(ctx context.Context, limit int) ([]domain.FeedLoad, error) {
	if limit <= 0 {
		limit = DefaultLoadLimit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source, location, content_hash, row_count, order_count, loaded_at
		 FROM feed_loads ORDER BY loaded_at DESC, rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []domain.FeedLoad
	for rows.Next() {
		var l domain.FeedLoad
		var source, loadedAt string
		if err := rows.Scan(&l.ID, &source, &l.Location, &l.Hash, &l.RowCount, &l.OrderCount, &loadedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		l.Source = domain.FeedSource(source)
		l.LoadedAt, err = time.Parse(time.RFC3339Nano, loadedAt)
		if err != nil {
			return nil, fmt.Errorf("parse loaded_at %q: %w", loadedAt, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
