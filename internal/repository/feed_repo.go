package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/verifyap/threeway/internal/domain"
)

// FeedRepo stores the raw purchase-order feed as rows, one per order line.
type FeedRepo struct {
	db *sql.DB
}

func NewFeedRepo(db *sql.DB) *FeedRepo {
	return &FeedRepo{db: db}
}

// ReplaceAll swaps the stored feed for rows in a single transaction.
func (r *FeedRepo) ReplaceAll(ctx context.Context, rows []domain.FeedRow) (int, error) {
	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	if _, err := sqlTx.ExecContext(ctx, "DELETE FROM purchase_order_lines"); err != nil {
		return 0, fmt.Errorf("clear feed: %w", err)
	}

	stmt, err := sqlTx.PrepareContext(ctx,
		`INSERT INTO purchase_order_lines
		(source_line, po_number, vendor_name, vendor_id, po_date, expected_delivery,
		 status, item_id, description, quantity_ordered, unit_price, line_total)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		row := &rows[i]
		line := row.Line
		if line == 0 {
			line = i + 1
		}
		if _, err := stmt.ExecContext(ctx,
			line, row.OrderNumber, row.VendorName, row.VendorID, row.OrderDate,
			row.ExpectedDelivery, row.Status, row.ItemID, row.Description,
			row.QuantityOrdered, row.UnitPrice, row.LineTotal,
		); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(rows), nil
}

// ListRows returns the stored feed in insertion order.
func (r *FeedRepo) ListRows(ctx context.Context) ([]domain.FeedRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT source_line, po_number, vendor_name, vendor_id, po_date, expected_delivery,
		        status, item_id, description, quantity_ordered, unit_price, line_total
		 FROM purchase_order_lines ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []domain.FeedRow
	for rows.Next() {
		var fr domain.FeedRow
		if err := rows.Scan(
			&fr.Line, &fr.OrderNumber, &fr.VendorName, &fr.VendorID, &fr.OrderDate,
			&fr.ExpectedDelivery, &fr.Status, &fr.ItemID, &fr.Description,
			&fr.QuantityOrdered, &fr.UnitPrice, &fr.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}

func (r *FeedRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM purchase_order_lines").Scan(&count)
	return count, err
}
