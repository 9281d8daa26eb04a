// Package orders holds the purchase-order index the matchers resolve
// documents against. The index is read-mostly: every Load builds a complete
// snapshot and publishes it with a single atomic swap, so readers never see a
// partially loaded feed and never take a lock.
package orders

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/verifyap/threeway/internal/domain"
	"github.com/verifyap/threeway/internal/money"
)

// Statistics summarises a loaded snapshot.
type Statistics struct {
	SnapshotID    string    `json:"snapshot_id,omitempty"`
	LoadedAt      time.Time `json:"loaded_at,omitempty"`
	TotalOrders   int       `json:"total_pos"`
	TotalLines    int       `json:"total_line_items"`
	TotalValue    float64   `json:"total_value"`
	UniqueVendors int       `json:"unique_vendors"`
}

type snapshot struct {
	id       string
	loadedAt time.Time
	byKey    map[string]*domain.PurchaseOrder
	byVendor map[string][]string
	keys     []string
}

// Index maps canonical order numbers to purchase orders.
type Index struct {
	current atomic.Pointer[snapshot]
}

// NewIndex returns an empty index. Every lookup misses until Load succeeds.
func NewIndex() *Index {
	idx := &Index{}
	idx.current.Store(&snapshot{
		byKey:    map[string]*domain.PurchaseOrder{},
		byVendor: map[string][]string{},
	})
	return idx
}

// Load groups feed rows into purchase orders and replaces the index.
// Rows sharing a canonical order number form one order; header fields come
// from the first row seen and lines keep feed order. A row without an order
// number or vendor name, with a negative quantity or price, or naming a
// different vendor than earlier rows of its order, fails the whole load and the previous snapshot stays published. An empty feed is
// rejected the same way.
func (x *Index) Load(rows []domain.FeedRow) (Statistics, error) {
	snap, err := build(rows)
	if err != nil {
		return Statistics{}, err
	}
	x.current.Store(snap)
	return snap.statistics(), nil
}

func build(rows []domain.FeedRow) (*snapshot, error) {
	if len(rows) == 0 {
		return nil, &domain.FeedError{Field: "rows", Reason: "feed contains no line items"}
	}
	snap := &snapshot{
		id:       uuid.NewString(),
		loadedAt: time.Now().UTC(),
		byKey:    make(map[string]*domain.PurchaseOrder),
		byVendor: make(map[string][]string),
	}

	for i, row := range rows {
		line := row.Line
		if line == 0 {
			line = i + 1
		}
		number := strings.TrimSpace(row.OrderNumber)
		vendor := strings.TrimSpace(row.VendorName)

		if number == "" {
			return nil, &domain.FeedError{Line: line, Field: "PO Number", Reason: "is required"}
		}
		key := Normalize(number)
		if key == "" {
			return nil, &domain.FeedError{Line: line, Field: "PO Number", Reason: fmt.Sprintf("%q has no identifying characters", number)}
		}
		if vendor == "" {
			return nil, &domain.FeedError{Line: line, Field: "Vendor Name", Reason: "is required"}
		}
		if !money.Valid(row.QuantityOrdered) {
			return nil, &domain.FeedError{Line: line, Field: "Quantity Ordered", Reason: "must be a non-negative number"}
		}
		if !money.Valid(row.UnitPrice) {
			return nil, &domain.FeedError{Line: line, Field: "Unit Price", Reason: "must be a non-negative number"}
		}
		if math.IsNaN(row.LineTotal) || math.IsInf(row.LineTotal, 0) {
			return nil, &domain.FeedError{Line: line, Field: "Line Total", Reason: "must be a number"}
		}

		po, ok := snap.byKey[key]
		if !ok {
			status := strings.TrimSpace(row.Status)
			if status == "" {
				status = domain.DefaultOrderStatus
			}
			po = &domain.PurchaseOrder{
				Number:           number,
				VendorName:       vendor,
				VendorID:         strings.TrimSpace(row.VendorID),
				OrderDate:        strings.TrimSpace(row.OrderDate),
				ExpectedDelivery: strings.TrimSpace(row.ExpectedDelivery),
				Status:           status,
			}
			snap.byKey[key] = po
			snap.keys = append(snap.keys, key)
		} else if !strings.EqualFold(po.VendorName, vendor) {
			return nil, &domain.FeedError{
				Line:   line,
				Field:  "Vendor Name",
				Reason: fmt.Sprintf("%q conflicts with %q for order %s", vendor, po.VendorName, po.Number),
			}
		}

		po.Lines = append(po.Lines, domain.OrderLine{
			ItemID:          strings.TrimSpace(row.ItemID),
			Description:     strings.TrimSpace(row.Description),
			QuantityOrdered: row.QuantityOrdered,
			UnitPrice:       row.UnitPrice,
			Total:           row.LineTotal,
		})
	}

	for _, key := range snap.keys {
		po := snap.byKey[key]
		totals := make([]float64, len(po.Lines))
		for i, l := range po.Lines {
			totals[i] = l.Total
		}
		po.TotalAmount = money.Sum(totals...)

		vendorKey := strings.ToLower(po.VendorName)
		snap.byVendor[vendorKey] = append(snap.byVendor[vendorKey], key)
	}

	return snap, nil
}

// Get resolves an order number as written on a document. It tries the
// canonical key, then the canonical key with the ERP prefix, then the
// trimmed input verbatim. A miss returns (nil, false).
//
// The returned order is shared with the index and must not be modified.
func (x *Index) Get(number string) (*domain.PurchaseOrder, bool) {
	snap := x.current.Load()
	key := Normalize(number)
	if key == "" {
		return nil, false
	}
	for _, candidate := range []string{key, CanonicalPrefix + key, strings.TrimSpace(number)} {
		if po, ok := snap.byKey[candidate]; ok {
			return po, true
		}
	}
	return nil, false
}

// OrdersForVendor returns the orders whose vendor name equals name, ignoring
// case. Unknown vendors yield an empty slice.
func (x *Index) OrdersForVendor(name string) []*domain.PurchaseOrder {
	snap := x.current.Load()
	keys := snap.byVendor[strings.ToLower(strings.TrimSpace(name))]
	out := make([]*domain.PurchaseOrder, 0, len(keys))
	for _, k := range keys {
		out = append(out, snap.byKey[k])
	}
	return out
}

// Statistics recomputes the summary of the published snapshot.
func (x *Index) Statistics() Statistics {
	return x.current.Load().statistics()
}

func (s *snapshot) statistics() Statistics {
	st := Statistics{
		SnapshotID:    s.id,
		LoadedAt:      s.loadedAt,
		TotalOrders:   len(s.byKey),
		UniqueVendors: len(s.byVendor),
	}
	totals := make([]float64, 0, len(s.byKey))
	for _, po := range s.byKey {
		st.TotalLines += len(po.Lines)
		totals = append(totals, po.TotalAmount)
	}
	st.TotalValue = money.Sum(totals...)
	return st
}
