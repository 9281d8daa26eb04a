package orders

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verifyap/threeway/internal/domain"
)

func sampleFeed() []domain.FeedRow {
	return []domain.FeedRow{
		{OrderNumber: "PO12345", VendorName: "McKesson Medical Supply", VendorID: "V-100", OrderDate: "2024-01-10",
			ItemID: "GLV-001", Description: "Nitrile Exam Gloves", QuantityOrdered: 10, UnitPrice: 5, LineTotal: 50},
		{OrderNumber: "PO12345", VendorName: "McKesson Medical Supply", VendorID: "V-100", OrderDate: "2024-01-10",
			ItemID: "GZE-002", Description: "Sterile Gauze Pads", QuantityOrdered: 20, UnitPrice: 1, LineTotal: 20},
		{OrderNumber: "PO20001", VendorName: "Cardinal Health", Status: "Partially Received",
			ItemID: "SYR-010", Description: "Syringes 10ml", QuantityOrdered: 100, UnitPrice: 0.25, LineTotal: 25},
		{OrderNumber: "PO20002", VendorName: "mckesson medical supply",
			ItemID: "MSK-004", Description: "Surgical Masks", QuantityOrdered: 50, UnitPrice: 0.5, LineTotal: 25},
	}
}

func loadedIndex(t *testing.T) *Index {
	t.Helper()
	idx := NewIndex()
	_, err := idx.Load(sampleFeed())
	require.NoError(t, err)
	return idx
}

func TestIndex_LoadGroupsRows(t *testing.T) {
	idx := NewIndex()
	st, err := idx.Load(sampleFeed())
	require.NoError(t, err)

	assert.Equal(t, 3, st.TotalOrders)
	assert.Equal(t, 4, st.TotalLines)
	assert.InDelta(t, 120.0, st.TotalValue, 1e-9)
	assert.Equal(t, 2, st.UniqueVendors)
	assert.NotEmpty(t, st.SnapshotID)

	po, ok := idx.Get("PO12345")
	require.True(t, ok)
	assert.Equal(t, "PO12345", po.Number)
	assert.Equal(t, "McKesson Medical Supply", po.VendorName)
	assert.Equal(t, "V-100", po.VendorID)
	assert.Equal(t, domain.DefaultOrderStatus, po.Status)
	assert.InDelta(t, 70.0, po.TotalAmount, 1e-9)
	require.Len(t, po.Lines, 2)
	assert.Equal(t, "GLV-001", po.Lines[0].ItemID)
	assert.Equal(t, "GZE-002", po.Lines[1].ItemID)

	other, ok := idx.Get("PO20001")
	require.True(t, ok)
	assert.Equal(t, "Partially Received", other.Status)
}

func TestIndex_GetIgnoresFormatting(t *testing.T) {
	idx := loadedIndex(t)

	for _, in := range []string{"PO12345", "12345", "po-12345", "PO #12345", " #12345 ", "PO 12345"} {
		t.Run(in, func(t *testing.T) {
			po, ok := idx.Get(in)
			require.True(t, ok)
			assert.Equal(t, "PO12345", po.Number)
		})
	}
}

func TestIndex_GetMisses(t *testing.T) {
	idx := loadedIndex(t)

	for _, in := range []string{"", "PO", "#", "99999", "PO-99999"} {
		po, ok := idx.Get(in)
		assert.False(t, ok, in)
		assert.Nil(t, po)
	}
}

func TestIndex_EmptyIndexMisses(t *testing.T) {
	idx := NewIndex()
	_, ok := idx.Get("PO12345")
	assert.False(t, ok)
	assert.Empty(t, idx.OrdersForVendor("McKesson Medical Supply"))
	assert.Zero(t, idx.Statistics().TotalOrders)
}

func TestIndex_FailedLoadKeepsSnapshot(t *testing.T) {
	idx := loadedIndex(t)
	before := idx.Statistics()

	bad := sampleFeed()
	bad = append(bad, domain.FeedRow{Line: 6, OrderNumber: "PO30000", ItemID: "X", QuantityOrdered: 1})

	_, err := idx.Load(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidFeed)

	var fe *domain.FeedError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 6, fe.Line)
	assert.Equal(t, "Vendor Name", fe.Field)

	assert.Equal(t, before.SnapshotID, idx.Statistics().SnapshotID)
	_, ok := idx.Get("PO30000")
	assert.False(t, ok)
	_, ok = idx.Get("PO12345")
	assert.True(t, ok)
}

func TestIndex_LoadRejectsBadRows(t *testing.T) {
	base := domain.FeedRow{OrderNumber: "PO1", VendorName: "Acme", Description: "Widget", QuantityOrdered: 1, UnitPrice: 1, LineTotal: 1}

	tests := []struct {
		name  string
		edit  func(r *domain.FeedRow)
		field string
	}{
		{"missing number", func(r *domain.FeedRow) { r.OrderNumber = "  " }, "PO Number"},
		{"number with no digits", func(r *domain.FeedRow) { r.OrderNumber = "PO-" }, "PO Number"},
		{"missing vendor", func(r *domain.FeedRow) { r.VendorName = "" }, "Vendor Name"},
		{"negative quantity", func(r *domain.FeedRow) { r.QuantityOrdered = -1 }, "Quantity Ordered"},
		{"negative price", func(r *domain.FeedRow) { r.UnitPrice = -0.01 }, "Unit Price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := base
			tt.edit(&row)
			_, err := NewIndex().Load([]domain.FeedRow{row})

			var fe *domain.FeedError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, 1, fe.Line)
		})
	}
}

func TestIndex_LoadRejectsVendorConflict(t *testing.T) {
	idx := loadedIndex(t)
	before := idx.Statistics().SnapshotID

	_, err := idx.Load([]domain.FeedRow{
		{Line: 2, OrderNumber: "PO100", VendorName: "Acme", Description: "Widget", QuantityOrdered: 1, UnitPrice: 1, LineTotal: 1},
		{Line: 3, OrderNumber: "100", VendorName: "Globex", Description: "Bolt", QuantityOrdered: 2, UnitPrice: 1, LineTotal: 2},
	})
	require.ErrorIs(t, err, domain.ErrInvalidFeed)

	var fe *domain.FeedError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 3, fe.Line)
	assert.Equal(t, "Vendor Name", fe.Field)
	assert.Contains(t, fe.Reason, "Globex")
	assert.Contains(t, fe.Reason, "PO100")

	assert.Equal(t, before, idx.Statistics().SnapshotID)
	_, ok := idx.Get("100")
	assert.False(t, ok)
}

func TestIndex_LoadVendorCaseDiffersSameOrder(t *testing.T) {
	st, err := NewIndex().Load([]domain.FeedRow{
		{OrderNumber: "PO100", VendorName: "Acme Corp", Description: "Widget", QuantityOrdered: 1, UnitPrice: 1, LineTotal: 1},
		{OrderNumber: "po-100", VendorName: "ACME CORP", Description: "Bolt", QuantityOrdered: 2, UnitPrice: 1, LineTotal: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalOrders)
	assert.Equal(t, 2, st.TotalLines)
}

func TestIndex_LoadRejectsEmptyFeed(t *testing.T) {
	_, err := NewIndex().Load(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidFeed)
}

func TestIndex_OrdersForVendor(t *testing.T) {
	idx := loadedIndex(t)

	got := idx.OrdersForVendor("MCKESSON MEDICAL SUPPLY")
	require.Len(t, got, 2)
	assert.Equal(t, "PO12345", got[0].Number)
	assert.Equal(t, "PO20002", got[1].Number)

	assert.Len(t, idx.OrdersForVendor("Cardinal Health"), 1)
	assert.NotNil(t, idx.OrdersForVendor("Unknown Vendor"))
	assert.Empty(t, idx.OrdersForVendor("Unknown Vendor"))
}

func TestIndex_ReloadReplacesSnapshot(t *testing.T) {
	idx := loadedIndex(t)
	first := idx.Statistics().SnapshotID

	_, err := idx.Load([]domain.FeedRow{
		{OrderNumber: "PO77", VendorName: "Owens & Minor", Description: "Bandages", QuantityOrdered: 5, UnitPrice: 2, LineTotal: 10},
	})
	require.NoError(t, err)

	assert.NotEqual(t, first, idx.Statistics().SnapshotID)
	_, ok := idx.Get("PO12345")
	assert.False(t, ok)
	po, ok := idx.Get("77")
	require.True(t, ok)
	assert.InDelta(t, 10.0, po.TotalAmount, 1e-9)
}

func TestIndex_ConcurrentReadsDuringReload(t *testing.T) {
	idx := loadedIndex(t)

	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				po, ok := idx.Get("12345")
				if ok {
					// A reader sees one whole snapshot or the other.
					assert.Len(t, po.Lines, 2)
				}
				_ = idx.Statistics()
			}
		}()
	}

	for i := 0; i < 20; i++ {
		rows := sampleFeed()
		rows[2].OrderNumber = fmt.Sprintf("PO%d", 40000+i)
		_, err := idx.Load(rows)
		require.NoError(t, err)
	}
	wg.Wait()
}
