package reconciliation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verifyap/threeway/internal/domain"
	"github.com/verifyap/threeway/internal/orders"
)

const mckesson = "McKesson Medical Supply"

func scenarioIndex(t *testing.T) *orders.Index {
	t.Helper()
	idx := orders.NewIndex()
	_, err := idx.Load([]domain.FeedRow{
		{OrderNumber: "PO12345", VendorName: mckesson, ItemID: "GLV-001", Description: "Gloves",
			QuantityOrdered: 10, UnitPrice: 5, LineTotal: 50},
		{OrderNumber: "PO12345", VendorName: mckesson, ItemID: "GZE-002", Description: "Gauze",
			QuantityOrdered: 20, UnitPrice: 1, LineTotal: 20},
	})
	require.NoError(t, err)
	return idx
}

func scenarioOrder(t *testing.T) *domain.PurchaseOrder {
	t.Helper()
	po, ok := scenarioIndex(t).Get("PO12345")
	require.True(t, ok)
	return po
}
