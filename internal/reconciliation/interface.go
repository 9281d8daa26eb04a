package reconciliation

import "github.com/verifyap/threeway/internal/domain"

// OrderLookup resolves an order number as written on a document.
// The reconciliation layer depends on this interface, not on the index.
//
//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go OrderLookup
type OrderLookup interface {
	Get(number string) (*domain.PurchaseOrder, bool)
}
