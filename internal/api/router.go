package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/verifyap/threeway/internal/orders"
	"github.com/verifyap/threeway/internal/reconciliation"
)

// NewRouter creates the Chi router with all API routes mounted.
// history may be nil, in which case the load history route is not served.
func NewRouter(
	recon *reconciliation.Service,
	index *orders.Index,
	loader Reloader,
	history LoadHistory,
	logger *slog.Logger,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handlers{
		recon:   recon,
		index:   index,
		loader:  loader,
		history: history,
		logger:  logger,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/healthz", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		// Reconciliation.
		r.Post("/receipts/match", h.MatchReceipt)
		r.Post("/invoices/match", h.MatchInvoice)

		// Orders.
		r.Get("/orders/stats", h.GetStats)
		r.Post("/orders/reload", h.ReloadOrders)
		if history != nil {
			r.Get("/orders/loads", h.ListLoads)
		}
		r.Get("/orders/{number}", h.GetOrder)
		r.Get("/vendors/{name}/orders", h.ListVendorOrders)
	})

	return r
}
