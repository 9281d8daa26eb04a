package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/verifyap/threeway/internal/domain"
	"github.com/verifyap/threeway/internal/ingestion"
	"github.com/verifyap/threeway/internal/orders"
	"github.com/verifyap/threeway/internal/reconciliation"
	"github.com/verifyap/threeway/internal/repository"
)

const maxBodyBytes = 1 << 20

// Reloader rebuilds the order index from its source.
type Reloader interface {
	Reload(ctx context.Context) (*ingestion.LoadResult, error)
}

// LoadHistory lists past feed loads.
type LoadHistory interface {
	List(ctx context.Context, limit int) ([]domain.FeedLoad, error)
}

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	recon   *reconciliation.Service
	index   *orders.Index
	loader  Reloader
	history LoadHistory
	logger  *slog.Logger
}

// InvoiceMatchRequest is the body of the three-way match endpoint.
type InvoiceMatchRequest struct {
	Invoice domain.Invoice  `json:"invoice"`
	Receipt *domain.Receipt `json:"receipt,omitempty"`
}

// --- helpers ---

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("[api] encode error", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeMatchError maps reconciliation errors to status codes.
func (h *Handlers) writeMatchError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.logger.Error("[api] match failed", "error", err)
	h.writeError(w, http.StatusInternalServerError, "internal error")
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// --- reconciliation ---

func (h *Handlers) MatchReceipt(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	var receipt domain.Receipt
	if err := decodeValidated(receiptSchema, body, &receipt); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.recon.MatchReceipt(r.Context(), &receipt)
	if err != nil {
		h.writeMatchError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) MatchInvoice(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	var req InvoiceMatchRequest
	if err := decodeValidated(invoiceRequestSchema, body, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.recon.MatchInvoice(r.Context(), &req.Invoice, req.Receipt)
	if err != nil {
		h.writeMatchError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// --- orders ---

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	po, ok := h.index.Get(number)
	if !ok {
		h.writeError(w, http.StatusNotFound, "PO "+number+" not found")
		return
	}
	h.writeJSON(w, http.StatusOK, po)
}

func (h *Handlers) ListVendorOrders(w http.ResponseWriter, r *http.Request) {
	vendor := chi.URLParam(r, "name")
	pos := h.index.OrdersForVendor(vendor)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"vendor": vendor,
		"count":  len(pos),
		"orders": pos,
	})
}

func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.index.Statistics())
}

func (h *Handlers) ReloadOrders(w http.ResponseWriter, r *http.Request) {
	res, err := h.loader.Reload(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "reload failed, previous orders still served: "+err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) ListLoads(w http.ResponseWriter, r *http.Request) {
	limit := repository.DefaultLoadLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = v
	}
	loads, err := h.history.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("[api] list loads failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if loads == nil {
		loads = []domain.FeedLoad{}
	}
	h.writeJSON(w, http.StatusOK, loads)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	st := h.index.Statistics()
	status := http.StatusOK
	state := "ok"
	if st.TotalOrders == 0 {
		status = http.StatusServiceUnavailable
		state = "no orders loaded"
	}
	h.writeJSON(w, status, map[string]any{
		"status":      state,
		"snapshot_id": st.SnapshotID,
		"total_pos":   st.TotalOrders,
	})
}
