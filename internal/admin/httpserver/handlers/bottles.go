package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"finitefield.org/venue-admin/internal/admin/bottles"
)

// BottleHandlers exposes the bottle inventory.
type BottleHandlers struct {
	bottles bottles.Service
}

// NewBottleHandlers constructs bottle handlers.
func NewBottleHandlers(svc bottles.Service) *BottleHandlers {
	return &BottleHandlers{bottles: svc}
}

// Routes wires the /bottles endpoints onto the provided router.
func (h *BottleHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/analytics", h.analytics)
	r.Get("/{bottleID}", h.get)
	r.Delete("/{bottleID}", h.delete)
	r.Post("/{bottleID}/stock", h.adjustStock)
}

func (h *BottleHandlers) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lowOnly, _ := strconv.ParseBool(q.Get("lowStock"))
	result, err := h.bottles.List(r.Context(), bottles.Query{
		Category:     bottles.Category(q.Get("category")),
		LowStockOnly: lowOnly,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, result)
}

func (h *BottleHandlers) get(w http.ResponseWriter, r *http.Request) {
	view, err := h.bottles.Get(r.Context(), chi.URLParam(r, "bottleID"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

func (h *BottleHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req bottles.CreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Name = cleanText(req.Name)
	req.Supplier = cleanText(req.Supplier)
	req.Description = cleanText(req.Description)
	view, err := h.bottles.Create(r.Context(), req)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeCreated(w, view)
}

type stockRequest struct {
	Delta int `json:"delta"`
}

func (h *BottleHandlers) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := h.bottles.AdjustStock(r.Context(), chi.URLParam(r, "bottleID"), req.Delta)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

func (h *BottleHandlers) analytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.bottles.Analytics(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, result)
}

func (h *BottleHandlers) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.bottles.Delete(r.Context(), chi.URLParam(r, "bottleID")); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
