package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finitefield.org/venue-admin/internal/admin/tables"
)

// TableHandlers exposes the floor plan.
type TableHandlers struct {
	tables tables.Service
}

// NewTableHandlers constructs table handlers.
func NewTableHandlers(svc tables.Service) *TableHandlers {
	return &TableHandlers{tables: svc}
}

// Routes wires the /tables endpoints onto the provided router.
func (h *TableHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{tableID}", h.get)
	r.Delete("/{tableID}", h.delete)
	r.Patch("/{tableID}/status", h.updateStatus)
	r.Post("/{tableID}/charges", h.addCharge)
}

func (h *TableHandlers) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.tables.List(r.Context(), tables.Query{Status: tables.Status(r.URL.Query().Get("status"))})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, result)
}

func (h *TableHandlers) get(w http.ResponseWriter, r *http.Request) {
	view, err := h.tables.Get(r.Context(), chi.URLParam(r, "tableID"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

func (h *TableHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req tables.CreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Number = cleanText(req.Number)
	req.Staff = cleanText(req.Staff)
	view, err := h.tables.Create(r.Context(), req)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeCreated(w, view)
}

func (h *TableHandlers) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req tables.StatusUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Staff = cleanText(req.Staff)
	result, err := h.tables.UpdateStatus(r.Context(), chi.URLParam(r, "tableID"), req)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, result)
}

type chargeRequest struct {
	Amount int64 `json:"amount"`
}

func (h *TableHandlers) addCharge(w http.ResponseWriter, r *http.Request) {
	var req chargeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := h.tables.AddCharge(r.Context(), chi.URLParam(r, "tableID"), req.Amount)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

func (h *TableHandlers) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tables.Delete(r.Context(), chi.URLParam(r, "tableID")); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
