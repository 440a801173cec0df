package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finitefield.org/venue-admin/internal/admin/staff"
)

// StaffHandlers exposes the roster.
type StaffHandlers struct {
	staff staff.Service
}

// NewStaffHandlers constructs staff handlers.
func NewStaffHandlers(svc staff.Service) *StaffHandlers {
	return &StaffHandlers{staff: svc}
}

// Routes wires the /staff endpoints onto the provided router.
func (h *StaffHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{staffID}", h.get)
	r.Delete("/{staffID}", h.delete)
	r.Patch("/{staffID}/status", h.updateStatus)
	r.Post("/{staffID}/activity", h.recordActivity)
}

func (h *StaffHandlers) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.staff.List(r.Context(), staff.Query{
		Status:   staff.Status(q.Get("status")),
		Position: staff.Position(q.Get("position")),
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, result)
}

func (h *StaffHandlers) get(w http.ResponseWriter, r *http.Request) {
	view, err := h.staff.Get(r.Context(), chi.URLParam(r, "staffID"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

func (h *StaffHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req staff.CreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Name = cleanText(req.Name)
	view, err := h.staff.Create(r.Context(), req)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeCreated(w, view)
}

type staffStatusRequest struct {
	Status staff.Status `json:"status"`
}

func (h *StaffHandlers) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req staffStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := h.staff.UpdateStatus(r.Context(), chi.URLParam(r, "staffID"), req.Status)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

func (h *StaffHandlers) recordActivity(w http.ResponseWriter, r *http.Request) {
	var req staff.ActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := h.staff.RecordActivity(r.Context(), chi.URLParam(r, "staffID"), req)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

func (h *StaffHandlers) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.staff.Delete(r.Context(), chi.URLParam(r, "staffID")); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
