package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finitefield.org/venue-admin/internal/admin/shifts"
)

// ShiftHandlers exposes the shift schedule and shift requests.
type ShiftHandlers struct {
	shifts shifts.Service
}

// NewShiftHandlers constructs shift handlers.
func NewShiftHandlers(svc shifts.Service) *ShiftHandlers {
	return &ShiftHandlers{shifts: svc}
}

// ShiftRoutes wires the /shifts endpoints.
func (h *ShiftHandlers) ShiftRoutes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/week", h.week)
	r.Post("/{shiftID}/confirm", h.confirm)
	r.Patch("/{shiftID}/status", h.updateStatus)
}

// RequestRoutes wires the /shift-requests endpoints.
func (h *ShiftHandlers) RequestRoutes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.requests)
	r.Post("/", h.submit)
	r.Post("/{requestID}/approve", h.approve)
	r.Post("/{requestID}/reject", h.reject)
}

func (h *ShiftHandlers) week(w http.ResponseWriter, r *http.Request) {
	week, err := h.shifts.Week(r.Context(), shifts.WeekQuery{Start: r.URL.Query().Get("start")})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, week)
}

func (h *ShiftHandlers) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.shifts.ListShifts(r.Context(), shifts.Query{
		From:    q.Get("from"),
		To:      q.Get("to"),
		StaffID: q.Get("staff"),
		Status:  shifts.Status(q.Get("status")),
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, map[string]any{"shifts": list})
}

func (h *ShiftHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req shifts.CreateShiftRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.StaffName = cleanText(req.StaffName)
	req.Position = cleanText(req.Position)
	req.Note = cleanText(req.Note)
	view, err := h.shifts.CreateShift(r.Context(), req)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeCreated(w, view)
}

func (h *ShiftHandlers) confirm(w http.ResponseWriter, r *http.Request) {
	view, err := h.shifts.Confirm(r.Context(), chi.URLParam(r, "shiftID"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

type shiftStatusRequest struct {
	Status shifts.Status `json:"status"`
}

func (h *ShiftHandlers) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req shiftStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := h.shifts.UpdateStatus(r.Context(), chi.URLParam(r, "shiftID"), req.Status)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

func (h *ShiftHandlers) requests(w http.ResponseWriter, r *http.Request) {
	list, err := h.shifts.Requests(r.Context(), shifts.RequestQuery{Status: shifts.RequestStatus(r.URL.Query().Get("status"))})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, map[string]any{"requests": list})
}

func (h *ShiftHandlers) submit(w http.ResponseWriter, r *http.Request) {
	var req shifts.SubmitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.StaffName = cleanText(req.StaffName)
	req.Note = cleanText(req.Note)
	view, err := h.shifts.SubmitRequest(r.Context(), req)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeCreated(w, view)
}

func (h *ShiftHandlers) approve(w http.ResponseWriter, r *http.Request) {
	view, err := h.shifts.Approve(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}

func (h *ShiftHandlers) reject(w http.ResponseWriter, r *http.Request) {
	view, err := h.shifts.Reject(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, view)
}
