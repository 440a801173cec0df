package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finitefield.org/venue-admin/internal/admin/payroll"
)

// PayrollHandlers exposes payroll reports and records.
type PayrollHandlers struct {
	payroll payroll.Service
}

// NewPayrollHandlers constructs payroll handlers.
func NewPayrollHandlers(svc payroll.Service) *PayrollHandlers {
	return &PayrollHandlers{payroll: svc}
}

// Routes wires the /payroll endpoints onto the provided router.
func (h *PayrollHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.report)
	r.Post("/", h.save)
	r.Get("/{recordID}", h.get)
	r.Delete("/{recordID}", h.delete)
}

func (h *PayrollHandlers) report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.payroll.Report(r.Context(), payroll.Query{
		Period:   payroll.Period(q.Get("period")),
		Date:     q.Get("date"),
		Position: payroll.Position(q.Get("position")),
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, report)
}

func (h *PayrollHandlers) get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.payroll.Get(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, entry)
}

func (h *PayrollHandlers) save(w http.ResponseWriter, r *http.Request) {
	var input payroll.RecordInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.StaffName = cleanText(input.StaffName)
	entry, err := h.payroll.Save(r.Context(), input)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, entry)
}

func (h *PayrollHandlers) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.payroll.Delete(r.Context(), chi.URLParam(r, "recordID")); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
