package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finitefield.org/venue-admin/internal/admin/dashboard"
	"finitefield.org/venue-admin/internal/admin/navigation"
)

// DashboardHandlers exposes the overview and the navigation list.
type DashboardHandlers struct {
	dashboard dashboard.Service
	basePath  string
}

// NewDashboardHandlers constructs dashboard handlers. basePath is the HTML
// admin root used for navigation links.
func NewDashboardHandlers(svc dashboard.Service, basePath string) *DashboardHandlers {
	return &DashboardHandlers{dashboard: svc, basePath: basePath}
}

// Routes wires the /dashboard endpoint.
func (h *DashboardHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.overview)
}

// NavigationRoutes wires the /navigation endpoint.
func (h *DashboardHandlers) NavigationRoutes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.navigation)
}

func (h *DashboardHandlers) overview(w http.ResponseWriter, r *http.Request) {
	if h.dashboard == nil {
		writeServiceError(r.Context(), w, dashboard.ErrNotConfigured)
		return
	}
	overview, err := h.dashboard.Overview(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeOK(w, overview)
}

func (h *DashboardHandlers) navigation(w http.ResponseWriter, r *http.Request) {
	active, _ := navigation.Resolve(r.URL.Query().Get("view"))
	writeOK(w, map[string]any{
		"default": navigation.Default,
		"items":   navigation.Items(h.basePath, active),
	})
}
