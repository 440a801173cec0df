package ui

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/venue-admin/internal/admin/bottles"
	"finitefield.org/venue-admin/internal/admin/dashboard"
	"finitefield.org/venue-admin/internal/admin/httpserver/middleware"
	"finitefield.org/venue-admin/internal/admin/navigation"
	"finitefield.org/venue-admin/internal/admin/orders"
	"finitefield.org/venue-admin/internal/admin/payroll"
	"finitefield.org/venue-admin/internal/admin/shifts"
	"finitefield.org/venue-admin/internal/admin/staff"
	"finitefield.org/venue-admin/internal/admin/tables"
	bottlestpl "finitefield.org/venue-admin/internal/admin/templates/bottles"
	dashboardtpl "finitefield.org/venue-admin/internal/admin/templates/dashboard"
	orderstpl "finitefield.org/venue-admin/internal/admin/templates/orders"
	payrolltpl "finitefield.org/venue-admin/internal/admin/templates/payroll"
	shiftstpl "finitefield.org/venue-admin/internal/admin/templates/shifts"
	stafftpl "finitefield.org/venue-admin/internal/admin/templates/staff"
	tablestpl "finitefield.org/venue-admin/internal/admin/templates/tables"
	"finitefield.org/venue-admin/internal/platform/requestctx"
)

const loadFailedMessage = "データの取得に失敗しました。"

// Deps are the services the pages read from.
type Deps struct {
	VenueName string
	Dashboard dashboard.Service
	Tables    tables.Service
	Orders    orders.Service
	Staff     staff.Service
	Payroll   payroll.Service
	Bottles   bottles.Service
	Shifts    shifts.Service
}

// Handlers renders the admin pages.
type Handlers struct {
	deps Deps
}

// NewHandlers wires the page handlers.
func NewHandlers(deps Deps) *Handlers {
	if deps.VenueName == "" {
		deps.VenueName = "Club Admin"
	}
	return &Handlers{deps: deps}
}

// Routes registers the dashboard at the mount root and every other view below it.
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.Page)
	r.Get("/{view}", h.Page)
}

// Page renders the view named by the path segment. Each view builds its page
// data from the services before the template renders it.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	segment := chi.URLParam(r, "view")
	view, ok := navigation.Resolve(segment)

	page := Page{
		VenueName:   h.deps.VenueName,
		Environment: middleware.EnvironmentFromContext(ctx),
		Nav:         navigation.Items(requestctx.BasePath(ctx), view),
	}

	if !ok {
		page.Title = "ページが見つかりません"
		page.Body = NotFound(requestctx.RequestPath(ctx))
		templ.Handler(Layout(page), templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
		return
	}

	page.Title = view.Label()
	body, err := h.body(ctx, r, view)
	if err != nil {
		requestctx.Logger(ctx).Error("failed to load page", zap.String("view", string(view)), zap.Error(err))
		page.Flash = loadFailedMessage
	}
	page.Body = body
	templ.Handler(Layout(page)).ServeHTTP(w, r)
}

func (h *Handlers) body(ctx context.Context, r *http.Request, view navigation.View) (templ.Component, error) {
	switch view {
	case navigation.ViewTables:
		if h.deps.Tables == nil {
			return nil, dashboard.ErrNotConfigured
		}
		result, err := h.deps.Tables.List(ctx, tables.Query{})
		if err != nil {
			return nil, err
		}
		return tablestpl.Index(tablestpl.BuildPageData(view.Label(), result)), nil

	case navigation.ViewOrders:
		if h.deps.Orders == nil {
			return nil, dashboard.ErrNotConfigured
		}
		menu, err := h.deps.Orders.Menu(ctx, "")
		if err != nil {
			return nil, err
		}
		log, err := h.deps.Orders.List(ctx, orders.Query{})
		if err != nil {
			return nil, err
		}
		return orderstpl.Index(orderstpl.BuildPageData(view.Label(), menu, log)), nil

	case navigation.ViewStaff:
		if h.deps.Staff == nil {
			return nil, dashboard.ErrNotConfigured
		}
		result, err := h.deps.Staff.List(ctx, staff.Query{})
		if err != nil {
			return nil, err
		}
		return stafftpl.Index(stafftpl.BuildPageData(view.Label(), result)), nil

	case navigation.ViewPayroll:
		if h.deps.Payroll == nil {
			return nil, dashboard.ErrNotConfigured
		}
		q := r.URL.Query()
		report, err := h.deps.Payroll.Report(ctx, payroll.Query{
			Period:   payroll.Period(q.Get("period")),
			Date:     q.Get("date"),
			Position: payroll.Position(q.Get("position")),
		})
		if err != nil {
			return nil, err
		}
		return payrolltpl.Index(payrolltpl.BuildPageData(view.Label(), report)), nil

	case navigation.ViewBottles:
		if h.deps.Bottles == nil {
			return nil, dashboard.ErrNotConfigured
		}
		list, err := h.deps.Bottles.List(ctx, bottles.Query{})
		if err != nil {
			return nil, err
		}
		stats, err := h.deps.Bottles.Analytics(ctx)
		if err != nil {
			return nil, err
		}
		return bottlestpl.Index(bottlestpl.BuildPageData(view.Label(), list, stats)), nil

	case navigation.ViewShifts:
		if h.deps.Shifts == nil {
			return nil, dashboard.ErrNotConfigured
		}
		week, err := h.deps.Shifts.Week(ctx, shifts.WeekQuery{Start: r.URL.Query().Get("start")})
		if err != nil {
			return nil, err
		}
		requests, err := h.deps.Shifts.Requests(ctx, shifts.RequestQuery{})
		if err != nil {
			return nil, err
		}
		return shiftstpl.Index(shiftstpl.BuildPageData(view.Label(), week, requests)), nil
	}

	if h.deps.Dashboard == nil {
		return nil, dashboard.ErrNotConfigured
	}
	overview, err := h.deps.Dashboard.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return dashboardtpl.Index(dashboardtpl.BuildPageData(view.Label(), overview)), nil
}
