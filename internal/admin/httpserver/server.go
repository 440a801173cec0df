package httpserver

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"finitefield.org/venue-admin/internal/admin/bottles"
	"finitefield.org/venue-admin/internal/admin/dashboard"
	"finitefield.org/venue-admin/internal/admin/httpserver/handlers"
	custommw "finitefield.org/venue-admin/internal/admin/httpserver/middleware"
	"finitefield.org/venue-admin/internal/admin/httpserver/ui"
	"finitefield.org/venue-admin/internal/admin/orders"
	"finitefield.org/venue-admin/internal/admin/payroll"
	"finitefield.org/venue-admin/internal/admin/shifts"
	"finitefield.org/venue-admin/internal/admin/staff"
	"finitefield.org/venue-admin/internal/admin/tables"
	"finitefield.org/venue-admin/internal/platform/observability"
)

// Config holds runtime options and services for the admin HTTP server.
type Config struct {
	Address      string
	BasePath     string
	APIPrefix    string
	Environment  string
	VenueName    string
	Logger       *zap.Logger
	StartedAt    time.Time
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	DashboardService dashboard.Service
	TablesService    tables.Service
	OrdersService    orders.Service
	StaffService     staff.Service
	PayrollService   payroll.Service
	BottlesService   bottles.Service
	ShiftsService    shifts.Service
}

// New constructs the HTTP server with the middleware stack, the JSON API and the HTML pages.
func New(cfg Config) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      NewHandler(cfg),
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
	}
}

// NewHandler builds the routed handler served by New.
func NewHandler(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	basePath := custommw.NormaliseBase(cfg.BasePath)
	started := cfg.StartedAt
	if started.IsZero() {
		started = time.Now()
	}

	opts := []handlers.Option{
		handlers.WithMiddlewares(
			observability.TraceMiddleware(),
			observability.InjectLoggerMiddleware(logger),
			observability.RequestLoggerMiddleware(),
			observability.RecoveryMiddleware(logger),
		),
		handlers.WithHealthHandlers(handlers.NewHealthHandlers(
			handlers.WithHealthEnvironment(cfg.Environment),
			handlers.WithHealthClock(time.Now, started),
		)),
	}
	if cfg.APIPrefix != "" {
		opts = append(opts, handlers.WithAPIPrefix(cfg.APIPrefix))
	}

	if cfg.DashboardService != nil {
		dash := handlers.NewDashboardHandlers(cfg.DashboardService, basePath)
		opts = append(opts,
			handlers.WithDashboardRoutes(dash.Routes),
			handlers.WithNavigationRoutes(dash.NavigationRoutes),
		)
	}
	if cfg.TablesService != nil {
		opts = append(opts, handlers.WithTableRoutes(handlers.NewTableHandlers(cfg.TablesService).Routes))
	}
	if cfg.OrdersService != nil {
		h := handlers.NewOrderHandlers(cfg.OrdersService)
		opts = append(opts,
			handlers.WithMenuRoutes(h.MenuRoutes),
			handlers.WithOrderRoutes(h.OrderRoutes),
			handlers.WithCartRoutes(h.CartRoutes),
		)
	}
	if cfg.StaffService != nil {
		opts = append(opts, handlers.WithStaffRoutes(handlers.NewStaffHandlers(cfg.StaffService).Routes))
	}
	if cfg.PayrollService != nil {
		opts = append(opts, handlers.WithPayrollRoutes(handlers.NewPayrollHandlers(cfg.PayrollService).Routes))
	}
	if cfg.BottlesService != nil {
		opts = append(opts, handlers.WithBottleRoutes(handlers.NewBottleHandlers(cfg.BottlesService).Routes))
	}
	if cfg.ShiftsService != nil {
		h := handlers.NewShiftHandlers(cfg.ShiftsService)
		opts = append(opts,
			handlers.WithShiftRoutes(h.ShiftRoutes),
			handlers.WithShiftRequestRoutes(h.RequestRoutes),
		)
	}

	pages := ui.NewHandlers(ui.Deps{
		VenueName: cfg.VenueName,
		Dashboard: cfg.DashboardService,
		Tables:    cfg.TablesService,
		Orders:    cfg.OrdersService,
		Staff:     cfg.StaffService,
		Payroll:   cfg.PayrollService,
		Bottles:   cfg.BottlesService,
		Shifts:    cfg.ShiftsService,
	})
	opts = append(opts, handlers.WithPageRoutes(basePath, pages.Routes,
		custommw.View(basePath),
		custommw.NoStore(),
		custommw.Environment(cfg.Environment),
	))

	return handlers.NewRouter(opts...)
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return value
}
