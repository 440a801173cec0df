package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"finitefield.org/venue-admin/internal/platform/httpx"
)

// RouteRegistrar registers a set of routes against the provided router.
type RouteRegistrar func(r chi.Router)

type routerConfig struct {
	apiPrefix   string
	middlewares []func(http.Handler) http.Handler
	health      *HealthHandlers

	dashboard     RouteRegistrar
	navigation    RouteRegistrar
	tables        RouteRegistrar
	menu          RouteRegistrar
	orders        RouteRegistrar
	carts         RouteRegistrar
	staff         RouteRegistrar
	payroll       RouteRegistrar
	bottles       RouteRegistrar
	shifts        RouteRegistrar
	shiftRequests RouteRegistrar

	pagesPath string
	pages     RouteRegistrar
	pagesMW   []func(http.Handler) http.Handler
}

// Option customises the router configuration before construction.
type Option func(*routerConfig)

const (
	defaultAPIPrefix  = "/api/v1"
	defaultTimeout    = 60 * time.Second
	errorNotFoundCode = "route_not_found"
)

// NewRouter constructs the chi router with shared middleware, the health
// endpoint, the JSON API groups and optionally the HTML pages.
func NewRouter(opts ...Option) chi.Router {
	cfg := routerConfig{
		apiPrefix: defaultAPIPrefix,
		middlewares: []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
		},
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.middlewares = append(cfg.middlewares, middleware.Timeout(defaultTimeout))

	r := chi.NewRouter()

	if cfg.health == nil {
		cfg.health = NewHealthHandlers()
	}

	for _, mw := range cfg.middlewares {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError(errorNotFoundCode, fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError("method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed))
	})

	r.Get("/healthz", cfg.health.Healthz)

	r.Route(cfg.apiPrefix, func(api chi.Router) {
		mount := func(path string, registrar RouteRegistrar, name string) {
			api.Route(path, func(group chi.Router) {
				if registrar != nil {
					registrar(group)
					return
				}
				registerUnavailable(group, name)
			})
		}

		mount("/dashboard", cfg.dashboard, "dashboard")
		mount("/navigation", cfg.navigation, "navigation")
		mount("/tables", cfg.tables, "tables")
		mount("/menu", cfg.menu, "menu")
		mount("/orders", cfg.orders, "orders")
		mount("/carts", cfg.carts, "carts")
		mount("/staff", cfg.staff, "staff")
		mount("/payroll", cfg.payroll, "payroll")
		mount("/bottles", cfg.bottles, "bottles")
		mount("/shifts", cfg.shifts, "shifts")
		mount("/shift-requests", cfg.shiftRequests, "shift requests")
	})

	if cfg.pages != nil {
		path := cfg.pagesPath
		if path == "" {
			path = "/"
		}
		r.Route(path, func(group chi.Router) {
			for _, mw := range cfg.pagesMW {
				if mw != nil {
					group.Use(mw)
				}
			}
			cfg.pages(group)
		})
	}

	return r
}

// WithAPIPrefix overrides the path prefix of the JSON API.
func WithAPIPrefix(prefix string) Option {
	return func(cfg *routerConfig) {
		if prefix != "" {
			cfg.apiPrefix = prefix
		}
	}
}

// WithMiddlewares appends additional global middleware to the router.
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithHealthHandlers overrides the handlers used for the /healthz endpoint.
func WithHealthHandlers(h *HealthHandlers) Option {
	return func(cfg *routerConfig) {
		cfg.health = h
	}
}

// WithDashboardRoutes configures the registrar responsible for the dashboard overview.
func WithDashboardRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) { cfg.dashboard = reg }
}

// WithNavigationRoutes configures the registrar responsible for the view list.
func WithNavigationRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) { cfg.navigation = reg }
}

// WithTableRoutes configures the registrar responsible for table endpoints.
func WithTableRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) { cfg.tables = reg }
}

// WithMenuRoutes configures the registrar responsible for the menu.
func WithMenuRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) { cfg.menu = reg }
}

// WithOrderRoutes configures the registrar responsible for the order log.
func WithOrderRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) { cfg.orders = reg }
}

// WithCartRoutes configures the registrar responsible for per-table carts.
func WithCartRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) { cfg.carts = reg }
}

// WithStaffRoutes configures the registrar responsible for staff endpoints.
func WithStaffRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) { cfg.staff = reg }
}

// WithPayrollRoutes configures the registrar responsible for payroll endpoints.
func WithPayrollRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) { cfg.payroll = reg }
}

// WithBottleRoutes configures the registrar responsible for bottle endpoints.
func WithBottleRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) { cfg.bottles = reg }
}

// WithShiftRoutes configures the registrar responsible for shift endpoints.
func WithShiftRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) { cfg.shifts = reg }
}

// WithShiftRequestRoutes configures the registrar responsible for shift request endpoints.
func WithShiftRequestRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) { cfg.shiftRequests = reg }
}

// WithPageRoutes mounts HTML pages under path with their own middleware.
func WithPageRoutes(path string, reg RouteRegistrar, mw ...func(http.Handler) http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.pagesPath = path
		cfg.pages = reg
		cfg.pagesMW = append(cfg.pagesMW, mw...)
	}
}

func registerUnavailable(r chi.Router, name string) {
	handler := func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError("service_unavailable", fmt.Sprintf("%s service is not configured", name), http.StatusServiceUnavailable))
	}
	r.HandleFunc("/*", handler)
	r.HandleFunc("/", handler)
}
