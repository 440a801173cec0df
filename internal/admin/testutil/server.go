package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"finitefield.org/venue-admin/internal/admin/app"
	"finitefield.org/venue-admin/internal/admin/dashboard"
	"finitefield.org/venue-admin/internal/admin/httpserver"
	"finitefield.org/venue-admin/internal/admin/seed"
	"finitefield.org/venue-admin/internal/admin/venue"
)

// Now is the fixed clock used by NewServer: Monday 23:30, after every sample order.
var Now = time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithBasePath sets a custom base path for the admin pages.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithDashboardService wires a custom dashboard service implementation.
func WithDashboardService(service dashboard.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.DashboardService = service
	}
}

// NewServer constructs an httptest server running the admin HTTP stack over
// the embedded sample data.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	data, err := seed.Load("", Now)
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	rt := venue.Runtime{Clock: func() time.Time { return Now }, Location: time.UTC}
	services, err := app.NewServices(rt, data, app.Options{BasePath: "/admin", NominationFee: 5000})
	if err != nil {
		t.Fatalf("build services: %v", err)
	}

	cfg := httpserver.Config{
		Address:          ":0",
		BasePath:         "/admin",
		Environment:      "test",
		VenueName:        "Club Test",
		StartedAt:        Now,
		DashboardService: services.Dashboard,
		TablesService:    services.Tables,
		OrdersService:    services.Orders,
		StaffService:     services.Staff,
		PayrollService:   services.Payroll,
		BottlesService:   services.Bottles,
		ShiftsService:    services.Shifts,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	srv := httpserver.New(cfg)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
