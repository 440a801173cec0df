package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"finitefield.org/venue-admin/internal/admin/app"
	"finitefield.org/venue-admin/internal/admin/httpserver"
	"finitefield.org/venue-admin/internal/admin/seed"
	"finitefield.org/venue-admin/internal/admin/venue"
	"finitefield.org/venue-admin/internal/platform/config"
	"finitefield.org/venue-admin/internal/platform/observability"
)

func main() {
	ctx := context.Background()
	startedAt := time.Now().UTC()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	baseLogger, err := observability.NewLogger(cfg.Observability.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("admin")

	rt := venue.Runtime{
		Location: cfg.Venue.Location,
		Logger:   logger,
		Metrics:  observability.NewMetrics(otel.GetMeterProvider()),
	}.WithDefaults()

	data, err := seed.Load(cfg.Seed.File, rt.Now())
	if err != nil {
		logger.Fatal("failed to load seed data", zap.String("file", cfg.Seed.File), zap.Error(err))
	}

	services, err := app.NewServices(rt, data, app.Options{
		BasePath:      cfg.HTTP.BasePath,
		NominationFee: cfg.Venue.NominationFee,
	})
	if err != nil {
		logger.Fatal("failed to build services", zap.Error(err))
	}

	srv := httpserver.New(httpserver.Config{
		Address:          cfg.Server.Address(),
		BasePath:         cfg.HTTP.BasePath,
		APIPrefix:        cfg.HTTP.APIPrefix,
		Environment:      cfg.Observability.Environment,
		VenueName:        cfg.Venue.Name,
		Logger:           logger,
		StartedAt:        startedAt,
		ReadTimeout:      cfg.Server.ReadTimeout,
		WriteTimeout:     cfg.Server.WriteTimeout,
		IdleTimeout:      cfg.Server.IdleTimeout,
		DashboardService: services.Dashboard,
		TablesService:    services.Tables,
		OrdersService:    services.Orders,
		StaffService:     services.Staff,
		PayrollService:   services.Payroll,
		BottlesService:   services.Bottles,
		ShiftsService:    services.Shifts,
	})

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("admin server listening",
		zap.String("addr", srv.Addr),
		zap.String("base_path", cfg.HTTP.BasePath),
		zap.String("api_prefix", cfg.HTTP.APIPrefix),
		zap.String("venue", cfg.Venue.Name),
		zap.String("timezone", cfg.Venue.Timezone),
	)

	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		cancel()
		stop()
		os.Exit(1)
	}
	logger.Info("admin server stopped")
}
