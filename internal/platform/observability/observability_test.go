package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"finitefield.org/venue-admin/internal/platform/requestctx"
)

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("not-a-level")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	debug, err := NewLogger("DEBUG")
	require.NoError(t, err)
	require.True(t, debug.Core().Enabled(zapcore.DebugLevel))
}

func TestRequestLoggerMiddlewareLogsStatus(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	router := chi.NewRouter()
	router.Use(InjectLoggerMiddleware(zap.New(core)), TraceMiddleware(), RequestLoggerMiddleware())
	router.Get("/tables/{id}", func(w http.ResponseWriter, r *http.Request) {
		requestctx.Logger(r.Context()).Info("handler")
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables/T9", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	completed := logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	require.Equal(t, zapcore.WarnLevel, completed[0].Level)
	fields := completed[0].ContextMap()
	require.Equal(t, "/tables/{id}", fields["route"])
	require.EqualValues(t, http.StatusNotFound, fields["status"])

	handlerLogs := logs.FilterMessage("handler").All()
	require.Len(t, handlerLogs, 1)
	require.Equal(t, "GET", handlerLogs[0].ContextMap()["method"])
}

func TestRecoveryMiddlewareWritesEnvelope(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	handler := RecoveryMiddleware(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var payload map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&payload))
	require.Equal(t, "internal_server_error", payload["error"])
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestMetricsCachesCounters(t *testing.T) {
	t.Parallel()

	m := NewMetrics(noop.NewMeterProvider())
	ctx := context.Background()
	m.Transition(ctx, "tables", "available", "occupied")
	m.Add(ctx, MetricOrdersCommitted, 2)
	m.Add(ctx, MetricOrdersCommitted, 1)
	require.Len(t, m.counters, 2)

	var nilMetrics *Metrics
	require.NotPanics(t, func() { nilMetrics.Add(ctx, MetricStockAdjustments, 1) })
}

func TestSanitizeStringDropsControlCharacters(t *testing.T) {
	t.Parallel()

	require.Equal(t, "GETX", SanitizeMethod("GET\nX"))
	require.Equal(t, "/", SanitizeRoute(""))
}
