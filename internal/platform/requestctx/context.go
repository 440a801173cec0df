package requestctx

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey contextKey = "venue-admin/requestctx/logger"
	traceKey  contextKey = "venue-admin/requestctx/trace"
	viewKey   contextKey = "venue-admin/requestctx/view"
)

var noopLogger = zap.NewNop()

// TraceInfo is the trace metadata propagated through a request.
type TraceInfo struct {
	TraceID string
	SpanID  string
	Sampled bool
}

// ViewInfo describes where an HTML request landed relative to the admin base path.
type ViewInfo struct {
	BasePath    string
	RequestPath string
}

// WithLogger stores the logger in context for downstream consumers.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = noopLogger
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// Logger retrieves the zap logger from context or returns a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return noopLogger
	}
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return noopLogger
}

// NoopLogger exposes the shared no-op logger.
func NoopLogger() *zap.Logger { return noopLogger }

// WithTrace stores trace metadata on the context.
func WithTrace(ctx context.Context, info TraceInfo) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, traceKey, info)
}

// Trace retrieves trace metadata when available.
func Trace(ctx context.Context) (TraceInfo, bool) {
	if ctx == nil {
		return TraceInfo{}, false
	}
	info, ok := ctx.Value(traceKey).(TraceInfo)
	return info, ok
}

// TraceID extracts the trace identifier, or "" when absent.
func TraceID(ctx context.Context) string {
	info, _ := Trace(ctx)
	return info.TraceID
}

// WithView records the admin base path and the request path.
func WithView(ctx context.Context, info ViewInfo) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, viewKey, info)
}

// BasePath returns the admin base path stored on the context, defaulting to "/".
func BasePath(ctx context.Context) string {
	if ctx != nil {
		if info, ok := ctx.Value(viewKey).(ViewInfo); ok && strings.TrimSpace(info.BasePath) != "" {
			return info.BasePath
		}
	}
	return "/"
}

// RequestPath returns the request path stored on the context.
func RequestPath(ctx context.Context) string {
	if ctx != nil {
		if info, ok := ctx.Value(viewKey).(ViewInfo); ok {
			return info.RequestPath
		}
	}
	return ""
}
