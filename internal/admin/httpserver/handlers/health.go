package handlers

import (
	"net/http"
	"strings"
	"time"

	"finitefield.org/venue-admin/internal/platform/httpx"
)

// HealthHandlers serves the liveness endpoint.
type HealthHandlers struct {
	environment string
	started     time.Time
	now         func() time.Time
}

// HealthOption customises HealthHandlers.
type HealthOption func(*HealthHandlers)

// NewHealthHandlers returns handlers reporting uptime since construction.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{
		environment: "local",
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	if h.started.IsZero() {
		h.started = h.now()
	}
	return h
}

// WithHealthEnvironment sets the environment label reported by /healthz.
func WithHealthEnvironment(env string) HealthOption {
	return func(h *HealthHandlers) {
		if env = strings.TrimSpace(env); env != "" {
			h.environment = env
		}
	}
}

// WithHealthClock overrides the clock and the recorded start time.
func WithHealthClock(now func() time.Time, started time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if now != nil {
			h.now = now
		}
		h.started = started
	}
}

// Healthz responds with a simple status payload for monitoring.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	now := h.now()
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"environment": h.environment,
		"uptime":      now.Sub(h.started).Truncate(time.Second).String(),
		"timestamp":   now.UTC().Format(time.RFC3339),
	})
}
