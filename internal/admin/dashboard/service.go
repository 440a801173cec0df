package dashboard

import (
	"context"
	"errors"
	"time"

	"finitefield.org/venue-admin/internal/admin/orders"
)

// ErrNotConfigured indicates a reader dependency has not been provided.
var ErrNotConfigured = errors.New("dashboard service not configured")

// Service composes the dashboard overview.
type Service interface {
	// Overview returns KPIs, recent orders and alerts for the current business day.
	Overview(ctx context.Context) (Overview, error)
}

// KPI represents a dashboard metric card.
type KPI struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Value     string    `json:"value"`
	DeltaText string    `json:"deltaText"`
	Trend     Trend     `json:"trend"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Trend describes the direction of a KPI delta.
type Trend string

const (
	// TrendFlat indicates no significant change.
	TrendFlat Trend = "flat"
	// TrendUp indicates a positive change.
	TrendUp Trend = "up"
	// TrendDown indicates a negative change.
	TrendDown Trend = "down"
)

// Alert captures a dashboard alert entry.
type Alert struct {
	ID        string `json:"id"`
	Severity  string `json:"severity"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	ActionURL string `json:"actionUrl"`
	Action    string `json:"action"`
}

// Overview is the dashboard read model.
type Overview struct {
	KPIs         []KPI              `json:"kpis"`
	RecentOrders []orders.OrderLine `json:"recentOrders"`
	Alerts       []Alert            `json:"alerts"`
	GeneratedAt  time.Time          `json:"generatedAt"`
}
