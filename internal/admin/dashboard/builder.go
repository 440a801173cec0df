package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finitefield.org/venue-admin/internal/admin/bottles"
	"finitefield.org/venue-admin/internal/admin/format"
	"finitefield.org/venue-admin/internal/admin/orders"
	"finitefield.org/venue-admin/internal/admin/shifts"
	"finitefield.org/venue-admin/internal/admin/staff"
	"finitefield.org/venue-admin/internal/admin/tables"
	"finitefield.org/venue-admin/internal/admin/venue"
)

// RecentOrderLimit caps the recent order list.
const RecentOrderLimit = 5

// TableReader lists tables.
type TableReader interface {
	List(ctx context.Context, query tables.Query) (tables.ListResult, error)
}

// OrderReader reads the order log.
type OrderReader interface {
	List(ctx context.Context, query orders.Query) (orders.ListResult, error)
	Sales(ctx context.Context, since time.Time) (int64, error)
}

// StaffReader lists the roster.
type StaffReader interface {
	List(ctx context.Context, query staff.Query) (staff.ListResult, error)
}

// BottleReader reads inventory analytics.
type BottleReader interface {
	Analytics(ctx context.Context) (bottles.Analytics, error)
}

// RequestReader lists shift requests.
type RequestReader interface {
	Requests(ctx context.Context, query shifts.RequestQuery) ([]shifts.RequestView, error)
}

// Deps wires the readers the dashboard is composed from.
type Deps struct {
	Runtime  venue.Runtime
	BasePath string
	Tables   TableReader
	Orders   OrderReader
	Staff    StaffReader
	Bottles  BottleReader
	Shifts   RequestReader
}

// Builder computes the overview from live domain state on every call.
type Builder struct {
	deps Deps
	rt   venue.Runtime
}

// NewBuilder returns a Builder. All readers are required.
func NewBuilder(deps Deps) (*Builder, error) {
	if deps.Tables == nil || deps.Orders == nil || deps.Staff == nil || deps.Bottles == nil || deps.Shifts == nil {
		return nil, ErrNotConfigured
	}
	deps.BasePath = strings.TrimRight(deps.BasePath, "/")
	return &Builder{deps: deps, rt: deps.Runtime.WithDefaults().Named("dashboard")}, nil
}

// Overview implements Service.
func (b *Builder) Overview(ctx context.Context) (Overview, error) {
	now := b.rt.Now()
	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	floor, err := b.deps.Tables.List(ctx, tables.Query{})
	if err != nil {
		return Overview{}, fmt.Errorf("dashboard: list tables: %w", err)
	}
	sales, err := b.deps.Orders.Sales(ctx, dayStart)
	if err != nil {
		return Overview{}, fmt.Errorf("dashboard: sales: %w", err)
	}
	recent, err := b.deps.Orders.List(ctx, orders.Query{Limit: RecentOrderLimit})
	if err != nil {
		return Overview{}, fmt.Errorf("dashboard: list orders: %w", err)
	}
	roster, err := b.deps.Staff.List(ctx, staff.Query{})
	if err != nil {
		return Overview{}, fmt.Errorf("dashboard: list staff: %w", err)
	}
	inventory, err := b.deps.Bottles.Analytics(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("dashboard: bottle analytics: %w", err)
	}
	pending, err := b.deps.Shifts.Requests(ctx, shifts.RequestQuery{Status: shifts.RequestPending})
	if err != nil {
		return Overview{}, fmt.Errorf("dashboard: shift requests: %w", err)
	}

	kpis := []KPI{
		{
			ID:        "tables",
			Label:     "使用中テーブル",
			Value:     fmt.Sprintf("%d/%d", floor.Summary.Occupied, floor.Summary.Total),
			DeltaText: "稼働率 " + format.Percent(floor.Summary.Occupied, floor.Summary.Total),
			Trend:     TrendFlat,
			UpdatedAt: now,
		},
		{
			ID:        "sales",
			Label:     "本日売上",
			Value:     format.Yen(sales),
			DeltaText: "会計中 " + format.Yen(floor.Summary.OpenBills),
			Trend:     trendOf(sales),
			UpdatedAt: now,
		},
		{
			ID:        "staff",
			Label:     "出勤スタッフ",
			Value:     fmt.Sprintf("%d/%d", roster.Summary.OnDuty, roster.Summary.Total),
			DeltaText: fmt.Sprintf("休憩中 %d名", roster.Summary.OnBreak),
			Trend:     TrendFlat,
			UpdatedAt: now,
		},
		{
			ID:        "bottles",
			Label:     "ボトル販売数",
			Value:     format.Number(int64(inventory.TotalSold)),
			DeltaText: fmt.Sprintf("在庫少 %d本", len(inventory.LowStock)),
			Trend:     trendOf(int64(inventory.TotalSold)),
			UpdatedAt: now,
		},
	}

	alerts := make([]Alert, 0, len(inventory.LowStock)+1)
	for _, bottle := range inventory.LowStock {
		alerts = append(alerts, Alert{
			ID:        "low-stock-" + bottle.ID,
			Severity:  "warning",
			Title:     "在庫残りわずか",
			Message:   fmt.Sprintf("%s の在庫が残り%d本です（最低在庫 %d本）。", bottle.Name, bottle.Stock, bottle.MinStock),
			ActionURL: b.deps.BasePath + "/bottles",
			Action:    "在庫を補充",
		})
	}
	if len(pending) > 0 {
		alerts = append(alerts, Alert{
			ID:        "pending-shift-requests",
			Severity:  "info",
			Title:     "シフト申請",
			Message:   fmt.Sprintf("%d件のシフト申請が承認待ちです。", len(pending)),
			ActionURL: b.deps.BasePath + "/shifts",
			Action:    "申請を確認",
		})
	}

	return Overview{
		KPIs:         kpis,
		RecentOrders: recent.Orders,
		Alerts:       alerts,
		GeneratedAt:  now,
	}, nil
}

func trendOf(n int64) Trend {
	if n > 0 {
		return TrendUp
	}
	return TrendFlat
}
