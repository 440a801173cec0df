package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/venue-admin/internal/admin/bottles"
	"finitefield.org/venue-admin/internal/admin/orders"
	"finitefield.org/venue-admin/internal/admin/shifts"
	"finitefield.org/venue-admin/internal/admin/staff"
	"finitefield.org/venue-admin/internal/admin/tables"
	"finitefield.org/venue-admin/internal/admin/venue"
	"finitefield.org/venue-admin/internal/platform/ids"
)

func newTestBuilder(t *testing.T, now time.Time) (*Builder, *orders.StaticService) {
	t.Helper()

	rt := venue.Runtime{Clock: func() time.Time { return now }}
	started := now.Add(-time.Hour)

	tableSvc := tables.NewStaticService(tables.Deps{Runtime: rt}, []tables.Table{
		{ID: "T1", Number: "T1", Status: tables.StatusOccupied, Customers: 2, StartedAt: &started, Bill: 15000},
		{ID: "T2", Number: "T2", Status: tables.StatusOccupied, Customers: 3, StartedAt: &started, Bill: 8000},
		{ID: "T3", Number: "T3", Status: tables.StatusAvailable},
		{ID: "T4", Number: "T4", Status: tables.StatusCleaning},
	}...)

	menu := []orders.MenuItem{
		{ID: "1", Name: "ドンペリニヨン", Price: 45000, Category: orders.CategoryBottle},
		{ID: "3", Name: "ハイボール", Price: 1200, Category: orders.CategoryDrink},
	}
	var log []orders.OrderItem
	log = append(log, orders.OrderItem{ID: "ord-old", Item: menu[0], Quantity: 1, TableID: "T1", StaffName: "Yuki", OrderedAt: now.AddDate(0, 0, -1)})
	for i := 0; i < 5; i++ {
		log = append(log, orders.OrderItem{
			ID:        "ord-" + string(rune('a'+i)),
			Item:      menu[1],
			Quantity:  2,
			TableID:   "T2",
			StaffName: "Sakura",
			OrderedAt: now.Add(-time.Duration(5-i) * time.Minute),
		})
	}
	orderSvc := orders.NewStaticService(orders.Deps{Runtime: rt, IDGenerator: ids.Sequence("ord")}, menu, log...)

	staffSvc := staff.NewStaticService(staff.Deps{Runtime: rt}, []staff.Member{
		{ID: "staff-yuki", Name: "Yuki", Status: staff.StatusActive, Position: staff.PositionCast, ShiftStart: "20:00"},
		{ID: "staff-miki", Name: "Miki", Status: staff.StatusBreak, Position: staff.PositionCast, ShiftStart: "19:30"},
		{ID: "staff-ken", Name: "Ken", Status: staff.StatusOffDuty, Position: staff.PositionBartender},
	}...)

	bottleSvc := bottles.NewStaticService(bottles.Deps{Runtime: rt}, []bottles.Bottle{
		{ID: "b1", Name: "ドンペリニヨン", Category: bottles.CategoryChampagne, Price: 45000, Stock: 2, MinStock: 3, Sold: 15},
		{ID: "b2", Name: "山崎18年", Category: bottles.CategoryWhiskey, Price: 38000, Stock: 8, MinStock: 2, Sold: 12},
	}...)

	shiftSvc := shifts.NewStaticService(shifts.Deps{Runtime: rt}, nil, []shifts.Request{
		{ID: "req-1", StaffID: "staff-miki", StaffName: "Miki", Dates: []string{"2024-01-18"}, TimeRange: "20:00-02:00", Status: shifts.RequestPending},
		{ID: "req-2", StaffID: "staff-yuki", StaffName: "Yuki", Dates: []string{"2024-01-19"}, TimeRange: "20:00-02:00", Status: shifts.RequestApproved},
	})

	builder, err := NewBuilder(Deps{
		Runtime:  rt,
		BasePath: "/admin/",
		Tables:   tableSvc,
		Orders:   orderSvc,
		Staff:    staffSvc,
		Bottles:  bottleSvc,
		Shifts:   shiftSvc,
	})
	require.NoError(t, err)
	return builder, orderSvc
}

func TestOverviewKPIs(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC)
	builder, _ := newTestBuilder(t, now)

	overview, err := builder.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview.KPIs, 4)

	byID := make(map[string]KPI, len(overview.KPIs))
	for _, kpi := range overview.KPIs {
		byID[kpi.ID] = kpi
	}
	require.Equal(t, "使用中テーブル", byID["tables"].Label)
	require.Equal(t, "2/4", byID["tables"].Value)
	require.Equal(t, "稼働率 50%", byID["tables"].DeltaText)
	require.Equal(t, "¥12,000", byID["sales"].Value)
	require.Equal(t, "2/3", byID["staff"].Value)
	require.Equal(t, "休憩中 1名", byID["staff"].DeltaText)
	require.Equal(t, "27", byID["bottles"].Value)
	require.Equal(t, now, overview.GeneratedAt)
}

func TestOverviewRecentOrdersAndAlerts(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC)
	builder, _ := newTestBuilder(t, now)

	overview, err := builder.Overview(context.Background())
	require.NoError(t, err)

	require.Len(t, overview.RecentOrders, RecentOrderLimit)
	require.Equal(t, "ord-e", overview.RecentOrders[0].ID)

	require.Len(t, overview.Alerts, 2)
	require.Equal(t, "low-stock-b1", overview.Alerts[0].ID)
	require.Equal(t, "/admin/bottles", overview.Alerts[0].ActionURL)
	require.Equal(t, "pending-shift-requests", overview.Alerts[1].ID)
	require.Contains(t, overview.Alerts[1].Message, "1件")
}

func TestOverviewReflectsCommittedOrders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC)
	builder, orderSvc := newTestBuilder(t, now)

	_, err := orderSvc.AddToCart(ctx, "T1", "1", 1)
	require.NoError(t, err)
	_, err = orderSvc.Commit(ctx, orders.CommitRequest{TableID: "T1", StaffName: "Yuki"})
	require.NoError(t, err)

	overview, err := builder.Overview(ctx)
	require.NoError(t, err)
	require.Equal(t, "¥57,000", overview.KPIs[1].Value)
}

func TestNewBuilderRequiresReaders(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder(Deps{})
	require.ErrorIs(t, err, ErrNotConfigured)
}
