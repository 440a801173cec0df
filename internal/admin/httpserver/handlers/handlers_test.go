package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/venue-admin/internal/admin/bottles"
	"finitefield.org/venue-admin/internal/admin/dashboard"
	"finitefield.org/venue-admin/internal/admin/orders"
	"finitefield.org/venue-admin/internal/admin/payroll"
	"finitefield.org/venue-admin/internal/admin/shifts"
	"finitefield.org/venue-admin/internal/admin/staff"
	"finitefield.org/venue-admin/internal/admin/tables"
	"finitefield.org/venue-admin/internal/admin/venue"
	"finitefield.org/venue-admin/internal/platform/ids"
)

var testNow = time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	rt := venue.Runtime{Clock: func() time.Time { return testNow }}
	started := testNow.Add(-30 * time.Minute)
	stock := 1

	tableSvc := tables.NewStaticService(tables.Deps{Runtime: rt, IDGenerator: ids.Sequence("tbl")}, []tables.Table{
		{ID: "T1", Number: "T1", Status: tables.StatusOccupied, Customers: 4, StartedAt: &started, Staff: "Yuki", Bill: 45000},
		{ID: "T3", Number: "T3", Status: tables.StatusAvailable},
	}...)
	orderSvc := orders.NewStaticService(orders.Deps{Runtime: rt, IDGenerator: ids.Sequence("ord")}, []orders.MenuItem{
		{ID: "1", Name: "Dom Pérignon", Price: 45000, Category: orders.CategoryBottle, Stock: &stock},
		{ID: "4", Name: "Champagne Cocktail", Price: 2500, Category: orders.CategoryDrink},
	})
	staffSvc := staff.NewStaticService(staff.Deps{Runtime: rt, IDGenerator: ids.Sequence("stf")}, []staff.Member{
		{ID: "staff-yuki", Name: "Yuki", Status: staff.StatusActive, Position: staff.PositionCast, ShiftStart: "20:00", HourlyRate: 3000},
	}...)
	payrollSvc := payroll.NewStaticService(payroll.Deps{Runtime: rt, IDGenerator: ids.Sequence("pay"), NominationFee: 5000}, payroll.Record{
		ID: "pay-yuki", StaffID: "staff-yuki", StaffName: "Yuki", Position: payroll.PositionCast, Date: "2024-01-15",
		WorkingHours: 6.5, HourlyRate: 3000, Nominations: 8, NominationFee: 5000, BottleCommission: 12000, CompanionFee: 15000, Bonuses: 5000, Deductions: 2000,
	})
	bottleSvc := bottles.NewStaticService(bottles.Deps{Runtime: rt, IDGenerator: ids.Sequence("btl")}, []bottles.Bottle{
		{ID: "bottle-1", Name: "Dom Pérignon Vintage 2012", Category: bottles.CategoryChampagne, Price: 45000, Stock: 5, MinStock: 3, Sold: 23},
	}...)
	shiftSvc := shifts.NewStaticService(shifts.Deps{Runtime: rt, ShiftIDGenerator: ids.Sequence("sft"), RequestIDGenerator: ids.Sequence("req")},
		[]shifts.Shift{{ID: "shift-1", StaffID: "staff-yuki", StaffName: "Yuki", Date: "2024-01-15", Start: "20:00", End: "02:00", Position: "キャスト", Status: shifts.StatusScheduled}},
		[]shifts.Request{{ID: "request-1", StaffID: "staff-yuki", StaffName: "Yuki", Dates: []string{"2024-01-18"}, TimeRange: "20:00-02:00", Status: shifts.RequestPending, SubmittedAt: testNow}},
	)
	board, err := dashboard.NewBuilder(dashboard.Deps{
		Runtime: rt, BasePath: "/admin",
		Tables: tableSvc, Orders: orderSvc, Staff: staffSvc, Bottles: bottleSvc, Shifts: shiftSvc,
	})
	require.NoError(t, err)

	dash := NewDashboardHandlers(board, "/admin")
	orderHandlers := NewOrderHandlers(orderSvc)
	shiftHandlers := NewShiftHandlers(shiftSvc)

	return NewRouter(
		WithHealthHandlers(NewHealthHandlers(
			WithHealthEnvironment("test"),
			WithHealthClock(func() time.Time { return testNow }, testNow.Add(-90*time.Second)),
		)),
		WithDashboardRoutes(dash.Routes),
		WithNavigationRoutes(dash.NavigationRoutes),
		WithTableRoutes(NewTableHandlers(tableSvc).Routes),
		WithMenuRoutes(orderHandlers.MenuRoutes),
		WithOrderRoutes(orderHandlers.OrderRoutes),
		WithCartRoutes(orderHandlers.CartRoutes),
		WithStaffRoutes(NewStaffHandlers(staffSvc).Routes),
		WithPayrollRoutes(NewPayrollHandlers(payrollSvc).Routes),
		WithBottleRoutes(NewBottleHandlers(bottleSvc).Routes),
		WithShiftRoutes(shiftHandlers.ShiftRoutes),
		WithShiftRequestRoutes(shiftHandlers.RequestRoutes),
	)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var payload map[string]any
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload), rr.Body.String())
	}
	return rr, payload
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rr, payload := do(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", payload["status"])
	require.Equal(t, "test", payload["environment"])
	require.Equal(t, "1m30s", payload["uptime"])
	require.Equal(t, "2024-01-15T22:00:00Z", payload["timestamp"])
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	t.Parallel()

	rr, payload := do(t, newTestRouter(t), http.MethodGet, "/api/v1/unknown", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "route_not_found", payload["error"])
}

func TestUnconfiguredGroupReportsUnavailable(t *testing.T) {
	t.Parallel()

	rr, payload := do(t, NewRouter(), http.MethodGet, "/api/v1/tables", "")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Equal(t, "service_unavailable", payload["error"])
}

func TestTableStatusTransitions(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rr, payload := do(t, h, http.MethodPatch, "/api/v1/tables/T3/status", `{"status":"cleaning"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, "invalid_transition", payload["error"])

	rr, payload = do(t, h, http.MethodPatch, "/api/v1/tables/T1/status", `{"status":"cleaning"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, float64(45000), payload["closedBill"])

	rr, payload = do(t, h, http.MethodPatch, "/api/v1/tables/T1/status", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "empty_body", payload["error"])

	rr, payload = do(t, h, http.MethodPatch, "/api/v1/tables/T1/status", `{"status":"available","extra":1}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "invalid_json", payload["error"])

	rr, _ = do(t, h, http.MethodGet, "/api/v1/tables/T9", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateTableValidation(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rr, payload := do(t, h, http.MethodPost, "/api/v1/tables", `{"number":"","customers":-1}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "invalid_input", payload["error"])
	fields, ok := payload["fields"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, fields, "number")
	require.Contains(t, fields, "customers")

	rr, payload = do(t, h, http.MethodPost, "/api/v1/tables", `{"number":"<b>VIP3</b>"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "VIP3", payload["number"])
	require.Equal(t, "tbl_1", payload["id"])
}

func TestCartCommitFlow(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rr, payload := do(t, h, http.MethodPost, "/api/v1/carts/T1/items", `{"itemId":"4","quantity":2}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, float64(5000), payload["total"])

	rr, _ = do(t, h, http.MethodPost, "/api/v1/carts/T1/items", `{"itemId":"1"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr, payload = do(t, h, http.MethodPost, "/api/v1/carts/T1/items", `{"itemId":"99"}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "menu_item_not_found", payload["error"])

	rr, payload = do(t, h, http.MethodPost, "/api/v1/carts/T1/commit", `{"staffName":"Yuki"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, float64(50000), payload["total"])
	require.Len(t, payload["orders"], 2)

	rr, payload = do(t, h, http.MethodGet, "/api/v1/carts/T1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, float64(0), payload["total"])

	rr, payload = do(t, h, http.MethodGet, "/api/v1/orders?table=T1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, payload["orders"], 2)

	rr, payload = do(t, h, http.MethodPost, "/api/v1/carts/T1/commit", `{"staffName":"Yuki"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, payload["orders"])

	rr, _ = do(t, h, http.MethodGet, "/api/v1/orders?limit=x", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStaffStatusConflict(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rr, payload := do(t, h, http.MethodPatch, "/api/v1/staff/staff-yuki/status", `{"status":"active"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, "invalid_transition", payload["error"])

	rr, payload = do(t, h, http.MethodPatch, "/api/v1/staff/staff-yuki/status", `{"status":"break"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "休憩中", payload["statusLabel"])
}

func TestPayrollReport(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rr, payload := do(t, h, http.MethodGet, "/api/v1/payroll?period=daily&date=2024-01-15", "")
	require.Equal(t, http.StatusOK, rr.Code)
	summary := payload["summary"].(map[string]any)
	require.Equal(t, float64(89500), summary["totalPayroll"])

	rr, payload = do(t, h, http.MethodGet, "/api/v1/payroll?period=yearly", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "invalid_input", payload["error"])
}

func TestBottleStockAndAnalytics(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rr, payload := do(t, h, http.MethodPost, "/api/v1/bottles/bottle-1/stock", `{"delta":-3}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, float64(2), payload["stock"])
	require.Equal(t, true, payload["lowStock"])

	rr, payload = do(t, h, http.MethodPost, "/api/v1/bottles/bottle-1/stock", `{"delta":0}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "zero_adjustment", payload["error"])

	rr, payload = do(t, h, http.MethodGet, "/api/v1/bottles/analytics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, float64(23), payload["totalSold"])
}

func TestShiftRequestDecisions(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rr, payload := do(t, h, http.MethodPost, "/api/v1/shift-requests/request-1/approve", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "approved", payload["status"])

	rr, payload = do(t, h, http.MethodPost, "/api/v1/shift-requests/request-1/reject", "")
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, "invalid_transition", payload["error"])

	rr, payload = do(t, h, http.MethodPost, "/api/v1/shifts/shift-1/confirm", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "confirmed", payload["status"])

	rr, payload = do(t, h, http.MethodGet, "/api/v1/shifts/week?start=2024-01-15", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, payload["days"], 7)
}

func TestDashboardAndNavigation(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rr, payload := do(t, h, http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, payload["kpis"], 4)

	rr, payload = do(t, h, http.MethodGet, "/api/v1/navigation?view=bottles", "")
	require.Equal(t, http.StatusOK, rr.Code)
	items := payload["items"].([]any)
	require.Len(t, items, 7)
	require.Equal(t, true, items[5].(map[string]any)["active"])
}

func TestCleanTextStripsMarkup(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Rosé & co", cleanText(`<script>alert(1)</script>Rosé &amp; co`))
	require.Equal(t, "", cleanText(""))
	require.Equal(t, "", cleanText("&lt;script&gt;alert(1)&lt;/script&gt;"))
	require.Equal(t, "早番 希望", cleanText("&amp;lt;b&amp;gt;早番&amp;lt;/b&amp;gt; 希望"))
	require.Equal(t, "2 < 3", cleanText("2 < 3"))
}

func TestSubmitShiftRequestStripsEncodedMarkup(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)
	rr, payload := do(t, h, http.MethodPost, "/api/v1/shift-requests",
		`{"staffId":"staff-yuki","staffName":"Yuki","dates":["2024-01-20"],"timeRange":"20:00-02:00","note":"&lt;script&gt;alert(1)&lt;/script&gt;早番希望"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "早番希望", payload["note"])
	require.NotContains(t, rr.Body.String(), "<script>")
	require.NotContains(t, rr.Body.String(), `\u003cscript`)
}
