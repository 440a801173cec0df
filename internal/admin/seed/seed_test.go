package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/venue-admin/internal/admin/payroll"
	"finitefield.org/venue-admin/internal/admin/shifts"
	"finitefield.org/venue-admin/internal/admin/tables"
)

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	data, err := Load("", now)
	require.NoError(t, err)

	require.Len(t, data.Tables, 8)
	require.Len(t, data.Menu, 8)
	require.Len(t, data.Orders, 3)
	require.Len(t, data.Staff, 5)
	require.Len(t, data.Payroll, 4)
	require.Len(t, data.Bottles, 6)
	require.Len(t, data.Shifts, 5)
	require.Len(t, data.ShiftRequests, 2)

	t1 := data.Tables[0]
	require.Equal(t, tables.StatusOccupied, t1.Status)
	require.NotNil(t, t1.StartedAt)
	require.Equal(t, time.Date(2024, 1, 15, 21, 30, 0, 0, time.UTC), *t1.StartedAt)
	require.Nil(t, data.Tables[2].StartedAt)

	require.Equal(t, "Dom Pérignon", data.Orders[0].Item.Name)
	require.Equal(t, int64(45000), data.Orders[0].Subtotal())
	require.Equal(t, time.Date(2024, 1, 15, 22, 30, 0, 0, time.UTC), data.Orders[0].OrderedAt)

	require.NotNil(t, data.Menu[0].Stock)
	require.Equal(t, 5, *data.Menu[0].Stock)
	require.Nil(t, data.Menu[3].Stock)

	require.Equal(t, time.Date(2024, 1, 14, 15, 30, 0, 0, time.UTC), data.ShiftRequests[0].SubmittedAt)
	require.Equal(t, shifts.RequestPending, data.ShiftRequests[0].Status)
	require.Equal(t, []string{"2024-01-18", "2024-01-19"}, data.ShiftRequests[0].Dates)
}

func TestPayrollSeedTotals(t *testing.T) {
	t.Parallel()

	data, err := Load("", time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	totals := make([]int64, 0, len(data.Payroll))
	for _, rec := range data.Payroll {
		totals = append(totals, payroll.Compute(rec).TotalSalary)
	}
	require.Equal(t, []int64{89500, 70600, 55550, 35000}, totals)
}

func TestClockTimesAfterMidnightStayOnPreviousNight(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 16, 1, 0, 0, 0, time.UTC)
	data, err := Load("", now)
	require.NoError(t, err)

	require.Equal(t, time.Date(2024, 1, 15, 21, 30, 0, 0, time.UTC), *data.Tables[0].StartedAt)
	require.Equal(t, time.Date(2024, 1, 15, 22, 30, 0, 0, time.UTC), data.Orders[0].OrderedAt)

	reserved := data.Tables[3]
	require.Equal(t, tables.StatusReserved, reserved.Status)
	require.Equal(t, time.Date(2024, 1, 16, 23, 0, 0, 0, time.UTC), *reserved.StartedAt)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	raw := []byte(`
tables:
  - {id: A1, number: A1, status: available}
menu:
  - {id: m1, name: Water, price: 500, category: drink}
orders:
  - {id: o1, itemId: m1, quantity: 3, tableId: A1, staffName: Ken, time: "19:00"}
`)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	data, err := Load(path, time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, data.Tables, 1)
	require.Empty(t, data.Staff)
	require.Equal(t, int64(1500), data.Orders[0].Subtotal())
}

func TestParseRejectsUnknownMenuItem(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`
orders:
  - {id: o1, itemId: missing, quantity: 1, tableId: A1, staffName: Ken, time: "19:00"}
`), time.Now())
	require.ErrorIs(t, err, ErrInvalidSeed)

	_, err = Parse([]byte(`
tables:
  - {id: A1, number: A1, status: occupied, startTime: "late"}
`), time.Now())
	require.ErrorIs(t, err, ErrInvalidSeed)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), time.Now())
	require.Error(t, err)
}
