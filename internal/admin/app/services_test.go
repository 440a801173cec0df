package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/venue-admin/internal/admin/payroll"
	"finitefield.org/venue-admin/internal/admin/seed"
	"finitefield.org/venue-admin/internal/admin/venue"
)

func TestNewServicesFromEmbeddedSeed(t *testing.T) {
	now := time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC)
	data, err := seed.Load("", now)
	require.NoError(t, err)

	rt := venue.Runtime{Clock: func() time.Time { return now }}
	svc, err := NewServices(rt, data, Options{BasePath: "/admin", NominationFee: 5000})
	require.NoError(t, err)

	ctx := context.Background()
	overview, err := svc.Dashboard.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, overview.KPIs, 4)
	require.Equal(t, "4/8", overview.KPIs[0].Value)

	report, err := svc.Payroll.Report(ctx, payroll.Query{Date: "2024-01-15"})
	require.NoError(t, err)
	require.Equal(t, int64(250650), report.Summary.TotalPayroll)

	saved, err := svc.Payroll.Save(ctx, payroll.RecordInput{
		StaffID: "staff-miki", StaffName: "Miki", Position: payroll.PositionCast, Date: "2024-01-16",
		WorkingHours: 2, HourlyRate: 2500, Nominations: 1,
	})
	require.NoError(t, err)
	require.Equal(t, int64(5000), saved.NominationFee)
	require.Equal(t, int64(10000), saved.TotalSalary)
}
