package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/venue-admin/internal/admin/venue"
	"finitefield.org/venue-admin/internal/platform/ids"
	"finitefield.org/venue-admin/internal/platform/validation"
)

func sampleRecords() []Record {
	return []Record{
		{ID: "pay-yuki", StaffID: "staff-yuki", StaffName: "Yuki", Position: PositionCast, Date: "2024-01-15", WorkingHours: 6.5, HourlyRate: 3000, Nominations: 8, NominationFee: 5000, BottleCommission: 12000, CompanionFee: 15000, Bonuses: 5000, Deductions: 2000},
		{ID: "pay-sakura", StaffID: "staff-sakura", StaffName: "Sakura", Position: PositionCast, Date: "2024-01-15", WorkingHours: 7.0, HourlyRate: 2800, Nominations: 6, NominationFee: 5000, BottleCommission: 9500, CompanionFee: 10000, Bonuses: 3000, Deductions: 1500},
		{ID: "pay-miki", StaffID: "staff-miki", StaffName: "Miki", Position: PositionCast, Date: "2024-01-15", WorkingHours: 5.5, HourlyRate: 2500, Nominations: 5, NominationFee: 5000, BottleCommission: 7800, CompanionFee: 8000, Bonuses: 2000, Deductions: 1000},
		{ID: "pay-takeshi", StaffID: "staff-takeshi", StaffName: "Takeshi", Position: PositionManager, Date: "2024-01-15", WorkingHours: 8.0, HourlyRate: 3500, Bonuses: 10000, Deductions: 3000},
	}
}

func newTestService(records ...Record) *StaticService {
	return NewStaticService(Deps{
		Runtime: venue.Runtime{
			Clock: func() time.Time { return time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC) },
		},
		IDGenerator: ids.Sequence("pay"),
	}, records...)
}

func TestComputeTotalSalary(t *testing.T) {
	t.Parallel()

	got := Compute(sampleRecords()[0])
	require.Equal(t, int64(19500), got.BaseSalary)
	require.Equal(t, int64(40000), got.NominationTotal)
	require.Equal(t, int64(89500), got.TotalSalary)
}

func TestComputeIdentityHoldsForEveryRecord(t *testing.T) {
	t.Parallel()

	want := map[string]int64{
		"pay-yuki":    89500,
		"pay-sakura":  70600,
		"pay-miki":    55550,
		"pay-takeshi": 35000,
	}
	for _, r := range sampleRecords() {
		b := Compute(r)
		require.Equal(t, b.BaseSalary+b.NominationTotal+r.BottleCommission+r.CompanionFee+r.Bonuses-r.Deductions, b.TotalSalary)
		require.Equal(t, want[r.ID], b.TotalSalary, r.ID)
	}
}

func TestComputeRoundsHalfUp(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(1001), Compute(Record{WorkingHours: 0.5, HourlyRate: 2001}).BaseSalary)
	require.Equal(t, int64(18132), Compute(Record{WorkingHours: 7.25, HourlyRate: 2501}).BaseSalary)
}

func TestReportDailySummary(t *testing.T) {
	t.Parallel()

	svc := newTestService(sampleRecords()...)
	report, err := svc.Report(context.Background(), Query{Period: PeriodDaily, Date: "2024-01-15"})
	require.NoError(t, err)

	require.Len(t, report.Entries, 4)
	require.Len(t, report.CastEntries, 3)
	require.Equal(t, "pay-yuki", report.Entries[0].ID)
	require.Equal(t, int64(250650), report.Summary.TotalPayroll)
	require.InDelta(t, 27.0, report.Summary.TotalHours, 1e-9)
	require.Equal(t, 19, report.Summary.TotalNominations)
	require.Equal(t, 4, report.Summary.Staff)
	require.Equal(t, "キャスト", report.Entries[0].PositionLabel)
}

func TestReportPeriodsAndPosition(t *testing.T) {
	t.Parallel()

	records := append(sampleRecords(),
		Record{ID: "pay-yuki-2", StaffID: "staff-yuki", StaffName: "Yuki", Position: PositionCast, Date: "2024-01-21", WorkingHours: 1, HourlyRate: 3000},
		Record{ID: "pay-yuki-3", StaffID: "staff-yuki", StaffName: "Yuki", Position: PositionCast, Date: "2024-01-31", WorkingHours: 1, HourlyRate: 3000},
	)
	svc := newTestService(records...)
	ctx := context.Background()

	weekly, err := svc.Report(ctx, Query{Period: PeriodWeekly, Date: "2024-01-17"})
	require.NoError(t, err)
	require.Equal(t, "2024-01-15", weekly.From)
	require.Equal(t, "2024-01-21", weekly.To)
	require.Len(t, weekly.Entries, 5)

	monthly, err := svc.Report(ctx, Query{Period: PeriodMonthly, Date: "2024-01-02", Position: PositionManager})
	require.NoError(t, err)
	require.Equal(t, "2024-01-31", monthly.To)
	require.Len(t, monthly.Entries, 1)
	require.Empty(t, monthly.CastEntries)

	_, err = svc.Report(ctx, Query{Period: "yearly"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Report(ctx, Query{Period: PeriodDaily, Date: "2024-01-15", Position: "host"})
	require.ErrorIs(t, err, ErrInvalidInput)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "position")
}

func TestReportDefaultsToToday(t *testing.T) {
	t.Parallel()

	svc := newTestService(sampleRecords()...)
	report, err := svc.Report(context.Background(), Query{})
	require.NoError(t, err)
	require.Equal(t, PeriodDaily, report.Period)
	require.Equal(t, "2024-01-15", report.From)
	require.Len(t, report.Entries, 4)
}

func TestSaveUpsertsByStaffAndDate(t *testing.T) {
	t.Parallel()

	svc := newTestService(sampleRecords()...)
	ctx := context.Background()

	entry, err := svc.Save(ctx, RecordInput{
		StaffID: "staff-yuki", StaffName: "Yuki", Position: PositionCast, Date: "2024-01-15",
		WorkingHours: 7, HourlyRate: 3000, Nominations: 2,
	})
	require.NoError(t, err)
	require.Equal(t, "pay-yuki", entry.ID)
	require.Equal(t, int64(5000), entry.NominationFee)
	require.Equal(t, int64(31000), entry.TotalSalary)

	created, err := svc.Save(ctx, RecordInput{
		StaffID: "staff-hiroshi", StaffName: "Hiroshi", Position: PositionBartender, Date: "2024-01-16",
		WorkingHours: 6, HourlyRate: 2200,
	})
	require.NoError(t, err)
	require.Equal(t, "pay_1", created.ID)

	got, err := svc.Get(ctx, "pay_1")
	require.NoError(t, err)
	require.Equal(t, int64(13200), got.TotalSalary)
}

func TestSaveRejectsNegativeValues(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	_, err := svc.Save(context.Background(), RecordInput{
		StaffID: "staff-yuki", StaffName: "Yuki", Position: PositionCast, Date: "2024-01-15",
		WorkingHours: -1, HourlyRate: -3000, Deductions: -5,
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "workingHours")
	require.Contains(t, verr.Fields, "hourlyRate")
	require.Contains(t, verr.Fields, "deductions")
}

func TestDelete(t *testing.T) {
	t.Parallel()

	svc := newTestService(sampleRecords()...)
	ctx := context.Background()
	_, err := svc.Get(ctx, " pay-yuki ")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, " pay-yuki "))
	_, err = svc.Get(ctx, "pay-yuki")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "pay-miki"))
	require.ErrorIs(t, svc.Delete(ctx, "pay-miki"), ErrNotFound)
	_, err = svc.Get(ctx, "pay-miki")
	require.ErrorIs(t, err, ErrNotFound)
}
