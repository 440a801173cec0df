package payroll

import (
	"strconv"

	"finitefield.org/venue-admin/internal/admin/format"
	adminpayroll "finitefield.org/venue-admin/internal/admin/payroll"
	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// PageData is the payroll report payload.
type PageData struct {
	Title        string
	Period       string
	Stats        []partials.StatCard
	Rows         []EntryRow
	EmptyMessage string
}

// EntryRow is one payslip line. Deductions are shown negative.
type EntryRow struct {
	ID          string
	Name        string
	Position    string
	Date        string
	Hours       string
	Base        string
	Nominations string
	Commission  string
	Companion   string
	Bonuses     string
	Deductions  string
	Total       string
}

// BuildPageData prepares a payroll report.
func BuildPageData(title string, report adminpayroll.Report) PageData {
	s := report.Summary
	period := PeriodText(report)
	return PageData{
		Title:  title,
		Period: period,
		Stats: []partials.StatCard{
			{ID: "total-payroll", Label: "総支給額", Value: format.Yen(s.TotalPayroll), Note: period},
			{ID: "total-hours", Label: "総勤務時間", Value: format.Hours(s.TotalHours)},
			{ID: "total-nominations", Label: "総指名数", Value: strconv.Itoa(s.TotalNominations)},
			{ID: "staff-count", Label: "対象スタッフ", Value: strconv.Itoa(s.Staff) + "名"},
		},
		Rows:         toEntryRows(report.Entries),
		EmptyMessage: "対象期間の記録がありません。",
	}
}

// PeriodText labels the report range, collapsing single-day reports.
func PeriodText(report adminpayroll.Report) string {
	period := report.PeriodLabel + " " + report.From
	if report.To != report.From {
		period += " 〜 " + report.To
	}
	return period
}

func toEntryRows(entries []adminpayroll.Entry) []EntryRow {
	rows := make([]EntryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, EntryRow{
			ID:          e.ID,
			Name:        e.StaffName,
			Position:    e.PositionLabel,
			Date:        e.Date,
			Hours:       format.Hours(e.WorkingHours),
			Base:        format.Yen(e.BaseSalary),
			Nominations: format.Yen(e.NominationTotal),
			Commission:  format.Yen(e.BottleCommission),
			Companion:   format.Yen(e.CompanionFee),
			Bonuses:     format.Yen(e.Bonuses),
			Deductions:  format.Yen(-e.Deductions),
			Total:       format.Yen(e.TotalSalary),
		})
	}
	return rows
}
