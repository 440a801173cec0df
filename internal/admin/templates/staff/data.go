package staff

import (
	"fmt"
	"strconv"

	"finitefield.org/venue-admin/internal/admin/format"
	adminstaff "finitefield.org/venue-admin/internal/admin/staff"
	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// PageData is the roster payload.
type PageData struct {
	Title        string
	Stats        []partials.StatCard
	Rows         []MemberRow
	EmptyMessage string
}

// MemberRow is one roster line.
type MemberRow struct {
	ID          string
	Name        string
	Position    string
	Status      partials.BadgeView
	ShiftStart  string
	Hours       string
	Nominations string
	Sales       string
	Commission  string
}

// BuildPageData prepares the roster.
func BuildPageData(title string, result adminstaff.ListResult) PageData {
	s := result.Summary
	rows := make([]MemberRow, 0, len(result.Members))
	for _, m := range result.Members {
		rows = append(rows, MemberRow{
			ID:          m.ID,
			Name:        m.Name,
			Position:    m.PositionLabel,
			Status:      partials.BadgeView{Label: m.StatusLabel, Tone: m.StatusTone},
			ShiftStart:  partials.Dash(m.ShiftStart),
			Hours:       format.Hours(m.WorkingHours),
			Nominations: strconv.Itoa(m.TodayNominations),
			Sales:       format.Yen(m.TodaySales),
			Commission:  format.Yen(m.TodayBottleCommission),
		})
	}
	return PageData{
		Title: title,
		Stats: []partials.StatCard{
			{ID: "on-duty", Label: "出勤中", Value: fmt.Sprintf("%d/%d", s.OnDuty, s.Total), Note: fmt.Sprintf("休憩中 %d名", s.OnBreak)},
			{ID: "nominations", Label: "本日指名", Value: strconv.Itoa(s.CastNominations)},
			{ID: "cast-sales", Label: "キャスト売上", Value: format.Yen(s.CastSales)},
			{ID: "average-hours", Label: "平均勤務時間", Value: format.Hours(s.AverageCastHours)},
		},
		Rows:         rows,
		EmptyMessage: "スタッフが登録されていません。",
	}
}
