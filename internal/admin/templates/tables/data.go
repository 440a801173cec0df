package tables

import (
	"fmt"
	"strconv"

	"finitefield.org/venue-admin/internal/admin/format"
	admintables "finitefield.org/venue-admin/internal/admin/tables"
	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// PageData is the floor plan payload.
type PageData struct {
	Title        string
	Stats        []partials.StatCard
	Rows         []TableRow
	EmptyMessage string
}

// TableRow is one seat on the floor.
type TableRow struct {
	ID        string
	Number    string
	Status    partials.BadgeView
	Customers string
	Duration  string
	Staff     string
	Bill      string
}

// BuildPageData prepares the floor plan.
func BuildPageData(title string, result admintables.ListResult) PageData {
	s := result.Summary
	return PageData{
		Title: title,
		Stats: []partials.StatCard{
			{ID: "occupied", Label: "使用中", Value: fmt.Sprintf("%d/%d", s.Occupied, s.Total)},
			{ID: "customers", Label: "来店客数", Value: strconv.Itoa(s.Customers) + "名"},
			{ID: "open-bills", Label: "会計中", Value: format.Yen(s.OpenBills)},
			{ID: "available", Label: "空席", Value: strconv.Itoa(s.Counts[admintables.StatusAvailable])},
		},
		Rows:         toTableRows(result.Tables),
		EmptyMessage: "テーブルが登録されていません。",
	}
}

func toTableRows(list []admintables.View) []TableRow {
	rows := make([]TableRow, 0, len(list))
	for _, t := range list {
		rows = append(rows, TableRow{
			ID:        t.ID,
			Number:    t.Number,
			Status:    partials.BadgeView{Label: t.StatusLabel, Tone: t.StatusTone},
			Customers: strconv.Itoa(t.Customers) + "名",
			Duration:  partials.Dash(t.Duration),
			Staff:     partials.Dash(t.Staff),
			Bill:      format.Yen(t.Bill),
		})
	}
	return rows
}
