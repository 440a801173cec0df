package tables

import (
	"github.com/a-h/templ"

	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// Index renders the floor plan.
func Index(page PageData) templ.Component {
	rows := make([][]templ.Component, 0, len(page.Rows))
	for _, row := range page.Rows {
		rows = append(rows, []templ.Component{
			partials.Text(row.Number),
			partials.Badge(row.Status),
			partials.Text(row.Customers),
			partials.Text(row.Duration),
			partials.Text(row.Staff),
			partials.Text(row.Bill),
		})
	}
	return partials.Group(
		partials.Stats(page.Stats),
		partials.Section("floor", "テーブル一覧", partials.Table("tables-table",
			[]string{"テーブル", "状態", "人数", "経過時間", "担当", "会計"}, rows, page.EmptyMessage)),
	)
}
