package payroll

import (
	"github.com/a-h/templ"

	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// Index renders a payroll report.
func Index(page PageData) templ.Component {
	rows := make([][]templ.Component, 0, len(page.Rows))
	for _, e := range page.Rows {
		rows = append(rows, []templ.Component{
			partials.Text(e.Name),
			partials.Text(e.Position),
			partials.Text(e.Date),
			partials.Text(e.Hours),
			partials.Text(e.Base),
			partials.Text(e.Nominations),
			partials.Text(e.Commission),
			partials.Text(e.Companion),
			partials.Text(e.Bonuses),
			partials.Text(e.Deductions),
			partials.Text(e.Total),
		})
	}
	return partials.Group(
		partials.Stats(page.Stats),
		partials.Section("payroll", "給与明細", partials.Table("payroll-table",
			[]string{"名前", "役職", "日付", "勤務時間", "基本給", "指名料", "ボトルバック", "同伴料", "ボーナス", "控除", "支給額"}, rows, page.EmptyMessage)),
	)
}
