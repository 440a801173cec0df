package staff

import (
	"github.com/a-h/templ"

	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// Index renders the roster.
func Index(page PageData) templ.Component {
	rows := make([][]templ.Component, 0, len(page.Rows))
	for _, m := range page.Rows {
		rows = append(rows, []templ.Component{
			partials.Text(m.Name),
			partials.Text(m.Position),
			partials.Badge(m.Status),
			partials.Text(m.ShiftStart),
			partials.Text(m.Hours),
			partials.Text(m.Nominations),
			partials.Text(m.Sales),
			partials.Text(m.Commission),
		})
	}
	return partials.Group(
		partials.Stats(page.Stats),
		partials.Section("roster", "スタッフ一覧", partials.Table("staff-table",
			[]string{"名前", "役職", "状態", "出勤", "勤務時間", "指名", "売上", "ボトルバック"}, rows, page.EmptyMessage)),
	)
}
