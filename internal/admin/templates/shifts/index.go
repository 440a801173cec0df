package shifts

import (
	"github.com/a-h/templ"

	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// Index renders the week schedule and shift requests.
func Index(page PageData) templ.Component {
	days := make([][]templ.Component, 0, len(page.Days))
	for _, d := range page.Days {
		days = append(days, []templ.Component{partials.Text(d.Label), dayShifts(d.Shifts)})
	}

	hours := make([][]templ.Component, 0, len(page.StaffHours))
	for _, s := range page.StaffHours {
		hours = append(hours, []templ.Component{
			partials.Text(s.Name),
			partials.Text(s.Shifts),
			partials.Text(s.Hours),
		})
	}

	requests := make([][]templ.Component, 0, len(page.Requests))
	for _, r := range page.Requests {
		requests = append(requests, []templ.Component{
			partials.Text(r.Name),
			partials.Text(r.Dates),
			partials.Text(r.TimeRange),
			partials.Badge(r.Status),
			partials.Text(r.Submitted),
			partials.Markdown(r.Note),
		})
	}

	return partials.Group(
		partials.Stats(page.Stats),
		partials.Section("week", "週間シフト", partials.Table("week-table", []string{"日付", "シフト"}, days, "")),
		partials.Section("staff-hours", "スタッフ別勤務時間", partials.Table("staff-hours-table",
			[]string{"名前", "シフト数", "時間"}, hours, page.HoursMessage)),
		partials.Section("requests", "シフト申請", partials.Table("requests-table",
			[]string{"名前", "希望日", "時間帯", "状態", "申請日時", "備考"}, requests, page.RequestsMessage)),
	)
}

func dayShifts(chips []ShiftChip) templ.Component {
	return partials.Component(func(p *partials.Writer) {
		if len(chips) == 0 {
			p.Text("-")
			return
		}
		for i, chip := range chips {
			if i > 0 {
				p.Text(" / ")
			}
			p.Raw(`<span class="shift"`)
			p.Attr("data-shift", chip.ID)
			p.Raw(`>`)
			p.Text(chip.Text + " ")
			p.Render(partials.Badge(chip.Status))
			p.Raw(`</span>`)
		}
	})
}
