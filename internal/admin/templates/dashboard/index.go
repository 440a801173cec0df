package dashboard

import (
	"github.com/a-h/templ"

	"finitefield.org/venue-admin/internal/admin/templates/orders"
	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// Index renders KPI cards, alerts and recent orders.
func Index(page PageData) templ.Component {
	return partials.Group(
		partials.Stats(page.KPIs),
		partials.Section("alerts", "アラート", Alerts(page.Alerts)),
		partials.Section("recent-orders", "最近の注文", orders.Log(page.RecentOrders)),
	)
}

// Alerts renders the alert list.
func Alerts(data AlertsData) templ.Component {
	return partials.Component(func(p *partials.Writer) {
		if len(data.Alerts) == 0 {
			p.Raw(`<p class="text-slate-500">`)
			p.Text(data.EmptyMessage)
			p.Raw(`</p>`)
			return
		}
		p.Raw(`<ul class="space-y-2">`)
		for _, a := range data.Alerts {
			p.Raw(`<li class="alert"`)
			p.Attr("data-alert", a.ID)
			p.Raw(`>`)
			p.Render(partials.Badge(a.Badge))
			p.Raw(` `)
			p.Text(a.Message)
			p.Raw(` <a class="underline"`)
			p.Attr("href", a.ActionURL)
			p.Raw(`>`)
			p.Text(a.Action)
			p.Raw(`</a></li>`)
		}
		p.Raw(`</ul>`)
	})
}
