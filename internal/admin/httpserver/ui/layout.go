package ui

import (
	"github.com/a-h/templ"

	"finitefield.org/venue-admin/internal/admin/format"
	"finitefield.org/venue-admin/internal/admin/navigation"
	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// Page is the data of the admin page shell.
type Page struct {
	Title       string
	VenueName   string
	Environment string
	Nav         []navigation.Item
	Flash       string
	Body        templ.Component
}

// Layout renders the page shell with navigation.
func Layout(page Page) templ.Component {
	return partials.Component(func(p *partials.Writer) {
		p.Raw(`<!DOCTYPE html><html lang="ja"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		p.Textf("%s | %s", page.Title, page.VenueName)
		p.Raw(`</title></head><body class="bg-slate-50 text-slate-900"><div class="flex min-h-screen">`)

		p.Raw(`<nav class="w-56 border-r border-slate-200 bg-white p-4" aria-label="メイン"><p class="mb-4 font-bold">`)
		p.Text(page.VenueName)
		p.Raw(` <span class="env-badge text-xs text-slate-500">`)
		p.Text(page.Environment)
		p.Raw(`</span></p><ul class="space-y-1">`)
		for _, item := range page.Nav {
			p.Raw(`<li><a`)
			p.Attr("href", item.Href)
			p.Attr("class", format.NavClass(item.Active))
			p.Attr("data-view", string(item.View))
			if item.Active {
				p.Raw(` aria-current="page"`)
			}
			p.Raw(`>`)
			p.Text(item.Label)
			p.Raw(`</a></li>`)
		}
		p.Raw(`</ul></nav>`)

		p.Raw(`<main class="flex-1 p-8"><h1 class="text-2xl font-bold">`)
		p.Text(page.Title)
		p.Raw(`</h1>`)
		if page.Flash != "" {
			p.Raw(`<div class="flash mt-4 rounded-md bg-rose-50 p-3 text-rose-700" role="alert">`)
			p.Text(page.Flash)
			p.Raw(`</div>`)
		}
		p.Render(page.Body)
		p.Raw(`</main></div></body></html>`)
	})
}

// NotFound renders the body shown for unknown views.
func NotFound(path string) templ.Component {
	return partials.Component(func(p *partials.Writer) {
		p.Raw(`<p class="not-found mt-4 text-slate-600">`)
		p.Textf("%s は見つかりませんでした。", path)
		p.Raw(`</p>`)
	})
}
