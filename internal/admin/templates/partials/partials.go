// Package partials holds the markup shared by every admin screen.
package partials

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"finitefield.org/venue-admin/internal/admin/format"
)

var (
	markdown  = goldmark.New()
	ugcPolicy = bluemonday.UGCPolicy()
)

// Writer accumulates the first write error so components read top to bottom.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

// Raw writes trusted markup.
func (p *Writer) Raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

// Text writes escaped text.
func (p *Writer) Text(s string) {
	p.Raw(templ.EscapeString(s))
}

// Textf formats then escapes.
func (p *Writer) Textf(format string, args ...any) {
	p.Text(fmt.Sprintf(format, args...))
}

// Attr writes name="value" with the value escaped, preceded by a space.
func (p *Writer) Attr(name, value string) {
	p.Raw(` ` + name + `="` + templ.EscapeString(value) + `"`)
}

// Render writes a child component.
func (p *Writer) Render(c templ.Component) {
	if p.err == nil && c != nil {
		p.err = c.Render(p.ctx, p.w)
	}
}

// Component adapts a writer callback into a templ component.
func Component(fn func(p *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &Writer{ctx: ctx, w: w}
		fn(p)
		return p.err
	})
}

// BadgeView is a status label with its semantic tone.
type BadgeView struct {
	Label string
	Tone  string
}

// StatCard is a labelled figure in a summary strip.
type StatCard struct {
	ID    string
	Label string
	Value string
	Note  string
}

// Text renders escaped plain text.
func Text(value string) templ.Component {
	return Component(func(p *Writer) { p.Text(value) })
}

// Badge renders a status label with its tone.
func Badge(b BadgeView) templ.Component {
	return Component(func(p *Writer) {
		p.Raw(`<span`)
		p.Attr("class", format.BadgeClass(b.Tone))
		p.Attr("data-tone", b.Tone)
		p.Raw(`>`)
		p.Text(b.Label)
		p.Raw(`</span>`)
	})
}

// Markdown renders src as sanitised HTML. Blank input renders nothing.
func Markdown(src string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if strings.TrimSpace(src) == "" {
			return nil
		}
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(src), &buf); err != nil {
			return err
		}
		_, err := w.Write(ugcPolicy.SanitizeBytes(buf.Bytes()))
		return err
	})
}

// Table renders a data table. Each row holds one component per header.
func Table(id string, headers []string, rows [][]templ.Component, empty string) templ.Component {
	return Component(func(p *Writer) {
		p.Raw(`<table`)
		p.Attr("id", id)
		p.Raw(` class="min-w-full divide-y divide-slate-200 text-sm"><thead><tr>`)
		for _, h := range headers {
			p.Raw(`<th scope="col" class="px-3 py-2 text-left font-semibold text-slate-600">`)
			p.Text(h)
			p.Raw(`</th>`)
		}
		p.Raw(`</tr></thead><tbody>`)
		if len(rows) == 0 {
			p.Raw(fmt.Sprintf(`<tr><td class="px-3 py-4 text-center text-slate-500" colspan="%d">`, len(headers)))
			p.Text(empty)
			p.Raw(`</td></tr>`)
		}
		for _, row := range rows {
			p.Raw(`<tr>`)
			for _, cell := range row {
				p.Raw(`<td class="px-3 py-2">`)
				p.Render(cell)
				p.Raw(`</td>`)
			}
			p.Raw(`</tr>`)
		}
		p.Raw(`</tbody></table>`)
	})
}

// Stats renders a row of summary cards.
func Stats(stats []StatCard) templ.Component {
	return Component(func(p *Writer) {
		p.Raw(`<div class="grid grid-cols-2 gap-4 md:grid-cols-4">`)
		for _, s := range stats {
			p.Raw(`<div class="stat rounded-lg border border-slate-200 p-4"`)
			p.Attr("data-stat", s.ID)
			p.Raw(`><p class="stat-label text-xs text-slate-500">`)
			p.Text(s.Label)
			p.Raw(`</p><p class="stat-value text-2xl font-semibold">`)
			p.Text(s.Value)
			p.Raw(`</p>`)
			if s.Note != "" {
				p.Raw(`<p class="stat-note text-xs text-slate-500">`)
				p.Text(s.Note)
				p.Raw(`</p>`)
			}
			p.Raw(`</div>`)
		}
		p.Raw(`</div>`)
	})
}

// Section wraps body under a heading.
func Section(id, heading string, body templ.Component) templ.Component {
	return Component(func(p *Writer) {
		p.Raw(`<section`)
		p.Attr("id", id)
		p.Raw(` class="mt-8"><h2 class="mb-3 text-lg font-semibold">`)
		p.Text(heading)
		p.Raw(`</h2>`)
		p.Render(body)
		p.Raw(`</section>`)
	})
}

// Group renders components one after another.
func Group(children ...templ.Component) templ.Component {
	return Component(func(p *Writer) {
		for _, c := range children {
			p.Render(c)
		}
	})
}

// Dash substitutes "-" for blank values.
func Dash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
