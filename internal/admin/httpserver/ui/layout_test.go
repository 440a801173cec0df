package ui

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"finitefield.org/venue-admin/internal/admin/navigation"
	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestLayoutMarksActiveView(t *testing.T) {
	doc := render(t, Layout(Page{
		Title:       "スタッフ管理",
		VenueName:   "Club",
		Environment: "staging",
		Nav:         navigation.Items("/admin", navigation.ViewStaff),
		Flash:       "注意",
		Body:        partials.Text("body"),
	}))

	require.Equal(t, "スタッフ管理 | Club", doc.Find("title").Text())
	active := doc.Find(`a[aria-current="page"]`)
	require.Equal(t, 1, active.Length())
	view, _ := active.Attr("data-view")
	require.Equal(t, "staff", view)
	require.Equal(t, "注意", doc.Find(`[role="alert"]`).Text())
}

func TestNotFoundEscapesPath(t *testing.T) {
	doc := render(t, NotFound("/admin/<x>"))

	require.Equal(t, "/admin/<x> は見つかりませんでした。", doc.Find(".not-found").Text())
	require.Zero(t, doc.Find("x").Length())
}
