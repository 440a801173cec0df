// Package navigation defines the fixed set of admin views.
package navigation

import "strings"

// View identifies an admin screen.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewTables    View = "tables"
	ViewOrders    View = "orders"
	ViewStaff     View = "staff"
	ViewPayroll   View = "payroll"
	ViewBottles   View = "bottles"
	ViewShifts    View = "shifts"
)

// Default is the view shown when none is selected.
const Default = ViewDashboard

var views = []struct {
	view  View
	label string
	icon  string
}{
	{ViewDashboard, "ダッシュボード", "chart"},
	{ViewTables, "テーブル管理", "table"},
	{ViewOrders, "注文管理", "cart"},
	{ViewStaff, "スタッフ管理", "users"},
	{ViewPayroll, "給与計算", "yen"},
	{ViewBottles, "ボトル管理", "bottle"},
	{ViewShifts, "シフト管理", "calendar"},
}

// Item is a rendered navigation entry.
type Item struct {
	View   View   `json:"view"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// Views returns all views in display order.
func Views() []View {
	out := make([]View, len(views))
	for i, v := range views {
		out[i] = v.view
	}
	return out
}

// Label returns the display label of v.
func (v View) Label() string {
	for _, entry := range views {
		if entry.view == v {
			return entry.label
		}
	}
	return ""
}

// Items returns the navigation list under basePath with active marked.
// The dashboard links to basePath itself.
func Items(basePath string, active View) []Item {
	base := strings.TrimRight(basePath, "/")
	items := make([]Item, len(views))
	for i, entry := range views {
		href := base + "/" + string(entry.view)
		if entry.view == Default {
			href = base
			if href == "" {
				href = "/"
			}
		}
		items[i] = Item{
			View:   entry.view,
			Label:  entry.label,
			Icon:   entry.icon,
			Href:   href,
			Active: entry.view == active,
		}
	}
	return items
}

// Resolve maps a path segment to a view. Empty segments resolve to the
// default view; unknown segments return the default with ok=false.
func Resolve(segment string) (View, bool) {
	segment = strings.ToLower(strings.Trim(segment, "/ "))
	if segment == "" {
		return Default, true
	}
	for _, entry := range views {
		if string(entry.view) == segment {
			return entry.view, true
		}
	}
	return Default, false
}
