package dashboard

import (
	admindashboard "finitefield.org/venue-admin/internal/admin/dashboard"
	"finitefield.org/venue-admin/internal/admin/templates/orders"
	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// PageData represents the full dashboard SSR payload.
type PageData struct {
	Title        string
	KPIs         []partials.StatCard
	Alerts       AlertsData
	RecentOrders orders.LogData
}

// AlertsData holds the alerts list payload.
type AlertsData struct {
	Alerts       []AlertView
	EmptyMessage string
}

// AlertView represents a single alert entry.
type AlertView struct {
	ID        string
	Badge     partials.BadgeView
	Message   string
	ActionURL string
	Action    string
}

// BuildPageData prepares the template payload for SSR rendering.
func BuildPageData(title string, overview admindashboard.Overview) PageData {
	return PageData{
		Title:        title,
		KPIs:         toKPICards(overview.KPIs),
		Alerts:       AlertsData{Alerts: toAlertViews(overview.Alerts), EmptyMessage: "アラートはありません。"},
		RecentOrders: orders.LogPayload("recent-orders-table", overview.RecentOrders),
	}
}

// toKPICards converts service models.
func toKPICards(list []admindashboard.KPI) []partials.StatCard {
	result := make([]partials.StatCard, 0, len(list))
	for _, item := range list {
		result = append(result, partials.StatCard{
			ID:    item.ID,
			Label: item.Label,
			Value: item.Value,
			Note:  item.DeltaText,
		})
	}
	return result
}

// toAlertViews converts service models.
func toAlertViews(list []admindashboard.Alert) []AlertView {
	result := make([]AlertView, 0, len(list))
	for _, item := range list {
		result = append(result, AlertView{
			ID:        item.ID,
			Badge:     partials.BadgeView{Label: item.Title, Tone: item.Severity},
			Message:   item.Message,
			ActionURL: item.ActionURL,
			Action:    item.Action,
		})
	}
	return result
}
