package orders

import (
	"fmt"
	"strconv"

	"finitefield.org/venue-admin/internal/admin/format"
	adminorders "finitefield.org/venue-admin/internal/admin/orders"
	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// PageData is the orders screen payload.
type PageData struct {
	Title       string
	Stats       []partials.StatCard
	Menu        []MenuRow
	Orders      LogData
	MenuMessage string
}

// MenuRow is one menu entry.
type MenuRow struct {
	ID           string
	Name         string
	Category     partials.BadgeView
	Price        string
	Stock        string
	Availability partials.BadgeView
}

// LogData is an order log table, reused by the dashboard.
type LogData struct {
	ID           string
	Rows         []LogRow
	EmptyMessage string
}

// LogRow is one committed order line.
type LogRow struct {
	ID       string
	Time     string
	TableID  string
	Item     string
	Quantity string
	Staff    string
	Subtotal string
}

// BuildPageData prepares the orders screen.
func BuildPageData(title string, menu []adminorders.MenuItem, log adminorders.ListResult) PageData {
	return PageData{
		Title: title,
		Stats: []partials.StatCard{
			{ID: "order-total", Label: "注文合計", Value: format.Yen(log.Total), Note: fmt.Sprintf("%d件", len(log.Orders))},
		},
		Menu:        toMenuRows(menu),
		Orders:      LogPayload("orders-table", log.Orders),
		MenuMessage: "メニューがありません。",
	}
}

// LogPayload prepares an order log table with the given element id.
func LogPayload(id string, lines []adminorders.OrderLine) LogData {
	rows := make([]LogRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, LogRow{
			ID:       line.ID,
			Time:     format.Clock(line.OrderedAt),
			TableID:  line.TableID,
			Item:     line.Item.Name,
			Quantity: "×" + strconv.Itoa(line.Quantity),
			Staff:    line.StaffName,
			Subtotal: format.Yen(line.Subtotal),
		})
	}
	return LogData{ID: id, Rows: rows, EmptyMessage: "注文はまだありません。"}
}

func toMenuRows(menu []adminorders.MenuItem) []MenuRow {
	rows := make([]MenuRow, 0, len(menu))
	for _, item := range menu {
		stock := "-"
		if item.Stock != nil {
			stock = strconv.Itoa(*item.Stock)
		}
		availability := partials.BadgeView{Label: "提供可", Tone: "success"}
		if !item.InStock() {
			availability = partials.BadgeView{Label: "在庫切れ", Tone: "danger"}
		}
		rows = append(rows, MenuRow{
			ID:           item.ID,
			Name:         item.Name,
			Category:     partials.BadgeView{Label: item.Category.Label(), Tone: item.Category.Tone()},
			Price:        format.Yen(item.Price),
			Stock:        stock,
			Availability: availability,
		})
	}
	return rows
}
