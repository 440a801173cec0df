package orders

import (
	"github.com/a-h/templ"

	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// Index renders the menu and the order log.
func Index(page PageData) templ.Component {
	rows := make([][]templ.Component, 0, len(page.Menu))
	for _, item := range page.Menu {
		rows = append(rows, []templ.Component{
			partials.Text(item.Name),
			partials.Badge(item.Category),
			partials.Text(item.Price),
			partials.Text(item.Stock),
			partials.Badge(item.Availability),
		})
	}
	return partials.Group(
		partials.Stats(page.Stats),
		partials.Section("menu", "メニュー", partials.Table("menu-table",
			[]string{"商品", "カテゴリ", "価格", "在庫", "状態"}, rows, page.MenuMessage)),
		partials.Section("order-log", "注文履歴", Log(page.Orders)),
	)
}

// Log renders an order log table.
func Log(data LogData) templ.Component {
	rows := make([][]templ.Component, 0, len(data.Rows))
	for _, row := range data.Rows {
		rows = append(rows, []templ.Component{
			partials.Text(row.Time),
			partials.Text(row.TableID),
			partials.Text(row.Item),
			partials.Text(row.Quantity),
			partials.Text(row.Staff),
			partials.Text(row.Subtotal),
		})
	}
	return partials.Table(data.ID, []string{"時刻", "テーブル", "商品", "数量", "担当", "小計"}, rows, data.EmptyMessage)
}
