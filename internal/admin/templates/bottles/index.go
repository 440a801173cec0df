package bottles

import (
	"github.com/a-h/templ"

	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

var lowStockBadge = partials.BadgeView{Label: "在庫少", Tone: "danger"}

// Index renders the inventory and its analytics.
func Index(page PageData) templ.Component {
	rows := make([][]templ.Component, 0, len(page.Rows))
	for _, b := range page.Rows {
		stock := partials.Text(b.Stock)
		if b.LowStock {
			stock = partials.Group(stock, partials.Text(" "), partials.Badge(lowStockBadge))
		}
		rows = append(rows, []templ.Component{
			partials.Group(partials.Text(b.Name), partials.Markdown(b.Description)),
			partials.Badge(b.Category),
			partials.Text(b.Price),
			stock,
			partials.Text(b.Sold),
			partials.Text(b.Value),
			partials.Text(b.Supplier),
		})
	}

	ranking := make([][]templ.Component, 0, len(page.Ranking))
	for _, r := range page.Ranking {
		ranking = append(ranking, []templ.Component{
			partials.Text(r.Rank),
			partials.Text(r.Name),
			partials.Text(r.Sold),
			partials.Text(r.Revenue),
		})
	}

	return partials.Group(
		partials.Stats(page.Stats),
		partials.Section("inventory", "在庫一覧", partials.Table("bottles-table",
			[]string{"銘柄", "カテゴリ", "価格", "在庫", "販売数", "在庫金額", "仕入先"}, rows, page.EmptyMessage)),
		partials.Section("ranking", "販売ランキング", partials.Table("ranking-table",
			[]string{"順位", "銘柄", "販売数", "売上"}, ranking, page.RankingMessage)),
	)
}
