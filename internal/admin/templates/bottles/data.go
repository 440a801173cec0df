package bottles

import (
	"fmt"
	"strconv"

	adminbottles "finitefield.org/venue-admin/internal/admin/bottles"
	"finitefield.org/venue-admin/internal/admin/format"
	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// PageData is the inventory payload.
type PageData struct {
	Title          string
	Stats          []partials.StatCard
	Rows           []BottleRow
	EmptyMessage   string
	Ranking        []RankRow
	RankingMessage string
}

// BottleRow is one inventory line. Description stays Markdown source.
type BottleRow struct {
	ID          string
	Name        string
	Description string
	Category    partials.BadgeView
	Price       string
	Stock       string
	LowStock    bool
	Sold        string
	Value       string
	Supplier    string
}

// RankRow is one sales ranking line.
type RankRow struct {
	Rank    string
	Name    string
	Sold    string
	Revenue string
}

// BuildPageData prepares the inventory and its analytics.
func BuildPageData(title string, list adminbottles.ListResult, stats adminbottles.Analytics) PageData {
	return PageData{
		Title: title,
		Stats: []partials.StatCard{
			{ID: "total-stock", Label: "総在庫", Value: strconv.Itoa(stats.TotalStock) + "本"},
			{ID: "total-value", Label: "在庫金額", Value: format.Yen(stats.TotalValue)},
			{ID: "total-sold", Label: "販売数", Value: strconv.Itoa(stats.TotalSold) + "本"},
			{ID: "low-stock", Label: "在庫少", Value: strconv.Itoa(list.LowStock) + "件"},
		},
		Rows:           toBottleRows(list.Bottles),
		EmptyMessage:   "ボトルが登録されていません。",
		Ranking:        toRankRows(stats.Ranking),
		RankingMessage: "販売実績がありません。",
	}
}

func toBottleRows(list []adminbottles.View) []BottleRow {
	rows := make([]BottleRow, 0, len(list))
	for _, b := range list {
		rows = append(rows, BottleRow{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			Category:    partials.BadgeView{Label: b.CategoryLabel, Tone: b.Category.Tone()},
			Price:       format.Yen(b.Price),
			Stock:       fmt.Sprintf("%d / 最低 %d", b.Stock, b.MinStock),
			LowStock:    b.LowStock,
			Sold:        strconv.Itoa(b.Sold),
			Value:       format.Yen(b.TotalValue),
			Supplier:    partials.Dash(b.Supplier),
		})
	}
	return rows
}

func toRankRows(list []adminbottles.RankEntry) []RankRow {
	rows := make([]RankRow, 0, len(list))
	for _, r := range list {
		rows = append(rows, RankRow{
			Rank:    strconv.Itoa(r.Rank),
			Name:    r.Name,
			Sold:    strconv.Itoa(r.Sold),
			Revenue: format.Yen(r.Revenue),
		})
	}
	return rows
}
