package bottles

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	adminbottles "finitefield.org/venue-admin/internal/admin/bottles"
)

func TestIndexFlagsLowStock(t *testing.T) {
	t.Parallel()

	list := adminbottles.ListResult{
		Bottles: []adminbottles.View{
			{Bottle: adminbottles.Bottle{ID: "btl-1", Name: "Dom Pérignon", Category: adminbottles.CategoryChampagne, Price: 80000, Stock: 1, MinStock: 2, Description: "<script>x</script>"}, CategoryLabel: "シャンパン", LowStock: true, TotalValue: 80000},
			{Bottle: adminbottles.Bottle{ID: "btl-2", Name: "山崎12年", Category: adminbottles.CategoryWhiskey, Price: 30000, Stock: 5, MinStock: 2, Supplier: "酒販"}, CategoryLabel: "ウイスキー", TotalValue: 150000},
		},
		LowStock: 1,
	}
	stats := adminbottles.Analytics{
		TotalStock: 6,
		TotalValue: 230000,
		Ranking:    []adminbottles.RankEntry{{Rank: 1, Name: "山崎12年", Sold: 4, Revenue: 120000}},
	}

	page := BuildPageData("ボトル管理", list, stats)
	require.Equal(t, "1 / 最低 2", page.Rows[0].Stock)
	require.Equal(t, "-", page.Rows[0].Supplier)
	require.Equal(t, "1件", page.Stats[3].Value)
	require.Equal(t, "¥120,000", page.Ranking[0].Revenue)

	var buf bytes.Buffer
	require.NoError(t, Index(page).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	rows := doc.Find("#bottles-table tbody tr")
	require.Equal(t, 2, rows.Length())
	require.Equal(t, 1, rows.Eq(0).Find(`[data-tone="danger"]`).Length())
	require.Zero(t, rows.Eq(1).Find(`[data-tone="danger"]`).Length())
	require.Zero(t, doc.Find("script").Length())
	require.Equal(t, 1, doc.Find("#ranking-table tbody tr").Length())
}
