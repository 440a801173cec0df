package bottles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"finitefield.org/venue-admin/internal/admin/venue"
	"finitefield.org/venue-admin/internal/platform/ids"
	"finitefield.org/venue-admin/internal/platform/observability"
	"finitefield.org/venue-admin/internal/platform/observability/metrictest"
)

func sampleBottles() []Bottle {
	return []Bottle{
		{ID: "btl-dom", Name: "Dom Pérignon Vintage 2012", Category: CategoryChampagne, Price: 45000, Stock: 5, MinStock: 3, Sold: 23, Supplier: "Premium Wines Co.", LastOrdered: "2024-01-10"},
		{ID: "btl-hennessy", Name: "Hennessy XO", Category: CategoryWhiskey, Price: 35000, Stock: 8, MinStock: 5, Sold: 31},
		{ID: "btl-macallan", Name: "Macallan 18 Year", Category: CategoryWhiskey, Price: 55000, Stock: 2, MinStock: 3, Sold: 15},
		{ID: "btl-dassai", Name: "Dassai 23", Category: CategorySake, Price: 18000, Stock: 12, MinStock: 8, Sold: 42},
		{ID: "btl-opus", Name: "Opus One 2018", Category: CategoryWine, Price: 65000, Stock: 3, MinStock: 2, Sold: 8},
		{ID: "btl-cristal", Name: "Cristal Rosé 2013", Category: CategoryChampagne, Price: 75000, Stock: 1, MinStock: 2, Sold: 12},
	}
}

func newTestService() *StaticService {
	return NewStaticService(Deps{IDGenerator: ids.Sequence("btl")}, sampleBottles()...)
}

func TestIsLowStockBoundary(t *testing.T) {
	t.Parallel()

	require.True(t, IsLowStock(Bottle{Stock: 3, MinStock: 3}))
	require.True(t, IsLowStock(Bottle{Stock: 2, MinStock: 3}))
	require.False(t, IsLowStock(Bottle{Stock: 4, MinStock: 3}))
}

func TestAdjustStockClampsAtZero(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	view, err := svc.AdjustStock(ctx, "btl-cristal", -1)
	require.NoError(t, err)
	require.Zero(t, view.Stock)

	view, err = svc.AdjustStock(ctx, "btl-cristal", -1)
	require.NoError(t, err)
	require.Zero(t, view.Stock)
	require.True(t, view.LowStock)

	view, err = svc.AdjustStock(ctx, "btl-cristal", 40)
	require.NoError(t, err)
	require.Equal(t, 40, view.Stock)
	require.False(t, view.LowStock)
	require.Equal(t, int64(3000000), view.TotalValue)

	_, err = svc.AdjustStock(ctx, "btl-cristal", 0)
	require.ErrorIs(t, err, ErrZeroAdjustment)

	_, err = svc.AdjustStock(ctx, "btl-none", 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListFilters(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	all, err := svc.List(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all.Bottles, 6)
	require.Equal(t, 2, all.LowStock)
	require.Equal(t, "シャンパン", all.Bottles[0].CategoryLabel)

	low, err := svc.List(ctx, Query{LowStockOnly: true})
	require.NoError(t, err)
	require.Len(t, low.Bottles, 2)

	whiskey, err := svc.List(ctx, Query{Category: CategoryWhiskey})
	require.NoError(t, err)
	require.Len(t, whiskey.Bottles, 2)

	_, err = svc.List(ctx, Query{Category: "beer"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalytics(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	a, err := svc.Analytics(context.Background())
	require.NoError(t, err)

	require.Equal(t, 6, a.Bottles)
	require.Equal(t, 31, a.TotalStock)
	require.Equal(t, int64(1101000), a.TotalValue)
	require.Equal(t, 131, a.TotalSold)
	require.Len(t, a.LowStock, 2)

	require.Equal(t, CategoryChampagne, a.Categories[0].Category)
	require.Equal(t, 35, a.Categories[0].Units)
	require.Equal(t, int64(1935000), a.Categories[0].Revenue)
	require.Zero(t, a.Categories[4].Units)

	require.Equal(t, "Dassai 23", a.Ranking[0].Name)
	require.Equal(t, 1, a.Ranking[0].Rank)
	require.Equal(t, "Opus One 2018", a.Ranking[5].Name)
}

func TestCreateAndDelete(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Name: "Armand de Brignac", Category: CategoryChampagne, Price: 120000, Stock: 2, MinStock: 1, LastOrdered: "2024-01-13"})
	require.NoError(t, err)
	require.Equal(t, "btl_1", created.ID)
	require.False(t, created.LowStock)

	_, err = svc.Create(ctx, CreateRequest{Name: "Bad", Category: CategoryWine, Price: -1})
	require.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.Delete(ctx, "btl_1"))
	require.ErrorIs(t, svc.Delete(ctx, "btl_1"), ErrNotFound)
}

func TestAdjustStockRecordsMetric(t *testing.T) {
	t.Parallel()

	rec := metrictest.New(t)
	svc := NewStaticService(Deps{Runtime: venue.Runtime{Metrics: rec.Metrics}, IDGenerator: ids.Sequence("btl")}, sampleBottles()...)
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, "btl-dom", 1)
	require.NoError(t, err)
	_, err = svc.AdjustStock(ctx, "btl-dom", -1)
	require.NoError(t, err)
	_, err = svc.AdjustStock(ctx, "btl-dom", 0)
	require.ErrorIs(t, err, ErrZeroAdjustment)

	require.Equal(t, int64(2), rec.Sum(t, observability.MetricStockAdjustments, attribute.String("bottle", "btl-dom")))
	require.Equal(t, int64(1), rec.Sum(t, observability.MetricStockAdjustments, attribute.Bool("increase", true)))
}
