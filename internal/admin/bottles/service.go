package bottles

import (
	"context"
	"errors"

	"finitefield.org/venue-admin/internal/admin/venue"
)

// Service manages bottle inventory.
type Service interface {
	// List returns bottles matching the query.
	List(ctx context.Context, query Query) (ListResult, error)

	// Get returns a single bottle.
	Get(ctx context.Context, id string) (View, error)

	// Create adds a bottle to the inventory.
	Create(ctx context.Context, req CreateRequest) (View, error)

	// AdjustStock changes the stock by delta, never going below zero.
	AdjustStock(ctx context.Context, id string, delta int) (View, error)

	// Delete removes a bottle.
	Delete(ctx context.Context, id string) error

	// Analytics aggregates stock, value and sales.
	Analytics(ctx context.Context) (Analytics, error)
}

// Category classifies a bottle.
type Category string

const (
	CategoryChampagne Category = "champagne"
	CategoryWhiskey   Category = "whiskey"
	CategorySake      Category = "sake"
	CategoryWine      Category = "wine"
	CategoryOther     Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryChampagne, CategoryWhiskey, CategorySake, CategoryWine, CategoryOther}

var categoryMeta = map[Category]venue.Display{
	CategoryChampagne: {Label: "シャンパン", Tone: "warning"},
	CategoryWhiskey:   {Label: "ウイスキー", Tone: "accent"},
	CategorySake:      {Label: "日本酒", Tone: "info"},
	CategoryWine:      {Label: "ワイン", Tone: "danger"},
	CategoryOther:     {Label: "その他", Tone: "muted"},
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryMeta[c]
	return ok
}

// Label returns the display label.
func (c Category) Label() string {
	if meta, ok := categoryMeta[c]; ok {
		return meta.Label
	}
	return string(c)
}

// Tone returns the badge tone.
func (c Category) Tone() string {
	if meta, ok := categoryMeta[c]; ok {
		return meta.Tone
	}
	return "muted"
}

var (
	// ErrNotFound is returned when a bottle does not exist.
	ErrNotFound = errors.New("bottles: bottle not found")
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("bottles: invalid input")
	// ErrZeroAdjustment is returned when a stock adjustment has no effect requested.
	ErrZeroAdjustment = errors.New("bottles: stock adjustment must be non-zero")
)

// Bottle is a product kept in stock.
type Bottle struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	Price       int64    `json:"price" yaml:"price"`
	Stock       int      `json:"stock" yaml:"stock"`
	MinStock    int      `json:"minStock" yaml:"minStock"`
	Sold        int      `json:"sold" yaml:"sold"`
	Supplier    string   `json:"supplier,omitempty" yaml:"supplier"`
	Description string   `json:"description,omitempty" yaml:"description"`
	LastOrdered string   `json:"lastOrdered,omitempty" yaml:"lastOrdered"`
}

// IsLowStock reports whether stock is at or below the reorder threshold.
func IsLowStock(b Bottle) bool {
	return b.Stock <= b.MinStock
}

// TotalValue returns price × stock.
func TotalValue(b Bottle) int64 {
	return b.Price * int64(b.Stock)
}

// View adds derived fields.
type View struct {
	Bottle
	CategoryLabel string `json:"categoryLabel"`
	LowStock      bool   `json:"lowStock"`
	TotalValue    int64  `json:"totalValue"`
}

// Query filters List.
type Query struct {
	Category     Category
	LowStockOnly bool
}

// ListResult is returned by List.
type ListResult struct {
	Bottles  []View `json:"bottles"`
	LowStock int    `json:"lowStock"`
}

// CreateRequest adds a bottle.
type CreateRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Category    Category `json:"category" validate:"required,oneof=champagne whiskey sake wine other"`
	Price       int64    `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	MinStock    int      `json:"minStock" validate:"gte=0"`
	Supplier    string   `json:"supplier" validate:"max=120"`
	Description string   `json:"description" validate:"max=2000"`
	LastOrdered string   `json:"lastOrdered" validate:"omitempty,isodate"`
}

// CategoryStat aggregates sales of one category.
type CategoryStat struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Units    int      `json:"units"`
	Revenue  int64    `json:"revenue"`
	Stock    int      `json:"stock"`
}

// RankEntry is a position in the sales ranking.
type RankEntry struct {
	Rank    int    `json:"rank"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Sold    int    `json:"sold"`
	Revenue int64  `json:"revenue"`
}

// Analytics summarises the inventory.
type Analytics struct {
	Bottles    int            `json:"bottles"`
	TotalStock int            `json:"totalStock"`
	TotalValue int64          `json:"totalValue"`
	TotalSold  int            `json:"totalSold"`
	LowStock   []View         `json:"lowStock"`
	Categories []CategoryStat `json:"categories"`
	Ranking    []RankEntry    `json:"ranking"`
}
