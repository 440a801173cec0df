package orders

import (
	"context"
	"errors"
	"time"

	"finitefield.org/venue-admin/internal/admin/venue"
)

// Service manages the menu, per-table carts and the order log.
type Service interface {
	// Menu lists menu items, optionally restricted to a category.
	Menu(ctx context.Context, category Category) ([]MenuItem, error)

	// Cart returns the current cart of a table.
	Cart(ctx context.Context, tableID string) (CartView, error)

	// AddToCart adds qty units of a menu item to a table's cart.
	AddToCart(ctx context.Context, tableID, itemID string, qty int) (CartView, error)

	// RemoveFromCart removes one unit of a menu item from a table's cart.
	RemoveFromCart(ctx context.Context, tableID, itemID string) (CartView, error)

	// ClearCart discards a table's cart.
	ClearCart(ctx context.Context, tableID string) error

	// Commit appends one order line per cart entry and clears the cart.
	// Committing an empty cart creates nothing and is not an error.
	Commit(ctx context.Context, req CommitRequest) (CommitResult, error)

	// List returns the order log, newest first.
	List(ctx context.Context, query Query) (ListResult, error)

	// Sales sums order line subtotals placed at or after since.
	Sales(ctx context.Context, since time.Time) (int64, error)
}

// Category groups menu items.
type Category string

const (
	CategoryBottle  Category = "bottle"
	CategoryDrink   Category = "drink"
	CategoryFood    Category = "food"
	CategoryService Category = "service"
)

var categoryMeta = map[Category]venue.Display{
	CategoryBottle:  {Label: "ボトル", Tone: "danger"},
	CategoryDrink:   {Label: "ドリンク", Tone: "info"},
	CategoryFood:    {Label: "フード", Tone: "success"},
	CategoryService: {Label: "サービス", Tone: "accent"},
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
	// ErrMenuItemNotFound is returned for unknown menu item identifiers.
	ErrMenuItemNotFound = errors.New("orders: menu item not found")
	// ErrOutOfStock is returned when adding a stock-tracked item with no stock left.
	ErrOutOfStock = errors.New("orders: menu item out of stock")
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("orders: invalid input")
)

// MenuItem is something that can be ordered. Stock is tracked for bottles only.
type MenuItem struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Price    int64    `json:"price" yaml:"price"`
	Category Category `json:"category" yaml:"category"`
	Stock    *int     `json:"stock,omitempty" yaml:"stock"`
}

// InStock reports whether the item can be ordered.
func (m MenuItem) InStock() bool {
	return m.Stock == nil || *m.Stock > 0
}

// OrderItem is an immutable line of the order log.
type OrderItem struct {
	ID        string    `json:"id" yaml:"id"`
	Item      MenuItem  `json:"item" yaml:"item"`
	Quantity  int       `json:"quantity" yaml:"quantity"`
	TableID   string    `json:"tableId" yaml:"tableId"`
	StaffName string    `json:"staffName" yaml:"staffName"`
	OrderedAt time.Time `json:"orderedAt" yaml:"-"`
}

// Subtotal returns price × quantity.
func (o OrderItem) Subtotal() int64 {
	return o.Item.Price * int64(o.Quantity)
}

// CartLine is one priced cart entry.
type CartLine struct {
	Item     MenuItem `json:"item"`
	Quantity int      `json:"quantity"`
	Subtotal int64    `json:"subtotal"`
}

// CartView is the priced content of a table's cart.
type CartView struct {
	TableID   string     `json:"tableId"`
	Lines     []CartLine `json:"lines"`
	ItemCount int        `json:"itemCount"`
	Total     int64      `json:"total"`
}

// CommitRequest identifies the table and staff member placing the order.
type CommitRequest struct {
	TableID   string `json:"tableId" validate:"required,max=32"`
	StaffName string `json:"staffName" validate:"required,max=80"`
}

// CommitResult lists the order lines created by a commit.
type CommitResult struct {
	Orders []OrderLine `json:"orders"`
	Total  int64       `json:"total"`
}

// OrderLine is an order log entry with its subtotal.
type OrderLine struct {
	OrderItem
	Subtotal      int64  `json:"subtotal"`
	CategoryLabel string `json:"categoryLabel"`
}

// Query filters the order log.
type Query struct {
	TableID   string
	StaffName string
	Limit     int
}

// ListResult is returned by List.
type ListResult struct {
	Orders []OrderLine `json:"orders"`
	Total  int64       `json:"total"`
}
