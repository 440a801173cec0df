package orders

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"finitefield.org/venue-admin/internal/admin/venue"
	"finitefield.org/venue-admin/internal/platform/ids"
	"finitefield.org/venue-admin/internal/platform/observability"
	"finitefield.org/venue-admin/internal/platform/validation"
)

// Deps are the collaborators of StaticService.
type Deps struct {
	Runtime     venue.Runtime
	IDGenerator ids.Generator
}

// StaticService keeps the menu, carts and order log in memory.
type StaticService struct {
	mu        sync.RWMutex
	rt        venue.Runtime
	newID     ids.Generator
	menu      map[string]MenuItem
	menuOrder []string
	carts     map[string]*Cart
	log       []OrderItem
}

// NewStaticService returns a StaticService with the given menu and existing order log.
func NewStaticService(deps Deps, menu []MenuItem, log ...OrderItem) *StaticService {
	if deps.IDGenerator == nil {
		deps.IDGenerator = ids.New("ord")
	}
	s := &StaticService{
		rt:    deps.Runtime.WithDefaults().Named("orders"),
		newID: deps.IDGenerator,
		menu:  make(map[string]MenuItem, len(menu)),
		carts: make(map[string]*Cart),
		log:   append([]OrderItem(nil), log...),
	}
	for _, item := range menu {
		s.menu[item.ID] = cloneMenuItem(item)
		s.menuOrder = append(s.menuOrder, item.ID)
	}
	return s
}

// Menu implements Service.
func (s *StaticService) Menu(_ context.Context, category Category) ([]MenuItem, error) {
	if category != "" && !category.Valid() {
		return nil, validation.Field(ErrInvalidInput, "category", "unknown category")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MenuItem, 0, len(s.menuOrder))
	for _, id := range s.menuOrder {
		item := s.menu[id]
		if category != "" && item.Category != category {
			continue
		}
		out = append(out, cloneMenuItem(item))
	}
	return out, nil
}

// Cart implements Service.
func (s *StaticService) Cart(_ context.Context, tableID string) (CartView, error) {
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return CartView{}, validation.Field(ErrInvalidInput, "tableId", "is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewLocked(tableID), nil
}

// AddToCart implements Service.
func (s *StaticService) AddToCart(_ context.Context, tableID, itemID string, qty int) (CartView, error) {
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return CartView{}, validation.Field(ErrInvalidInput, "tableId", "is required")
	}
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return CartView{}, validation.Field(ErrInvalidInput, "quantity", "must be at least 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.menu[itemID]
	if !ok {
		return CartView{}, ErrMenuItemNotFound
	}
	if !item.InStock() {
		return CartView{}, ErrOutOfStock
	}
	cart, ok := s.carts[tableID]
	if !ok {
		cart = &Cart{}
		s.carts[tableID] = cart
	}
	cart.Add(itemID, qty)
	return s.viewLocked(tableID), nil
}

// RemoveFromCart implements Service.
func (s *StaticService) RemoveFromCart(_ context.Context, tableID, itemID string) (CartView, error) {
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return CartView{}, validation.Field(ErrInvalidInput, "tableId", "is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.menu[itemID]; !ok {
		return CartView{}, ErrMenuItemNotFound
	}
	if cart, ok := s.carts[tableID]; ok {
		cart.Remove(itemID)
		if cart.Empty() {
			delete(s.carts, tableID)
		}
	}
	return s.viewLocked(tableID), nil
}

// ClearCart implements Service.
func (s *StaticService) ClearCart(_ context.Context, tableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, strings.TrimSpace(tableID))
	return nil
}

// Commit implements Service.
func (s *StaticService) Commit(ctx context.Context, req CommitRequest) (CommitResult, error) {
	req.TableID = strings.TrimSpace(req.TableID)
	req.StaffName = strings.TrimSpace(req.StaffName)
	if err := validation.Check(req, ErrInvalidInput); err != nil {
		return CommitResult{}, err
	}
	now := s.rt.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[req.TableID]
	if !ok || cart.Empty() {
		return CommitResult{Orders: []OrderLine{}}, nil
	}

	result := CommitResult{Orders: make([]OrderLine, 0, cart.Len())}
	for _, entry := range cart.Entries() {
		order := OrderItem{
			ID:        s.newID(),
			Item:      cloneMenuItem(s.menu[entry.ItemID]),
			Quantity:  entry.Quantity,
			TableID:   req.TableID,
			StaffName: req.StaffName,
			OrderedAt: now,
		}
		s.log = append(s.log, order)
		line := newOrderLine(order)
		result.Orders = append(result.Orders, line)
		result.Total += line.Subtotal
	}
	delete(s.carts, req.TableID)

	s.rt.Metrics.Add(ctx, observability.MetricOrdersCommitted, int64(len(result.Orders)), attribute.String("table", req.TableID))
	s.rt.Metrics.Add(ctx, observability.MetricOrderRevenue, result.Total, attribute.String("table", req.TableID))
	s.rt.Logger.Info("order committed",
		zap.String("table_id", req.TableID),
		zap.String("staff", req.StaffName),
		zap.Int("lines", len(result.Orders)),
		zap.Int64("total", result.Total),
	)
	return result, nil
}

// List implements Service.
func (s *StaticService) List(_ context.Context, query Query) (ListResult, error) {
	s.mu.RLock()
	lines := make([]OrderLine, 0, len(s.log))
	for _, order := range s.log {
		if query.TableID != "" && order.TableID != query.TableID {
			continue
		}
		if query.StaffName != "" && !strings.EqualFold(order.StaffName, query.StaffName) {
			continue
		}
		lines = append(lines, newOrderLine(order))
	}
	s.mu.RUnlock()

	// newest first; the log is append-only so ties keep reverse insertion order
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].OrderedAt.After(lines[j].OrderedAt)
	})

	var total int64
	for _, line := range lines {
		total += line.Subtotal
	}
	if query.Limit > 0 && len(lines) > query.Limit {
		lines = lines[:query.Limit]
	}
	return ListResult{Orders: lines, Total: total}, nil
}

// Sales implements Service.
func (s *StaticService) Sales(_ context.Context, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, order := range s.log {
		if order.OrderedAt.Before(since) {
			continue
		}
		total += order.Subtotal()
	}
	return total, nil
}

func (s *StaticService) viewLocked(tableID string) CartView {
	view := CartView{TableID: tableID, Lines: []CartLine{}}
	cart, ok := s.carts[tableID]
	if !ok {
		return view
	}
	for _, entry := range cart.Entries() {
		item := s.menu[entry.ItemID]
		line := CartLine{
			Item:     cloneMenuItem(item),
			Quantity: entry.Quantity,
			Subtotal: item.Price * int64(entry.Quantity),
		}
		view.Lines = append(view.Lines, line)
		view.ItemCount += entry.Quantity
	}
	view.Total = cart.Total(s.menu)
	return view
}

func newOrderLine(order OrderItem) OrderLine {
	return OrderLine{
		OrderItem:     order,
		Subtotal:      order.Subtotal(),
		CategoryLabel: order.Item.Category.Label(),
	}
}

func cloneMenuItem(item MenuItem) MenuItem {
	if item.Stock != nil {
		stock := *item.Stock
		item.Stock = &stock
	}
	return item
}
