package bottles

import (
	"context"
	"sort"
	"strings"
	"sync"

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

// StaticService keeps the inventory in memory.
type StaticService struct {
	mu      sync.RWMutex
	rt      venue.Runtime
	newID   ids.Generator
	bottles map[string]*Bottle
	order   []string
}

// NewStaticService returns a StaticService holding bottles in display order.
func NewStaticService(deps Deps, bottles ...Bottle) *StaticService {
	if deps.IDGenerator == nil {
		deps.IDGenerator = ids.New("btl")
	}
	s := &StaticService{
		rt:      deps.Runtime.WithDefaults().Named("bottles"),
		newID:   deps.IDGenerator,
		bottles: make(map[string]*Bottle, len(bottles)),
	}
	for _, b := range bottles {
		b := b
		if b.ID == "" {
			b.ID = s.newID()
		}
		if b.Stock < 0 {
			b.Stock = 0
		}
		s.bottles[b.ID] = &b
		s.order = append(s.order, b.ID)
	}
	return s
}

// List implements Service.
func (s *StaticService) List(_ context.Context, query Query) (ListResult, error) {
	if query.Category != "" && !query.Category.Valid() {
		return ListResult{}, validation.Field(ErrInvalidInput, "category", "unknown category")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := ListResult{Bottles: make([]View, 0, len(s.order))}
	for _, id := range s.order {
		b := *s.bottles[id]
		if IsLowStock(b) {
			result.LowStock++
		}
		if query.Category != "" && b.Category != query.Category {
			continue
		}
		if query.LowStockOnly && !IsLowStock(b) {
			continue
		}
		result.Bottles = append(result.Bottles, newView(b))
	}
	return result, nil
}

// Get implements Service.
func (s *StaticService) Get(_ context.Context, id string) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bottles[id]
	if !ok {
		return View{}, ErrNotFound
	}
	return newView(*b), nil
}

// Create implements Service.
func (s *StaticService) Create(_ context.Context, req CreateRequest) (View, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Check(req, ErrInvalidInput); err != nil {
		return View{}, err
	}
	b := Bottle{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Supplier:    strings.TrimSpace(req.Supplier),
		Description: strings.TrimSpace(req.Description),
		LastOrdered: req.LastOrdered,
	}

	s.mu.Lock()
	b.ID = s.newID()
	s.bottles[b.ID] = &b
	s.order = append(s.order, b.ID)
	s.mu.Unlock()

	s.rt.Logger.Info("bottle created", zap.String("bottle_id", b.ID), zap.String("category", string(b.Category)))
	return newView(b), nil
}

// AdjustStock implements Service. The result is clamped at zero; there is no upper bound.
func (s *StaticService) AdjustStock(ctx context.Context, id string, delta int) (View, error) {
	if delta == 0 {
		return View{}, ErrZeroAdjustment
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bottles[id]
	if !ok {
		return View{}, ErrNotFound
	}
	before := b.Stock
	b.Stock += delta
	if b.Stock < 0 {
		b.Stock = 0
	}

	s.rt.Metrics.Add(ctx, observability.MetricStockAdjustments, 1,
		attribute.String("bottle", id),
		attribute.Bool("increase", delta > 0),
	)
	fields := []zap.Field{
		zap.String("bottle_id", id),
		zap.Int("delta", delta),
		zap.Int("before", before),
		zap.Int("after", b.Stock),
	}
	if IsLowStock(*b) {
		s.rt.Logger.Warn("bottle stock low", append(fields, zap.Int("min_stock", b.MinStock))...)
	} else {
		s.rt.Logger.Info("stock adjusted", fields...)
	}
	return newView(*b), nil
}

// Delete implements Service.
func (s *StaticService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bottles[id]; !ok {
		return ErrNotFound
	}
	delete(s.bottles, id)
	out := s.order[:0]
	for _, existing := range s.order {
		if existing != id {
			out = append(out, existing)
		}
	}
	s.order = out
	s.rt.Logger.Info("bottle deleted", zap.String("bottle_id", id))
	return nil
}

// Analytics implements Service. Revenue is price × units sold.
func (s *StaticService) Analytics(_ context.Context) (Analytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := Analytics{LowStock: []View{}}
	byCategory := make(map[Category]*CategoryStat, len(Categories))
	for _, c := range Categories {
		byCategory[c] = &CategoryStat{Category: c, Label: c.Label()}
	}
	ranking := make([]RankEntry, 0, len(s.order))
	for _, id := range s.order {
		b := *s.bottles[id]
		revenue := b.Price * int64(b.Sold)
		out.Bottles++
		out.TotalStock += b.Stock
		out.TotalValue += TotalValue(b)
		out.TotalSold += b.Sold
		if IsLowStock(b) {
			out.LowStock = append(out.LowStock, newView(b))
		}
		stat, ok := byCategory[b.Category]
		if !ok {
			stat = byCategory[CategoryOther]
		}
		stat.Units += b.Sold
		stat.Revenue += revenue
		stat.Stock += b.Stock
		ranking = append(ranking, RankEntry{ID: b.ID, Name: b.Name, Sold: b.Sold, Revenue: revenue})
	}

	for _, c := range Categories {
		out.Categories = append(out.Categories, *byCategory[c])
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Sold != ranking[j].Sold {
			return ranking[i].Sold > ranking[j].Sold
		}
		return ranking[i].Name < ranking[j].Name
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
	}
	out.Ranking = ranking
	return out, nil
}

func newView(b Bottle) View {
	return View{
		Bottle:        b,
		CategoryLabel: b.Category.Label(),
		LowStock:      IsLowStock(b),
		TotalValue:    TotalValue(b),
	}
}
