package tables

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"finitefield.org/venue-admin/internal/admin/venue"
	"finitefield.org/venue-admin/internal/platform/ids"
	"finitefield.org/venue-admin/internal/platform/validation"
)

// Deps are the collaborators of StaticService.
type Deps struct {
	Runtime     venue.Runtime
	IDGenerator ids.Generator
}

// StaticService keeps the floor plan in memory.
type StaticService struct {
	mu     sync.RWMutex
	rt     venue.Runtime
	newID  ids.Generator
	tables map[string]*Table
	order  []string
}

// NewStaticService returns a StaticService holding the given tables in display order.
func NewStaticService(deps Deps, tables ...Table) *StaticService {
	if deps.IDGenerator == nil {
		deps.IDGenerator = ids.New("tbl")
	}
	s := &StaticService{
		rt:     deps.Runtime.WithDefaults().Named("tables"),
		newID:  deps.IDGenerator,
		tables: make(map[string]*Table, len(tables)),
	}
	for _, t := range tables {
		t := t
		if t.ID == "" {
			t.ID = s.newID()
		}
		if !t.Status.Valid() {
			t.Status = StatusAvailable
		}
		s.tables[t.ID] = &t
		s.order = append(s.order, t.ID)
	}
	return s
}

// List implements Service.
func (s *StaticService) List(_ context.Context, query Query) (ListResult, error) {
	if query.Status != "" && !query.Status.Valid() {
		return ListResult{}, validation.Field(ErrInvalidInput, "status", "unknown status")
	}
	now := s.rt.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := Summary{Counts: make(map[Status]int, len(Statuses))}
	for _, st := range Statuses {
		summary.Counts[st] = 0
	}
	views := make([]View, 0, len(s.order))
	for _, id := range s.order {
		t := s.tables[id]
		summary.Total++
		summary.Counts[t.Status]++
		if t.Status == StatusOccupied {
			summary.Occupied++
			summary.Customers += t.Customers
			summary.OpenBills += t.Bill
		}
		if query.Status != "" && t.Status != query.Status {
			continue
		}
		views = append(views, newView(*t, now))
	}
	return ListResult{Tables: views, Summary: summary}, nil
}

// Get implements Service.
func (s *StaticService) Get(_ context.Context, id string) (View, error) {
	now := s.rt.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[id]
	if !ok {
		return View{}, ErrNotFound
	}
	return newView(*t, now), nil
}

// Create implements Service.
func (s *StaticService) Create(_ context.Context, req CreateRequest) (View, error) {
	req.Number = strings.TrimSpace(req.Number)
	if err := validation.Check(req, ErrInvalidInput); err != nil {
		return View{}, err
	}
	status := req.Status
	if status == "" {
		status = StatusAvailable
	}
	now := s.rt.Now()

	t := Table{Number: req.Number, Status: status}
	if status == StatusReserved {
		t.Customers = req.Customers
		t.Staff = strings.TrimSpace(req.Staff)
		if at, ok := venue.ClockOn(now, req.ReservedAt); ok {
			t.StartedAt = &at
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tables {
		if strings.EqualFold(existing.Number, t.Number) {
			return View{}, ErrDuplicateNumber
		}
	}
	t.ID = s.newID()
	s.tables[t.ID] = &t
	s.order = append(s.order, t.ID)

	s.rt.Logger.Info("table created", zap.String("table_id", t.ID), zap.String("number", t.Number), zap.String("status", string(t.Status)))
	return newView(t, now), nil
}

// UpdateStatus implements Service. Entering occupied stamps the start time;
// leaving it settles and clears the bill.
func (s *StaticService) UpdateStatus(ctx context.Context, id string, req StatusUpdateRequest) (StatusUpdateResult, error) {
	if err := validation.Check(req, ErrInvalidInput); err != nil {
		return StatusUpdateResult{}, err
	}
	if !req.Status.Valid() {
		return StatusUpdateResult{}, validation.Field(ErrInvalidInput, "status", "unknown status")
	}
	now := s.rt.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[id]
	if !ok {
		return StatusUpdateResult{}, ErrNotFound
	}
	from := t.Status
	if from == req.Status {
		return StatusUpdateResult{}, &StatusTransitionError{From: from, To: req.Status, Reason: "table is already " + from.Label()}
	}
	if !CanTransition(from, req.Status) {
		return StatusUpdateResult{}, &StatusTransitionError{From: from, To: req.Status}
	}

	var closed int64
	switch {
	case req.Status == StatusOccupied:
		started := now
		t.StartedAt = &started
		if req.Customers > 0 {
			t.Customers = req.Customers
		}
		if staff := strings.TrimSpace(req.Staff); staff != "" {
			t.Staff = staff
		}
		if from != StatusReserved {
			t.Bill = 0
		}
	case from == StatusOccupied || from == StatusReserved:
		closed = t.Bill
		t.StartedAt = nil
		t.Customers = 0
		t.Staff = ""
		t.Bill = 0
	}
	t.Status = req.Status

	s.rt.Metrics.Transition(ctx, "tables", string(from), string(req.Status))
	s.rt.Logger.Info("table status changed",
		zap.String("table_id", t.ID),
		zap.String("from", string(from)),
		zap.String("to", string(t.Status)),
		zap.Int64("closed_bill", closed),
	)
	return StatusUpdateResult{Table: newView(*t, now), ClosedBill: closed}, nil
}

// AddCharge implements Service.
func (s *StaticService) AddCharge(_ context.Context, id string, amount int64) (View, error) {
	if amount <= 0 {
		return View{}, validation.Field(ErrInvalidInput, "amount", "must be greater than 0")
	}
	now := s.rt.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[id]
	if !ok {
		return View{}, ErrNotFound
	}
	if t.Status != StatusOccupied {
		return View{}, ErrTableNotOccupied
	}
	t.Bill += amount
	s.rt.Logger.Info("table charged", zap.String("table_id", id), zap.Int64("amount", amount), zap.Int64("bill", t.Bill))
	return newView(*t, now), nil
}

// Delete implements Service.
func (s *StaticService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[id]
	if !ok {
		return ErrNotFound
	}
	if t.Status == StatusOccupied {
		return ErrTableInUse
	}
	delete(s.tables, id)
	s.order = removeID(s.order, id)
	s.rt.Logger.Info("table deleted", zap.String("table_id", id))
	return nil
}

func newView(t Table, now time.Time) View {
	v := View{
		Table:        cloneTable(t),
		StatusLabel:  t.Status.Label(),
		StatusTone:   t.Status.Tone(),
		NextStatuses: NextStatuses(t.Status),
	}
	if t.Status == StatusOccupied && t.StartedAt != nil {
		minutes := int(now.Sub(*t.StartedAt) / time.Minute)
		if minutes < 0 {
			minutes = 0
		}
		v.DurationMinutes = minutes
		v.Duration = FormatDuration(minutes)
	}
	return v
}

func cloneTable(t Table) Table {
	if t.StartedAt != nil {
		started := *t.StartedAt
		t.StartedAt = &started
	}
	return t
}

func removeID(order []string, id string) []string {
	out := order[:0]
	for _, existing := range order {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
