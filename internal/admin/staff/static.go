package staff

import (
	"context"
	"math"
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

// StaticService keeps the roster in memory.
type StaticService struct {
	mu      sync.RWMutex
	rt      venue.Runtime
	newID   ids.Generator
	members map[string]*Member
	order   []string
}

// NewStaticService returns a StaticService holding members in display order.
func NewStaticService(deps Deps, members ...Member) *StaticService {
	if deps.IDGenerator == nil {
		deps.IDGenerator = ids.New("stf")
	}
	s := &StaticService{
		rt:      deps.Runtime.WithDefaults().Named("staff"),
		newID:   deps.IDGenerator,
		members: make(map[string]*Member, len(members)),
	}
	for _, m := range members {
		m := m
		if m.ID == "" {
			m.ID = s.newID()
		}
		if !m.Status.Valid() {
			m.Status = StatusOffDuty
		}
		s.members[m.ID] = &m
		s.order = append(s.order, m.ID)
	}
	return s
}

// List implements Service.
func (s *StaticService) List(_ context.Context, query Query) (ListResult, error) {
	if query.Status != "" && !query.Status.Valid() {
		return ListResult{}, validation.Field(ErrInvalidInput, "status", "unknown status")
	}
	if query.Position != "" && !query.Position.Valid() {
		return ListResult{}, validation.Field(ErrInvalidInput, "position", "unknown position")
	}
	now := s.rt.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		summary     Summary
		activeCast  int
		activeHours float64
		views       = make([]MemberView, 0, len(s.order))
	)
	for _, id := range s.order {
		m := *s.members[id]
		view := newView(m, now)
		summary.Total++
		if m.Status.OnDuty() {
			summary.OnDuty++
		}
		if m.Status == StatusBreak {
			summary.OnBreak++
		}
		if m.Position == PositionCast {
			summary.CastNominations += m.TodayNominations
			summary.CastSales += m.TodaySales
			summary.CastCommission += m.TodayBottleCommission
			if m.Status == StatusActive {
				activeCast++
				activeHours += float64(view.WorkingMinutes) / 60
			}
		}
		if query.Status != "" && m.Status != query.Status {
			continue
		}
		if query.Position != "" && m.Position != query.Position {
			continue
		}
		views = append(views, view)
	}
	if activeCast > 0 {
		summary.AverageCastHours = roundTenth(activeHours / float64(activeCast))
	}
	return ListResult{Members: views, Summary: summary}, nil
}

// Get implements Service.
func (s *StaticService) Get(_ context.Context, id string) (MemberView, error) {
	now := s.rt.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[id]
	if !ok {
		return MemberView{}, ErrNotFound
	}
	return newView(*m, now), nil
}

// Create implements Service.
func (s *StaticService) Create(_ context.Context, req CreateRequest) (MemberView, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Check(req, ErrInvalidInput); err != nil {
		return MemberView{}, err
	}
	status := req.Status
	if status == "" {
		status = StatusOffDuty
	}
	m := Member{
		Name:       req.Name,
		Status:     status,
		Position:   req.Position,
		ShiftStart: req.ShiftStart,
		HourlyRate: req.HourlyRate,
	}

	s.mu.Lock()
	m.ID = s.newID()
	s.members[m.ID] = &m
	s.order = append(s.order, m.ID)
	s.mu.Unlock()

	s.rt.Logger.Info("staff member created", zap.String("staff_id", m.ID), zap.String("position", string(m.Position)))
	return newView(m, s.rt.Now()), nil
}

// UpdateStatus implements Service. Only the status changes; the shift start is kept.
func (s *StaticService) UpdateStatus(ctx context.Context, id string, status Status) (MemberView, error) {
	if !status.Valid() {
		return MemberView{}, validation.Field(ErrInvalidInput, "status", "unknown status")
	}
	now := s.rt.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return MemberView{}, ErrNotFound
	}
	from := m.Status
	if from == status {
		return MemberView{}, &StatusTransitionError{From: from, To: status, Reason: "member is already " + from.Label()}
	}
	if !CanTransition(from, status) {
		return MemberView{}, &StatusTransitionError{From: from, To: status}
	}
	m.Status = status

	s.rt.Metrics.Transition(ctx, "staff", string(from), string(status))
	s.rt.Logger.Info("staff status changed",
		zap.String("staff_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
	)
	return newView(*m, now), nil
}

// RecordActivity implements Service.
func (s *StaticService) RecordActivity(_ context.Context, id string, req ActivityRequest) (MemberView, error) {
	if err := validation.Check(req, ErrInvalidInput); err != nil {
		return MemberView{}, err
	}
	now := s.rt.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return MemberView{}, ErrNotFound
	}
	m.TodayNominations += req.Nominations
	m.TodaySales += req.Sales
	m.TodayBottleCommission += req.BottleCommission

	s.rt.Logger.Info("staff activity recorded",
		zap.String("staff_id", id),
		zap.Int("nominations", req.Nominations),
		zap.Int64("sales", req.Sales),
		zap.Int64("bottle_commission", req.BottleCommission),
	)
	return newView(*m, now), nil
}

// Delete implements Service.
func (s *StaticService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return ErrNotFound
	}
	delete(s.members, id)
	out := s.order[:0]
	for _, existing := range s.order {
		if existing != id {
			out = append(out, existing)
		}
	}
	s.order = out
	s.rt.Logger.Info("staff member deleted", zap.String("staff_id", id))
	return nil
}

// WorkingMinutes returns the minutes elapsed since the member's shift start.
// A start later than now belongs to the previous day. Members without a start
// time or off duty report zero.
func WorkingMinutes(m Member, now time.Time) int {
	if !m.Status.OnDuty() {
		return 0
	}
	start, ok := venue.ClockOn(now, m.ShiftStart)
	if !ok {
		return 0
	}
	if start.After(now) {
		start = start.AddDate(0, 0, -1)
	}
	minutes := int(now.Sub(start) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

func newView(m Member, now time.Time) MemberView {
	minutes := WorkingMinutes(m, now)
	return MemberView{
		Member:         m,
		StatusLabel:    m.Status.Label(),
		StatusTone:     m.Status.Tone(),
		PositionLabel:  m.Position.Label(),
		WorkingMinutes: minutes,
		WorkingHours:   roundTenth(float64(minutes) / 60),
		NextStatuses:   NextStatuses(m.Status),
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
