package shifts

import (
	"context"
	"math"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"finitefield.org/venue-admin/internal/admin/venue"
	"finitefield.org/venue-admin/internal/platform/ids"
	"finitefield.org/venue-admin/internal/platform/validation"
)

const weekDays = 7

var weekdayLabels = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// Deps are the collaborators of StaticService.
type Deps struct {
	Runtime            venue.Runtime
	ShiftIDGenerator   ids.Generator
	RequestIDGenerator ids.Generator
}

// StaticService keeps shifts and shift requests in memory.
type StaticService struct {
	mu         sync.RWMutex
	rt         venue.Runtime
	newShiftID ids.Generator
	newReqID   ids.Generator
	shifts     map[string]*Shift
	requests   map[string]*Request
}

// NewStaticService returns a StaticService seeded with shifts and requests.
func NewStaticService(deps Deps, shifts []Shift, requests []Request) *StaticService {
	if deps.ShiftIDGenerator == nil {
		deps.ShiftIDGenerator = ids.New("sft")
	}
	if deps.RequestIDGenerator == nil {
		deps.RequestIDGenerator = ids.New("req")
	}
	s := &StaticService{
		rt:         deps.Runtime.WithDefaults().Named("shifts"),
		newShiftID: deps.ShiftIDGenerator,
		newReqID:   deps.RequestIDGenerator,
		shifts:     make(map[string]*Shift, len(shifts)),
		requests:   make(map[string]*Request, len(requests)),
	}
	for _, sh := range shifts {
		sh := sh
		if sh.ID == "" {
			sh.ID = s.newShiftID()
		}
		if !sh.Status.Valid() {
			sh.Status = StatusScheduled
		}
		s.shifts[sh.ID] = &sh
	}
	for _, req := range requests {
		req := req
		if req.ID == "" {
			req.ID = s.newReqID()
		}
		if !req.Status.Valid() {
			req.Status = RequestPending
		}
		req.Dates = append([]string(nil), req.Dates...)
		s.requests[req.ID] = &req
	}
	return s
}

// Week implements Service.
func (s *StaticService) Week(_ context.Context, query WeekQuery) (Week, error) {
	start, err := s.weekStart(query.Start)
	if err != nil {
		return Week{}, err
	}
	days := make([]Day, weekDays)
	index := make(map[string]int, weekDays)
	for i := range days {
		d := start.AddDate(0, 0, i)
		key := d.Format(time.DateOnly)
		days[i] = Day{Date: key, Weekday: weekdayLabels[d.Weekday()], Shifts: []ShiftView{}}
		index[key] = i
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		summary WeekSummary
		hours   = map[string]*StaffHours{}
	)
	for _, sh := range s.sortedShifts() {
		i, ok := index[sh.Date]
		if !ok {
			continue
		}
		days[i].Shifts = append(days[i].Shifts, newShiftView(sh))
		summary.ShiftsThisWeek++
		if sh.Status == StatusConfirmed {
			summary.Confirmed++
		}
		if sh.Status == StatusAbsent {
			continue
		}
		entry, ok := hours[sh.StaffID]
		if !ok {
			entry = &StaffHours{StaffID: sh.StaffID, StaffName: sh.StaffName}
			hours[sh.StaffID] = entry
		}
		entry.Shifts++
		entry.Hours += sh.Hours()
	}
	for _, req := range s.requests {
		if req.Status == RequestPending {
			summary.PendingRequests++
		}
	}

	staff := make([]StaffHours, 0, len(hours))
	for _, entry := range hours {
		entry.Hours = math.Round(entry.Hours*10) / 10
		staff = append(staff, *entry)
	}
	sort.Slice(staff, func(i, j int) bool {
		if staff[i].Hours != staff[j].Hours {
			return staff[i].Hours > staff[j].Hours
		}
		return staff[i].StaffName < staff[j].StaffName
	})

	return Week{
		Start:    days[0].Date,
		End:      days[weekDays-1].Date,
		Previous: start.AddDate(0, 0, -weekDays).Format(time.DateOnly),
		Next:     start.AddDate(0, 0, weekDays).Format(time.DateOnly),
		Days:     days,
		Summary:  summary,
		Staff:    staff,
	}, nil
}

// ListShifts implements Service.
func (s *StaticService) ListShifts(_ context.Context, query Query) ([]ShiftView, error) {
	if query.Status != "" && !query.Status.Valid() {
		return nil, validation.Field(ErrInvalidInput, "status", "unknown status")
	}
	for name, value := range map[string]string{"from": query.From, "to": query.To} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, value); err != nil {
			return nil, validation.Field(ErrInvalidInput, name, "must be a YYYY-MM-DD date")
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ShiftView, 0, len(s.shifts))
	for _, sh := range s.sortedShifts() {
		if query.From != "" && sh.Date < query.From {
			continue
		}
		if query.To != "" && sh.Date > query.To {
			continue
		}
		if query.StaffID != "" && sh.StaffID != query.StaffID {
			continue
		}
		if query.Status != "" && sh.Status != query.Status {
			continue
		}
		out = append(out, newShiftView(sh))
	}
	return out, nil
}

// CreateShift implements Service.
func (s *StaticService) CreateShift(_ context.Context, req CreateShiftRequest) (ShiftView, error) {
	req.StaffName = strings.TrimSpace(req.StaffName)
	req.Position = strings.TrimSpace(req.Position)
	if err := validation.Check(req, ErrInvalidInput); err != nil {
		return ShiftView{}, err
	}
	if req.Start == req.End {
		return ShiftView{}, validation.Field(ErrInvalidInput, "end", "must differ from start")
	}
	sh := Shift{
		StaffID:   req.StaffID,
		StaffName: req.StaffName,
		Date:      req.Date,
		Start:     req.Start,
		End:       req.End,
		Position:  req.Position,
		Status:    StatusScheduled,
		Note:      req.Note,
	}

	s.mu.Lock()
	sh.ID = s.newShiftID()
	s.shifts[sh.ID] = &sh
	s.mu.Unlock()

	s.rt.Logger.Info("shift scheduled",
		zap.String("shift_id", sh.ID),
		zap.String("staff_id", sh.StaffID),
		zap.String("date", sh.Date),
	)
	return newShiftView(sh), nil
}

// Confirm implements Service.
func (s *StaticService) Confirm(ctx context.Context, id string) (ShiftView, error) {
	return s.UpdateStatus(ctx, id, StatusConfirmed)
}

// UpdateStatus implements Service.
func (s *StaticService) UpdateStatus(ctx context.Context, id string, status Status) (ShiftView, error) {
	if !status.Valid() {
		return ShiftView{}, validation.Field(ErrInvalidInput, "status", "unknown status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shifts[id]
	if !ok {
		return ShiftView{}, ErrShiftNotFound
	}
	from := sh.Status
	if from == status {
		return ShiftView{}, &StatusTransitionError{Entity: "shift", From: string(from), To: string(status), Reason: "shift is already " + from.Label()}
	}
	if !CanTransition(from, status) {
		return ShiftView{}, &StatusTransitionError{Entity: "shift", From: string(from), To: string(status)}
	}
	sh.Status = status

	s.rt.Metrics.Transition(ctx, "shift", string(from), string(status))
	s.rt.Logger.Info("shift status changed",
		zap.String("shift_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
	)
	return newShiftView(*sh), nil
}

// Requests implements Service.
func (s *StaticService) Requests(_ context.Context, query RequestQuery) ([]RequestView, error) {
	if query.Status != "" && !query.Status.Valid() {
		return nil, validation.Field(ErrInvalidInput, "status", "unknown status")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RequestView, 0, len(s.requests))
	for _, req := range s.requests {
		if query.Status != "" && req.Status != query.Status {
			continue
		}
		out = append(out, newRequestView(*req))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SubmitRequest implements Service.
func (s *StaticService) SubmitRequest(_ context.Context, req SubmitRequest) (RequestView, error) {
	req.StaffName = strings.TrimSpace(req.StaffName)
	req.TimeRange = strings.TrimSpace(req.TimeRange)
	if err := validation.Check(req, ErrInvalidInput); err != nil {
		return RequestView{}, err
	}
	if !validTimeRange(req.TimeRange) {
		return RequestView{}, validation.Field(ErrInvalidInput, "timeRange", "must be HH:MM-HH:MM")
	}
	dates := append([]string(nil), req.Dates...)
	sort.Strings(dates)
	dates = slices.Compact(dates)
	r := Request{
		StaffID:     req.StaffID,
		StaffName:   req.StaffName,
		Dates:       dates,
		TimeRange:   req.TimeRange,
		Status:      RequestPending,
		Note:        req.Note,
		SubmittedAt: s.rt.Now(),
	}

	s.mu.Lock()
	r.ID = s.newReqID()
	s.requests[r.ID] = &r
	s.mu.Unlock()

	s.rt.Logger.Info("shift request submitted",
		zap.String("request_id", r.ID),
		zap.String("staff_id", r.StaffID),
		zap.Strings("dates", r.Dates),
	)
	return newRequestView(r), nil
}

// Approve implements Service.
func (s *StaticService) Approve(ctx context.Context, id string) (RequestView, error) {
	return s.decide(ctx, id, RequestApproved)
}

// Reject implements Service.
func (s *StaticService) Reject(ctx context.Context, id string) (RequestView, error) {
	return s.decide(ctx, id, RequestRejected)
}

func (s *StaticService) decide(ctx context.Context, id string, to RequestStatus) (RequestView, error) {
	now := s.rt.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return RequestView{}, ErrRequestNotFound
	}
	from := req.Status
	if !CanDecide(from) {
		return RequestView{}, &StatusTransitionError{
			Entity: "shift request",
			From:   string(from),
			To:     string(to),
			Reason: "request is already " + from.Label(),
		}
	}
	req.Status = to
	req.DecidedAt = &now

	s.rt.Metrics.Transition(ctx, "shift_request", string(from), string(to))
	s.rt.Logger.Info("shift request decided",
		zap.String("request_id", id),
		zap.String("status", string(to)),
	)
	return newRequestView(*req), nil
}

func (s *StaticService) weekStart(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		now := s.rt.Now()
		offset := (int(now.Weekday()) + 6) % 7
		y, m, d := now.AddDate(0, 0, -offset).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, s.rt.Location), nil
	}
	start, err := time.ParseInLocation(time.DateOnly, raw, s.rt.Location)
	if err != nil {
		return time.Time{}, validation.Field(ErrInvalidInput, "start", "must be a YYYY-MM-DD date")
	}
	return start, nil
}

// sortedShifts must be called with the lock held.
func (s *StaticService) sortedShifts() []Shift {
	out := make([]Shift, 0, len(s.shifts))
	for _, sh := range s.shifts {
		out = append(out, *sh)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func validTimeRange(raw string) bool {
	start, end, ok := strings.Cut(raw, "-")
	if !ok {
		return false
	}
	if _, err := time.Parse("15:04", start); err != nil {
		return false
	}
	if _, err := time.Parse("15:04", end); err != nil {
		return false
	}
	return start != end
}

func newShiftView(sh Shift) ShiftView {
	return ShiftView{
		Shift:        sh,
		StatusLabel:  sh.Status.Label(),
		StatusTone:   sh.Status.Tone(),
		Hours:        sh.Hours(),
		CanConfirm:   CanTransition(sh.Status, StatusConfirmed),
		NextStatuses: NextStatuses(sh.Status),
	}
}

func newRequestView(r Request) RequestView {
	r.Dates = append([]string(nil), r.Dates...)
	return RequestView{
		Request:     r,
		StatusLabel: r.Status.Label(),
		StatusTone:  r.Status.Tone(),
	}
}
