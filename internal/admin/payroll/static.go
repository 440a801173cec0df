package payroll

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"finitefield.org/venue-admin/internal/admin/venue"
	"finitefield.org/venue-admin/internal/platform/ids"
	"finitefield.org/venue-admin/internal/platform/validation"
)

const defaultNominationFee = 5000

// Deps are the collaborators of StaticService.
type Deps struct {
	Runtime     venue.Runtime
	IDGenerator ids.Generator
	// NominationFee applies to saved records that leave the fee at zero.
	NominationFee int64
}

// StaticService keeps payroll records in memory.
type StaticService struct {
	mu      sync.RWMutex
	rt      venue.Runtime
	newID   ids.Generator
	fee     int64
	records map[string]Record
}

// NewStaticService returns a StaticService populated with records.
func NewStaticService(deps Deps, records ...Record) *StaticService {
	if deps.IDGenerator == nil {
		deps.IDGenerator = ids.New("pay")
	}
	if deps.NominationFee <= 0 {
		deps.NominationFee = defaultNominationFee
	}
	s := &StaticService{
		rt:      deps.Runtime.WithDefaults().Named("payroll"),
		newID:   deps.IDGenerator,
		fee:     deps.NominationFee,
		records: make(map[string]Record, len(records)),
	}
	for _, r := range records {
		if r.ID == "" {
			r.ID = s.newID()
		}
		s.records[r.ID] = r
	}
	return s
}

// Report implements Service.
func (s *StaticService) Report(_ context.Context, query Query) (Report, error) {
	if query.Period == "" {
		query.Period = PeriodDaily
	}
	if !query.Period.Valid() {
		return Report{}, validation.Field(ErrInvalidInput, "period", "must be one of [daily weekly monthly]")
	}
	if query.Position != "" && !query.Position.Valid() {
		return Report{}, validation.Field(ErrInvalidInput, "position", "must be one of [cast manager bartender]")
	}
	if query.Date == "" {
		query.Date = s.rt.Today()
	}
	from, to, err := periodBounds(query.Period, query.Date)
	if err != nil {
		return Report{}, validation.Field(ErrInvalidInput, "date", "must be a YYYY-MM-DD date")
	}

	s.mu.RLock()
	entries := make([]Entry, 0, len(s.records))
	for _, r := range s.records {
		if r.Date < from || r.Date > to {
			continue
		}
		if query.Position != "" && r.Position != query.Position {
			continue
		}
		entries = append(entries, NewEntry(r))
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		if entries[i].TotalSalary != entries[j].TotalSalary {
			return entries[i].TotalSalary > entries[j].TotalSalary
		}
		return entries[i].ID < entries[j].ID
	})

	cast := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Position == PositionCast {
			cast = append(cast, e)
		}
	}

	return Report{
		Period:      query.Period,
		PeriodLabel: query.Period.Label(),
		From:        from,
		To:          to,
		Entries:     entries,
		CastEntries: cast,
		Summary:     Summarize(entries),
	}, nil
}

// Get implements Service.
func (s *StaticService) Get(_ context.Context, id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[strings.TrimSpace(id)]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return NewEntry(r), nil
}

// Save implements Service. A record for the same staff member and date is replaced.
func (s *StaticService) Save(_ context.Context, input RecordInput) (Entry, error) {
	if err := validation.Check(input, ErrInvalidInput); err != nil {
		return Entry{}, err
	}
	fee := input.NominationFee
	if fee == 0 {
		fee = s.fee
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := ""
	for existingID, r := range s.records {
		if r.StaffID == input.StaffID && r.Date == input.Date {
			id = existingID
			break
		}
	}
	created := id == ""
	if created {
		id = s.newID()
	}

	record := Record{
		ID:               id,
		StaffID:          input.StaffID,
		StaffName:        input.StaffName,
		Position:         input.Position,
		Date:             input.Date,
		WorkingHours:     input.WorkingHours,
		HourlyRate:       input.HourlyRate,
		Nominations:      input.Nominations,
		NominationFee:    fee,
		BottleCommission: input.BottleCommission,
		CompanionFee:     input.CompanionFee,
		Bonuses:          input.Bonuses,
		Deductions:       input.Deductions,
		UpdatedAt:        s.rt.Now(),
	}
	s.records[id] = record

	entry := NewEntry(record)
	s.rt.Logger.Info("payroll record saved",
		zap.String("record_id", id),
		zap.String("staff_id", record.StaffID),
		zap.String("date", record.Date),
		zap.Bool("created", created),
		zap.Int64("total_salary", entry.TotalSalary),
	)
	return entry, nil
}

// Delete implements Service.
func (s *StaticService) Delete(_ context.Context, id string) error {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	s.rt.Logger.Info("payroll record deleted", zap.String("record_id", id))
	return nil
}

// periodBounds returns the inclusive date range of the period containing date.
func periodBounds(period Period, date string) (string, string, error) {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return "", "", err
	}
	var from, to time.Time
	switch period {
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		from = day.AddDate(0, 0, -offset)
		to = from.AddDate(0, 0, 6)
	case PeriodMonthly:
		from = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, -1)
	default:
		from, to = day, day
	}
	return from.Format(time.DateOnly), to.Format(time.DateOnly), nil
}
