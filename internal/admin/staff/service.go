package staff

import (
	"context"
	"errors"
	"strings"

	"finitefield.org/venue-admin/internal/admin/venue"
)

// Service manages staff duty status and today's counters.
type Service interface {
	// List returns members matching the query with floor aggregates.
	List(ctx context.Context, query Query) (ListResult, error)

	// Get returns a single member.
	Get(ctx context.Context, id string) (MemberView, error)

	// Create registers a member, initially off duty unless a status is given.
	Create(ctx context.Context, req CreateRequest) (MemberView, error)

	// UpdateStatus transitions a member's duty status.
	UpdateStatus(ctx context.Context, id string, status Status) (MemberView, error)

	// RecordActivity adds to today's nomination, sales and commission counters.
	RecordActivity(ctx context.Context, id string, req ActivityRequest) (MemberView, error)

	// Delete removes a member.
	Delete(ctx context.Context, id string) error
}

// Status is a member's duty state.
type Status string

const (
	StatusActive  Status = "active"
	StatusBreak   Status = "break"
	StatusOffDuty Status = "off-duty"
)

var statusMeta = map[Status]venue.Display{
	StatusActive:  {Label: "勤務中", Tone: "success"},
	StatusBreak:   {Label: "休憩中", Tone: "warning"},
	StatusOffDuty: {Label: "退勤", Tone: "muted"},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusMeta[s]
	return ok
}

// Label returns the display label.
func (s Status) Label() string {
	if meta, ok := statusMeta[s]; ok {
		return meta.Label
	}
	return "不明"
}

// Tone returns the badge tone.
func (s Status) Tone() string {
	if meta, ok := statusMeta[s]; ok {
		return meta.Tone
	}
	return "muted"
}

// OnDuty reports whether the member is at the venue.
func (s Status) OnDuty() bool {
	return s == StatusActive || s == StatusBreak
}

var transitions = map[Status][]Status{
	StatusActive:  {StatusBreak, StatusOffDuty},
	StatusBreak:   {StatusActive, StatusOffDuty},
	StatusOffDuty: {StatusActive},
}

// CanTransition reports whether a member may move between statuses.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s.
func NextStatuses(s Status) []Status {
	return append([]Status(nil), transitions[s]...)
}

// Position is a member's role.
type Position string

const (
	PositionCast      Position = "cast"
	PositionManager   Position = "manager"
	PositionBartender Position = "bartender"
)

var positionLabels = map[Position]string{
	PositionCast:      "キャスト",
	PositionManager:   "マネージャー",
	PositionBartender: "バーテンダー",
}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	_, ok := positionLabels[p]
	return ok
}

// Label returns the display label.
func (p Position) Label() string {
	if label, ok := positionLabels[p]; ok {
		return label
	}
	return string(p)
}

var (
	// ErrNotFound is returned when a member does not exist.
	ErrNotFound = errors.New("staff: member not found")
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("staff: invalid input")
	// ErrInvalidTransition is returned when a status change is not permitted.
	ErrInvalidTransition = errors.New("staff: invalid status transition")
)

// StatusTransitionError describes a rejected status change.
type StatusTransitionError struct {
	From   Status
	To     Status
	Reason string
}

// Error implements the error interface.
func (e *StatusTransitionError) Error() string {
	if e == nil {
		return ErrInvalidTransition.Error()
	}
	reason := e.Reason
	if strings.TrimSpace(reason) == "" {
		reason = "transition not permitted"
	}
	return "staff status transition from " + string(e.From) + " to " + string(e.To) + ": " + reason
}

// Unwrap lets errors.Is match ErrInvalidTransition.
func (e *StatusTransitionError) Unwrap() error { return ErrInvalidTransition }

// Member is a staff member with today's counters.
type Member struct {
	ID                    string   `json:"id" yaml:"id"`
	Name                  string   `json:"name" yaml:"name"`
	Status                Status   `json:"status" yaml:"status"`
	Position              Position `json:"position" yaml:"position"`
	ShiftStart            string   `json:"shiftStart,omitempty" yaml:"shiftStart"`
	HourlyRate            int64    `json:"hourlyRate" yaml:"hourlyRate"`
	TodayNominations      int      `json:"todayNominations" yaml:"todayNominations"`
	TodaySales            int64    `json:"todaySales" yaml:"todaySales"`
	TodayBottleCommission int64    `json:"todayBottleCommission" yaml:"todayBottleCommission"`
}

// MemberView adds derived display fields.
type MemberView struct {
	Member
	StatusLabel    string   `json:"statusLabel"`
	StatusTone     string   `json:"statusTone"`
	PositionLabel  string   `json:"positionLabel"`
	WorkingMinutes int      `json:"workingMinutes"`
	WorkingHours   float64  `json:"workingHours"`
	NextStatuses   []Status `json:"nextStatuses"`
}

// Query filters List.
type Query struct {
	Status   Status
	Position Position
}

// Summary aggregates the roster. Cast figures include cast members only;
// AverageCastHours averages active cast.
type Summary struct {
	Total            int     `json:"total"`
	OnDuty           int     `json:"onDuty"`
	OnBreak          int     `json:"onBreak"`
	CastNominations  int     `json:"castNominations"`
	CastSales        int64   `json:"castSales"`
	CastCommission   int64   `json:"castCommission"`
	AverageCastHours float64 `json:"averageCastHours"`
}

// ListResult is returned by List.
type ListResult struct {
	Members []MemberView `json:"members"`
	Summary Summary      `json:"summary"`
}

// CreateRequest registers a member.
type CreateRequest struct {
	Name       string   `json:"name" validate:"required,max=80"`
	Position   Position `json:"position" validate:"required,oneof=cast manager bartender"`
	Status     Status   `json:"status" validate:"omitempty,oneof=active break off-duty"`
	ShiftStart string   `json:"shiftStart" validate:"omitempty,hhmm"`
	HourlyRate int64    `json:"hourlyRate" validate:"gte=0"`
}

// ActivityRequest carries increments to today's counters.
type ActivityRequest struct {
	Nominations      int   `json:"nominations" validate:"gte=0"`
	Sales            int64 `json:"sales" validate:"gte=0"`
	BottleCommission int64 `json:"bottleCommission" validate:"gte=0"`
}
