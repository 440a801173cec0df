package shifts

import (
	"context"
	"errors"
	"strings"
	"time"

	"finitefield.org/venue-admin/internal/admin/venue"
)

// Service manages shift schedules and shift change requests.
type Service interface {
	// Week returns the seven days starting at the query's start date.
	Week(ctx context.Context, query WeekQuery) (Week, error)

	// ListShifts returns shifts matching the query ordered by date and start time.
	ListShifts(ctx context.Context, query Query) ([]ShiftView, error)

	// CreateShift schedules a new shift.
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftView, error)

	// Confirm moves a scheduled shift to confirmed.
	Confirm(ctx context.Context, id string) (ShiftView, error)

	// UpdateStatus applies any permitted shift transition.
	UpdateStatus(ctx context.Context, id string, status Status) (ShiftView, error)

	// Requests lists shift requests, newest first.
	Requests(ctx context.Context, query RequestQuery) ([]RequestView, error)

	// SubmitRequest records a pending shift request.
	SubmitRequest(ctx context.Context, req SubmitRequest) (RequestView, error)

	// Approve moves a pending request to approved.
	Approve(ctx context.Context, id string) (RequestView, error)

	// Reject moves a pending request to rejected.
	Reject(ctx context.Context, id string) (RequestView, error)
}

// Status is the state of a shift.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusAbsent    Status = "absent"
)

var statusMeta = map[Status]venue.Display{
	StatusScheduled: {Label: "予定", Tone: "info"},
	StatusConfirmed: {Label: "確定", Tone: "success"},
	StatusCompleted: {Label: "完了", Tone: "muted"},
	StatusAbsent:    {Label: "欠勤", Tone: "danger"},
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

// completed and absent are terminal.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusAbsent},
	StatusConfirmed: {StatusCompleted, StatusAbsent},
}

// CanTransition reports whether a shift may move between statuses.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses reachable from s.
func NextStatuses(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// RequestStatus is the state of a shift request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

var requestStatusMeta = map[RequestStatus]venue.Display{
	RequestPending:  {Label: "承認待ち", Tone: "warning"},
	RequestApproved: {Label: "承認済み", Tone: "success"},
	RequestRejected: {Label: "却下", Tone: "danger"},
}

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	_, ok := requestStatusMeta[s]
	return ok
}

// Label returns the display label.
func (s RequestStatus) Label() string {
	if meta, ok := requestStatusMeta[s]; ok {
		return meta.Label
	}
	return "不明"
}

// Tone returns the badge tone.
func (s RequestStatus) Tone() string {
	if meta, ok := requestStatusMeta[s]; ok {
		return meta.Tone
	}
	return "muted"
}

// CanDecide reports whether a request in status s may be approved or rejected.
func CanDecide(s RequestStatus) bool {
	return s == RequestPending
}

var (
	// ErrShiftNotFound is returned when a shift does not exist.
	ErrShiftNotFound = errors.New("shifts: shift not found")
	// ErrRequestNotFound is returned when a shift request does not exist.
	ErrRequestNotFound = errors.New("shifts: request not found")
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("shifts: invalid input")
	// ErrInvalidTransition is returned when a status change is not permitted.
	ErrInvalidTransition = errors.New("shifts: invalid status transition")
)

// StatusTransitionError describes a rejected shift or request status change.
type StatusTransitionError struct {
	Entity string
	From   string
	To     string
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
	entity := e.Entity
	if entity == "" {
		entity = "shift"
	}
	return entity + " status transition from " + e.From + " to " + e.To + ": " + reason
}

// Unwrap lets errors.Is match ErrInvalidTransition.
func (e *StatusTransitionError) Unwrap() error { return ErrInvalidTransition }

// Shift is a scheduled working slot. Start and End are "HH:MM"; an end at or
// before the start finishes the next morning.
type Shift struct {
	ID        string `json:"id" yaml:"id"`
	StaffID   string `json:"staffId" yaml:"staffId"`
	StaffName string `json:"staffName" yaml:"staffName"`
	Date      string `json:"date" yaml:"date"`
	Start     string `json:"start" yaml:"start"`
	End       string `json:"end" yaml:"end"`
	Position  string `json:"position" yaml:"position"`
	Status    Status `json:"status" yaml:"status"`
	Note      string `json:"note,omitempty" yaml:"note"`
}

// Hours returns the shift length.
func (s Shift) Hours() float64 {
	return venue.SpanHours(s.Start, s.End)
}

// ShiftView adds derived fields.
type ShiftView struct {
	Shift
	StatusLabel  string   `json:"statusLabel"`
	StatusTone   string   `json:"statusTone"`
	Hours        float64  `json:"hours"`
	CanConfirm   bool     `json:"canConfirm"`
	NextStatuses []Status `json:"nextStatuses"`
}

// Request is a staff member's request to work specific dates.
type Request struct {
	ID          string        `json:"id" yaml:"id"`
	StaffID     string        `json:"staffId" yaml:"staffId"`
	StaffName   string        `json:"staffName" yaml:"staffName"`
	Dates       []string      `json:"dates" yaml:"dates"`
	TimeRange   string        `json:"timeRange" yaml:"timeRange"`
	Status      RequestStatus `json:"status" yaml:"status"`
	Note        string        `json:"note,omitempty" yaml:"note"`
	SubmittedAt time.Time     `json:"submittedAt" yaml:"-"`
	DecidedAt   *time.Time    `json:"decidedAt,omitempty" yaml:"-"`
}

// RequestView adds derived fields.
type RequestView struct {
	Request
	StatusLabel string `json:"statusLabel"`
	StatusTone  string `json:"statusTone"`
}

// WeekQuery selects a week. An empty Start means the Monday of the current week.
type WeekQuery struct {
	Start string
}

// Day groups the shifts of one date.
type Day struct {
	Date    string      `json:"date"`
	Weekday string      `json:"weekday"`
	Shifts  []ShiftView `json:"shifts"`
}

// StaffHours totals a staff member's scheduled time in the week.
type StaffHours struct {
	StaffID   string  `json:"staffId"`
	StaffName string  `json:"staffName"`
	Shifts    int     `json:"shifts"`
	Hours     float64 `json:"hours"`
}

// WeekSummary counts shifts and requests.
type WeekSummary struct {
	ShiftsThisWeek  int `json:"shiftsThisWeek"`
	Confirmed       int `json:"confirmed"`
	PendingRequests int `json:"pendingRequests"`
}

// Week is the seven-day schedule view.
type Week struct {
	Start    string       `json:"start"`
	End      string       `json:"end"`
	Previous string       `json:"previous"`
	Next     string       `json:"next"`
	Days     []Day        `json:"days"`
	Summary  WeekSummary  `json:"summary"`
	Staff    []StaffHours `json:"staff"`
}

// Query filters ListShifts. From and To are inclusive dates.
type Query struct {
	From    string
	To      string
	StaffID string
	Status  Status
}

// RequestQuery filters Requests.
type RequestQuery struct {
	Status RequestStatus
}

// CreateShiftRequest schedules a shift.
type CreateShiftRequest struct {
	StaffID   string `json:"staffId" validate:"required,max=64"`
	StaffName string `json:"staffName" validate:"required,max=80"`
	Date      string `json:"date" validate:"required,isodate"`
	Start     string `json:"start" validate:"required,hhmm"`
	End       string `json:"end" validate:"required,hhmm"`
	Position  string `json:"position" validate:"required,max=40"`
	Note      string `json:"note" validate:"max=500"`
}

// SubmitRequest records a shift request.
type SubmitRequest struct {
	StaffID   string   `json:"staffId" validate:"required,max=64"`
	StaffName string   `json:"staffName" validate:"required,max=80"`
	Dates     []string `json:"dates" validate:"min=1,max=31,dive,isodate"`
	TimeRange string   `json:"timeRange" validate:"required,max=11"`
	Note      string   `json:"note" validate:"max=500"`
}
