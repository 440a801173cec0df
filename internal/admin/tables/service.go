package tables

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finitefield.org/venue-admin/internal/admin/venue"
)

// Service manages seating status and running bills.
type Service interface {
	// List returns the tables matching the query along with status counts.
	List(ctx context.Context, query Query) (ListResult, error)

	// Get returns a single table.
	Get(ctx context.Context, id string) (View, error)

	// Create registers a new table in the available or reserved state.
	Create(ctx context.Context, req CreateRequest) (View, error)

	// UpdateStatus transitions a table and returns the updated state.
	UpdateStatus(ctx context.Context, id string, req StatusUpdateRequest) (StatusUpdateResult, error)

	// AddCharge adds an amount to the running bill of an occupied table.
	AddCharge(ctx context.Context, id string, amount int64) (View, error)

	// Delete removes a table that is not in use.
	Delete(ctx context.Context, id string) error
}

// Status is the seating state of a table.
type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	StatusReserved  Status = "reserved"
	StatusCleaning  Status = "cleaning"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusAvailable, StatusOccupied, StatusReserved, StatusCleaning}

var statusMeta = map[Status]venue.Display{
	StatusAvailable: {Label: "空席", Tone: "success"},
	StatusOccupied:  {Label: "使用中", Tone: "danger"},
	StatusReserved:  {Label: "予約済", Tone: "warning"},
	StatusCleaning:  {Label: "清掃中", Tone: "muted"},
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

// reserved is entered only at creation.
var transitions = map[Status][]Status{
	StatusAvailable: {StatusOccupied},
	StatusReserved:  {StatusOccupied, StatusAvailable},
	StatusOccupied:  {StatusAvailable, StatusCleaning},
	StatusCleaning:  {StatusAvailable},
}

// CanTransition reports whether a table may move from one status to another.
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

var (
	// ErrNotFound is returned when a table does not exist.
	ErrNotFound = errors.New("tables: table not found")
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("tables: invalid input")
	// ErrInvalidTransition is returned when a status change is not permitted.
	ErrInvalidTransition = errors.New("tables: invalid status transition")
	// ErrTableInUse is returned when deleting an occupied table.
	ErrTableInUse = errors.New("tables: table is in use")
	// ErrTableNotOccupied is returned when charging a table that is not occupied.
	ErrTableNotOccupied = errors.New("tables: table is not occupied")
	// ErrDuplicateNumber is returned when a table number is already registered.
	ErrDuplicateNumber = errors.New("tables: duplicate table number")
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
	return "table status transition from " + string(e.From) + " to " + string(e.To) + ": " + reason
}

// Unwrap lets errors.Is match ErrInvalidTransition.
func (e *StatusTransitionError) Unwrap() error { return ErrInvalidTransition }

// Table is the stored state of a table. StartedAt, Customers, Staff and Bill
// only carry meaning while occupied or reserved.
type Table struct {
	ID        string     `json:"id" yaml:"id"`
	Number    string     `json:"number" yaml:"number"`
	Status    Status     `json:"status" yaml:"status"`
	Customers int        `json:"customers" yaml:"customers"`
	StartedAt *time.Time `json:"startedAt,omitempty" yaml:"-"`
	Staff     string     `json:"staff,omitempty" yaml:"staff"`
	Bill      int64      `json:"bill" yaml:"bill"`
}

// View is a table with its derived display fields.
type View struct {
	Table
	StatusLabel     string   `json:"statusLabel"`
	StatusTone      string   `json:"statusTone"`
	DurationMinutes int      `json:"durationMinutes"`
	Duration        string   `json:"duration,omitempty"`
	NextStatuses    []Status `json:"nextStatuses"`
}

// Query filters List.
type Query struct {
	Status Status
}

// Summary aggregates the floor.
type Summary struct {
	Total     int            `json:"total"`
	Counts    map[Status]int `json:"counts"`
	Occupied  int            `json:"occupied"`
	Customers int            `json:"customers"`
	OpenBills int64          `json:"openBills"`
}

// ListResult is returned by List.
type ListResult struct {
	Tables  []View  `json:"tables"`
	Summary Summary `json:"summary"`
}

// CreateRequest registers a table. ReservedAt is an "HH:MM" clock time for reservations.
type CreateRequest struct {
	Number     string `json:"number" validate:"required,max=16"`
	Status     Status `json:"status" validate:"omitempty,oneof=available reserved"`
	Customers  int    `json:"customers" validate:"gte=0,lte=50"`
	Staff      string `json:"staff" validate:"max=80"`
	ReservedAt string `json:"reservedAt" validate:"omitempty,hhmm"`
}

// StatusUpdateRequest asks for a transition. Customers and Staff apply when seating.
type StatusUpdateRequest struct {
	Status    Status `json:"status" validate:"required"`
	Customers int    `json:"customers" validate:"gte=0,lte=50"`
	Staff     string `json:"staff" validate:"max=80"`
}

// StatusUpdateResult is returned by UpdateStatus.
type StatusUpdateResult struct {
	Table View `json:"table"`
	// ClosedBill is the bill settled when the table left the occupied state.
	ClosedBill int64 `json:"closedBill"`
}

// FormatDuration renders minutes as H:MM.
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
