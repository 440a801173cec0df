package payroll

import (
	"context"
	"errors"
	"time"
)

// Service exposes payroll computation and record keeping for the admin UI.
type Service interface {
	// Report computes salary breakdowns for the records inside the requested period.
	Report(ctx context.Context, query Query) (Report, error)

	// Get returns a single record with its computed breakdown.
	Get(ctx context.Context, id string) (Entry, error)

	// Save creates or replaces the record for a staff member on a date.
	Save(ctx context.Context, input RecordInput) (Entry, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error
}

// Period selects the window of records included in a report.
type Period string

const (
	// PeriodDaily covers the report date only.
	PeriodDaily Period = "daily"
	// PeriodWeekly covers the Monday to Sunday week containing the report date.
	PeriodWeekly Period = "weekly"
	// PeriodMonthly covers the calendar month containing the report date.
	PeriodMonthly Period = "monthly"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// Label returns the display label.
func (p Period) Label() string {
	switch p {
	case PeriodDaily:
		return "日次"
	case PeriodWeekly:
		return "週次"
	case PeriodMonthly:
		return "月次"
	}
	return string(p)
}

// Position is the staff role a record was paid under.
type Position string

const (
	PositionCast      Position = "cast"
	PositionManager   Position = "manager"
	PositionBartender Position = "bartender"
)

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	switch p {
	case PositionCast, PositionManager, PositionBartender:
		return true
	}
	return false
}

// Label returns the display label.
func (p Position) Label() string {
	switch p {
	case PositionCast:
		return "キャスト"
	case PositionManager:
		return "マネージャー"
	case PositionBartender:
		return "バーテンダー"
	}
	return string(p)
}

var (
	// ErrNotFound is returned when a payroll record does not exist.
	ErrNotFound = errors.New("payroll: record not found")
	// ErrInvalidInput is returned when a query or record fails validation.
	ErrInvalidInput = errors.New("payroll: invalid input")
)

// Record holds the inputs of one staff member's pay for one date. The total is
// never stored; see Compute.
type Record struct {
	ID               string    `json:"id" yaml:"id"`
	StaffID          string    `json:"staffId" yaml:"staffId"`
	StaffName        string    `json:"staffName" yaml:"staffName"`
	Position         Position  `json:"position" yaml:"position"`
	Date             string    `json:"date" yaml:"date"`
	WorkingHours     float64   `json:"workingHours" yaml:"workingHours"`
	HourlyRate       int64     `json:"hourlyRate" yaml:"hourlyRate"`
	Nominations      int       `json:"nominations" yaml:"nominations"`
	NominationFee    int64     `json:"nominationFee" yaml:"nominationFee"`
	BottleCommission int64     `json:"bottleCommission" yaml:"bottleCommission"`
	CompanionFee     int64     `json:"companionFee" yaml:"companionFee"`
	Bonuses          int64     `json:"bonuses" yaml:"bonuses"`
	Deductions       int64     `json:"deductions" yaml:"deductions"`
	UpdatedAt        time.Time `json:"updatedAt" yaml:"-"`
}

// Breakdown holds the derived salary components of a record.
type Breakdown struct {
	BaseSalary      int64 `json:"baseSalary"`
	NominationTotal int64 `json:"nominationTotal"`
	TotalSalary     int64 `json:"totalSalary"`
}

// Entry pairs a record with its breakdown.
type Entry struct {
	Record
	Breakdown
	PositionLabel string `json:"positionLabel"`
}

// Summary aggregates entries as plain sums.
type Summary struct {
	Staff               int     `json:"staff"`
	TotalPayroll        int64   `json:"totalPayroll"`
	TotalHours          float64 `json:"totalHours"`
	TotalNominations    int     `json:"totalNominations"`
	TotalBase           int64   `json:"totalBase"`
	TotalNominationFees int64   `json:"totalNominationFees"`
	TotalCommission     int64   `json:"totalCommission"`
	TotalCompanion      int64   `json:"totalCompanion"`
	TotalBonuses        int64   `json:"totalBonuses"`
	TotalDeductions     int64   `json:"totalDeductions"`
}

// Query filters a report.
type Query struct {
	Period   Period
	Date     string
	Position Position
}

// Report is the computed payroll for a period.
type Report struct {
	Period      Period  `json:"period"`
	PeriodLabel string  `json:"periodLabel"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Entries     []Entry `json:"entries"`
	CastEntries []Entry `json:"castEntries"`
	Summary     Summary `json:"summary"`
}

// RecordInput is the payload accepted by Save.
type RecordInput struct {
	StaffID          string   `json:"staffId" validate:"required,max=64"`
	StaffName        string   `json:"staffName" validate:"required,max=80"`
	Position         Position `json:"position" validate:"required,oneof=cast manager bartender"`
	Date             string   `json:"date" validate:"required,isodate"`
	WorkingHours     float64  `json:"workingHours" validate:"gte=0,lte=24"`
	HourlyRate       int64    `json:"hourlyRate" validate:"gte=0"`
	Nominations      int      `json:"nominations" validate:"gte=0"`
	NominationFee    int64    `json:"nominationFee" validate:"gte=0"`
	BottleCommission int64    `json:"bottleCommission" validate:"gte=0"`
	CompanionFee     int64    `json:"companionFee" validate:"gte=0"`
	Bonuses          int64    `json:"bonuses" validate:"gte=0"`
	Deductions       int64    `json:"deductions" validate:"gte=0"`
}
