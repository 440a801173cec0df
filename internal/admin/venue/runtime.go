// Package venue holds the runtime collaborators shared by the domain services.
package venue

import (
	"time"

	"go.uber.org/zap"

	"finitefield.org/venue-admin/internal/platform/observability"
)

// Runtime carries the clock, venue timezone, logger and metrics a service needs.
type Runtime struct {
	Clock    func() time.Time
	Location *time.Location
	Logger   *zap.Logger
	Metrics  *observability.Metrics
}

// WithDefaults fills unset members: wall clock, UTC, no-op logger. Metrics stay nil.
func (r Runtime) WithDefaults() Runtime {
	if r.Clock == nil {
		r.Clock = time.Now
	}
	if r.Location == nil {
		r.Location = time.UTC
	}
	if r.Logger == nil {
		r.Logger = zap.NewNop()
	}
	return r
}

// Now returns the current time in the venue timezone.
func (r Runtime) Now() time.Time {
	return r.Clock().In(r.Location)
}

// Today returns the current venue date as YYYY-MM-DD.
func (r Runtime) Today() string {
	return r.Now().Format(time.DateOnly)
}

// Named returns the runtime with its logger scoped to a component name.
func (r Runtime) Named(name string) Runtime {
	r.Logger = r.Logger.Named(name)
	return r
}

// ClockOn resolves an "HH:MM" clock time on the date of ref in ref's location.
func ClockOn(ref time.Time, clock string) (time.Time, bool) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	y, m, d := ref.Date()
	return time.Date(y, m, d, parsed.Hour(), parsed.Minute(), 0, 0, ref.Location()), true
}

// SpanHours returns the hours between two "HH:MM" clock times, wrapping past
// midnight when end is not after start (20:00 to 02:00 is 6h).
func SpanHours(start, end string) float64 {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0
	}
	if !e.After(s) {
		e = e.Add(24 * time.Hour)
	}
	return e.Sub(s).Hours()
}

// Display is the label and tone rendered for an enumerated value.
type Display struct {
	Label string
	Tone  string
}
