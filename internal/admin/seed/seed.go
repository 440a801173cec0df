// Package seed loads the sample venue state the services start with.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"finitefield.org/venue-admin/internal/admin/bottles"
	"finitefield.org/venue-admin/internal/admin/orders"
	"finitefield.org/venue-admin/internal/admin/payroll"
	"finitefield.org/venue-admin/internal/admin/shifts"
	"finitefield.org/venue-admin/internal/admin/staff"
	"finitefield.org/venue-admin/internal/admin/tables"
	"finitefield.org/venue-admin/internal/admin/venue"
)

//go:embed seed.yaml
var embedded []byte

// ErrInvalidSeed is returned when seed data references unknown entities or
// carries malformed clock times.
var ErrInvalidSeed = errors.New("seed: invalid data")

// Data is the decoded seed, ready to hand to the domain services.
type Data struct {
	Tables        []tables.Table
	Menu          []orders.MenuItem
	Orders        []orders.OrderItem
	Staff         []staff.Member
	Payroll       []payroll.Record
	Bottles       []bottles.Bottle
	Shifts        []shifts.Shift
	ShiftRequests []shifts.Request
}

type document struct {
	Tables        []tableDoc        `yaml:"tables"`
	Menu          []orders.MenuItem `yaml:"menu"`
	Orders        []orderDoc        `yaml:"orders"`
	Staff         []staff.Member    `yaml:"staff"`
	Payroll       []payroll.Record  `yaml:"payroll"`
	Bottles       []bottles.Bottle  `yaml:"bottles"`
	Shifts        []shifts.Shift    `yaml:"shifts"`
	ShiftRequests []requestDoc      `yaml:"shiftRequests"`
}

type tableDoc struct {
	tables.Table `yaml:",inline"`
	StartTime    string `yaml:"startTime"`
}

type orderDoc struct {
	ID        string `yaml:"id"`
	ItemID    string `yaml:"itemId"`
	Quantity  int    `yaml:"quantity"`
	TableID   string `yaml:"tableId"`
	StaffName string `yaml:"staffName"`
	Time      string `yaml:"time"`
}

type requestDoc struct {
	shifts.Request `yaml:",inline"`
	SubmittedAt    string `yaml:"submittedAt"`
}

// Load reads the seed file at path, or the embedded seed when path is empty.
// Clock times are resolved against now, which carries the venue timezone.
func Load(path string, now time.Time) (Data, error) {
	raw := embedded
	if p := strings.TrimSpace(path); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return Data{}, fmt.Errorf("seed: read %s: %w", p, err)
		}
		raw = b
	}
	return Parse(raw, now)
}

// Parse decodes seed YAML.
func Parse(raw []byte, now time.Time) (Data, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Data{}, fmt.Errorf("seed: decode: %w", err)
	}

	data := Data{
		Menu:    doc.Menu,
		Staff:   doc.Staff,
		Payroll: doc.Payroll,
		Bottles: doc.Bottles,
		Shifts:  doc.Shifts,
	}

	for _, td := range doc.Tables {
		t := td.Table
		if td.StartTime != "" {
			at, ok := venue.ClockOn(now, td.StartTime)
			if !ok {
				return Data{}, fmt.Errorf("%w: table %s start time %q", ErrInvalidSeed, t.ID, td.StartTime)
			}
			if t.Status != tables.StatusReserved {
				at = notAfter(at, now)
			}
			t.StartedAt = &at
		}
		data.Tables = append(data.Tables, t)
	}

	menu := make(map[string]orders.MenuItem, len(doc.Menu))
	for _, item := range doc.Menu {
		menu[item.ID] = item
	}
	for _, od := range doc.Orders {
		item, ok := menu[od.ItemID]
		if !ok {
			return Data{}, fmt.Errorf("%w: order %s references unknown menu item %q", ErrInvalidSeed, od.ID, od.ItemID)
		}
		at, ok := venue.ClockOn(now, od.Time)
		if !ok {
			return Data{}, fmt.Errorf("%w: order %s time %q", ErrInvalidSeed, od.ID, od.Time)
		}
		data.Orders = append(data.Orders, orders.OrderItem{
			ID:        od.ID,
			Item:      item,
			Quantity:  od.Quantity,
			TableID:   od.TableID,
			StaffName: od.StaffName,
			OrderedAt: notAfter(at, now),
		})
	}

	for _, rd := range doc.ShiftRequests {
		r := rd.Request
		submitted, err := time.ParseInLocation("2006-01-02 15:04", rd.SubmittedAt, now.Location())
		if err != nil {
			return Data{}, fmt.Errorf("%w: shift request %s submittedAt %q", ErrInvalidSeed, r.ID, rd.SubmittedAt)
		}
		r.SubmittedAt = submitted
		data.ShiftRequests = append(data.ShiftRequests, r)
	}
	return data, nil
}

// notAfter moves at back one day when it lies in the future, so late-evening
// clock times read after midnight stay on the previous business night.
func notAfter(at, now time.Time) time.Time {
	if at.After(now) {
		return at.AddDate(0, 0, -1)
	}
	return at
}
