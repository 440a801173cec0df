// Package app assembles the in-memory domain services from seed data.
package app

import (
	"finitefield.org/venue-admin/internal/admin/bottles"
	"finitefield.org/venue-admin/internal/admin/dashboard"
	"finitefield.org/venue-admin/internal/admin/orders"
	"finitefield.org/venue-admin/internal/admin/payroll"
	"finitefield.org/venue-admin/internal/admin/seed"
	"finitefield.org/venue-admin/internal/admin/shifts"
	"finitefield.org/venue-admin/internal/admin/staff"
	"finitefield.org/venue-admin/internal/admin/tables"
	"finitefield.org/venue-admin/internal/admin/venue"
)

// Options tune service construction.
type Options struct {
	BasePath      string
	NominationFee int64
}

// Services holds one repository per domain plus the dashboard built over them.
type Services struct {
	Dashboard *dashboard.Builder
	Tables    *tables.StaticService
	Orders    *orders.StaticService
	Staff     *staff.StaticService
	Payroll   *payroll.StaticService
	Bottles   *bottles.StaticService
	Shifts    *shifts.StaticService
}

// NewServices seeds every repository with data and wires the dashboard.
func NewServices(rt venue.Runtime, data seed.Data, opts Options) (Services, error) {
	rt = rt.WithDefaults()
	svc := Services{
		Tables:  tables.NewStaticService(tables.Deps{Runtime: rt}, data.Tables...),
		Orders:  orders.NewStaticService(orders.Deps{Runtime: rt}, data.Menu, data.Orders...),
		Staff:   staff.NewStaticService(staff.Deps{Runtime: rt}, data.Staff...),
		Payroll: payroll.NewStaticService(payroll.Deps{Runtime: rt, NominationFee: opts.NominationFee}, data.Payroll...),
		Bottles: bottles.NewStaticService(bottles.Deps{Runtime: rt}, data.Bottles...),
		Shifts:  shifts.NewStaticService(shifts.Deps{Runtime: rt}, data.Shifts, data.ShiftRequests),
	}
	board, err := dashboard.NewBuilder(dashboard.Deps{
		Runtime:  rt,
		BasePath: opts.BasePath,
		Tables:   svc.Tables,
		Orders:   svc.Orders,
		Staff:    svc.Staff,
		Bottles:  svc.Bottles,
		Shifts:   svc.Shifts,
	})
	if err != nil {
		return Services{}, err
	}
	svc.Dashboard = board
	return svc, nil
}
