package payroll

import "math"

// Compute derives the salary components of r:
//
//	base  = round-half-up(hours × rate)
//	total = base + nominations×fee + bottleCommission + companionFee + bonuses − deductions
//
// Compute performs no validation.
func Compute(r Record) Breakdown {
	base := int64(math.Round(r.WorkingHours * float64(r.HourlyRate)))
	nominations := int64(r.Nominations) * r.NominationFee
	total := base + nominations + r.BottleCommission + r.CompanionFee + r.Bonuses - r.Deductions
	return Breakdown{
		BaseSalary:      base,
		NominationTotal: nominations,
		TotalSalary:     total,
	}
}

// NewEntry computes the breakdown for r.
func NewEntry(r Record) Entry {
	return Entry{Record: r, Breakdown: Compute(r), PositionLabel: r.Position.Label()}
}

// Summarize sums the per-staff fields of entries.
func Summarize(entries []Entry) Summary {
	var s Summary
	staff := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		staff[e.StaffID] = struct{}{}
		s.TotalPayroll += e.TotalSalary
		s.TotalHours += e.WorkingHours
		s.TotalNominations += e.Nominations
		s.TotalBase += e.BaseSalary
		s.TotalNominationFees += e.NominationTotal
		s.TotalCommission += e.BottleCommission
		s.TotalCompanion += e.CompanionFee
		s.TotalBonuses += e.Bonuses
		s.TotalDeductions += e.Deductions
	}
	s.Staff = len(staff)
	return s
}
