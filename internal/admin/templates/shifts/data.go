package shifts

import (
	"fmt"
	"strconv"
	"strings"

	"finitefield.org/venue-admin/internal/admin/format"
	adminshifts "finitefield.org/venue-admin/internal/admin/shifts"
	"finitefield.org/venue-admin/internal/admin/templates/partials"
)

// PageData is the weekly schedule payload.
type PageData struct {
	Title           string
	Range           string
	Stats           []partials.StatCard
	Days            []DayRow
	StaffHours      []HoursRow
	HoursMessage    string
	Requests        []RequestRow
	RequestsMessage string
}

// DayRow is one day of the week with its shifts.
type DayRow struct {
	Date   string
	Label  string
	Shifts []ShiftChip
}

// ShiftChip is a shift shown inside a day.
type ShiftChip struct {
	ID     string
	Text   string
	Status partials.BadgeView
}

// HoursRow totals one staff member's week.
type HoursRow struct {
	Name   string
	Shifts string
	Hours  string
}

// RequestRow is one shift request. Note stays Markdown source.
type RequestRow struct {
	ID        string
	Name      string
	Dates     string
	TimeRange string
	Status    partials.BadgeView
	Submitted string
	Note      string
}

// BuildPageData prepares the week schedule and the request list.
func BuildPageData(title string, week adminshifts.Week, requests []adminshifts.RequestView) PageData {
	span := week.Start + " 〜 " + week.End
	return PageData{
		Title: title,
		Range: span,
		Stats: []partials.StatCard{
			{ID: "shifts-this-week", Label: "今週のシフト", Value: strconv.Itoa(week.Summary.ShiftsThisWeek), Note: span},
			{ID: "confirmed", Label: "確定済み", Value: strconv.Itoa(week.Summary.Confirmed)},
			{ID: "pending-requests", Label: "承認待ち申請", Value: strconv.Itoa(week.Summary.PendingRequests)},
		},
		Days:            toDayRows(week.Days),
		StaffHours:      toHoursRows(week.Staff),
		HoursMessage:    "今週のシフトはありません。",
		Requests:        toRequestRows(requests),
		RequestsMessage: "申請はありません。",
	}
}

func toDayRows(days []adminshifts.Day) []DayRow {
	rows := make([]DayRow, 0, len(days))
	for _, d := range days {
		chips := make([]ShiftChip, 0, len(d.Shifts))
		for _, sh := range d.Shifts {
			chips = append(chips, ShiftChip{
				ID:     sh.ID,
				Text:   fmt.Sprintf("%s %s-%s", sh.StaffName, sh.Start, sh.End),
				Status: partials.BadgeView{Label: sh.StatusLabel, Tone: sh.StatusTone},
			})
		}
		rows = append(rows, DayRow{
			Date:   d.Date,
			Label:  fmt.Sprintf("%s (%s)", d.Date, d.Weekday),
			Shifts: chips,
		})
	}
	return rows
}

func toHoursRows(list []adminshifts.StaffHours) []HoursRow {
	rows := make([]HoursRow, 0, len(list))
	for _, s := range list {
		rows = append(rows, HoursRow{
			Name:   s.StaffName,
			Shifts: strconv.Itoa(s.Shifts),
			Hours:  format.Hours(s.Hours),
		})
	}
	return rows
}

func toRequestRows(list []adminshifts.RequestView) []RequestRow {
	rows := make([]RequestRow, 0, len(list))
	for _, r := range list {
		rows = append(rows, RequestRow{
			ID:        r.ID,
			Name:      r.StaffName,
			Dates:     strings.Join(r.Dates, ", "),
			TimeRange: r.TimeRange,
			Status:    partials.BadgeView{Label: r.StatusLabel, Tone: r.StatusTone},
			Submitted: format.Date(r.SubmittedAt) + " " + format.Clock(r.SubmittedAt),
			Note:      r.Note,
		})
	}
	return rows
}
