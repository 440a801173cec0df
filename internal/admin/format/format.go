// Package format renders money, hours and dates for the admin views.
package format

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Japanese)

// Yen formats whole yen with grouping, e.g. ¥1,234,500.
func Yen(amount int64) string {
	if amount < 0 {
		return "-¥" + printer.Sprintf("%d", -amount)
	}
	return "¥" + printer.Sprintf("%d", amount)
}

// Number formats an integer with grouping.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Hours formats hours with at most one decimal, e.g. 6h or 5.5h.
func Hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// Date formats a time as YYYY/MM/DD in its own location.
func Date(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("2006/01/02")
}

// Clock formats a time as HH:MM in its own location.
func Clock(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("15:04")
}

// Percent formats part/total as a whole percentage. A zero total gives 0%.
func Percent(part, total int) string {
	if total <= 0 {
		return "0%"
	}
	return strconv.Itoa(part*100/total) + "%"
}

// BadgeClass maps semantic tones to utility classes.
func BadgeClass(tone string) string {
	switch tone {
	case "success":
		return "inline-flex items-center rounded-full bg-emerald-100 px-2 py-1 text-xs font-medium text-emerald-700"
	case "warning":
		return "inline-flex items-center rounded-full bg-amber-100 px-2 py-1 text-xs font-medium text-amber-700"
	case "danger":
		return "inline-flex items-center rounded-full bg-rose-100 px-2 py-1 text-xs font-medium text-rose-700"
	case "info":
		return "inline-flex items-center rounded-full bg-sky-100 px-2 py-1 text-xs font-medium text-sky-700"
	default:
		return "inline-flex items-center rounded-full bg-slate-100 px-2 py-1 text-xs font-medium text-slate-700"
	}
}

// NavClass returns sidebar link classes.
func NavClass(active bool) string {
	if active {
		return "flex items-center gap-2 rounded-md bg-slate-900 px-3 py-2 text-sm font-medium text-white shadow-sm"
	}
	return "flex items-center gap-2 rounded-md px-3 py-2 text-sm font-medium text-slate-600 hover:bg-slate-100 hover:text-slate-900"
}
