package booking

import (
	"fmt"
	"time"
)

// DefaultBusinessDays is how far ahead the search and edit flows let a user
// book, counted in business days from today.
const DefaultBusinessDays = 7

// QuickPickDays is the number of date buttons on the home quick-picker:
// today plus the next 7 business days.
const QuickPickDays = 8

// Window is the selectable date range, both bounds inclusive, as local
// YYYY-MM-DD strings.
type Window struct {
	Min string
	Max string
}

// FormatDate renders t as YYYY-MM-DD from its own calendar fields. Formatting
// through UTC would shift the day for users near a midnight boundary.
func FormatDate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Compute returns the window [today, upper] where upper is reached by walking
// forward one calendar day at a time and counting only Monday through Friday,
// until businessDays days have been counted.
func Compute(today time.Time, businessDays int) Window {
	cur := today
	counted := 0
	for counted < businessDays {
		cur = cur.AddDate(0, 0, 1)
		if !isWeekend(cur) {
			counted++
		}
	}
	return Window{Min: FormatDate(today), Max: FormatDate(cur)}
}

// Dates lists the concrete selectable dates in order: today (when it is a
// weekday) followed by the next businessDays weekdays. Weekend dates never
// appear.
func Dates(today time.Time, businessDays int) []string {
	dates := make([]string, 0, businessDays+1)
	if !isWeekend(today) {
		dates = append(dates, FormatDate(today))
	}
	cur := today
	counted := 0
	for counted < businessDays {
		cur = cur.AddDate(0, 0, 1)
		if isWeekend(cur) {
			continue
		}
		counted++
		dates = append(dates, FormatDate(cur))
	}
	return dates
}

// Contains reports whether date is selectable: within [Min, Max] and not a
// Saturday or Sunday. The fixed-width YYYY-MM-DD format makes the range check
// a plain string comparison.
func (w Window) Contains(date string) bool {
	if date < w.Min || date > w.Max {
		return false
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return !isWeekend(t)
}
