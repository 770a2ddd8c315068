package timecalc

import (
	"fmt"
	"time"
)

// DateLayout is the layout of document keys.
const DateLayout = "2006-01-02"

// DateKey returns the local calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date in loc and returns noon of that day.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return Noon(d), nil
}

// Noon returns 12:00 of the same day. Day arithmetic anchored at noon never
// skips or repeats a date across DST changes.
func Noon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

// DaysBefore returns noon of the calendar day n days before t.
func DaysBefore(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()-n, 12, 0, 0, 0, t.Location())
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	return time.Date(year, time.December, 31, 12, 0, 0, 0, time.UTC).YearDay()
}

// YearDays returns noon of every day of year in loc, January 1 first.
func YearDays(year int, loc *time.Location) []time.Time {
	n := DaysInYear(year)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = time.Date(year, time.January, 1+i, 12, 0, 0, 0, loc)
	}
	return days
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
	sunday := monday.AddDate(0, 0, 6)
	sunday = time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, t.Location())
	return monday, sunday
}
