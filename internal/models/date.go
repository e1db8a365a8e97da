package models

import (
	"fmt"
	"time"
)

// DateLayout is the storage and config representation of a calendar day
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar day
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar day n days after d
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// DaysBetween returns the whole number of days from start to end
func DaysBetween(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours() / 24)
}

// FormatDate formats a calendar day as YYYY-MM-DD
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar day
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Horizon is the half-open simulated date range [Start, End)
type Horizon struct {
	Start time.Time
	End   time.Time
}

// NewHorizon builds a horizon of the given number of days beginning at start
func NewHorizon(start time.Time, days int) Horizon {
	start = Day(start)
	return Horizon{Start: start, End: AddDays(start, days)}
}

// Days returns the length of the horizon in days
func (h Horizon) Days() int {
	return DaysBetween(h.Start, h.End)
}

// Contains reports whether d falls inside [Start, End)
func (h Horizon) Contains(d time.Time) bool {
	return !d.Before(h.Start) && d.Before(h.End)
}
