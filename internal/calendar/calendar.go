package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DayKey identifies a local calendar day. Two times bucket together iff
// their keys are equal.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// Key returns the DayKey for t in t's location.
func Key(t time.Time) DayKey {
	y, m, d := t.Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// SameDay reports whether a and b fall on the same calendar day.
// Calendar comparison, not an elapsed-24h window: 23:59 and 00:01 the next
// day are different days.
func SameDay(a, b time.Time) bool {
	return Key(a) == Key(b)
}

// Bucketer computes calendar buckets with a configurable week start.
type Bucketer struct {
	WeekStartsOn time.Weekday
}

// New creates a Bucketer starting weeks on the given weekday.
func New(weekStartsOn time.Weekday) Bucketer {
	return Bucketer{WeekStartsOn: weekStartsOn}
}

// ParseWeekday converts a config value like "sunday" into a weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return time.Sunday, fmt.Errorf("invalid weekday %q", s)
	}
}

// midnight truncates t to local midnight.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the most recent WeekStartsOn on or before t.
func (b Bucketer) startOfWeek(t time.Time) time.Time {
	day := midnight(t)
	offset := (int(day.Weekday()) - int(b.WeekStartsOn) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekRange returns the first and last day of the 7-day week containing t.
func (b Bucketer) WeekRange(t time.Time) (start, end time.Time) {
	start = b.startOfWeek(t)
	return start, start.AddDate(0, 0, 6)
}

// InWeek reports whether t falls in the week containing anchor.
func (b Bucketer) InWeek(t, anchor time.Time) bool {
	return b.startOfWeek(t).Equal(b.startOfWeek(anchor))
}

// MonthRange returns the first and last day of the month containing t.
func (b Bucketer) MonthRange(t time.Time) (start, end time.Time) {
	y, m, _ := t.Date()
	start = time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, -1)
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}

// MonthGrid returns the calendar-grid days for the month containing t: from
// the week-aligned day on or before the 1st through the last day of the
// month. Leading days may belong to the previous month; the tail is not
// padded out to a full week.
func (b Bucketer) MonthGrid(t time.Time) []time.Time {
	monthStart, monthEnd := b.MonthRange(t)
	days := make([]time.Time, 0, 37)
	for day := b.startOfWeek(monthStart); !day.After(monthEnd); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// DaysOfMonth returns every day of the month containing t, in order.
func (b Bucketer) DaysOfMonth(t time.Time) []time.Time {
	start, end := b.MonthRange(t)
	days := make([]time.Time, 0, 31)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}
