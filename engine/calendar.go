/*
calendar.go - Calendar dates and weekend sets

PURPOSE:
  Dates in this engine are plain calendar days with no time component and
  no time zone. Which weekdays count as "weekend" is organization policy,
  not a property of the calendar, so it travels as an explicit set.

DESIGN NOTE:
  Nothing here reads the wall clock. The calling layer decides which
  (year, month) to account for and passes it in.

SEE ALSO:
  - required.go: walks every day of a month against policy
  - spillover.go: needs to know the last calendar day of a month
*/
package engine

import "time"

// =============================================================================
// DATE - A calendar day with no time component
// =============================================================================

type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

func (d Date) String() string { return d.t.Format("2006-01-02") }

// IsLastDayOfMonth reports whether this is the final calendar day of its
// month, the only position where overnight spillover can occur.
func (d Date) IsLastDayOfMonth() bool {
	return d.t.AddDate(0, 0, 1).Day() == 1
}

// =============================================================================
// MONTH HELPERS
// =============================================================================

// DaysInMonth returns the number of calendar days in (year, month).
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func FirstOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

func LastOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, DaysInMonth(year, month))
}

// PrevMonth returns the (year, month) immediately before the given one.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

// NextMonth returns the (year, month) immediately after the given one.
func NextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}

// =============================================================================
// WEEKEND DAY SET - Organization-level weekend definition
// =============================================================================

// WeekendDaySet is the set of weekdays an organization treats as weekend.
type WeekendDaySet map[time.Weekday]bool

// DefaultWeekend is Saturday+Sunday.
func DefaultWeekend() WeekendDaySet {
	return WeekendDaySet{time.Saturday: true, time.Sunday: true}
}

func NewWeekendDaySet(days ...time.Weekday) WeekendDaySet {
	set := make(WeekendDaySet, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

func (w WeekendDaySet) Contains(day time.Weekday) bool { return w[day] }

// IsWeekend reports whether the date falls on one of the configured
// weekend days. A nil set means no day is a weekend day.
func (w WeekendDaySet) IsWeekend(d Date) bool { return w[d.Weekday()] }

// Count returns how many days of (year, month) fall in the set.
func (w WeekendDaySet) Count(year int, month time.Month) int {
	n := 0
	for day := 1; day <= DaysInMonth(year, month); day++ {
		if w[NewDate(year, month, day).Weekday()] {
			n++
		}
	}
	return n
}
