/*
clock.go - Minute-granularity wall-clock arithmetic

PURPOSE:
  Every calculation in this package ultimately reduces to arithmetic on
  minutes-since-midnight. This file defines that representation and the
  interval type built on it.

KEY CONCEPTS:
  ClockTime: a time of day as minutes since midnight (0-1439), parsed
             from "HH:mm". No date, no time zone.
  Interval:  (start, end, spansNextDay). When spansNextDay is set, or
             end < start, the effective end is end + 1440.

WHY MINUTES:
  Hour values are only meaningful at presentation. Internally everything
  is exact integer minutes, so there is no rounding drift mid-calculation.

SEE ALSO:
  - night.go: overlap of an Interval with the night window
  - shift.go: duration and break deduction for a shift
*/
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the wrap point for intervals that cross midnight.
const MinutesPerDay = 1440

// =============================================================================
// CLOCK TIME - Minutes since midnight
// =============================================================================

// ClockTime is a time of day in minutes since midnight, 0..1439.
type ClockTime int

// ParseClock parses a "HH:mm" wall-clock value.
func ParseClock(s string) (ClockTime, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, &InvalidIntervalError{Value: s, Reason: "expected HH:mm"}
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, &InvalidIntervalError{Value: s, Reason: "hour out of range"}
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, &InvalidIntervalError{Value: s, Reason: "minute out of range"}
	}
	return ClockTime(h*60 + m), nil
}

// MustClock parses a "HH:mm" value and panics on failure. Test helper.
func MustClock(s string) ClockTime {
	ct, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return ct
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Valid reports whether the value is within a single day.
func (c ClockTime) Valid() bool { return c >= 0 && c < MinutesPerDay }

// =============================================================================
// INTERVAL - A work span on the wall clock
// =============================================================================

// Interval is a wall-clock span. SpansNextDay puts End on the day after
// Start's: the effective end is always End + 1440 when the flag is set,
// even with End > Start (22:00 to 23:00 the next day is 25 hours).
type Interval struct {
	Start        ClockTime
	End          ClockTime
	SpansNextDay bool
}

// NewInterval parses start/end from "HH:mm" strings.
func NewInterval(start, end string, spansNextDay bool) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e, SpansNextDay: spansNextDay}, nil
}

// CrossesMidnight reports whether the effective end falls on the next day.
func (iv Interval) CrossesMidnight() bool {
	return iv.SpansNextDay || iv.End < iv.Start
}

// effectiveEnd returns the end in minutes from the start day's midnight,
// which may exceed 1440 for spans that cross midnight.
func (iv Interval) effectiveEnd() int {
	if iv.CrossesMidnight() {
		return int(iv.End) + MinutesPerDay
	}
	return int(iv.End)
}

// Duration returns the interval length in minutes, always >= 0.
func (iv Interval) Duration() int {
	d := iv.effectiveEnd() - int(iv.Start)
	if d < 0 {
		return 0
	}
	return d
}

// Validate checks that both endpoints are real clock times.
func (iv Interval) Validate() error {
	if !iv.Start.Valid() {
		return &InvalidIntervalError{Value: iv.Start.String(), Reason: "start out of range"}
	}
	if !iv.End.Valid() {
		return &InvalidIntervalError{Value: iv.End.String(), Reason: "end out of range"}
	}
	return nil
}

// ValidateStrict additionally rejects an end before start without the
// spans-next-day flag. The write path uses this: such input is ambiguous
// and must be surfaced, never silently corrected. The read path stays
// total per Duration's wrap rule so historical records still evaluate.
func (iv Interval) ValidateStrict() error {
	if err := iv.Validate(); err != nil {
		return err
	}
	if iv.End < iv.Start && !iv.SpansNextDay {
		return &InvalidIntervalError{Value: iv.String(), Reason: "end precedes start without spans-next-day"}
	}
	return nil
}

func (iv Interval) String() string {
	suffix := ""
	if iv.SpansNextDay {
		suffix = "+1"
	}
	return iv.Start.String() + "-" + iv.End.String() + suffix
}
