/*
Package engine implements the time accounting engine: the deterministic
calculations that turn raw schedule and attendance facts into worked-hour,
night-hour, required-hour and variance figures.

PURPOSE OF THIS FILE (types.go):
  The plain records the engine consumes and the enums that steer the
  calculations. Storage lifecycle for all of these belongs to the calling
  layer; the engine only reads them.

DESIGN PRINCIPLES:
  1. Purity: no I/O, no clocks, no shared state. Same input, same output.
  2. Precision: integer minutes internally, decimal.Decimal for hours.
     Rounding to one decimal happens at presentation only.
  3. Explicitness: (year, month) is always a parameter, never derived
     from "now".

SEE ALSO:
  - shift.go: duration calculation and the cached-hours recompute
  - required.go: contractual hours evaluation
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type OrgID string

// =============================================================================
// ENUMS
// =============================================================================

// OvernightMode decides where an overnight shift's post-midnight hours land.
type OvernightMode string

const (
	// SplitAtMidnight attributes post-midnight hours to the next calendar
	// day, and on a month boundary to the next month.
	SplitAtMidnight OvernightMode = "split_at_midnight"

	// AttributeToStartDay keeps the whole shift on its start date.
	AttributeToStartDay OvernightMode = "attribute_to_start_day"
)

// WeekendWorkMode governs whether an employee is expected to work weekends.
// Ordering matters: anything above WeekendNone means "works weekends in
// some form", which the half-day holiday rule relies on.
type WeekendWorkMode int

const (
	WeekendNone WeekendWorkMode = iota
	WeekendBothDays
	WeekendSaturdayOnly
	WeekendSaturdaySpecificHours
)

func (m WeekendWorkMode) String() string {
	switch m {
	case WeekendNone:
		return "none"
	case WeekendBothDays:
		return "both_days"
	case WeekendSaturdayOnly:
		return "saturday_only"
	case WeekendSaturdaySpecificHours:
		return "saturday_specific_hours"
	default:
		return "unknown"
	}
}

// AttendanceType mirrors the day-off flag on planned shifts for punch records.
type AttendanceType string

const (
	AttendanceNormal AttendanceType = "normal"
	AttendanceDayOff AttendanceType = "day_off"
)

// =============================================================================
// RECORDS - Engine inputs
// =============================================================================

// EmployeePolicy is the per-employee contractual configuration.
type EmployeePolicy struct {
	EmployeeID     EmployeeID
	DailyWorkHours decimal.Decimal
	WeekendMode    WeekendWorkMode

	// SaturdayHours must be set when WeekendMode is
	// WeekendSaturdaySpecificHours; it is ignored otherwise.
	SaturdayHours *decimal.Decimal
}

// Validate checks internal consistency. The engine calls this before any
// required-hours evaluation.
func (p EmployeePolicy) Validate() error {
	if p.WeekendMode == WeekendSaturdaySpecificHours && p.SaturdayHours == nil {
		return &InvalidPolicyError{Mode: p.WeekendMode, Reason: "saturday hours not set"}
	}
	return nil
}

// ShiftRecord is one planned work interval for one employee on one date.
// TotalHours/NightHours are cached results of Recompute; the persistence
// layer re-runs Recompute on every mutation.
type ShiftRecord struct {
	ID            string
	EmployeeID    EmployeeID
	Date          Date
	Start         ClockTime
	End           ClockTime
	SpansNextDay  bool
	BreakMinutes  int
	IsDayOff      bool
	OvernightMode OvernightMode

	TotalHours decimal.Decimal
	NightHours decimal.Decimal
}

// Interval returns the shift's wall-clock span.
func (s ShiftRecord) Interval() Interval {
	return Interval{Start: s.Start, End: s.End, SpansNextDay: s.SpansNextDay}
}

// AttendanceRecord is a punch-sourced counterpart to ShiftRecord.
// WorkedHours stays nil until both punches are present.
type AttendanceRecord struct {
	ID                string
	EmployeeID        EmployeeID
	Date              Date
	CheckIn           *ClockTime
	CheckOut          *ClockTime
	CheckOutToNextDay bool
	Type              AttendanceType

	WorkedHours *decimal.Decimal
}

// Complete reports whether both punches are present.
func (a AttendanceRecord) Complete() bool { return a.CheckIn != nil && a.CheckOut != nil }

// HolidayRecord marks an organization holiday. A full holiday zeroes
// required hours for every employee; a half-day one contributes its own
// hours value under weekend/leave rules.
type HolidayRecord struct {
	ID           string
	OrgID        OrgID
	Date         Date
	IsHalfDay    bool
	HalfDayHours *decimal.Decimal
}

// LeaveRecord suppresses a date's contribution to required hours.
// TypeCode/Color are carried through to display details untouched.
type LeaveRecord struct {
	ID         string
	EmployeeID EmployeeID
	Date       Date
	TypeCode   string
	Color      string
}

// =============================================================================
// HOUR ARITHMETIC
// =============================================================================

var sixty = decimal.NewFromInt(60)

// MinutesToHours converts whole minutes to decimal hours exactly.
func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}

// DecMinutesToHours converts fractional minutes (from proportional break
// deduction) to decimal hours.
func DecMinutesToHours(minutes decimal.Decimal) decimal.Decimal {
	return minutes.Div(sixty)
}

// RoundHours applies the single presentation rounding: one decimal place.
// Never call this mid-calculation.
func RoundHours(h decimal.Decimal) decimal.Decimal { return h.Round(1) }

// clampZero floors a decimal at zero. Negative intermediates are a
// recovered condition, not an error.
func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
