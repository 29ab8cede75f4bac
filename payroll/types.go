/*
Package payroll combines per-day schedule or attendance facts into
per-employee monthly summaries. It sits on top of the engine package the
way a payroll run sits on top of a timesheet: the engine answers "how
long was this shift", payroll answers "what does this month add up to".

PURPOSE OF THIS FILE (types.go):
  The aggregation input and output shapes. Summaries carry exact decimal
  values; rounding to one decimal happens only in Rounded(), the single
  presentation step.
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/timeclock-engine/engine"
)

// =============================================================================
// SOURCE - Where the month's records come from
// =============================================================================

// Source selects which record stream feeds the aggregation. Both produce
// the same summary shape.
type Source string

const (
	// SourceShifts aggregates planned ShiftRecords.
	SourceShifts Source = "shifts"

	// SourceAttendance aggregates punch-based AttendanceRecords. Planned
	// shifts, when supplied, only contribute their break minutes.
	SourceAttendance Source = "attendance"
)

// =============================================================================
// AGGREGATION INPUT
// =============================================================================

// Input is everything needed to summarize one employee's month. The
// caller supplies a consistent snapshot; the aggregator only reads it.
type Input struct {
	Year   int
	Month  time.Month
	Policy engine.EmployeePolicy
	Source Source

	// Shifts for the month. In attendance mode these are the planned
	// records consulted for break minutes only.
	Shifts []engine.ShiftRecord

	// Attendances for the month; used when Source is SourceAttendance.
	Attendances []engine.AttendanceRecord

	Holidays []engine.HolidayRecord
	Leaves   []engine.LeaveRecord

	NightWindow engine.NightWindow
	WeekendDays engine.WeekendDaySet

	// PriorLastDayShift is the previous month's last-day record, read
	// backward for spillover. Nil when there is none.
	PriorLastDayShift *engine.ShiftRecord
}

// =============================================================================
// SUMMARY OUTPUT
// =============================================================================

// DayDetail is one display/export row of the monthly summary.
type DayDetail struct {
	Date       engine.Date
	Start      string
	End        string
	TotalHours decimal.Decimal
	NightHours decimal.Decimal

	IsDayOff  bool
	IsWeekend bool
	IsHoliday bool
	IsLeave   bool

	// Carried from the LeaveRecord for display; empty otherwise.
	LeaveTypeCode string
	LeaveColor    string
}

// EmployeeMonthlySummary is the engine's answer for one employee-month.
// All decimal fields are exact until Rounded() is applied.
type EmployeeMonthlySummary struct {
	EmployeeID engine.EmployeeID
	Year       int
	Month      time.Month

	WorkedDays       int
	TotalWorkedHours decimal.Decimal
	RequiredHours    decimal.Decimal
	NightHours       decimal.Decimal
	WeekendHours     decimal.Decimal
	HolidayHours     decimal.Decimal
	DayOffCount      int

	// Variance is worked minus required; negative means a shortfall.
	Variance decimal.Decimal

	Details []DayDetail
}

// Rounded returns a copy with every hour figure rounded to one decimal
// place. This is the only place rounding is allowed to happen.
func (s EmployeeMonthlySummary) Rounded() EmployeeMonthlySummary {
	out := s
	out.TotalWorkedHours = engine.RoundHours(s.TotalWorkedHours)
	out.RequiredHours = engine.RoundHours(s.RequiredHours)
	out.NightHours = engine.RoundHours(s.NightHours)
	out.WeekendHours = engine.RoundHours(s.WeekendHours)
	out.HolidayHours = engine.RoundHours(s.HolidayHours)
	out.Variance = engine.RoundHours(s.Variance)

	out.Details = make([]DayDetail, len(s.Details))
	for i, d := range s.Details {
		d.TotalHours = engine.RoundHours(d.TotalHours)
		d.NightHours = engine.RoundHours(d.NightHours)
		out.Details[i] = d
	}
	return out
}
