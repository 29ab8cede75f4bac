/*
aggregate.go - The monthly payroll aggregation

PURPOSE:
  Folds one employee's month of records into an EmployeeMonthlySummary:
  worked/night/weekend/holiday hours, day-off count, required hours and
  variance, plus ordered per-day detail rows.

FLOW:
  1. Walk records in ascending date order
     - day-off     -> count it, no hours
     - worked      -> engine duration (spillover-adjusted on the month
                      boundary), bucket into weekend/holiday as flagged
  2. Add the previous month's post-midnight carry to the totals
  3. Append leave-only dates as zero-hour detail rows
  4. Required hours via the policy evaluator, minus dayOffCount * daily
     (clamped), variance = worked - required

  The aggregation is pure: it reads the Input snapshot and returns a new
  summary. Concurrent calls for different employees are safe.

SEE ALSO:
  - engine/spillover.go: boundary attribution consulted in step 1 and 2
  - types.go: Input and summary shapes
*/
package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/timeclock-engine/engine"
)

// Summarize computes the monthly summary for one employee.
func Summarize(in Input) (*EmployeeMonthlySummary, error) {
	if err := in.Policy.Validate(); err != nil {
		return nil, err
	}

	sum := &EmployeeMonthlySummary{
		EmployeeID:       in.Policy.EmployeeID,
		Year:             in.Year,
		Month:            in.Month,
		TotalWorkedHours: decimal.Zero,
		NightHours:       decimal.Zero,
		WeekendHours:     decimal.Zero,
		HolidayHours:     decimal.Zero,
	}

	holidayDays := make(map[string]bool, len(in.Holidays))
	for _, h := range in.Holidays {
		holidayDays[h.Date.String()] = true
	}

	recordedDays := make(map[string]bool)

	var err error
	switch in.Source {
	case SourceAttendance:
		err = summarizeAttendance(in, sum, holidayDays, recordedDays)
	default:
		err = summarizeShifts(in, sum, holidayDays, recordedDays)
	}
	if err != nil {
		return nil, err
	}

	// Post-midnight carry from the previous month's last day.
	carry, err := engine.CarryFromPriorMonth(in.PriorLastDayShift, in.NightWindow, in.Year, in.Month)
	if err != nil {
		return nil, err
	}
	sum.TotalWorkedHours = sum.TotalWorkedHours.Add(carry.Total)
	sum.NightHours = sum.NightHours.Add(carry.Night)

	// Leave dates without a record of their own become display-only rows.
	for _, l := range in.Leaves {
		if l.EmployeeID != in.Policy.EmployeeID || recordedDays[l.Date.String()] {
			continue
		}
		sum.Details = append(sum.Details, DayDetail{
			Date:          l.Date,
			TotalHours:    decimal.Zero,
			NightHours:    decimal.Zero,
			IsLeave:       true,
			IsWeekend:     in.WeekendDays.IsWeekend(l.Date),
			IsHoliday:     holidayDays[l.Date.String()],
			LeaveTypeCode: l.TypeCode,
			LeaveColor:    l.Color,
		})
	}

	sort.Slice(sum.Details, func(i, j int) bool {
		return sum.Details[i].Date.Before(sum.Details[j].Date)
	})

	required, err := engine.RequiredHours(in.Policy, in.Year, in.Month, in.Holidays, in.WeekendDays, in.Leaves)
	if err != nil {
		return nil, err
	}
	// Day-offs neutralize days the evaluator counted as "must work".
	dayOffHours := in.Policy.DailyWorkHours.Mul(decimal.NewFromInt(int64(sum.DayOffCount)))
	required = required.Sub(dayOffHours)
	if required.IsNegative() {
		required = decimal.Zero
	}

	sum.RequiredHours = required
	sum.Variance = sum.TotalWorkedHours.Sub(required)
	return sum, nil
}

// SummarizeAll aggregates a batch of employee inputs, in order.
func SummarizeAll(inputs []Input) ([]*EmployeeMonthlySummary, error) {
	out := make([]*EmployeeMonthlySummary, 0, len(inputs))
	for _, in := range inputs {
		sum, err := Summarize(in)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}

// =============================================================================
// SHIFT-SOURCED AGGREGATION
// =============================================================================

func summarizeShifts(in Input, sum *EmployeeMonthlySummary, holidayDays, recordedDays map[string]bool) error {
	shifts := append([]engine.ShiftRecord(nil), in.Shifts...)
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].Date.Before(shifts[j].Date) })

	for _, s := range shifts {
		recordedDays[s.Date.String()] = true
		isWeekend := in.WeekendDays.IsWeekend(s.Date)
		isHoliday := holidayDays[s.Date.String()]

		if s.IsDayOff {
			sum.DayOffCount++
			sum.Details = append(sum.Details, DayDetail{
				Date: s.Date, IsDayOff: true, IsWeekend: isWeekend, IsHoliday: isHoliday,
				TotalHours: decimal.Zero, NightHours: decimal.Zero,
			})
			continue
		}

		// Month-adjusted hours: on the boundary only the pre-midnight
		// portion counts here; the rest belongs to next month's run.
		sp, err := engine.ResolveSpillover(s, in.NightWindow)
		if err != nil {
			return err
		}
		hours := sp.Current

		sum.WorkedDays++
		sum.TotalWorkedHours = sum.TotalWorkedHours.Add(hours.Total)
		sum.NightHours = sum.NightHours.Add(hours.Night)
		if isWeekend {
			sum.WeekendHours = sum.WeekendHours.Add(hours.Total)
		}
		if isHoliday {
			sum.HolidayHours = sum.HolidayHours.Add(hours.Total)
		}

		sum.Details = append(sum.Details, DayDetail{
			Date:       s.Date,
			Start:      s.Start.String(),
			End:        s.End.String(),
			TotalHours: hours.Total,
			NightHours: hours.Night,
			IsWeekend:  isWeekend,
			IsHoliday:  isHoliday,
		})
	}
	return nil
}

// =============================================================================
// ATTENDANCE-SOURCED AGGREGATION
// =============================================================================

func summarizeAttendance(in Input, sum *EmployeeMonthlySummary, holidayDays, recordedDays map[string]bool) error {
	// Break minutes come only from a matching planned shift, never from
	// an organization default.
	plannedBreak := make(map[string]int, len(in.Shifts))
	for _, s := range in.Shifts {
		plannedBreak[s.Date.String()] = s.BreakMinutes
	}

	atts := append([]engine.AttendanceRecord(nil), in.Attendances...)
	sort.Slice(atts, func(i, j int) bool { return atts[i].Date.Before(atts[j].Date) })

	for _, a := range atts {
		recordedDays[a.Date.String()] = true
		isWeekend := in.WeekendDays.IsWeekend(a.Date)
		isHoliday := holidayDays[a.Date.String()]

		if a.Type == engine.AttendanceDayOff {
			sum.DayOffCount++
			sum.Details = append(sum.Details, DayDetail{
				Date: a.Date, IsDayOff: true, IsWeekend: isWeekend, IsHoliday: isHoliday,
				TotalHours: decimal.Zero, NightHours: decimal.Zero,
			})
			continue
		}

		hours, err := attendanceHours(a, plannedBreak[a.Date.String()], in.NightWindow)
		if err != nil {
			return err
		}

		detail := DayDetail{
			Date: a.Date, IsWeekend: isWeekend, IsHoliday: isHoliday,
			TotalHours: decimal.Zero, NightHours: decimal.Zero,
		}
		if a.CheckIn != nil {
			detail.Start = a.CheckIn.String()
		}
		if a.CheckOut != nil {
			detail.End = a.CheckOut.String()
		}

		if hours != nil {
			sum.WorkedDays++
			sum.TotalWorkedHours = sum.TotalWorkedHours.Add(hours.Total)
			sum.NightHours = sum.NightHours.Add(hours.Night)
			if isWeekend {
				sum.WeekendHours = sum.WeekendHours.Add(hours.Total)
			}
			if isHoliday {
				sum.HolidayHours = sum.HolidayHours.Add(hours.Total)
			}
			detail.TotalHours = hours.Total
			detail.NightHours = hours.Night
		}

		sum.Details = append(sum.Details, detail)
	}
	return nil
}

// attendanceHours resolves one attendance record's hours. A precomputed
// WorkedHours value is trusted as-is (night cannot be derived from it);
// complete punches go through the same duration calculator as shifts.
func attendanceHours(a engine.AttendanceRecord, breakMinutes int, w engine.NightWindow) (*engine.ShiftHours, error) {
	if a.Complete() {
		synthetic := engine.ShiftRecord{
			EmployeeID:   a.EmployeeID,
			Date:         a.Date,
			Start:        *a.CheckIn,
			End:          *a.CheckOut,
			SpansNextDay: a.CheckOutToNextDay,
			BreakMinutes: breakMinutes,
		}
		hours, err := engine.ComputeShiftHours(synthetic, w)
		if err != nil {
			return nil, err
		}
		return &hours, nil
	}
	if a.WorkedHours != nil {
		return &engine.ShiftHours{Total: *a.WorkedHours, Night: decimal.Zero}, nil
	}
	return nil, nil
}
