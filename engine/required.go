/*
required.go - Contractual required hours for a month

PURPOSE:
  Walks every calendar day of (year, month) and sums the hours the
  employee is expected to work, given holidays, the organization's
  weekend day set, the employee's weekend-work mode and leave days.

RULE ORDER PER DAY (first match wins):
  1. Full holiday            -> 0, overrides everything including leave
  2. Half-day holiday with a
     specified hours value   -> that value, unless weekend-with-mode-None
                                or leave suppresses it
  3. Weekend day             -> by WeekendWorkMode
  4. Weekday                 -> DailyWorkHours unless leave

  Day-off shift records are NOT consulted here. The aggregator subtracts
  dayOffCount * DailyWorkHours afterwards, clamped at zero.

SEE ALSO:
  - types.go: EmployeePolicy and its Validate
  - payroll: applies the day-off subtraction and the variance
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequiredHours returns the total contractual hours for the employee over
// (year, month), clamped at zero. Leaves may be nil when the caller has
// none to apply.
func RequiredHours(
	policy EmployeePolicy,
	year int,
	month time.Month,
	holidays []HolidayRecord,
	weekend WeekendDaySet,
	leaves []LeaveRecord,
) (decimal.Decimal, error) {
	if err := policy.Validate(); err != nil {
		return decimal.Zero, err
	}

	holidayByDay := make(map[string]HolidayRecord, len(holidays))
	for _, h := range holidays {
		holidayByDay[h.Date.String()] = h
	}
	leaveDays := make(map[string]bool, len(leaves))
	for _, l := range leaves {
		if l.EmployeeID == policy.EmployeeID {
			leaveDays[l.Date.String()] = true
		}
	}

	total := decimal.Zero
	for day := 1; day <= DaysInMonth(year, month); day++ {
		date := NewDate(year, month, day)
		total = total.Add(requiredForDay(policy, date, holidayByDay, weekend, leaveDays))
	}
	return clampZero(total), nil
}

func requiredForDay(
	policy EmployeePolicy,
	date Date,
	holidayByDay map[string]HolidayRecord,
	weekend WeekendDaySet,
	leaveDays map[string]bool,
) decimal.Decimal {
	onLeave := leaveDays[date.String()]
	isWeekendDay := weekend.IsWeekend(date)

	if h, ok := holidayByDay[date.String()]; ok {
		if !h.IsHalfDay {
			// Full holiday zeroes the day for everyone.
			return decimal.Zero
		}
		if h.HalfDayHours != nil {
			if (!isWeekendDay || policy.WeekendMode > WeekendNone) && !onLeave {
				return *h.HalfDayHours
			}
			return decimal.Zero
		}
		// Half-day holiday without an hours value does not override the
		// normal weekday/weekend rules.
	}

	if isWeekendDay {
		switch policy.WeekendMode {
		case WeekendBothDays:
			if onLeave {
				return decimal.Zero
			}
			return policy.DailyWorkHours
		case WeekendSaturdayOnly:
			if date.Weekday() == time.Saturday && !onLeave {
				return policy.DailyWorkHours
			}
			return decimal.Zero
		case WeekendSaturdaySpecificHours:
			if date.Weekday() == time.Saturday && !onLeave {
				return *policy.SaturdayHours
			}
			return decimal.Zero
		default: // WeekendNone: leave on a weekend changes nothing
			return decimal.Zero
		}
	}

	if onLeave {
		return decimal.Zero
	}
	return policy.DailyWorkHours
}
