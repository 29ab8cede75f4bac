package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/timeclock-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================
// June 2025 has 30 days: 21 weekdays, 4 Saturdays, 5 Sundays.

func policyWithMode(mode engine.WeekendWorkMode) engine.EmployeePolicy {
	return engine.EmployeePolicy{
		EmployeeID:     "emp-1",
		DailyWorkHours: dec("8"),
		WeekendMode:    mode,
	}
}

func leaveOn(day int) engine.LeaveRecord {
	return engine.LeaveRecord{
		EmployeeID: "emp-1",
		Date:       engine.NewDate(2025, time.June, day),
		TypeCode:   "AL",
	}
}

func fullHoliday(day int) engine.HolidayRecord {
	return engine.HolidayRecord{OrgID: "org-1", Date: engine.NewDate(2025, time.June, day)}
}

func halfHoliday(day int, hours string) engine.HolidayRecord {
	h := dec(hours)
	return engine.HolidayRecord{
		OrgID: "org-1", Date: engine.NewDate(2025, time.June, day),
		IsHalfDay: true, HalfDayHours: &h,
	}
}

func requiredJune(t *testing.T, p engine.EmployeePolicy, holidays []engine.HolidayRecord, leaves []engine.LeaveRecord) decimal.Decimal {
	t.Helper()
	got, err := engine.RequiredHours(p, 2025, time.June, holidays, engine.DefaultWeekend(), leaves)
	if err != nil {
		t.Fatalf("RequiredHours: %v", err)
	}
	return got
}

// =============================================================================
// WEEKEND MODES
// =============================================================================

func TestRequiredHours_WeekendNone(t *testing.T) {
	// GIVEN: 8h/day, weekends off
	// THEN: 21 weekdays * 8h
	got := requiredJune(t, policyWithMode(engine.WeekendNone), nil, nil)
	assertDecimal(t, "required", got, dec("168"))
}

func TestRequiredHours_WeekendBothDays(t *testing.T) {
	got := requiredJune(t, policyWithMode(engine.WeekendBothDays), nil, nil)
	assertDecimal(t, "required", got, dec("240"))
}

func TestRequiredHours_SaturdayOnly(t *testing.T) {
	// GIVEN: SaturdayOnly mode (needs no extra field)
	// THEN: Saturdays contribute DailyWorkHours, Sundays contribute 0
	got := requiredJune(t, policyWithMode(engine.WeekendSaturdayOnly), nil, nil)
	assertDecimal(t, "required", got, dec("200"))
}

func TestRequiredHours_SaturdayOnly_SundayLeaveHasNoEffect(t *testing.T) {
	// GIVEN: leave on Sunday June 1, which already contributes 0
	withLeave := requiredJune(t, policyWithMode(engine.WeekendSaturdayOnly), nil,
		[]engine.LeaveRecord{leaveOn(1)})
	assertDecimal(t, "required", withLeave, dec("200"))
}

func TestRequiredHours_SaturdaySpecificHours(t *testing.T) {
	sat := dec("5")
	p := policyWithMode(engine.WeekendSaturdaySpecificHours)
	p.SaturdayHours = &sat

	// 21 weekdays * 8 + 4 Saturdays * 5
	got := requiredJune(t, p, nil, nil)
	assertDecimal(t, "required", got, dec("188"))
}

func TestRequiredHours_SaturdaySpecificHours_MissingValue(t *testing.T) {
	p := policyWithMode(engine.WeekendSaturdaySpecificHours)
	_, err := engine.RequiredHours(p, 2025, time.June, nil, engine.DefaultWeekend(), nil)
	if !errors.Is(err, engine.ErrInvalidPolicy) {
		t.Fatalf("expected ErrInvalidPolicy, got %v", err)
	}
}

// =============================================================================
// HOLIDAYS AND LEAVE
// =============================================================================

func TestRequiredHours_FullHolidayZeroesWeekday(t *testing.T) {
	// GIVEN: full holiday on Monday June 2
	got := requiredJune(t, policyWithMode(engine.WeekendNone),
		[]engine.HolidayRecord{fullHoliday(2)}, nil)
	assertDecimal(t, "required", got, dec("160"))
}

func TestRequiredHours_FullHolidayOverridesEverything(t *testing.T) {
	// GIVEN: full holiday and a leave on the same Monday
	// THEN: the day is 0 exactly once; the leave cannot double-subtract
	got := requiredJune(t, policyWithMode(engine.WeekendNone),
		[]engine.HolidayRecord{fullHoliday(2)},
		[]engine.LeaveRecord{leaveOn(2)})
	assertDecimal(t, "required", got, dec("160"))
}

func TestRequiredHours_HalfDayHoliday_Weekday(t *testing.T) {
	// GIVEN: half-day holiday with 4h on Monday June 2
	// THEN: the day contributes 4 instead of 8
	got := requiredJune(t, policyWithMode(engine.WeekendNone),
		[]engine.HolidayRecord{halfHoliday(2, "4")}, nil)
	assertDecimal(t, "required", got, dec("164"))
}

func TestRequiredHours_HalfDayHoliday_LeaveSuppresses(t *testing.T) {
	got := requiredJune(t, policyWithMode(engine.WeekendNone),
		[]engine.HolidayRecord{halfHoliday(2, "4")},
		[]engine.LeaveRecord{leaveOn(2)})
	assertDecimal(t, "required", got, dec("160"))
}

func TestRequiredHours_HalfDayHoliday_WeekendNeedsWeekendMode(t *testing.T) {
	// GIVEN: half-day holiday with 4h on Sunday June 1
	// THEN: mode None gets nothing; BothDays gets 4 instead of 8
	none := requiredJune(t, policyWithMode(engine.WeekendNone),
		[]engine.HolidayRecord{halfHoliday(1, "4")}, nil)
	assertDecimal(t, "mode none", none, dec("168"))

	both := requiredJune(t, policyWithMode(engine.WeekendBothDays),
		[]engine.HolidayRecord{halfHoliday(1, "4")}, nil)
	assertDecimal(t, "mode both days", both, dec("236"))
}

func TestRequiredHours_HalfDayHolidayWithoutHours_FallsThrough(t *testing.T) {
	// GIVEN: half-day flag set but no hours value
	// THEN: the normal weekday rule applies
	h := engine.HolidayRecord{OrgID: "org-1", Date: engine.NewDate(2025, time.June, 2), IsHalfDay: true}
	got := requiredJune(t, policyWithMode(engine.WeekendNone), []engine.HolidayRecord{h}, nil)
	assertDecimal(t, "required", got, dec("168"))
}

func TestRequiredHours_LeaveOnWeekdays(t *testing.T) {
	// GIVEN: leave on Monday June 2 and Tuesday June 3
	got := requiredJune(t, policyWithMode(engine.WeekendNone), nil,
		[]engine.LeaveRecord{leaveOn(2), leaveOn(3)})
	assertDecimal(t, "required", got, dec("152"))
}

func TestRequiredHours_OtherEmployeesLeaveIgnored(t *testing.T) {
	other := engine.LeaveRecord{EmployeeID: "emp-2", Date: engine.NewDate(2025, time.June, 2)}
	got := requiredJune(t, policyWithMode(engine.WeekendNone), nil,
		[]engine.LeaveRecord{other})
	assertDecimal(t, "required", got, dec("168"))
}

func TestRequiredHours_NeverNegative(t *testing.T) {
	// GIVEN: zero daily hours and leave everywhere
	p := engine.EmployeePolicy{EmployeeID: "emp-1", DailyWorkHours: decimal.Zero}
	var leaves []engine.LeaveRecord
	for d := 1; d <= 30; d++ {
		leaves = append(leaves, leaveOn(d))
	}
	got := requiredJune(t, p, nil, leaves)
	if got.IsNegative() {
		t.Errorf("required hours went negative: %s", got)
	}
}
