package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/timeclock-engine/engine"
	"github.com/warp/timeclock-engine/payroll"
)

// =============================================================================
// TEST SETUP
// =============================================================================
// June 2025: 21 weekdays, 4 Saturdays, 5 Sundays. June 2 is a Monday.

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertDec(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s = %s, want %s", name, got.StringFixed(4), want)
}

func testWindow(t *testing.T) engine.NightWindow {
	t.Helper()
	w, err := engine.NewNightWindow("22:00", "06:00")
	require.NoError(t, err)
	return w
}

func basePolicy() engine.EmployeePolicy {
	return engine.EmployeePolicy{
		EmployeeID:     "emp-1",
		DailyWorkHours: dec("8"),
		WeekendMode:    engine.WeekendNone,
	}
}

func juneShift(day int, start, end string, spans bool, breakMinutes int) engine.ShiftRecord {
	return engine.ShiftRecord{
		EmployeeID:    "emp-1",
		Date:          engine.NewDate(2025, time.June, day),
		Start:         engine.MustClock(start),
		End:           engine.MustClock(end),
		SpansNextDay:  spans,
		BreakMinutes:  breakMinutes,
		OvernightMode: engine.SplitAtMidnight,
	}
}

func juneInput(shifts ...engine.ShiftRecord) payroll.Input {
	return payroll.Input{
		Year:        2025,
		Month:       time.June,
		Policy:      basePolicy(),
		Source:      payroll.SourceShifts,
		Shifts:      shifts,
		WeekendDays: engine.DefaultWeekend(),
	}
}

// =============================================================================
// SHIFT-SOURCED AGGREGATION
// =============================================================================

func TestSummarize_MixedMonth(t *testing.T) {
	// GIVEN: a weekday shift, a Saturday shift, a worked full holiday,
	//        a day-off record, and a month-boundary overnight shift
	dayOff := juneShift(10, "09:00", "17:00", false, 0)
	dayOff.IsDayOff = true

	in := juneInput(
		juneShift(2, "09:00", "18:00", false, 60), // Monday, 8h
		juneShift(7, "09:00", "13:00", false, 0),  // Saturday, 4h
		juneShift(9, "10:00", "14:00", false, 0),  // Monday holiday, 4h
		dayOff,
		juneShift(30, "22:00", "06:00", true, 0), // boundary, 2h stay in June
	)
	in.NightWindow = testWindow(t)
	in.Holidays = []engine.HolidayRecord{
		{OrgID: "org-1", Date: engine.NewDate(2025, time.June, 9)},
	}

	sum, err := payroll.Summarize(in)
	require.NoError(t, err)

	assert.Equal(t, 4, sum.WorkedDays)
	assert.Equal(t, 1, sum.DayOffCount)
	assertDec(t, "worked", sum.TotalWorkedHours, "18")
	assertDec(t, "night", sum.NightHours, "2")
	assertDec(t, "weekend", sum.WeekendHours, "4")
	assertDec(t, "holiday", sum.HolidayHours, "4")

	// Required: 21 weekdays*8, minus the full holiday (-8), minus the
	// day-off subtraction (-8).
	assertDec(t, "required", sum.RequiredHours, "152")
	assertDec(t, "variance", sum.Variance, "-134")

	require.Len(t, sum.Details, 5)
	for i := 1; i < len(sum.Details); i++ {
		assert.True(t, sum.Details[i-1].Date.Before(sum.Details[i].Date),
			"details must be in ascending date order")
	}
}

func TestSummarize_PriorMonthCarry(t *testing.T) {
	// GIVEN: May 31 overnight shift under SplitAtMidnight
	// WHEN: aggregating June
	// THEN: June receives the 6 post-midnight hours, all of them night
	prior := engine.ShiftRecord{
		EmployeeID:    "emp-1",
		Date:          engine.NewDate(2025, time.May, 31),
		Start:         engine.MustClock("22:00"),
		End:           engine.MustClock("06:00"),
		SpansNextDay:  true,
		OvernightMode: engine.SplitAtMidnight,
	}

	in := juneInput()
	in.NightWindow = testWindow(t)
	in.PriorLastDayShift = &prior

	sum, err := payroll.Summarize(in)
	require.NoError(t, err)
	assertDec(t, "worked", sum.TotalWorkedHours, "6")
	assertDec(t, "night", sum.NightHours, "6")
}

func TestSummarize_AttributeToStartDay_NoCarry(t *testing.T) {
	prior := engine.ShiftRecord{
		EmployeeID:    "emp-1",
		Date:          engine.NewDate(2025, time.May, 31),
		Start:         engine.MustClock("22:00"),
		End:           engine.MustClock("06:00"),
		SpansNextDay:  true,
		OvernightMode: engine.AttributeToStartDay,
	}

	in := juneInput()
	in.NightWindow = testWindow(t)
	in.PriorLastDayShift = &prior

	sum, err := payroll.Summarize(in)
	require.NoError(t, err)
	assertDec(t, "worked", sum.TotalWorkedHours, "0")
}

func TestSummarize_RequiredHoursScenario(t *testing.T) {
	// GIVEN: 30-day month, no holidays, 2 weekday leave days, 1 day-off
	// THEN: required = (30-9)*8 - 2*8 - 1*8 = 144
	dayOff := juneShift(4, "09:00", "17:00", false, 0)
	dayOff.IsDayOff = true

	in := juneInput(dayOff)
	in.NightWindow = testWindow(t)
	in.Leaves = []engine.LeaveRecord{
		{EmployeeID: "emp-1", Date: engine.NewDate(2025, time.June, 2), TypeCode: "AL", Color: "#4caf50"},
		{EmployeeID: "emp-1", Date: engine.NewDate(2025, time.June, 3), TypeCode: "AL", Color: "#4caf50"},
	}

	sum, err := payroll.Summarize(in)
	require.NoError(t, err)
	assertDec(t, "required", sum.RequiredHours, "144")
	assertDec(t, "variance", sum.Variance, "-144")

	// Leave days appear as zero-hour display rows carrying the type code.
	require.Len(t, sum.Details, 3)
	assert.True(t, sum.Details[0].IsLeave)
	assert.Equal(t, "AL", sum.Details[0].LeaveTypeCode)
	assert.Equal(t, "#4caf50", sum.Details[0].LeaveColor)
	assert.True(t, sum.Details[2].IsDayOff)
}

func TestSummarize_LeaveOnRecordedDateNotDuplicated(t *testing.T) {
	// GIVEN: a leave and a shift on the same date (the CRUD layer should
	//        have removed the shift, but the aggregator must not emit two
	//        rows regardless)
	in := juneInput(juneShift(2, "09:00", "17:00", false, 0))
	in.NightWindow = testWindow(t)
	in.Leaves = []engine.LeaveRecord{
		{EmployeeID: "emp-1", Date: engine.NewDate(2025, time.June, 2), TypeCode: "AL"},
	}

	sum, err := payroll.Summarize(in)
	require.NoError(t, err)
	require.Len(t, sum.Details, 1)
	assert.False(t, sum.Details[0].IsLeave)
}

func TestSummarize_DayOffSubtractionClampsAtZero(t *testing.T) {
	// GIVEN: more day-offs than required hours can absorb
	p := basePolicy()
	p.DailyWorkHours = dec("1")

	var shifts []engine.ShiftRecord
	for d := 1; d <= 30; d++ {
		s := juneShift(d, "09:00", "17:00", false, 0)
		s.IsDayOff = true
		shifts = append(shifts, s)
	}
	in := juneInput(shifts...)
	in.Policy = p
	in.NightWindow = testWindow(t)

	sum, err := payroll.Summarize(in)
	require.NoError(t, err)
	assert.False(t, sum.RequiredHours.IsNegative(), "required hours must clamp at zero")
	assertDec(t, "required", sum.RequiredHours, "0")
}

func TestSummarize_InvalidPolicySurfaced(t *testing.T) {
	in := juneInput()
	in.Policy.WeekendMode = engine.WeekendSaturdaySpecificHours
	in.NightWindow = testWindow(t)

	_, err := payroll.Summarize(in)
	require.ErrorIs(t, err, engine.ErrInvalidPolicy)
}

// =============================================================================
// ATTENDANCE-SOURCED AGGREGATION
// =============================================================================

func clockPtr(s string) *engine.ClockTime {
	ct := engine.MustClock(s)
	return &ct
}

func TestSummarize_AttendanceSource(t *testing.T) {
	// GIVEN: complete punches with a planned break, an incomplete punch,
	//        a day-off, and an overnight punch with no planned shift
	in := payroll.Input{
		Year:        2025,
		Month:       time.June,
		Policy:      basePolicy(),
		Source:      payroll.SourceAttendance,
		WeekendDays: engine.DefaultWeekend(),
		NightWindow: testWindow(t),
		Shifts: []engine.ShiftRecord{
			juneShift(2, "09:00", "18:00", false, 60), // planned break source
		},
		Attendances: []engine.AttendanceRecord{
			{EmployeeID: "emp-1", Date: engine.NewDate(2025, time.June, 2),
				CheckIn: clockPtr("09:00"), CheckOut: clockPtr("18:00"), Type: engine.AttendanceNormal},
			{EmployeeID: "emp-1", Date: engine.NewDate(2025, time.June, 3),
				CheckIn: clockPtr("09:00"), Type: engine.AttendanceNormal},
			{EmployeeID: "emp-1", Date: engine.NewDate(2025, time.June, 4),
				Type: engine.AttendanceDayOff},
			{EmployeeID: "emp-1", Date: engine.NewDate(2025, time.June, 6),
				CheckIn: clockPtr("22:00"), CheckOut: clockPtr("06:00"),
				CheckOutToNextDay: true, Type: engine.AttendanceNormal},
		},
	}

	sum, err := payroll.Summarize(in)
	require.NoError(t, err)

	// June 2: 9h minus the planned 60m break. June 6: full 8h, no planned
	// shift means no break deduction. The incomplete punch contributes 0.
	assert.Equal(t, 2, sum.WorkedDays)
	assert.Equal(t, 1, sum.DayOffCount)
	assertDec(t, "worked", sum.TotalWorkedHours, "16")
	assertDec(t, "night", sum.NightHours, "8")
	require.Len(t, sum.Details, 4)

	// Required: 168 weekday hours minus the day-off subtraction.
	assertDec(t, "required", sum.RequiredHours, "160")
}

func TestSummarize_AttendancePrecomputedHoursTrusted(t *testing.T) {
	// GIVEN: a record with stored WorkedHours and no punches
	worked := dec("7.5")
	in := payroll.Input{
		Year:        2025,
		Month:       time.June,
		Policy:      basePolicy(),
		Source:      payroll.SourceAttendance,
		WeekendDays: engine.DefaultWeekend(),
		NightWindow: testWindow(t),
		Attendances: []engine.AttendanceRecord{
			{EmployeeID: "emp-1", Date: engine.NewDate(2025, time.June, 2),
				WorkedHours: &worked, Type: engine.AttendanceNormal},
		},
	}

	sum, err := payroll.Summarize(in)
	require.NoError(t, err)
	assertDec(t, "worked", sum.TotalWorkedHours, "7.5")
	assertDec(t, "night", sum.NightHours, "0")
}

// =============================================================================
// PRESENTATION ROUNDING
// =============================================================================

func TestRounded_OneDecimalAtPresentationOnly(t *testing.T) {
	// GIVEN: a shift whose proportional break yields a repeating decimal
	in := juneInput(juneShift(2, "18:00", "02:00", true, 50))
	in.NightWindow = testWindow(t)

	sum, err := payroll.Summarize(in)
	require.NoError(t, err)

	// raw 480m, night raw 240m, break 50m: night = 215m = 3.58333...h
	rounded := sum.Rounded()
	assertDec(t, "rounded night", rounded.NightHours, "3.6")
	assertDec(t, "rounded total", rounded.TotalWorkedHours, "7.2")
	// The unrounded summary keeps full precision.
	assert.False(t, sum.NightHours.Equal(rounded.NightHours),
		"exact value must not be pre-rounded")
}

func TestSummarize_Idempotent(t *testing.T) {
	in := juneInput(juneShift(2, "18:00", "02:00", true, 60))
	in.NightWindow = testWindow(t)

	first, err := payroll.Summarize(in)
	require.NoError(t, err)
	second, err := payroll.Summarize(in)
	require.NoError(t, err)

	assert.True(t, first.TotalWorkedHours.Equal(second.TotalWorkedHours))
	assert.True(t, first.NightHours.Equal(second.NightHours))
	assert.True(t, first.Variance.Equal(second.Variance))
}
