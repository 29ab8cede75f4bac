package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timeclock-engine/engine"
	"github.com/warp/timeclock-engine/payroll"
	"github.com/warp/timeclock-engine/store/memory"
)

func TestUpsertShift_ReplacesByEmployeeAndDate(t *testing.T) {
	// GIVEN: a stored shift for one date
	s := memory.New()
	ctx := context.Background()
	date := engine.NewDate(2025, time.June, 10)

	first := engine.ShiftRecord{
		ID:         "a",
		EmployeeID: "emp-1",
		Date:       date,
		Start:      engine.MustClock("09:00"),
		End:        engine.MustClock("17:00"),
	}
	require.NoError(t, s.UpsertShift(ctx, first))

	// WHEN: upserting again for the same (employee, date)
	second := first
	second.ID = "b"
	second.Start = engine.MustClock("10:00")
	require.NoError(t, s.UpsertShift(ctx, second))

	// THEN: one record per day, the later write wins
	shifts, err := s.ShiftsForMonth(ctx, "emp-1", 2025, time.June)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, engine.MustClock("10:00"), shifts[0].Start)
}

func TestShiftsForMonth_SortedAndScoped(t *testing.T) {
	// GIVEN: shifts across two months and two employees
	s := memory.New()
	ctx := context.Background()

	for _, day := range []int{20, 5, 12} {
		require.NoError(t, s.UpsertShift(ctx, engine.ShiftRecord{
			EmployeeID: "emp-1",
			Date:       engine.NewDate(2025, time.June, day),
			Start:      engine.MustClock("09:00"),
			End:        engine.MustClock("17:00"),
		}))
	}
	require.NoError(t, s.UpsertShift(ctx, engine.ShiftRecord{
		EmployeeID: "emp-1",
		Date:       engine.NewDate(2025, time.July, 1),
		Start:      engine.MustClock("09:00"),
		End:        engine.MustClock("17:00"),
	}))
	require.NoError(t, s.UpsertShift(ctx, engine.ShiftRecord{
		EmployeeID: "emp-2",
		Date:       engine.NewDate(2025, time.June, 6),
		Start:      engine.MustClock("09:00"),
		End:        engine.MustClock("17:00"),
	}))

	// WHEN: reading emp-1's June
	shifts, err := s.ShiftsForMonth(ctx, "emp-1", 2025, time.June)
	require.NoError(t, err)

	// THEN: only that month and employee, in date order
	require.Len(t, shifts, 3)
	assert.Equal(t, 5, shifts[0].Date.Day())
	assert.Equal(t, 12, shifts[1].Date.Day())
	assert.Equal(t, 20, shifts[2].Date.Day())
}

func TestPolicy_NotFound(t *testing.T) {
	s := memory.New()

	_, err := s.Policy(context.Background(), "ghost")
	assert.ErrorIs(t, err, payroll.ErrNotFound)
}

func TestScheduleRoundTrip(t *testing.T) {
	// GIVEN: a saved schedule snapshot
	s := memory.New()
	ctx := context.Background()

	data := payroll.SavedScheduleData{
		EmployeeID: "emp-1",
		Year:       2025,
		Month:      6,
		Days: []payroll.SavedShiftDay{{
			Date:       "2025-06-02",
			Start:      "09:00",
			End:        "17:00",
			TotalHours: decimal.NewFromInt(8),
		}},
	}
	require.NoError(t, s.SaveSchedule(ctx, data))

	// WHEN: loading it back
	loaded, err := s.LoadSchedule(ctx, "emp-1", 2025, time.June)
	require.NoError(t, err)

	// THEN: the snapshot is intact, and other months stay absent
	require.NotNil(t, loaded)
	require.Len(t, loaded.Days, 1)
	assert.True(t, loaded.Days[0].TotalHours.Equal(decimal.NewFromInt(8)))

	_, err = s.LoadSchedule(ctx, "emp-1", 2025, time.July)
	assert.ErrorIs(t, err, payroll.ErrNotFound)
}

func TestHolidaysScopedByOrg(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.UpsertHoliday(ctx, engine.HolidayRecord{
		ID: "h1", OrgID: "org-a", Date: engine.NewDate(2025, time.June, 16),
	}))
	require.NoError(t, s.UpsertHoliday(ctx, engine.HolidayRecord{
		ID: "h2", OrgID: "org-b", Date: engine.NewDate(2025, time.June, 16),
	}))

	holidays, err := s.HolidaysForMonth(ctx, "org-a", 2025, time.June)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, engine.OrgID("org-a"), holidays[0].OrgID)
}
