/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the store with realistic
	data for testing and demos. Each scenario creates a policy and a
	month of records that demonstrate specific calculations.

AVAILABLE SCENARIOS:

	office-worker:   Weekday 09:00-17:00 schedule, one public holiday
	night-shift:     Overnight 22:00-06:00 shifts crossing a month boundary
	punch-clock:     Attendance punches with planned breaks and a day off

HOW SCENARIOS WORK:
 1. Create the employee policy
 2. Upsert a month of shift/attendance records, recomputing cached hours
 3. Add holidays and leaves where the scenario calls for them

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "night-shift"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios upsert over existing records for their employee IDs. Only
	use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/timeclock-engine/engine"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "office-worker",
		Name:        "Office Worker",
		Description: "Weekday 09:00-17:00 schedule with a lunch break and one public holiday",
	},
	{
		ID:          "night-shift",
		Name:        "Night Shift",
		Description: "Overnight 22:00-06:00 shifts, including one crossing a month boundary",
	},
	{
		ID:          "punch-clock",
		Name:        "Punch Clock",
		Description: "Attendance punches against planned shifts, with a day off and a leave day",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	var err error
	switch req.ScenarioID {
	case "office-worker":
		err = h.loadOfficeWorkerScenario(ctx)
	case "night-shift":
		err = h.loadNightShiftScenario(ctx)
	case "punch-clock":
		err = h.loadPunchClockScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "loaded",
		"scenario": req.ScenarioID,
	})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// loadOfficeWorkerScenario: the simple baseline. Five-day weeks, a lunch
// break, one full-day public holiday mid-month.
func (h *Handler) loadOfficeWorkerScenario(ctx context.Context) error {
	const employeeID = "demo-office"
	year, month := 2025, time.June

	policy := engine.EmployeePolicy{
		EmployeeID:     employeeID,
		DailyWorkHours: decimal.NewFromInt(8),
		WeekendMode:    engine.WeekendNone,
	}
	if err := h.Store.UpsertPolicy(ctx, policy); err != nil {
		return err
	}

	holiday := engine.NewDate(year, month, 16)
	if err := h.Store.UpsertHoliday(ctx, engine.HolidayRecord{
		ID:    uuid.NewString(),
		OrgID: "default",
		Date:  holiday,
	}); err != nil {
		return err
	}

	for day := 1; day <= engine.DaysInMonth(year, month); day++ {
		date := engine.NewDate(year, month, day)
		if h.Settings.WeekendDays.IsWeekend(date) || date.Equal(holiday) {
			continue
		}
		if err := h.seedShift(ctx, employeeID, date, "09:00", "17:00", false, 60, false); err != nil {
			return err
		}
	}
	return nil
}

// loadNightShiftScenario: overnight shifts inside the night window. The
// last shift of May crosses into June, so June's summary picks up the
// carried post-midnight segment.
func (h *Handler) loadNightShiftScenario(ctx context.Context) error {
	const employeeID = "demo-night"
	year, month := 2025, time.June

	policy := engine.EmployeePolicy{
		EmployeeID:     employeeID,
		DailyWorkHours: decimal.NewFromInt(8),
		WeekendMode:    engine.WeekendNone,
	}
	if err := h.Store.UpsertPolicy(ctx, policy); err != nil {
		return err
	}

	// Prior month's boundary shift, read backward at summary time.
	if err := h.seedShift(ctx, employeeID, engine.NewDate(year, time.May, 31), "22:00", "06:00", true, 30, false); err != nil {
		return err
	}

	for day := 2; day <= 27; day++ {
		date := engine.NewDate(year, month, day)
		if h.Settings.WeekendDays.IsWeekend(date) {
			continue
		}
		if err := h.seedShift(ctx, employeeID, date, "22:00", "06:00", true, 30, false); err != nil {
			return err
		}
	}
	return nil
}

// loadPunchClockScenario: planned shifts plus real punches, a planned
// day off, and one approved leave day.
func (h *Handler) loadPunchClockScenario(ctx context.Context) error {
	const employeeID = "demo-punch"
	year, month := 2025, time.June

	sat := decimal.NewFromInt(5)
	policy := engine.EmployeePolicy{
		EmployeeID:     employeeID,
		DailyWorkHours: decimal.NewFromInt(8),
		WeekendMode:    engine.WeekendSaturdaySpecificHours,
		SaturdayHours:  &sat,
	}
	if err := h.Store.UpsertPolicy(ctx, policy); err != nil {
		return err
	}

	if err := h.Store.UpsertLeave(ctx, engine.LeaveRecord{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       engine.NewDate(year, month, 20),
		TypeCode:   "AL",
		Color:      "#4caf50",
	}); err != nil {
		return err
	}

	for day := 2; day <= 6; day++ {
		date := engine.NewDate(year, month, day)
		if err := h.seedShift(ctx, employeeID, date, "08:00", "16:30", false, 45, false); err != nil {
			return err
		}

		in := engine.MustClock("08:02")
		out := engine.MustClock("16:35")
		a := engine.AttendanceRecord{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Date:       date,
			CheckIn:    &in,
			CheckOut:   &out,
			Type:       engine.AttendanceNormal,
		}
		hours, err := engine.ComputeAttendanceHours(a, 45)
		if err != nil {
			return err
		}
		a.WorkedHours = hours
		if err := h.Store.UpsertAttendance(ctx, a); err != nil {
			return err
		}
	}

	// Planned day off with a stray punch pair; the day-off flag wins.
	if err := h.seedShift(ctx, employeeID, engine.NewDate(year, month, 9), "", "", false, 0, true); err != nil {
		return err
	}
	return nil
}

// seedShift builds, recomputes and stores one scenario shift.
func (h *Handler) seedShift(
	ctx context.Context,
	employeeID engine.EmployeeID,
	date engine.Date,
	start, end string,
	spansNextDay bool,
	breakMinutes int,
	dayOff bool,
) error {
	s := engine.ShiftRecord{
		ID:            uuid.NewString(),
		EmployeeID:    employeeID,
		Date:          date,
		SpansNextDay:  spansNextDay,
		BreakMinutes:  breakMinutes,
		IsDayOff:      dayOff,
		OvernightMode: h.Settings.DefaultOvernightMode,
	}
	if start != "" {
		s.Start = engine.MustClock(start)
		s.End = engine.MustClock(end)
	}
	if err := s.Recompute(h.Settings.NightWindow); err != nil {
		return err
	}
	return h.Store.UpsertShift(ctx, s)
}
