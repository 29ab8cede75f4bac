/*
handlers.go - HTTP API handlers for the time accounting engine

PURPOSE:
  Exposes the scheduling and payroll calculations via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to the engine
  and payroll packages.

ENDPOINTS:
  Policies:
    GET    /api/policies                       List employee policies
    POST   /api/policies                       Create or replace a policy
    GET    /api/policies/{id}                  Get one policy

  Shifts:
    POST   /api/shifts                         Upsert one day's shift
    GET    /api/employees/{id}/shifts          Month of shifts (?year=&month=)

  Attendance:
    POST   /api/attendance                     Upsert one day's punches
    GET    /api/employees/{id}/attendance      Month of punches

  Holidays / Leaves:
    POST   /api/holidays                       Upsert a holiday
    GET    /api/holidays                       Month of holidays (?org=)
    POST   /api/leaves                         Upsert a leave day
    GET    /api/employees/{id}/leaves          Month of leaves

  Summaries:
    GET    /api/employees/{id}/summary         Monthly summary (?source=)

  Schedule snapshots:
    POST   /api/schedules/save                 Freeze a month's computed values
    GET    /api/employees/{id}/schedule        Load a frozen month

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (strict interval rules on the write path)
  3. Call domain logic (Recompute, Summarize, BuildSavedSchedule)
  4. Serialize response
  5. Handle errors

WRITE-PATH INVARIANT:
  Every shift upsert runs ValidateStrict then Recompute before the store
  sees it, so cached hour figures can never drift from the inputs.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/timeclock-engine/engine"
	"github.com/warp/timeclock-engine/factory"
	"github.com/warp/timeclock-engine/payroll"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    payroll.RecordStore
	Settings *factory.Settings

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store and organization
// settings. Settings may be nil, in which case the defaults apply
// (22:00-06:00 night window, Saturday+Sunday weekend, split at midnight).
func NewHandler(store payroll.RecordStore, settings *factory.Settings) *Handler {
	if settings == nil {
		window, _ := engine.NewNightWindow("22:00", "06:00")
		settings = &factory.Settings{
			NightWindow:          window,
			WeekendDays:          engine.DefaultWeekend(),
			DefaultOvernightMode: engine.SplitAtMidnight,
		}
	}
	return &Handler{Store: store, Settings: settings}
}

// =============================================================================
// POLICY HANDLERS
// =============================================================================

// ListPolicies returns all employee policies.
func (h *Handler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.Store.ListPolicies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list policies", err)
		return
	}

	dtos := make([]PolicyDTO, len(policies))
	for i, p := range policies {
		dtos[i] = toPolicyDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPolicy returns one employee's policy.
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.Store.Policy(r.Context(), engine.EmployeeID(id))
	if errors.Is(err, payroll.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Policy not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get policy", err)
		return
	}
	writeJSON(w, http.StatusOK, toPolicyDTO(p))
}

// UpsertPolicy creates or replaces an employee policy.
func (h *Handler) UpsertPolicy(w http.ResponseWriter, r *http.Request) {
	var req UpsertPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employee_id is required", nil)
		return
	}

	daily, err := decimal.NewFromString(req.DailyWorkHours)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid daily_work_hours", err)
		return
	}
	mode, err := factory.ParseWeekendMode(req.WeekendMode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid weekend_mode", err)
		return
	}

	p := engine.EmployeePolicy{
		EmployeeID:     engine.EmployeeID(req.EmployeeID),
		DailyWorkHours: daily,
		WeekendMode:    mode,
	}
	if req.SaturdayHours != nil {
		sat, err := decimal.NewFromString(*req.SaturdayHours)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid saturday_hours", err)
			return
		}
		p.SaturdayHours = &sat
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid policy", err)
		return
	}

	if err := h.Store.UpsertPolicy(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save policy", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPolicyDTO(p))
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// UpsertShift creates or replaces the shift for (employee, date). The
// interval is validated strictly and the cached hour figures recomputed
// before the record is stored.
func (h *Handler) UpsertShift(w http.ResponseWriter, r *http.Request) {
	var req UpsertShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	s, err := h.shiftFromRequest(req)
	if err != nil {
		status := http.StatusInternalServerError
		if engine.IsClientError(err) || errors.Is(err, errBadRequest) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "Invalid shift", err)
		return
	}

	if err := h.Store.UpsertShift(r.Context(), *s); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(*s))
}

var errBadRequest = errors.New("bad request")

// shiftFromRequest builds a validated, recomputed ShiftRecord.
func (h *Handler) shiftFromRequest(req UpsertShiftRequest) (*engine.ShiftRecord, error) {
	if req.EmployeeID == "" {
		return nil, fmt.Errorf("%w: employee_id is required", errBadRequest)
	}
	date, err := engine.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", errBadRequest, err)
	}

	mode := h.Settings.DefaultOvernightMode
	if req.OvernightMode != "" {
		mode, err = factory.ParseOvernightMode(req.OvernightMode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}

	s := engine.ShiftRecord{
		ID:            uuid.NewString(),
		EmployeeID:    engine.EmployeeID(req.EmployeeID),
		Date:          date,
		SpansNextDay:  req.SpansNextDay,
		BreakMinutes:  req.BreakMinutes,
		IsDayOff:      req.IsDayOff,
		OvernightMode: mode,
	}

	if !req.IsDayOff || req.Start != "" {
		s.Start, err = engine.ParseClock(req.Start)
		if err != nil {
			return nil, err
		}
		s.End, err = engine.ParseClock(req.End)
		if err != nil {
			return nil, err
		}
		if err := s.Interval().ValidateStrict(); err != nil {
			return nil, err
		}
	}

	if err := s.Recompute(h.Settings.NightWindow); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListShifts returns one employee's shifts for a month.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	year, month, ok := monthParams(w, r)
	if !ok {
		return
	}

	shifts, err := h.Store.ShiftsForMonth(r.Context(), engine.EmployeeID(id), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// ATTENDANCE HANDLERS
// =============================================================================

// UpsertAttendance records or corrects one day's punches. Worked hours
// are derived at write time using the planned shift's break minutes when
// a planned shift exists for the date.
func (h *Handler) UpsertAttendance(w http.ResponseWriter, r *http.Request) {
	var req UpsertAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employee_id is required", nil)
		return
	}

	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	a := engine.AttendanceRecord{
		ID:                uuid.NewString(),
		EmployeeID:        engine.EmployeeID(req.EmployeeID),
		Date:              date,
		CheckOutToNextDay: req.CheckOutToNextDay,
		Type:              engine.AttendanceNormal,
	}
	if req.Type != "" {
		a.Type = engine.AttendanceType(req.Type)
	}
	if req.CheckIn != nil {
		in, err := engine.ParseClock(*req.CheckIn)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid check_in", err)
			return
		}
		a.CheckIn = &in
	}
	if req.CheckOut != nil {
		out, err := engine.ParseClock(*req.CheckOut)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid check_out", err)
			return
		}
		a.CheckOut = &out
	}

	breakMinutes := 0
	if planned, err := h.Store.ShiftForDate(r.Context(), a.EmployeeID, a.Date); err == nil && planned != nil {
		breakMinutes = planned.BreakMinutes
	}
	hours, err := engine.ComputeAttendanceHours(a, breakMinutes)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid attendance", err)
		return
	}
	a.WorkedHours = hours

	if err := h.Store.UpsertAttendance(r.Context(), a); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save attendance", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAttendanceDTO(a))
}

// ListAttendance returns one employee's punch records for a month.
func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	year, month, ok := monthParams(w, r)
	if !ok {
		return
	}

	records, err := h.Store.AttendanceForMonth(r.Context(), engine.EmployeeID(id), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list attendance", err)
		return
	}

	dtos := make([]AttendanceDTO, len(records))
	for i, a := range records {
		dtos[i] = toAttendanceDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HOLIDAY / LEAVE HANDLERS
// =============================================================================

// UpsertHoliday creates or replaces an organization holiday.
func (h *Handler) UpsertHoliday(w http.ResponseWriter, r *http.Request) {
	var req UpsertHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	rec := engine.HolidayRecord{
		ID:        uuid.NewString(),
		OrgID:     engine.OrgID(orgOrDefault(req.OrgID)),
		Date:      date,
		IsHalfDay: req.IsHalfDay,
	}
	if req.HalfDayHours != nil {
		hh, err := decimal.NewFromString(*req.HalfDayHours)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid half_day_hours", err)
			return
		}
		rec.HalfDayHours = &hh
	}

	if err := h.Store.UpsertHoliday(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHolidayDTO(rec))
}

// ListHolidays returns the organization's holidays for a month.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, month, ok := monthParams(w, r)
	if !ok {
		return
	}
	org := engine.OrgID(orgOrDefault(r.URL.Query().Get("org")))

	holidays, err := h.Store.HolidaysForMonth(r.Context(), org, year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, rec := range holidays {
		dtos[i] = toHolidayDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpsertLeave creates or replaces one approved leave day.
func (h *Handler) UpsertLeave(w http.ResponseWriter, r *http.Request) {
	var req UpsertLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" || req.TypeCode == "" {
		writeError(w, http.StatusBadRequest, "employee_id and type_code are required", nil)
		return
	}

	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	rec := engine.LeaveRecord{
		ID:         uuid.NewString(),
		EmployeeID: engine.EmployeeID(req.EmployeeID),
		Date:       date,
		TypeCode:   req.TypeCode,
		Color:      req.Color,
	}
	if err := h.Store.UpsertLeave(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save leave", err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveDTO(rec))
}

// ListLeaves returns one employee's leave days for a month.
func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	year, month, ok := monthParams(w, r)
	if !ok {
		return
	}

	leaves, err := h.Store.LeavesForMonth(r.Context(), engine.EmployeeID(id), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leaves", err)
		return
	}

	dtos := make([]LeaveDTO, len(leaves))
	for i, l := range leaves {
		dtos[i] = toLeaveDTO(l)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SUMMARY HANDLER
// =============================================================================

// GetSummary computes one employee's monthly summary on the fly from the
// stored records. ?source=attendance switches to punch-based aggregation;
// the default is planned shifts.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id := engine.EmployeeID(chi.URLParam(r, "id"))
	year, month, ok := monthParams(w, r)
	if !ok {
		return
	}

	source := payroll.SourceShifts
	if r.URL.Query().Get("source") == string(payroll.SourceAttendance) {
		source = payroll.SourceAttendance
	}
	org := engine.OrgID(orgOrDefault(r.URL.Query().Get("org")))

	in, err := h.buildInput(r, id, org, year, month, source)
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No policy for employee", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load month", err)
		return
	}

	summary, err := payroll.Summarize(*in)
	if err != nil {
		status := http.StatusInternalServerError
		if engine.IsClientError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "Failed to summarize month", err)
		return
	}

	rounded := summary.Rounded()
	writeJSON(w, http.StatusOK, toSummaryDTO(&rounded))
}

// buildInput assembles the aggregation input: the month's records plus
// the previous month's last-day shift, read backward for spillover.
func (h *Handler) buildInput(
	r *http.Request,
	id engine.EmployeeID,
	org engine.OrgID,
	year int,
	month time.Month,
	source payroll.Source,
) (*payroll.Input, error) {
	ctx := r.Context()

	policy, err := h.Store.Policy(ctx, id)
	if err != nil {
		return nil, err
	}
	shifts, err := h.Store.ShiftsForMonth(ctx, id, year, month)
	if err != nil {
		return nil, err
	}
	holidays, err := h.Store.HolidaysForMonth(ctx, org, year, month)
	if err != nil {
		return nil, err
	}
	leaves, err := h.Store.LeavesForMonth(ctx, id, year, month)
	if err != nil {
		return nil, err
	}

	in := &payroll.Input{
		Year:        year,
		Month:       month,
		Policy:      policy,
		Source:      source,
		Shifts:      shifts,
		Holidays:    holidays,
		Leaves:      leaves,
		NightWindow: h.Settings.NightWindow,
		WeekendDays: h.Settings.WeekendDays,
	}

	if source == payroll.SourceAttendance {
		in.Attendances, err = h.Store.AttendanceForMonth(ctx, id, year, month)
		if err != nil {
			return nil, err
		}
	}

	prevYear, prevMonth := engine.PrevMonth(year, month)
	prior, err := h.Store.ShiftForDate(ctx, id, engine.LastOfMonth(prevYear, prevMonth))
	if err != nil && !errors.Is(err, payroll.ErrNotFound) {
		return nil, err
	}
	in.PriorLastDayShift = prior

	return in, nil
}

// =============================================================================
// SCHEDULE SNAPSHOT HANDLERS
// =============================================================================

// SaveSchedule freezes an employee-month of shifts with their computed
// hour figures and display flags.
func (h *Handler) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	var req SaveScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	month := time.Month(req.Month)
	if req.EmployeeID == "" || req.Year == 0 || month < time.January || month > time.December {
		writeError(w, http.StatusBadRequest, "employee_id, year and month are required", nil)
		return
	}

	ctx := r.Context()
	id := engine.EmployeeID(req.EmployeeID)
	shifts, err := h.Store.ShiftsForMonth(ctx, id, req.Year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}
	holidays, err := h.Store.HolidaysForMonth(ctx, engine.OrgID(orgOrDefault(req.OrgID)), req.Year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load holidays", err)
		return
	}

	data := payroll.BuildSavedSchedule(id, req.Year, month, shifts, h.Settings.WeekendDays, holidays)
	data.SavedAt = time.Now().UTC().Format(time.RFC3339)

	if err := h.Store.SaveSchedule(ctx, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save schedule", err)
		return
	}
	writeJSON(w, http.StatusCreated, data)
}

// LoadSchedule returns a previously frozen month. The hour figures are
// the saved ones, never recomputed.
func (h *Handler) LoadSchedule(w http.ResponseWriter, r *http.Request) {
	id := engine.EmployeeID(chi.URLParam(r, "id"))
	year, month, ok := monthParams(w, r)
	if !ok {
		return
	}

	data, err := h.Store.LoadSchedule(r.Context(), id, year, month)
	if errors.Is(err, payroll.ErrNotFound) || (err == nil && data == nil) {
		writeError(w, http.StatusNotFound, "No saved schedule", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// =============================================================================
// HELPERS
// =============================================================================

// monthParams parses the required ?year= and ?month= query parameters.
// On failure it writes a 400 and returns ok=false.
func monthParams(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "Invalid or missing year", err)
		return 0, 0, false
	}
	m, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || m < 1 || m > 12 {
		writeError(w, http.StatusBadRequest, "Invalid or missing month (1-12)", err)
		return 0, 0, false
	}
	return year, time.Month(m), true
}

func orgOrDefault(org string) string {
	if org == "" {
		return "default"
	}
	return org
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
