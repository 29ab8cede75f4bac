/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

CONVENTIONS:
  - Clock times are "HH:mm" strings
  - Dates are "YYYY-MM-DD" strings
  - Hour figures are JSON numbers, rounded to one decimal by the summary
    endpoint (Rounded() is the single rounding site)

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - payroll/types.go: the domain summary these DTOs project
*/
package api

import (
	"github.com/warp/timeclock-engine/engine"
	"github.com/warp/timeclock-engine/payroll"
)

// =============================================================================
// POLICY TYPES
// =============================================================================

// PolicyDTO represents an employee policy in API responses.
type PolicyDTO struct {
	EmployeeID     string  `json:"employee_id"`
	DailyWorkHours string  `json:"daily_work_hours"`
	WeekendMode    string  `json:"weekend_mode"`
	SaturdayHours  *string `json:"saturday_hours,omitempty"`
}

// UpsertPolicyRequest is the request to create or replace a policy.
type UpsertPolicyRequest struct {
	EmployeeID     string  `json:"employee_id"`
	DailyWorkHours string  `json:"daily_work_hours"`
	WeekendMode    string  `json:"weekend_mode"`
	SaturdayHours  *string `json:"saturday_hours,omitempty"`
}

// =============================================================================
// SHIFT TYPES
// =============================================================================

// ShiftDTO represents a planned shift in API responses. TotalHours and
// NightHours are the cached values computed at write time.
type ShiftDTO struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	Date          string `json:"date"`
	Start         string `json:"start"`
	End           string `json:"end"`
	SpansNextDay  bool   `json:"spans_next_day"`
	BreakMinutes  int    `json:"break_minutes"`
	IsDayOff      bool   `json:"is_day_off"`
	OvernightMode string `json:"overnight_mode"`
	TotalHours    string `json:"total_hours"`
	NightHours    string `json:"night_hours"`
}

// UpsertShiftRequest is the request to create or replace one day's shift.
type UpsertShiftRequest struct {
	EmployeeID    string `json:"employee_id"`
	Date          string `json:"date"`
	Start         string `json:"start"`
	End           string `json:"end"`
	SpansNextDay  bool   `json:"spans_next_day"`
	BreakMinutes  int    `json:"break_minutes"`
	IsDayOff      bool   `json:"is_day_off"`
	OvernightMode string `json:"overnight_mode,omitempty"`
}

// =============================================================================
// ATTENDANCE TYPES
// =============================================================================

// AttendanceDTO represents a punch record in API responses.
type AttendanceDTO struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	Date              string  `json:"date"`
	CheckIn           *string `json:"check_in,omitempty"`
	CheckOut          *string `json:"check_out,omitempty"`
	CheckOutToNextDay bool    `json:"check_out_to_next_day"`
	Type              string  `json:"type"`
	WorkedHours       *string `json:"worked_hours,omitempty"`
}

// UpsertAttendanceRequest records or corrects the punches for one day.
type UpsertAttendanceRequest struct {
	EmployeeID        string  `json:"employee_id"`
	Date              string  `json:"date"`
	CheckIn           *string `json:"check_in,omitempty"`
	CheckOut          *string `json:"check_out,omitempty"`
	CheckOutToNextDay bool    `json:"check_out_to_next_day"`
	Type              string  `json:"type,omitempty"`
}

// =============================================================================
// HOLIDAY / LEAVE TYPES
// =============================================================================

// HolidayDTO represents an organization holiday.
type HolidayDTO struct {
	ID           string  `json:"id"`
	OrgID        string  `json:"org_id"`
	Date         string  `json:"date"`
	IsHalfDay    bool    `json:"is_half_day"`
	HalfDayHours *string `json:"half_day_hours,omitempty"`
}

// UpsertHolidayRequest creates or replaces a holiday.
type UpsertHolidayRequest struct {
	OrgID        string  `json:"org_id"`
	Date         string  `json:"date"`
	IsHalfDay    bool    `json:"is_half_day"`
	HalfDayHours *string `json:"half_day_hours,omitempty"`
}

// LeaveDTO represents an approved leave day.
type LeaveDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	TypeCode   string `json:"type_code"`
	Color      string `json:"color,omitempty"`
}

// UpsertLeaveRequest creates or replaces a leave day.
type UpsertLeaveRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	TypeCode   string `json:"type_code"`
	Color      string `json:"color,omitempty"`
}

// =============================================================================
// SUMMARY TYPES
// =============================================================================

// DayDetailDTO is one row of the monthly summary detail table.
type DayDetailDTO struct {
	Date       string  `json:"date"`
	Start      string  `json:"start,omitempty"`
	End        string  `json:"end,omitempty"`
	TotalHours float64 `json:"total_hours"`
	NightHours float64 `json:"night_hours"`

	IsDayOff  bool `json:"is_day_off,omitempty"`
	IsWeekend bool `json:"is_weekend,omitempty"`
	IsHoliday bool `json:"is_holiday,omitempty"`
	IsLeave   bool `json:"is_leave,omitempty"`

	LeaveTypeCode string `json:"leave_type_code,omitempty"`
	LeaveColor    string `json:"leave_color,omitempty"`
}

// SummaryDTO is the monthly summary response. Hour figures are rounded
// to one decimal place; the exact decimals never leave the server.
type SummaryDTO struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	WorkedDays       int     `json:"worked_days"`
	TotalWorkedHours float64 `json:"total_worked_hours"`
	RequiredHours    float64 `json:"required_hours"`
	NightHours       float64 `json:"night_hours"`
	WeekendHours     float64 `json:"weekend_hours"`
	HolidayHours     float64 `json:"holiday_hours"`
	DayOffCount      int     `json:"day_off_count"`
	Variance         float64 `json:"variance"`

	Details []DayDetailDTO `json:"details"`
}

// toSummaryDTO projects a domain summary onto the wire shape. The input
// must already be Rounded().
func toSummaryDTO(s *payroll.EmployeeMonthlySummary) SummaryDTO {
	dto := SummaryDTO{
		EmployeeID:       string(s.EmployeeID),
		Year:             s.Year,
		Month:            int(s.Month),
		WorkedDays:       s.WorkedDays,
		TotalWorkedHours: s.TotalWorkedHours.InexactFloat64(),
		RequiredHours:    s.RequiredHours.InexactFloat64(),
		NightHours:       s.NightHours.InexactFloat64(),
		WeekendHours:     s.WeekendHours.InexactFloat64(),
		HolidayHours:     s.HolidayHours.InexactFloat64(),
		DayOffCount:      s.DayOffCount,
		Variance:         s.Variance.InexactFloat64(),
		Details:          make([]DayDetailDTO, len(s.Details)),
	}
	for i, d := range s.Details {
		dto.Details[i] = DayDetailDTO{
			Date:          d.Date.String(),
			Start:         d.Start,
			End:           d.End,
			TotalHours:    d.TotalHours.InexactFloat64(),
			NightHours:    d.NightHours.InexactFloat64(),
			IsDayOff:      d.IsDayOff,
			IsWeekend:     d.IsWeekend,
			IsHoliday:     d.IsHoliday,
			IsLeave:       d.IsLeave,
			LeaveTypeCode: d.LeaveTypeCode,
			LeaveColor:    d.LeaveColor,
		}
	}
	return dto
}

// =============================================================================
// SCHEDULE SNAPSHOT TYPES
// =============================================================================

// SaveScheduleRequest freezes an employee-month of shifts with their
// computed values.
type SaveScheduleRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	OrgID      string `json:"org_id,omitempty"`
}

// =============================================================================
// SCENARIO TYPES
// =============================================================================

// ScenarioDTO describes one loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// DTO CONVERSION HELPERS
// =============================================================================

func toShiftDTO(s engine.ShiftRecord) ShiftDTO {
	return ShiftDTO{
		ID:            s.ID,
		EmployeeID:    string(s.EmployeeID),
		Date:          s.Date.String(),
		Start:         s.Start.String(),
		End:           s.End.String(),
		SpansNextDay:  s.SpansNextDay,
		BreakMinutes:  s.BreakMinutes,
		IsDayOff:      s.IsDayOff,
		OvernightMode: string(s.OvernightMode),
		TotalHours:    s.TotalHours.String(),
		NightHours:    s.NightHours.String(),
	}
}

func toAttendanceDTO(a engine.AttendanceRecord) AttendanceDTO {
	dto := AttendanceDTO{
		ID:                a.ID,
		EmployeeID:        string(a.EmployeeID),
		Date:              a.Date.String(),
		CheckOutToNextDay: a.CheckOutToNextDay,
		Type:              string(a.Type),
	}
	if a.CheckIn != nil {
		dto.CheckIn = strPtr(a.CheckIn.String())
	}
	if a.CheckOut != nil {
		dto.CheckOut = strPtr(a.CheckOut.String())
	}
	if a.WorkedHours != nil {
		dto.WorkedHours = strPtr(a.WorkedHours.String())
	}
	return dto
}

func toPolicyDTO(p engine.EmployeePolicy) PolicyDTO {
	dto := PolicyDTO{
		EmployeeID:     string(p.EmployeeID),
		DailyWorkHours: p.DailyWorkHours.String(),
		WeekendMode:    p.WeekendMode.String(),
	}
	if p.SaturdayHours != nil {
		dto.SaturdayHours = strPtr(p.SaturdayHours.String())
	}
	return dto
}

func toHolidayDTO(h engine.HolidayRecord) HolidayDTO {
	dto := HolidayDTO{
		ID:        h.ID,
		OrgID:     string(h.OrgID),
		Date:      h.Date.String(),
		IsHalfDay: h.IsHalfDay,
	}
	if h.HalfDayHours != nil {
		dto.HalfDayHours = strPtr(h.HalfDayHours.String())
	}
	return dto
}

func toLeaveDTO(l engine.LeaveRecord) LeaveDTO {
	return LeaveDTO{
		ID:         l.ID,
		EmployeeID: string(l.EmployeeID),
		Date:       l.Date.String(),
		TypeCode:   l.TypeCode,
		Color:      l.Color,
	}
}

func strPtr(s string) *string { return &s }
