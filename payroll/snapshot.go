/*
snapshot.go - Saved schedule snapshots

PURPOSE:
  A month's shift set, serialized with its computed hour figures and
  display flags, so historical months and exports can be reloaded without
  recomputation. Values are CARRIED on reload, never recomputed; if the
  organization later changes its night window, a saved month still shows
  the numbers it was approved with.

SEE ALSO:
  - engine/shift.go: Recompute, which produced the carried values
  - store: persists the JSON form of SavedScheduleData
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/timeclock-engine/engine"
)

// SavedScheduleData is the serializable form of one employee-month of shifts.
type SavedScheduleData struct {
	EmployeeID string          `json:"employee_id"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	SavedAt    string          `json:"saved_at,omitempty"`
	Days       []SavedShiftDay `json:"days"`
}

// SavedShiftDay carries one shift with its computed values and flags.
type SavedShiftDay struct {
	Date          string          `json:"date"`
	Start         string          `json:"start"`
	End           string          `json:"end"`
	SpansNextDay  bool            `json:"spans_next_day"`
	BreakMinutes  int             `json:"break_minutes"`
	IsDayOff      bool            `json:"is_day_off"`
	OvernightMode string          `json:"overnight_mode"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	NightHours    decimal.Decimal `json:"night_hours"`
	IsWeekend     bool            `json:"is_weekend"`
	IsHoliday     bool            `json:"is_holiday"`
}

// BuildSavedSchedule serializes a month's shifts. Weekend/holiday flags
// are derived here, once, and stored alongside the carried hour values.
func BuildSavedSchedule(
	employeeID engine.EmployeeID,
	year int,
	month time.Month,
	shifts []engine.ShiftRecord,
	weekend engine.WeekendDaySet,
	holidays []engine.HolidayRecord,
) SavedScheduleData {
	holidayDays := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidayDays[h.Date.String()] = true
	}

	data := SavedScheduleData{
		EmployeeID: string(employeeID),
		Year:       year,
		Month:      int(month),
		Days:       make([]SavedShiftDay, 0, len(shifts)),
	}
	for _, s := range shifts {
		data.Days = append(data.Days, SavedShiftDay{
			Date:          s.Date.String(),
			Start:         s.Start.String(),
			End:           s.End.String(),
			SpansNextDay:  s.SpansNextDay,
			BreakMinutes:  s.BreakMinutes,
			IsDayOff:      s.IsDayOff,
			OvernightMode: string(s.OvernightMode),
			TotalHours:    s.TotalHours,
			NightHours:    s.NightHours,
			IsWeekend:     weekend.IsWeekend(s.Date),
			IsHoliday:     holidayDays[s.Date.String()],
		})
	}
	return data
}

// Restore reconstructs ShiftRecords from the snapshot. Cached hour fields
// come straight from the saved values.
func (d SavedScheduleData) Restore() ([]engine.ShiftRecord, error) {
	shifts := make([]engine.ShiftRecord, 0, len(d.Days))
	for _, day := range d.Days {
		date, err := engine.ParseDate(day.Date)
		if err != nil {
			return nil, err
		}
		start, err := engine.ParseClock(day.Start)
		if err != nil {
			return nil, err
		}
		end, err := engine.ParseClock(day.End)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, engine.ShiftRecord{
			EmployeeID:    engine.EmployeeID(d.EmployeeID),
			Date:          date,
			Start:         start,
			End:           end,
			SpansNextDay:  day.SpansNextDay,
			BreakMinutes:  day.BreakMinutes,
			IsDayOff:      day.IsDayOff,
			OvernightMode: engine.OvernightMode(day.OvernightMode),
			TotalHours:    day.TotalHours,
			NightHours:    day.NightHours,
		})
	}
	return shifts, nil
}
