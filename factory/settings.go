/*
Package factory provides JSON to Go settings conversion.

PURPOSE:
  Converts JSON organization settings into engine types. This enables
  configuration without code changes - an admin UI can store settings as
  JSON, and the factory produces the proper Go structs the calculators
  consume.

JSON SCHEMA:
  {
    "night_window": "22:00-06:00",
    "weekend_days": [0, 6],
    "default_overnight_mode": "split_at_midnight",
    "employees": [
      {
        "id": "emp-1",
        "daily_work_hours": "8",
        "weekend_mode": "saturday_specific_hours",
        "saturday_hours": "5"
      }
    ]
  }

  weekend_days uses Go's weekday numbering: 0 = Sunday .. 6 = Saturday.

USAGE:
  settings, err := factory.ParseSettings(jsonString)
  overlap := shift.Interval().OverlapMinutes(settings.NightWindow)

SEE ALSO:
  - engine/types.go: the target types
  - api: loads settings at startup and per organization
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/timeclock-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// SettingsJSON is the JSON representation of organization settings.
type SettingsJSON struct {
	NightWindow          string               `json:"night_window"`
	WeekendDays          []int                `json:"weekend_days"`
	DefaultOvernightMode string               `json:"default_overnight_mode,omitempty"`
	Employees            []EmployeePolicyJSON `json:"employees,omitempty"`
}

// EmployeePolicyJSON is the JSON representation of one employee policy.
type EmployeePolicyJSON struct {
	ID             string `json:"id"`
	DailyWorkHours string `json:"daily_work_hours"`
	WeekendMode    string `json:"weekend_mode"`
	SaturdayHours  string `json:"saturday_hours,omitempty"`
}

// Settings is the parsed, engine-ready form.
type Settings struct {
	NightWindow          engine.NightWindow
	WeekendDays          engine.WeekendDaySet
	DefaultOvernightMode engine.OvernightMode
	Employees            []engine.EmployeePolicy
}

// =============================================================================
// PARSING
// =============================================================================

// ParseSettings converts a JSON settings document into engine types.
func ParseSettings(jsonStr string) (*Settings, error) {
	var raw SettingsJSON
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("invalid settings JSON: %w", err)
	}
	return FromJSON(raw)
}

// FromJSON converts an already-decoded SettingsJSON.
func FromJSON(raw SettingsJSON) (*Settings, error) {
	window, err := parseWindow(raw.NightWindow)
	if err != nil {
		return nil, err
	}

	weekend := make(engine.WeekendDaySet, len(raw.WeekendDays))
	for _, d := range raw.WeekendDays {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("weekend day %d out of range 0-6", d)
		}
		weekend[time.Weekday(d)] = true
	}

	mode := engine.SplitAtMidnight
	if raw.DefaultOvernightMode != "" {
		mode, err = ParseOvernightMode(raw.DefaultOvernightMode)
		if err != nil {
			return nil, err
		}
	}

	settings := &Settings{
		NightWindow:          window,
		WeekendDays:          weekend,
		DefaultOvernightMode: mode,
	}
	for _, e := range raw.Employees {
		p, err := parseEmployeePolicy(e)
		if err != nil {
			return nil, err
		}
		settings.Employees = append(settings.Employees, p)
	}
	return settings, nil
}

func parseWindow(s string) (engine.NightWindow, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return engine.NightWindow{}, fmt.Errorf("night_window %q: expected HH:mm-HH:mm", s)
	}
	return engine.NewNightWindow(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
}

// ParseOvernightMode validates an overnight mode string.
func ParseOvernightMode(s string) (engine.OvernightMode, error) {
	switch engine.OvernightMode(s) {
	case engine.SplitAtMidnight, engine.AttributeToStartDay:
		return engine.OvernightMode(s), nil
	default:
		return "", fmt.Errorf("unknown overnight mode %q", s)
	}
}

// ParseWeekendMode maps a JSON weekend mode string to its enum value.
// The empty string means "none".
func ParseWeekendMode(s string) (engine.WeekendWorkMode, error) {
	switch s {
	case "", "none":
		return engine.WeekendNone, nil
	case "both_days":
		return engine.WeekendBothDays, nil
	case "saturday_only":
		return engine.WeekendSaturdayOnly, nil
	case "saturday_specific_hours":
		return engine.WeekendSaturdaySpecificHours, nil
	default:
		return engine.WeekendNone, fmt.Errorf("unknown weekend mode %q", s)
	}
}

func parseEmployeePolicy(e EmployeePolicyJSON) (engine.EmployeePolicy, error) {
	daily, err := decimal.NewFromString(e.DailyWorkHours)
	if err != nil {
		return engine.EmployeePolicy{}, fmt.Errorf("employee %s: daily_work_hours: %w", e.ID, err)
	}
	mode, err := ParseWeekendMode(e.WeekendMode)
	if err != nil {
		return engine.EmployeePolicy{}, fmt.Errorf("employee %s: %w", e.ID, err)
	}

	p := engine.EmployeePolicy{
		EmployeeID:     engine.EmployeeID(e.ID),
		DailyWorkHours: daily,
		WeekendMode:    mode,
	}
	if e.SaturdayHours != "" {
		sat, err := decimal.NewFromString(e.SaturdayHours)
		if err != nil {
			return engine.EmployeePolicy{}, fmt.Errorf("employee %s: saturday_hours: %w", e.ID, err)
		}
		p.SaturdayHours = &sat
	}
	return p, p.Validate()
}
