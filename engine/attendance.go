package engine

import "github.com/shopspring/decimal"

// ComputeAttendanceHours returns worked hours from check-in/check-out
// punches, or nil when either punch is missing. CheckOutToNextDay wraps
// the span across midnight. breakMinutes comes from a matching planned
// shift for the same date; attendance mode never falls back to an
// organization default break.
func ComputeAttendanceHours(a AttendanceRecord, breakMinutes int) (*decimal.Decimal, error) {
	if a.Type == AttendanceDayOff {
		zero := decimal.Zero
		return &zero, nil
	}
	if !a.Complete() {
		return nil, nil
	}

	iv := Interval{Start: *a.CheckIn, End: *a.CheckOut, SpansNextDay: a.CheckOutToNextDay}
	if err := iv.Validate(); err != nil {
		return nil, err
	}

	minutes := iv.Duration() - breakMinutes
	if minutes < 0 {
		minutes = 0
	}
	hours := MinutesToHours(minutes)
	return &hours, nil
}
