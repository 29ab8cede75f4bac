/*
shift.go - Shift duration calculation

PURPOSE:
  Turns a single ShiftRecord into (total hours, night hours). Break time
  is deducted from the total directly and from night minutes in proportion
  to the night share of the raw span, since the actual clock position of
  the break is unknown.

CACHED FIELDS:
  ShiftRecord carries TotalHours/NightHours so historical exports can
  reload values without recomputing. Recompute is the ONLY thing that
  writes them; the persistence layer calls it on every mutation. It is
  idempotent and never runs as a side effect of a read.

SEE ALSO:
  - night.go: the single night-overlap algorithm
  - spillover.go: month-boundary attribution of these same minutes
*/
package engine

import "github.com/shopspring/decimal"

// ShiftHours is the exact (unrounded) duration result for one shift.
type ShiftHours struct {
	Total decimal.Decimal
	Night decimal.Decimal
}

// ComputeShiftHours returns total and night hours for a shift.
// Day-off records short-circuit to (0, 0).
func ComputeShiftHours(s ShiftRecord, w NightWindow) (ShiftHours, error) {
	if s.IsDayOff {
		return ShiftHours{Total: decimal.Zero, Night: decimal.Zero}, nil
	}

	iv := s.Interval()
	if err := iv.Validate(); err != nil {
		return ShiftHours{}, err
	}

	raw := iv.Duration()
	totalMinutes := raw - s.BreakMinutes
	if totalMinutes < 0 {
		totalMinutes = 0
	}

	nightMinutes := nightAfterBreak(iv.OverlapMinutes(w), s.BreakMinutes, raw)

	return ShiftHours{
		Total: MinutesToHours(totalMinutes),
		Night: DecMinutesToHours(nightMinutes),
	}, nil
}

// nightAfterBreak deducts break time from night minutes proportionally:
// night - break * (night / raw), floored at zero. raw is the span before
// any break deduction.
func nightAfterBreak(nightRaw, breakMinutes, raw int) decimal.Decimal {
	if nightRaw <= 0 || raw <= 0 {
		return decimal.Zero
	}
	night := decimal.NewFromInt(int64(nightRaw))
	if breakMinutes <= 0 {
		return night
	}
	deduction := decimal.NewFromInt(int64(breakMinutes)).
		Mul(night).
		Div(decimal.NewFromInt(int64(raw)))
	return clampZero(night.Sub(deduction))
}

// Recompute refreshes the cached TotalHours/NightHours fields from the
// shift's own times. Calling it twice yields identical results.
func (s *ShiftRecord) Recompute(w NightWindow) error {
	hours, err := ComputeShiftHours(*s, w)
	if err != nil {
		return err
	}
	s.TotalHours = hours.Total
	s.NightHours = hours.Night
	return nil
}
