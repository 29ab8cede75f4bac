/*
spillover.go - Month-boundary attribution of overnight shifts

PURPOSE:
  A shift on the last calendar day of a month that crosses midnight also
  crosses into the next month. This file decides how its minutes are split
  between the two months.

RULES:
  SplitAtMidnight:     [start, 24:00) stays in the shift's month,
                       [00:00, end) belongs to the following month.
                       Break minutes are apportioned between the segments
                       proportionally to each segment's raw share. Night
                       minutes are computed per segment with the same
                       overlap algorithm and the same break proportion.
  AttributeToStartDay: everything stays in the shift's month.

  The backward direction is the same data read from the other side: when
  aggregating month M, the previous month's last-day shift contributes its
  Next portion to M.

SEE ALSO:
  - shift.go: whole-shift duration used when no spillover applies
  - payroll: consults this for boundary records during aggregation
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Spillover is the month attribution of one shift's hours.
type Spillover struct {
	// Current is the portion attributed to the shift's own month.
	Current ShiftHours
	// Next is the portion attributed to the following month. Zero unless
	// the shift is spillover-eligible under SplitAtMidnight.
	Next ShiftHours
}

// SpilloverApplies reports whether the shift can spill into the next
// month: last calendar day, crosses midnight, not a day-off, and the
// overnight mode splits at midnight.
func SpilloverApplies(s ShiftRecord) bool {
	return s.OvernightMode == SplitAtMidnight &&
		s.Date.IsLastDayOfMonth() &&
		s.SpansNextDay &&
		!s.IsDayOff
}

// ResolveSpillover splits a shift's hours between its own month and the
// following one. For shifts where no spillover applies, the whole shift
// lands in Current.
func ResolveSpillover(s ShiftRecord, w NightWindow) (Spillover, error) {
	if !SpilloverApplies(s) {
		hours, err := ComputeShiftHours(s, w)
		if err != nil {
			return Spillover{}, err
		}
		return Spillover{Current: hours, Next: zeroShiftHours()}, nil
	}

	iv := s.Interval()
	if err := iv.Validate(); err != nil {
		return Spillover{}, err
	}

	preRaw := MinutesPerDay - int(s.Start)
	postRaw := int(s.End)
	raw := preRaw + postRaw

	// Break is apportioned by each segment's share of the raw span.
	breakDec := decimal.NewFromInt(int64(s.BreakMinutes))
	rawDec := decimal.NewFromInt(int64(raw))
	preBreak := breakDec.Mul(decimal.NewFromInt(int64(preRaw))).Div(rawDec)
	postBreak := breakDec.Mul(decimal.NewFromInt(int64(postRaw))).Div(rawDec)

	return Spillover{
		Current: segmentHours(preRaw, preBreak, w.overlapSegment(int(s.Start), MinutesPerDay)),
		Next:    segmentHours(postRaw, postBreak, w.overlapSegment(0, int(s.End))),
	}, nil
}

// segmentHours computes one segment's total and night hours after its
// break share, both floored at zero.
func segmentHours(rawMinutes int, breakShare decimal.Decimal, nightRaw int) ShiftHours {
	total := clampZero(decimal.NewFromInt(int64(rawMinutes)).Sub(breakShare))

	night := decimal.Zero
	if nightRaw > 0 && rawMinutes > 0 {
		n := decimal.NewFromInt(int64(nightRaw))
		deduction := breakShare.Mul(n).Div(decimal.NewFromInt(int64(rawMinutes)))
		night = clampZero(n.Sub(deduction))
	}

	return ShiftHours{
		Total: DecMinutesToHours(total),
		Night: DecMinutesToHours(night),
	}
}

// CarryFromPriorMonth returns the portion of the previous month's last-day
// shift that belongs to (year, month). This is a read looking backward one
// day, never a write to the prior month.
func CarryFromPriorMonth(prior *ShiftRecord, w NightWindow, year int, month time.Month) (ShiftHours, error) {
	if prior == nil {
		return zeroShiftHours(), nil
	}
	py, pm := PrevMonth(year, month)
	if prior.Date.Year() != py || prior.Date.Month() != pm || !prior.Date.IsLastDayOfMonth() {
		return zeroShiftHours(), nil
	}
	if !SpilloverApplies(*prior) {
		return zeroShiftHours(), nil
	}
	sp, err := ResolveSpillover(*prior, w)
	if err != nil {
		return ShiftHours{}, err
	}
	return sp.Next, nil
}

func zeroShiftHours() ShiftHours {
	return ShiftHours{Total: decimal.Zero, Night: decimal.Zero}
}
