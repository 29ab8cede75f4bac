/*
night.go - Night window overlap

PURPOSE:
  Computes how many minutes of a shift fall inside the organization's
  night window. This is THE night-hours algorithm: every call site
  (shift save, payroll aggregation, spillover segments) routes through
  OverlapMinutes so the save-time and payroll-time figures can never
  disagree.

ALGORITHM:
  Two half-open ranges [a,b) and [c,d) overlap by max(0, min(b,d)-max(a,c)).
  A shift crossing midnight is split into [start,1440) and [0,end) and each
  segment is intersected with the SAME window. A window crossing midnight
  (end < start) is the union [start,1440) ∪ [0,end).

SEE ALSO:
  - shift.go: total/night duration with break deduction
  - spillover.go: per-segment night minutes at a month boundary
*/
package engine

// NightWindow is the organization-level clock range whose overlap with a
// shift counts as night hours. It may cross midnight (22:00-06:00) or
// not (20:00-23:00).
type NightWindow struct {
	Start ClockTime
	End   ClockTime
}

// NewNightWindow parses a window from "HH:mm" bounds.
func NewNightWindow(start, end string) (NightWindow, error) {
	s, err := ParseClock(start)
	if err != nil {
		return NightWindow{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return NightWindow{}, err
	}
	return NightWindow{Start: s, End: e}, nil
}

// SpansMidnight reports whether the window wraps past midnight.
func (w NightWindow) SpansMidnight() bool { return w.End < w.Start }

func (w NightWindow) String() string { return w.Start.String() + "-" + w.End.String() }

// rangeOverlap is the shared primitive: overlap of [a,b) and [c,d).
func rangeOverlap(a, b, c, d int) int {
	lo := a
	if c > lo {
		lo = c
	}
	hi := b
	if d < hi {
		hi = d
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// overlapSegment intersects one same-day segment [start,end) with the
// window. The window, not the segment, decides midnight handling here.
func (w NightWindow) overlapSegment(start, end int) int {
	if w.SpansMidnight() {
		return rangeOverlap(start, end, int(w.Start), MinutesPerDay) +
			rangeOverlap(start, end, 0, int(w.End))
	}
	return rangeOverlap(start, end, int(w.Start), int(w.End))
}

// OverlapMinutes returns the minutes of the interval inside the window.
// A shift crossing midnight is split at the day boundary; the window is
// applied unchanged to both segments.
func (iv Interval) OverlapMinutes(w NightWindow) int {
	if iv.CrossesMidnight() {
		return w.overlapSegment(int(iv.Start), MinutesPerDay) +
			w.overlapSegment(0, int(iv.End))
	}
	return w.overlapSegment(int(iv.Start), int(iv.End))
}
