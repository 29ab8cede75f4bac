package engine_test

import (
	"testing"
	"time"

	"github.com/warp/timeclock-engine/engine"
)

var endOfJan = engine.NewDate(2025, time.January, 31)

// =============================================================================
// ELIGIBILITY
// =============================================================================

func TestSpilloverApplies(t *testing.T) {
	base := nightShift(endOfJan, "22:00", "06:00", true, 0)

	cases := []struct {
		name   string
		mutate func(*engine.ShiftRecord)
		want   bool
	}{
		{"last day, overnight, split mode", func(s *engine.ShiftRecord) {}, true},
		{"mid-month date", func(s *engine.ShiftRecord) { s.Date = engine.NewDate(2025, time.January, 15) }, false},
		{"not overnight", func(s *engine.ShiftRecord) { s.SpansNextDay = false }, false},
		{"day off", func(s *engine.ShiftRecord) { s.IsDayOff = true }, false},
		{"attribute to start day", func(s *engine.ShiftRecord) { s.OvernightMode = engine.AttributeToStartDay }, false},
	}
	for _, c := range cases {
		s := base
		c.mutate(&s)
		if got := engine.SpilloverApplies(s); got != c.want {
			t.Errorf("%s: SpilloverApplies = %v, want %v", c.name, got, c.want)
		}
	}
}

// =============================================================================
// SPLIT AT MIDNIGHT
// =============================================================================

func TestResolveSpillover_MidnightSplitConservation(t *testing.T) {
	// GIVEN: 22:00-06:00 on Jan 31, SplitAtMidnight, no break
	// THEN: pre-midnight 120m + post-midnight 360m == 480m raw
	w := window(t, "22:00", "06:00")
	s := nightShift(endOfJan, "22:00", "06:00", true, 0)

	sp, err := engine.ResolveSpillover(s, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "current total", sp.Current.Total, dec("2"))
	assertDecimal(t, "next total", sp.Next.Total, dec("6"))
	assertDecimal(t, "conserved sum", sp.Current.Total.Add(sp.Next.Total), dec("8"))

	// Whole shift sits inside the night window, so night mirrors total.
	assertDecimal(t, "current night", sp.Current.Night, dec("2"))
	assertDecimal(t, "next night", sp.Next.Night, dec("6"))
}

func TestResolveSpillover_BreakApportionedByRawShare(t *testing.T) {
	// GIVEN: 22:00-06:00 on Jan 31 with an 80 minute break
	//        pre raw 120m -> break share 20m; post raw 360m -> share 60m
	w := window(t, "22:00", "06:00")
	s := nightShift(endOfJan, "22:00", "06:00", true, 80)

	sp, err := engine.ResolveSpillover(s, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "current total", sp.Current.Total, dec("100").Div(dec("60")))
	assertDecimal(t, "next total", sp.Next.Total, dec("5"))
	assertDecimal(t, "current night", sp.Current.Night, dec("100").Div(dec("60")))
	assertDecimal(t, "next night", sp.Next.Night, dec("5"))
}

func TestResolveSpillover_NightWindowRestrictedPerSegment(t *testing.T) {
	// GIVEN: shift 20:00-04:00 on Jan 31, window 22:00-02:00, no break
	//        pre segment [20:00,24:00) overlaps [22:00,24:00) -> 120m
	//        post segment [00:00,04:00) overlaps [00:00,02:00) -> 120m
	w := window(t, "22:00", "02:00")
	s := nightShift(endOfJan, "20:00", "04:00", true, 0)

	sp, err := engine.ResolveSpillover(s, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "current total", sp.Current.Total, dec("4"))
	assertDecimal(t, "next total", sp.Next.Total, dec("4"))
	assertDecimal(t, "current night", sp.Current.Night, dec("2"))
	assertDecimal(t, "next night", sp.Next.Night, dec("2"))
}

func TestResolveSpillover_AttributeToStartDay_NoSpill(t *testing.T) {
	// GIVEN: same boundary shift but AttributeToStartDay
	// THEN: the whole 8 hours stay in January
	w := window(t, "22:00", "06:00")
	s := nightShift(endOfJan, "22:00", "06:00", true, 0)
	s.OvernightMode = engine.AttributeToStartDay

	sp, err := engine.ResolveSpillover(s, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "current total", sp.Current.Total, dec("8"))
	assertDecimal(t, "next total", sp.Next.Total, dec("0"))
}

func TestResolveSpillover_MidMonthOvernight_AllCurrent(t *testing.T) {
	// GIVEN: an overnight shift on Jan 15
	// THEN: no month boundary, everything in Current
	w := window(t, "22:00", "06:00")
	s := nightShift(engine.NewDate(2025, time.January, 15), "22:00", "06:00", true, 0)

	sp, err := engine.ResolveSpillover(s, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "current total", sp.Current.Total, dec("8"))
	assertDecimal(t, "next total", sp.Next.Total, dec("0"))
}

// =============================================================================
// BACKWARD CARRY
// =============================================================================

func TestCarryFromPriorMonth(t *testing.T) {
	// GIVEN: Jan 31 boundary shift, aggregating February 2025
	// THEN: February receives the post-midnight 6 hours
	w := window(t, "22:00", "06:00")
	s := nightShift(endOfJan, "22:00", "06:00", true, 0)

	carry, err := engine.CarryFromPriorMonth(&s, w, 2025, time.February)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "carry total", carry.Total, dec("6"))
	assertDecimal(t, "carry night", carry.Night, dec("6"))
}

func TestCarryFromPriorMonth_NilOrWrongMonth(t *testing.T) {
	w := window(t, "22:00", "06:00")

	carry, err := engine.CarryFromPriorMonth(nil, w, 2025, time.February)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "nil prior", carry.Total, dec("0"))

	s := nightShift(endOfJan, "22:00", "06:00", true, 0)
	carry, err = engine.CarryFromPriorMonth(&s, w, 2025, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDecimal(t, "wrong month", carry.Total, dec("0"))
}
