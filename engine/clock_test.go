package engine_test

import (
	"errors"
	"testing"

	"github.com/warp/timeclock-engine/engine"
)

// =============================================================================
// CLOCK PARSING
// =============================================================================

func TestParseClock_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"22:00", 1320},
		{"23:59", 1439},
	}
	for _, c := range cases {
		got, err := engine.ParseClock(c.in)
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error: %v", c.in, err)
		}
		if int(got) != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, in := range []string{"24:00", "12:60", "9", "ab:cd", "", "-1:00"} {
		_, err := engine.ParseClock(in)
		if err == nil {
			t.Errorf("ParseClock(%q): expected error, got none", in)
		}
		if !errors.Is(err, engine.ErrInvalidInterval) {
			t.Errorf("ParseClock(%q): error does not unwrap to ErrInvalidInterval", in)
		}
	}
}

func TestClockTime_String_RoundTrips(t *testing.T) {
	ct := engine.MustClock("07:05")
	if ct.String() != "07:05" {
		t.Errorf("String() = %q, want 07:05", ct.String())
	}
}

// =============================================================================
// INTERVAL DURATION
// =============================================================================

func TestInterval_Duration_SameDay(t *testing.T) {
	// GIVEN: 09:00-17:30 with no overnight flag
	// THEN: duration is 510 minutes
	iv := engine.Interval{Start: engine.MustClock("09:00"), End: engine.MustClock("17:30")}
	if d := iv.Duration(); d != 510 {
		t.Errorf("duration = %d, want 510", d)
	}
}

func TestInterval_Duration_SpansNextDay(t *testing.T) {
	// GIVEN: 22:00-06:00 with the overnight flag
	// THEN: effective end is 06:00 next day, duration 480 minutes
	iv := engine.Interval{Start: engine.MustClock("22:00"), End: engine.MustClock("06:00"), SpansNextDay: true}
	if d := iv.Duration(); d != 480 {
		t.Errorf("duration = %d, want 480", d)
	}
}

func TestInterval_Duration_WrapsWithoutFlag(t *testing.T) {
	// GIVEN: end before start and no flag (historical tolerant read)
	// THEN: duration still wraps past midnight
	iv := engine.Interval{Start: engine.MustClock("23:00"), End: engine.MustClock("01:00")}
	if d := iv.Duration(); d != 120 {
		t.Errorf("duration = %d, want 120", d)
	}
}

func TestInterval_Duration_FlagWithLaterEnd(t *testing.T) {
	// GIVEN: 01:00 with the end flagged onto the next day at 09:00
	// THEN: effective end is 09:00 + 1440, a 32 hour span
	iv := engine.Interval{Start: engine.MustClock("01:00"), End: engine.MustClock("09:00"), SpansNextDay: true}
	if d := iv.Duration(); d != 1920 {
		t.Errorf("duration = %d, want 1920", d)
	}
}

func TestInterval_ValidateStrict_RejectsAmbiguousWrap(t *testing.T) {
	// GIVEN: end before start without the overnight flag
	// WHEN: validating on the write path
	// THEN: surfaced as ErrInvalidInterval, never silently corrected
	iv := engine.Interval{Start: engine.MustClock("23:00"), End: engine.MustClock("01:00")}
	err := iv.ValidateStrict()
	if !errors.Is(err, engine.ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestInterval_Duration_NeverNegative(t *testing.T) {
	iv := engine.Interval{Start: engine.MustClock("10:00"), End: engine.MustClock("10:00")}
	if d := iv.Duration(); d != 0 {
		t.Errorf("zero-length interval duration = %d, want 0", d)
	}
}
