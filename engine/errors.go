/*
errors.go - Typed errors for the time accounting engine

PURPOSE:
  The engine has exactly two externally observable failure modes: bad
  interval input and an inconsistent weekend policy. Everything else is
  clamped (negative intermediates floor at zero) or belongs to the
  calling layer.

USAGE:
  Callers match with errors.Is:

    if errors.Is(err, engine.ErrInvalidInterval) {
        // 400, not 500
    }

SEE ALSO:
  - clock.go: interval parsing that produces InvalidIntervalError
  - required.go: policy validation that produces InvalidPolicyError
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInterval is returned when a start/end time cannot be parsed
	// or an end precedes start without the spans-next-day flag set.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidPolicy is returned when an employee policy is internally
	// inconsistent (SaturdaySpecificHours mode without Saturday hours).
	ErrInvalidPolicy = errors.New("invalid employee policy")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidIntervalError describes why a wall-clock value or interval was rejected.
type InvalidIntervalError struct {
	Value  string
	Reason string
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval %q: %s", e.Value, e.Reason)
}

func (e *InvalidIntervalError) Unwrap() error { return ErrInvalidInterval }

// InvalidPolicyError describes an inconsistent employee policy.
type InvalidPolicyError struct {
	Mode   WeekendWorkMode
	Reason string
}

func (e *InvalidPolicyError) Error() string {
	return fmt.Sprintf("invalid policy (weekend mode %s): %s", e.Mode, e.Reason)
}

func (e *InvalidPolicyError) Unwrap() error { return ErrInvalidPolicy }

// IsClientError reports whether the error is due to invalid caller input,
// as opposed to an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInterval) || errors.Is(err, ErrInvalidPolicy)
}
