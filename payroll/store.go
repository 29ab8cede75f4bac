/*
store.go - Persistence interface for schedule and attendance records

PURPOSE:
  The boundary between the pure calculation code and whatever holds the
  records. The engine never touches this; the API layer loads a month's
  snapshot through it and hands plain records to Summarize.

CONTRACT:
  Upserts replace the record for (employee, date) - the store, not the
  engine, enforces the one-record-per-day invariant. UpsertShift is
  expected to be called with cached hours already recomputed (the API
  layer runs Recompute on every write).

IMPLEMENTATIONS:
  - store/memory:  in-memory, for tests and demos
  - store/sqlite:  SQLite with WAL, for the server

SEE ALSO:
  - aggregate.go: consumes the records these methods return
*/
package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/warp/timeclock-engine/engine"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// RecordStore persists the records the aggregator consumes.
type RecordStore interface {
	// Employee policies
	UpsertPolicy(ctx context.Context, p engine.EmployeePolicy) error
	Policy(ctx context.Context, id engine.EmployeeID) (engine.EmployeePolicy, error)
	ListPolicies(ctx context.Context) ([]engine.EmployeePolicy, error)

	// Shifts (one per employee+date; upsert replaces)
	UpsertShift(ctx context.Context, s engine.ShiftRecord) error
	ShiftForDate(ctx context.Context, id engine.EmployeeID, date engine.Date) (*engine.ShiftRecord, error)
	ShiftsForMonth(ctx context.Context, id engine.EmployeeID, year int, month time.Month) ([]engine.ShiftRecord, error)

	// Attendance (one per employee+date; upsert replaces)
	UpsertAttendance(ctx context.Context, a engine.AttendanceRecord) error
	AttendanceForMonth(ctx context.Context, id engine.EmployeeID, year int, month time.Month) ([]engine.AttendanceRecord, error)

	// Holidays and leaves
	UpsertHoliday(ctx context.Context, h engine.HolidayRecord) error
	HolidaysForMonth(ctx context.Context, org engine.OrgID, year int, month time.Month) ([]engine.HolidayRecord, error)
	UpsertLeave(ctx context.Context, l engine.LeaveRecord) error
	LeavesForMonth(ctx context.Context, id engine.EmployeeID, year int, month time.Month) ([]engine.LeaveRecord, error)

	// Saved schedule snapshots
	SaveSchedule(ctx context.Context, data SavedScheduleData) error
	LoadSchedule(ctx context.Context, id engine.EmployeeID, year int, month time.Month) (*SavedScheduleData, error)
}
