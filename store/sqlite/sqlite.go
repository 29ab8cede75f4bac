/*
Package sqlite provides the SQLite-backed RecordStore.

PURPOSE:
  Persists employee policies, shift/attendance/holiday/leave records and
  saved schedule snapshots. The one-record-per-(employee, date) invariant
  the engine assumes is enforced HERE, with unique indexes and upserts.

KEY TABLES:
  policies:         per-employee contractual configuration
  shifts:           planned work intervals with cached hour fields
  attendance:       punch records
  holidays:         organization holidays (full and half-day)
  leaves:           leave days with display metadata
  saved_schedules:  JSON snapshots of an approved month

CACHED HOURS:
  The shifts table stores total_hours/night_hours exactly as the engine
  computed them. The store never recomputes; the API layer runs
  ShiftRecord.Recompute before every UpsertShift.

WAL MODE:
  Opened with WAL for better concurrency: readers don't block, single
  writer, better crash recovery.

SEE ALSO:
  - payroll/store.go: the interface this implements
  - store/memory: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/timeclock-engine/engine"
	"github.com/warp/timeclock-engine/payroll"
)

// Store implements payroll.RecordStore using SQLite.
type Store struct {
	db *sql.DB
}

var _ payroll.RecordStore = (*Store)(nil)

// New opens (or creates) the database at dbPath. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS policies (
		employee_id TEXT PRIMARY KEY,
		daily_work_hours TEXT NOT NULL,
		weekend_mode INTEGER NOT NULL DEFAULT 0,
		saturday_hours TEXT
	);

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		spans_next_day INTEGER NOT NULL DEFAULT 0,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		is_day_off INTEGER NOT NULL DEFAULT 0,
		overnight_mode TEXT NOT NULL,
		total_hours TEXT NOT NULL,
		night_hours TEXT NOT NULL,
		UNIQUE(employee_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_employee_date
		ON shifts(employee_id, date);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		check_in TEXT,
		check_out TEXT,
		check_out_next_day INTEGER NOT NULL DEFAULT 0,
		type TEXT NOT NULL,
		worked_hours TEXT,
		UNIQUE(employee_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_employee_date
		ON attendance(employee_id, date);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		date TEXT NOT NULL,
		is_half_day INTEGER NOT NULL DEFAULT 0,
		half_day_hours TEXT,
		UNIQUE(org_id, date)
	);

	CREATE TABLE IF NOT EXISTS leaves (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		type_code TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		UNIQUE(employee_id, date)
	);

	CREATE TABLE IF NOT EXISTS saved_schedules (
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		data_json TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		PRIMARY KEY(employee_id, year, month)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// monthRange returns the [first, last] date strings for a month; the
// date column is ISO formatted so string comparison is date comparison.
func monthRange(year int, month time.Month) (string, string) {
	return engine.FirstOfMonth(year, month).String(), engine.LastOfMonth(year, month).String()
}

func recordID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// =============================================================================
// POLICIES
// =============================================================================

func (s *Store) UpsertPolicy(ctx context.Context, p engine.EmployeePolicy) error {
	var sat *string
	if p.SaturdayHours != nil {
		v := p.SaturdayHours.String()
		sat = &v
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO policies (employee_id, daily_work_hours, weekend_mode, saturday_hours)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(employee_id) DO UPDATE SET
			daily_work_hours = excluded.daily_work_hours,
			weekend_mode = excluded.weekend_mode,
			saturday_hours = excluded.saturday_hours`,
		string(p.EmployeeID), p.DailyWorkHours.String(), int(p.WeekendMode), sat)
	return err
}

func (s *Store) Policy(ctx context.Context, id engine.EmployeeID) (engine.EmployeePolicy, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT employee_id, daily_work_hours, weekend_mode, saturday_hours
		FROM policies WHERE employee_id = ?`, string(id))
	p, err := scanPolicy(row)
	if err == sql.ErrNoRows {
		return engine.EmployeePolicy{}, payroll.ErrNotFound
	}
	return p, err
}

func (s *Store) ListPolicies(ctx context.Context) ([]engine.EmployeePolicy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, daily_work_hours, weekend_mode, saturday_hours
		FROM policies ORDER BY employee_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.EmployeePolicy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPolicy(row scanner) (engine.EmployeePolicy, error) {
	var (
		id, daily string
		mode      int
		sat       *string
	)
	if err := row.Scan(&id, &daily, &mode, &sat); err != nil {
		return engine.EmployeePolicy{}, err
	}
	dailyDec, err := decimal.NewFromString(daily)
	if err != nil {
		return engine.EmployeePolicy{}, err
	}
	p := engine.EmployeePolicy{
		EmployeeID:     engine.EmployeeID(id),
		DailyWorkHours: dailyDec,
		WeekendMode:    engine.WeekendWorkMode(mode),
	}
	if sat != nil {
		satDec, err := decimal.NewFromString(*sat)
		if err != nil {
			return engine.EmployeePolicy{}, err
		}
		p.SaturdayHours = &satDec
	}
	return p, nil
}

// =============================================================================
// SHIFTS
// =============================================================================

func (s *Store) UpsertShift(ctx context.Context, sh engine.ShiftRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shifts (id, employee_id, date, start_time, end_time,
			spans_next_day, break_minutes, is_day_off, overnight_mode,
			total_hours, night_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			spans_next_day = excluded.spans_next_day,
			break_minutes = excluded.break_minutes,
			is_day_off = excluded.is_day_off,
			overnight_mode = excluded.overnight_mode,
			total_hours = excluded.total_hours,
			night_hours = excluded.night_hours`,
		recordID(sh.ID), string(sh.EmployeeID), sh.Date.String(),
		sh.Start.String(), sh.End.String(), sh.SpansNextDay, sh.BreakMinutes,
		sh.IsDayOff, string(sh.OvernightMode),
		sh.TotalHours.String(), sh.NightHours.String())
	return err
}

func (s *Store) ShiftForDate(ctx context.Context, id engine.EmployeeID, date engine.Date) (*engine.ShiftRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, date, start_time, end_time, spans_next_day,
			break_minutes, is_day_off, overnight_mode, total_hours, night_hours
		FROM shifts WHERE employee_id = ? AND date = ?`,
		string(id), date.String())
	sh, err := scanShift(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *Store) ShiftsForMonth(ctx context.Context, id engine.EmployeeID, year int, month time.Month) ([]engine.ShiftRecord, error) {
	first, last := monthRange(year, month)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, date, start_time, end_time, spans_next_day,
			break_minutes, is_day_off, overnight_mode, total_hours, night_hours
		FROM shifts
		WHERE employee_id = ? AND date BETWEEN ? AND ?
		ORDER BY date`,
		string(id), first, last)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.ShiftRecord
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

func scanShift(row scanner) (engine.ShiftRecord, error) {
	var (
		id, empID, dateStr, startStr, endStr, mode, totalStr, nightStr string
		spans, dayOff                                                 bool
		breakMinutes                                                  int
	)
	if err := row.Scan(&id, &empID, &dateStr, &startStr, &endStr, &spans,
		&breakMinutes, &dayOff, &mode, &totalStr, &nightStr); err != nil {
		return engine.ShiftRecord{}, err
	}

	date, err := engine.ParseDate(dateStr)
	if err != nil {
		return engine.ShiftRecord{}, err
	}
	start, err := engine.ParseClock(startStr)
	if err != nil {
		return engine.ShiftRecord{}, err
	}
	end, err := engine.ParseClock(endStr)
	if err != nil {
		return engine.ShiftRecord{}, err
	}
	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return engine.ShiftRecord{}, err
	}
	night, err := decimal.NewFromString(nightStr)
	if err != nil {
		return engine.ShiftRecord{}, err
	}

	return engine.ShiftRecord{
		ID:            id,
		EmployeeID:    engine.EmployeeID(empID),
		Date:          date,
		Start:         start,
		End:           end,
		SpansNextDay:  spans,
		BreakMinutes:  breakMinutes,
		IsDayOff:      dayOff,
		OvernightMode: engine.OvernightMode(mode),
		TotalHours:    total,
		NightHours:    night,
	}, nil
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (s *Store) UpsertAttendance(ctx context.Context, a engine.AttendanceRecord) error {
	var in, out, worked *string
	if a.CheckIn != nil {
		v := a.CheckIn.String()
		in = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.String()
		out = &v
	}
	if a.WorkedHours != nil {
		v := a.WorkedHours.String()
		worked = &v
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance (id, employee_id, date, check_in, check_out,
			check_out_next_day, type, worked_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			check_in = excluded.check_in,
			check_out = excluded.check_out,
			check_out_next_day = excluded.check_out_next_day,
			type = excluded.type,
			worked_hours = excluded.worked_hours`,
		recordID(a.ID), string(a.EmployeeID), a.Date.String(), in, out,
		a.CheckOutToNextDay, string(a.Type), worked)
	return err
}

func (s *Store) AttendanceForMonth(ctx context.Context, id engine.EmployeeID, year int, month time.Month) ([]engine.AttendanceRecord, error) {
	first, last := monthRange(year, month)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, date, check_in, check_out, check_out_next_day,
			type, worked_hours
		FROM attendance
		WHERE employee_id = ? AND date BETWEEN ? AND ?
		ORDER BY date`,
		string(id), first, last)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.AttendanceRecord
	for rows.Next() {
		var (
			recID, empID, dateStr, typ string
			in, outT, worked           *string
			nextDay                    bool
		)
		if err := rows.Scan(&recID, &empID, &dateStr, &in, &outT, &nextDay, &typ, &worked); err != nil {
			return nil, err
		}
		date, err := engine.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		a := engine.AttendanceRecord{
			ID:                recID,
			EmployeeID:        engine.EmployeeID(empID),
			Date:              date,
			CheckOutToNextDay: nextDay,
			Type:              engine.AttendanceType(typ),
		}
		if in != nil {
			ct, err := engine.ParseClock(*in)
			if err != nil {
				return nil, err
			}
			a.CheckIn = &ct
		}
		if outT != nil {
			ct, err := engine.ParseClock(*outT)
			if err != nil {
				return nil, err
			}
			a.CheckOut = &ct
		}
		if worked != nil {
			w, err := decimal.NewFromString(*worked)
			if err != nil {
				return nil, err
			}
			a.WorkedHours = &w
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// =============================================================================
// HOLIDAYS AND LEAVES
// =============================================================================

func (s *Store) UpsertHoliday(ctx context.Context, h engine.HolidayRecord) error {
	var half *string
	if h.HalfDayHours != nil {
		v := h.HalfDayHours.String()
		half = &v
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO holidays (id, org_id, date, is_half_day, half_day_hours)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(org_id, date) DO UPDATE SET
			is_half_day = excluded.is_half_day,
			half_day_hours = excluded.half_day_hours`,
		recordID(h.ID), string(h.OrgID), h.Date.String(), h.IsHalfDay, half)
	return err
}

func (s *Store) HolidaysForMonth(ctx context.Context, org engine.OrgID, year int, month time.Month) ([]engine.HolidayRecord, error) {
	first, last := monthRange(year, month)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, org_id, date, is_half_day, half_day_hours
		FROM holidays
		WHERE org_id = ? AND date BETWEEN ? AND ?
		ORDER BY date`,
		string(org), first, last)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.HolidayRecord
	for rows.Next() {
		var (
			id, orgID, dateStr string
			halfDay            bool
			half               *string
		)
		if err := rows.Scan(&id, &orgID, &dateStr, &halfDay, &half); err != nil {
			return nil, err
		}
		date, err := engine.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		h := engine.HolidayRecord{
			ID: id, OrgID: engine.OrgID(orgID), Date: date, IsHalfDay: halfDay,
		}
		if half != nil {
			v, err := decimal.NewFromString(*half)
			if err != nil {
				return nil, err
			}
			h.HalfDayHours = &v
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) UpsertLeave(ctx context.Context, l engine.LeaveRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leaves (id, employee_id, date, type_code, color)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			type_code = excluded.type_code,
			color = excluded.color`,
		recordID(l.ID), string(l.EmployeeID), l.Date.String(), l.TypeCode, l.Color)
	return err
}

func (s *Store) LeavesForMonth(ctx context.Context, id engine.EmployeeID, year int, month time.Month) ([]engine.LeaveRecord, error) {
	first, last := monthRange(year, month)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, date, type_code, color
		FROM leaves
		WHERE employee_id = ? AND date BETWEEN ? AND ?
		ORDER BY date`,
		string(id), first, last)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.LeaveRecord
	for rows.Next() {
		var recID, empID, dateStr, typeCode, color string
		if err := rows.Scan(&recID, &empID, &dateStr, &typeCode, &color); err != nil {
			return nil, err
		}
		date, err := engine.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		out = append(out, engine.LeaveRecord{
			ID: recID, EmployeeID: engine.EmployeeID(empID), Date: date,
			TypeCode: typeCode, Color: color,
		})
	}
	return out, rows.Err()
}

// =============================================================================
// SAVED SCHEDULES
// =============================================================================

func (s *Store) SaveSchedule(ctx context.Context, data payroll.SavedScheduleData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saved_schedules (employee_id, year, month, data_json, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, year, month) DO UPDATE SET
			data_json = excluded.data_json,
			saved_at = excluded.saved_at`,
		data.EmployeeID, data.Year, data.Month, string(raw),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) LoadSchedule(ctx context.Context, id engine.EmployeeID, year int, month time.Month) (*payroll.SavedScheduleData, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT data_json FROM saved_schedules
		WHERE employee_id = ? AND year = ? AND month = ?`,
		string(id), year, int(month)).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, payroll.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var data payroll.SavedScheduleData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return &data, nil
}
