// Package memory provides an in-memory RecordStore for tests and demos.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/timeclock-engine/engine"
	"github.com/warp/timeclock-engine/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu          sync.RWMutex
	policies    map[engine.EmployeeID]engine.EmployeePolicy
	shifts      map[dayKey]engine.ShiftRecord
	attendances map[dayKey]engine.AttendanceRecord
	holidays    map[string]engine.HolidayRecord // OrgID + date
	leaves      map[dayKey]engine.LeaveRecord
	schedules   map[monthKey]payroll.SavedScheduleData
}

type dayKey struct {
	EmployeeID engine.EmployeeID
	Date       string
}

type monthKey struct {
	EmployeeID engine.EmployeeID
	Year       int
	Month      time.Month
}

var _ payroll.RecordStore = (*Store)(nil)

func New() *Store {
	return &Store{
		policies:    make(map[engine.EmployeeID]engine.EmployeePolicy),
		shifts:      make(map[dayKey]engine.ShiftRecord),
		attendances: make(map[dayKey]engine.AttendanceRecord),
		holidays:    make(map[string]engine.HolidayRecord),
		leaves:      make(map[dayKey]engine.LeaveRecord),
		schedules:   make(map[monthKey]payroll.SavedScheduleData),
	}
}

// =============================================================================
// POLICIES
// =============================================================================

func (m *Store) UpsertPolicy(_ context.Context, p engine.EmployeePolicy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policies[p.EmployeeID] = p
	return nil
}

func (m *Store) Policy(_ context.Context, id engine.EmployeeID) (engine.EmployeePolicy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.policies[id]
	if !ok {
		return engine.EmployeePolicy{}, payroll.ErrNotFound
	}
	return p, nil
}

func (m *Store) ListPolicies(_ context.Context) ([]engine.EmployeePolicy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.EmployeePolicy, 0, len(m.policies))
	for _, p := range m.policies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

// =============================================================================
// SHIFTS
// =============================================================================

func (m *Store) UpsertShift(_ context.Context, s engine.ShiftRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// One record per (employee, date); upsert replaces.
	m.shifts[dayKey{s.EmployeeID, s.Date.String()}] = s
	return nil
}

func (m *Store) ShiftForDate(_ context.Context, id engine.EmployeeID, date engine.Date) (*engine.ShiftRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.shifts[dayKey{id, date.String()}]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *Store) ShiftsForMonth(_ context.Context, id engine.EmployeeID, year int, month time.Month) ([]engine.ShiftRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.ShiftRecord
	for _, s := range m.shifts {
		if s.EmployeeID == id && s.Date.Year() == year && s.Date.Month() == month {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (m *Store) UpsertAttendance(_ context.Context, a engine.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendances[dayKey{a.EmployeeID, a.Date.String()}] = a
	return nil
}

func (m *Store) AttendanceForMonth(_ context.Context, id engine.EmployeeID, year int, month time.Month) ([]engine.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.AttendanceRecord
	for _, a := range m.attendances {
		if a.EmployeeID == id && a.Date.Year() == year && a.Date.Month() == month {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// =============================================================================
// HOLIDAYS AND LEAVES
// =============================================================================

func (m *Store) UpsertHoliday(_ context.Context, h engine.HolidayRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holidays[string(h.OrgID)+"/"+h.Date.String()] = h
	return nil
}

func (m *Store) HolidaysForMonth(_ context.Context, org engine.OrgID, year int, month time.Month) ([]engine.HolidayRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.HolidayRecord
	for _, h := range m.holidays {
		if h.OrgID == org && h.Date.Year() == year && h.Date.Month() == month {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Store) UpsertLeave(_ context.Context, l engine.LeaveRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaves[dayKey{l.EmployeeID, l.Date.String()}] = l
	return nil
}

func (m *Store) LeavesForMonth(_ context.Context, id engine.EmployeeID, year int, month time.Month) ([]engine.LeaveRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.LeaveRecord
	for _, l := range m.leaves {
		if l.EmployeeID == id && l.Date.Year() == year && l.Date.Month() == month {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// =============================================================================
// SAVED SCHEDULES
// =============================================================================

func (m *Store) SaveSchedule(_ context.Context, data payroll.SavedScheduleData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[monthKey{engine.EmployeeID(data.EmployeeID), data.Year, time.Month(data.Month)}] = data
	return nil
}

func (m *Store) LoadSchedule(_ context.Context, id engine.EmployeeID, year int, month time.Month) (*payroll.SavedScheduleData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.schedules[monthKey{id, year, month}]
	if !ok {
		return nil, payroll.ErrNotFound
	}
	return &data, nil
}
