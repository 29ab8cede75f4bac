/*
scheduler.go - Automated cached-hours recompute scheduler

PURPOSE:
  Periodically re-runs the duration calculation over the current month's
  shifts and rewrites any record whose cached hour figures no longer
  match. Normally the write path keeps the cache exact; this job repairs
  drift after out-of-band edits (imports, manual SQL, a changed night
  window rolled out mid-month).

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Walks every employee with a policy, current month only
  - Recomputes each shift and upserts only when the figures changed
  - Saved schedule snapshots are never touched; their values are frozen

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewRecomputeScheduler(store, settings)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: UpsertShift, the write path that normally keeps the cache
  - engine/shift.go: Recompute
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/timeclock-engine/factory"
	"github.com/warp/timeclock-engine/payroll"
)

// RecomputeScheduler repairs cached shift hours in the background.
type RecomputeScheduler struct {
	Store         payroll.RecordStore
	Settings      *factory.Settings
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRecomputeScheduler creates a new scheduler.
func NewRecomputeScheduler(store payroll.RecordStore, settings *factory.Settings) *RecomputeScheduler {
	return &RecomputeScheduler{
		Store:         store,
		Settings:      settings,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (rs *RecomputeScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.wg.Add(1)

	go rs.run()

	log.Printf("[Scheduler] Started with check interval: %v", rs.CheckInterval)
}

// Stop stops the scheduler.
func (rs *RecomputeScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (rs *RecomputeScheduler) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.checkAndRecompute()

	for {
		select {
		case <-rs.ticker.C:
			rs.checkAndRecompute()
		case <-rs.stop:
			return
		}
	}
}

func (rs *RecomputeScheduler) checkAndRecompute() {
	ctx := context.Background()
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()

	policies, err := rs.Store.ListPolicies(ctx)
	if err != nil {
		log.Printf("[Scheduler] Error listing policies: %v", err)
		return
	}

	repairedCount := 0
	for _, p := range policies {
		shifts, err := rs.Store.ShiftsForMonth(ctx, p.EmployeeID, year, month)
		if err != nil {
			log.Printf("[Scheduler] Error listing shifts for %s: %v", p.EmployeeID, err)
			continue
		}

		for _, s := range shifts {
			before, beforeNight := s.TotalHours, s.NightHours
			if err := s.Recompute(rs.Settings.NightWindow); err != nil {
				log.Printf("[Scheduler] Error recomputing %s %s: %v", s.EmployeeID, s.Date, err)
				continue
			}
			if s.TotalHours.Equal(before) && s.NightHours.Equal(beforeNight) {
				continue
			}
			if err := rs.Store.UpsertShift(ctx, s); err != nil {
				log.Printf("[Scheduler] Error rewriting %s %s: %v", s.EmployeeID, s.Date, err)
				continue
			}
			repairedCount++
		}
	}

	if repairedCount > 0 {
		log.Printf("[Scheduler] Completed: %d shifts repaired", repairedCount)
	}
}
