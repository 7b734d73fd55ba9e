package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// State is the lifecycle state of the refresh session's timers.
type State int

const (
	Idle State = iota
	Running
	// ManualOverride is Running with the timeframe cycle cancelled by the user.
	ManualOverride
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case ManualOverride:
		return "manual-override"
	default:
		return "idle"
	}
}

// Scheduler owns the two repeating actions of a refresh session: the data
// refresh and the timeframe cycle. At most one entry of each kind exists.
type Scheduler struct {
	Cron *cron.Cron

	RefreshInterval time.Duration
	CycleInterval   time.Duration

	mu        sync.Mutex
	refreshID cron.EntryID
	cycleID   cron.EntryID
	state     State
}

// NewScheduler creates a Scheduler. Runs of the same action never overlap:
// a tick that fires while the previous one is still fetching is skipped.
func NewScheduler(refreshInterval, cycleInterval time.Duration) *Scheduler {
	logger := cron.PrintfLogger(log.Default())
	return &Scheduler{
		Cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		RefreshInterval: refreshInterval,
		CycleInterval:   cycleInterval,
	}
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully, waiting for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// Replace cancels both existing actions and schedules refresh and cycle in their place.
func (s *Scheduler) Replace(refresh, cycle func()) error {
	if s.RefreshInterval <= 0 || s.CycleInterval <= 0 {
		return fmt.Errorf("intervals must be positive (refresh %v, cycle %v)", s.RefreshInterval, s.CycleInterval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	s.refreshID = s.Cron.Schedule(cron.Every(s.RefreshInterval), cron.FuncJob(refresh))
	s.cycleID = s.Cron.Schedule(cron.Every(s.CycleInterval), cron.FuncJob(cycle))
	s.state = Running
	log.Printf("[INFO] refresh every %v, timeframe cycle every %v", s.RefreshInterval, s.CycleInterval)
	return nil
}

// CancelCycle permanently removes the timeframe cycle for the current session.
func (s *Scheduler) CancelCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cycleID != 0 {
		s.Cron.Remove(s.cycleID)
		s.cycleID = 0
		log.Println("[INFO] timeframe cycling cancelled by manual toggle")
	}
	if s.state == Running {
		s.state = ManualOverride
	}
}

// Clear removes both actions and returns to Idle.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.state = Idle
}

func (s *Scheduler) clearLocked() {
	if s.refreshID != 0 {
		s.Cron.Remove(s.refreshID)
		s.refreshID = 0
	}
	if s.cycleID != 0 {
		s.Cron.Remove(s.cycleID)
		s.cycleID = 0
	}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Active counts the scheduled refresh and cycle entries.
func (s *Scheduler) Active() (refresh, cycle int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var other int
	for _, e := range s.Cron.Entries() {
		switch e.ID {
		case s.refreshID:
			refresh++
		case s.cycleID:
			cycle++
		default:
			other++
		}
	}
	if other > 0 {
		log.Printf("[WARN] scheduler has %d orphaned entries", other)
	}
	return refresh, cycle
}

// Entries returns the total number of scheduled entries.
func (s *Scheduler) Entries() int {
	return len(s.Cron.Entries())
}
