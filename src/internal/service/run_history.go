package service

import (
	"sync"
	"time"
)

// RunHistory keeps the latest outcome and simple counters for service mode.
// It is safe for concurrent use.
type RunHistory struct {
	mu       sync.RWMutex
	last     *RunOutcome
	running  bool
	runs     int
	failures int
	started  time.Time
}

// HistorySnapshot is a consistent copy of RunHistory.
type HistorySnapshot struct {
	Last     *RunOutcome
	Running  bool
	Runs     int
	Failures int
	Since    time.Time
}

func NewRunHistory(started time.Time) *RunHistory {
	return &RunHistory{started: started}
}

// Begin marks a run as in progress.
func (h *RunHistory) Begin() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.running = true
}

// Record stores a finished run.
func (h *RunHistory) Record(outcome *RunOutcome) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.running = false
	h.last = outcome
	h.runs++
	if outcome.ExitCode() != 0 {
		h.failures++
	}
}

func (h *RunHistory) Snapshot() HistorySnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return HistorySnapshot{
		Last:     h.last,
		Running:  h.running,
		Runs:     h.runs,
		Failures: h.failures,
		Since:    h.started,
	}
}
