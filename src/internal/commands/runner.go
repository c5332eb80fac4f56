package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
)

// Supervisor keeps a long-running function alive, restarting it with
// exponential backoff when it fails or panics. A nil return or a cancelled
// context stops it.
type Supervisor struct {
	name       string
	fn         func(ctx context.Context) error
	backoff    time.Duration
	maxBackoff time.Duration
	// maxRestarts of 0 means unlimited
	maxRestarts int

	mu        sync.RWMutex
	restarts  int
	lastError error
}

// SupervisorConfig contains configuration for Supervisor.
type SupervisorConfig struct {
	Name        string
	MaxRestarts int           // 0 = unlimited restarts
	Backoff     time.Duration // Initial backoff (default: 1s)
	MaxBackoff  time.Duration // Max backoff (default: 30s)
}

func NewSupervisor(cfg SupervisorConfig, fn func(ctx context.Context) error) *Supervisor {
	if cfg.Backoff == 0 {
		cfg.Backoff = time.Second
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 30 * time.Second
	}

	return &Supervisor{
		name:        cfg.Name,
		fn:          fn,
		backoff:     cfg.Backoff,
		maxBackoff:  cfg.MaxBackoff,
		maxRestarts: cfg.MaxRestarts,
	}
}

// Run blocks until fn exits cleanly, ctx is cancelled or the restart budget is spent.
func (s *Supervisor) Run(ctx context.Context) {
	backoff := s.backoff

	for {
		err := s.runOnce(ctx)

		s.mu.Lock()
		s.lastError = err
		s.mu.Unlock()

		if err == nil {
			log.Debugf("%s: exited cleanly", s.name)
			return
		}
		if ctx.Err() != nil {
			log.Debugf("%s: stopped", s.name)
			return
		}

		s.mu.Lock()
		s.restarts++
		restarts := s.restarts
		s.mu.Unlock()

		if s.maxRestarts > 0 && restarts >= s.maxRestarts {
			log.Errorf("%s: max restarts (%d) reached, giving up. Last error: %v", s.name, s.maxRestarts, err)
			return
		}

		log.Errorf("%s: failed: %v. Restarting in %v (restart #%d)", s.name, err, backoff, restarts)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > s.maxBackoff {
			backoff = s.maxBackoff
		}
	}
}

func (s *Supervisor) runOnce(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic: %v", recovered)
		}
	}()

	return s.fn(ctx)
}

// Restarts returns the number of restarts so far.
func (s *Supervisor) Restarts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restarts
}

// LastError returns the error of the most recent attempt.
func (s *Supervisor) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}
