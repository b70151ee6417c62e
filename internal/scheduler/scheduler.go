// Package scheduler runs the periodic expiry sweep.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/TelmenBay/leetlog/internal/logger"
)

// Sweeper recomputes snapshots whose best time may have expired.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// Scheduler manages scheduled tasks for the server.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	interval  time.Duration
	timeout   time.Duration
	log       *logger.Logger
}

// New creates a scheduler that sweeps every interval.
func New(sweeper Sweeper, interval time.Duration, log *logger.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		sweeper:   sweeper,
		interval:  interval,
		timeout:   interval,
		log:       log,
	}
}

// Start schedules the sweep and runs it without blocking. The first run
// happens immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", s.interval)
	}
	if _, err := s.scheduler.Every(s.interval).Do(s.RunOnce); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	s.scheduler.StartAsync()
	s.log.Info("sweep scheduled", "interval", s.interval.String())
	return nil
}

// Stop terminates scheduled tasks, waiting for a running sweep.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunOnce performs one sweep, bounded by the interval.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.log.Error("sweep failed", "error", err, "changed", n)
		return
	}
	s.log.Debug("sweep done", "changed", n, "duration_ms", time.Since(start).Milliseconds())
}
