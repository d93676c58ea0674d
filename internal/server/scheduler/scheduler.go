// Package scheduler runs housekeeping sweeps in-process on a cron
// schedule, for deployments without an external trigger.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/Alok0227/rallly/internal/logging"
	"github.com/Alok0227/rallly/internal/server/housekeeping"
	"github.com/robfig/cron/v3"
)

// Sweeper runs one housekeeping sweep.
type Sweeper interface {
	Run(ctx context.Context) (*housekeeping.Result, error)
}

type Scheduler struct {
	sweeper  Sweeper
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   logging.Logger
	running  bool
}

// NewScheduler creates a scheduler firing sweeps per the cron expression.
// An empty schedule disables it.
func NewScheduler(sweeper Sweeper, schedule string, l logging.Logger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(),
		logger:   l.With("module", "scheduler"),
	}
}

// Start begins scheduled sweeping and returns immediately. The scheduler
// stops itself when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info(ctx, "sweep schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info(ctx, "sweep scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Scheduler) runSweep(ctx context.Context) {
	result, err := s.sweeper.Run(ctx)
	if err != nil {
		s.logger.Error(ctx, "scheduled sweep failed", "error", err)
		return
	}

	if result.SoftDeleted > 0 || result.Deleted > 0 {
		s.logger.Info(ctx, "scheduled sweep completed",
			"softDeleted", result.SoftDeleted,
			"deleted", result.Deleted,
		)
	} else {
		s.logger.Debug(ctx, "scheduled sweep completed, nothing to do")
	}
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info(context.Background(), "sweep scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
