// Package scheduler drives the periodic compliance jobs: the certification
// check cycle and the daily snapshot.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"rescueops/internal/platform/redis"
)

// lockTTL covers the clock skew window between instances ticking for the
// same cycle. It is intentionally much shorter than the job intervals so a
// crashed holder cannot block the next day's run.
const lockTTL = 10 * time.Minute

// Job is one periodic task.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs each job on its own ticker until the context is cancelled.
// Before each run it claims a Redis run-lock so only one instance dispatches
// reminders for a given cycle.
type Scheduler struct {
	jobs       []Job
	lock       *redis.RunLock
	logger     *slog.Logger
	runOnStart bool
}

func New(lock *redis.RunLock, logger *slog.Logger, runOnStart bool, jobs ...Job) *Scheduler {
	return &Scheduler{jobs: jobs, lock: lock, logger: logger, runOnStart: runOnStart}
}

// Start blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range s.jobs {
		g.Go(func() error {
			s.runLoop(ctx, job)
			return nil
		})
	}
	return g.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, job Job) {
	s.logger.Info("scheduler started",
		"job", job.Name,
		"interval", job.Interval.String(),
	)

	if s.runOnStart {
		s.runOnce(ctx, job)
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped", "job", job.Name)
			return
		case <-ticker.C:
			s.runOnce(ctx, job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, job Job) {
	acquired, err := s.lock.Acquire(ctx, job.Name, lockTTL)
	if err != nil {
		// Proceed without coordination rather than silently skipping the
		// cycle; a duplicate reminder beats a missed one.
		s.logger.Warn("run lock unavailable, proceeding uncoordinated",
			"job", job.Name,
			"error", err.Error(),
		)
	} else if !acquired {
		s.logger.Info("cycle already claimed by another instance", "job", job.Name)
		return
	}

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.logger.Error("job failed",
			"job", job.Name,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err.Error(),
		)
		return
	}
	s.logger.Info("job completed",
		"job", job.Name,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
