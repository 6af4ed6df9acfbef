// Package scheduler rebuilds the daily report on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Job builds one report. Errors are logged by the job itself.
type Job func(ctx context.Context) error

// Scheduler runs a Job on a cron expression in a fixed zone.
type Scheduler struct {
	scheduler *gocron.Scheduler
	cron      string
	timeout   time.Duration
	job       Job
	logger    *slog.Logger
}

// New creates a Scheduler. Each run is bounded by timeout.
func New(cron string, loc *time.Location, timeout time.Duration, job Job, logger *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		cron:      cron,
		timeout:   timeout,
		job:       job,
		logger:    logger,
	}
}

// Start registers the job and starts the scheduler in the background.
// When runNow is set the job also runs immediately.
func (s *Scheduler) Start(ctx context.Context, runNow bool) error {
	sched := s.scheduler.Cron(s.cron)
	if runNow {
		sched = sched.StartImmediately()
	}
	job, err := sched.Do(s.run, ctx)
	if err != nil {
		return fmt.Errorf("schedule report job %q: %w", s.cron, err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("report scheduler started", "cron", s.cron, "next_run", job.NextRun())
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.logger.Info("scheduled report run starting")
	if err := s.job(ctx); err != nil {
		s.logger.Error("scheduled report run failed", "error", err)
	}
}
