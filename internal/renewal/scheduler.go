// AngelaMos | 2026
// scheduler.go

package renewal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron     *cron.Cron
	jobs     *Jobs
	schedule string
	logger   *slog.Logger
}

// NewScheduler wraps every run with panic recovery and skips a tick while
// the previous run is still going.
func NewScheduler(jobs *Jobs, schedule string, logger *slog.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))

	return &Scheduler{
		cron:     c,
		jobs:     jobs,
		schedule: schedule,
		logger:   logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.jobs.RenewDue); err != nil {
		return fmt.Errorf("schedule renewal job: %w", err)
	}
	s.logger.Info("scheduled renewal job", "schedule", s.schedule)

	s.cron.Start()
	return nil
}

// Stop returns a context that is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
