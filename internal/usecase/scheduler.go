package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsSummarizer/internal/ports"
)

// Scheduler wires the cron driver with the digest use case.
type Scheduler struct {
	driver ports.Scheduler
	digest *Digest
	logger *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring digests.
func NewScheduler(driver ports.Scheduler, digest *Digest, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{driver: driver, digest: digest, logger: logger}
}

// Start registers the digest with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.digest == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if err := s.digest.Run(ctx, trigger); err != nil {
			s.logger.Error("scheduled digest failed", "trigger", trigger, "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
