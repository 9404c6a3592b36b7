package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"NewsSummarizer/internal/ports"
)

// CronScheduler runs a job on a standard five-field cron expression in a
// fixed timezone.
type CronScheduler struct {
	spec     string
	schedule cron.Schedule
	location *time.Location

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler validates spec; a nil location means UTC.
func NewCronScheduler(spec string, loc *time.Location) (*CronScheduler, error) {
	if loc == nil {
		loc = time.UTC
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse cron expression %q: %w", spec, err)
	}

	return &CronScheduler{
		spec:     spec,
		schedule: schedule,
		location: loc,
		cron:     cron.New(cron.WithLocation(loc)),
	}, nil
}

// Next reports the first activation after now, in the scheduler's timezone.
func (c *CronScheduler) Next(now time.Time) time.Time {
	return c.schedule.Next(now.In(c.location))
}

// Start registers job and begins firing it. The scheduler stops by itself
// when ctx is cancelled. Calling Start twice is a no-op.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if _, err := c.cron.AddFunc(c.spec, func() { job(time.Now().In(c.location)) }); err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}
	c.cron.Start()
	c.started = true

	go func() {
		<-ctx.Done()
		_ = c.Stop(context.Background())
	}()

	return nil
}

// Stop halts scheduling and waits for a running job until ctx expires.
func (c *CronScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = false
	done := c.cron.Stop()
	c.cron = cron.New(cron.WithLocation(c.location))
	c.mu.Unlock()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
