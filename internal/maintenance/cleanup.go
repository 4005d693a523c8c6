// Package maintenance runs periodic housekeeping jobs.
package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// UnverifiedPruner deletes inactive accounts created before a cutoff.
type UnverifiedPruner interface {
	DeleteStaleUnverified(ctx context.Context, before time.Time) (int64, error)
}

// Cleaner removes accounts that never confirmed their e-mail.
type Cleaner struct {
	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
	store   UnverifiedPruner
	ttl     time.Duration
	now     func() time.Time
	logger  *logrus.Entry
}

// NewCleaner creates a cleaner that prunes accounts older than ttl.
func NewCleaner(store UnverifiedPruner, ttl time.Duration, logger *logrus.Logger) *Cleaner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Cleaner{
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.WithField("component", "maintenance"),
	}
}

// RunOnce prunes stale accounts and returns how many were removed.
func (c *Cleaner) RunOnce(ctx context.Context) (int64, error) {
	cutoff := c.now().Add(-c.ttl)
	deleted, err := c.store.DeleteStaleUnverified(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		c.logger.WithFields(logrus.Fields{
			"deleted": deleted,
			"cutoff":  cutoff,
		}).Info("Pruned unverified users")
	}
	return deleted, nil
}

// Start schedules RunOnce with a cron spec such as "@hourly" or "0 3 * * *".
func (c *Cleaner) Start(spec string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cron != nil {
		return fmt.Errorf("cleaner already started")
	}

	scheduler := cron.New()
	entryID, err := scheduler.AddFunc(spec, func() {
		if _, err := c.RunOnce(context.Background()); err != nil {
			c.logger.WithError(err).Error("Failed to prune unverified users")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", spec, err)
	}

	c.cron = scheduler
	c.entryID = entryID
	c.cron.Start()
	c.logger.WithField("schedule", spec).Info("Cleanup job scheduled")
	return nil
}

// NextRun returns the next scheduled run, or the zero time when not started.
func (c *Cleaner) NextRun() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cron == nil {
		return time.Time{}
	}
	return c.cron.Entry(c.entryID).Next
}

// Stop halts the schedule and waits for a running job to finish.
func (c *Cleaner) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cron == nil {
		return
	}
	<-c.cron.Stop().Done()
	c.cron = nil
}
