package scheduler

import (
	"context"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/store"
)

const (
	// DefaultCompletedRetention is how long completed reminders stay
	// visible before the pruner removes them.
	DefaultCompletedRetention = 24 * time.Hour
)

// ReminderPruner periodically removes reminders that no longer serve
// a purpose: past-due ones that never resolved, and completed ones
// older than the retention window.
type ReminderPruner struct {
	store     store.Store
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	stopCh    chan struct{}
}

// NewReminderPruner creates a pruner. A zero retention selects
// DefaultCompletedRetention; a nil clock selects time.Now.
func NewReminderPruner(
	st store.Store,
	log logger.Logger,
	interval time.Duration,
	retention time.Duration,
	now func() time.Time,
) *ReminderPruner {
	if retention == 0 {
		retention = DefaultCompletedRetention
	}
	if now == nil {
		now = time.Now
	}

	return &ReminderPruner{
		store:     st,
		logger:    log,
		interval:  interval,
		retention: retention,
		now:       now,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic prune loop. The first pass runs
// immediately.
func (p *ReminderPruner) Start(ctx context.Context) error {
	if err := p.Prune(ctx); err != nil {
		p.logger.Warn("initial reminder prune failed", logger.Error(err))
	}

	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := p.Prune(ctx); err != nil {
					p.logger.Error("reminder prune failed", logger.Error(err))
				}
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the pruner.
func (p *ReminderPruner) Stop() {
	close(p.stopCh)
}

// Prune runs a single pass. A reminder is removed when it is past due
// and never completed (its timer is gone, it will never fire), or
// when it completed longer than the retention window ago.
func (p *ReminderPruner) Prune(ctx context.Context) error {
	reminders, err := p.store.Reminders(ctx)
	if err != nil {
		return &domain.StoreError{Op: "load reminders", Err: err}
	}

	now := p.now()
	kept := make([]domain.Reminder, 0, len(reminders))
	removed := 0

	for _, r := range reminders {
		if p.expired(r, now) {
			p.logger.Debug("pruning reminder",
				logger.String("id", r.ID),
				logger.Bool("completed", r.Completed))
			removed++
			continue
		}
		kept = append(kept, r)
	}

	if removed == 0 {
		p.logger.Debug("no reminders to prune")
		return nil
	}

	if err := p.store.SaveReminders(ctx, kept); err != nil {
		return &domain.StoreError{Op: "save reminders", Err: err}
	}

	p.logger.Info("reminder prune completed",
		logger.Int("removed", removed),
		logger.Int("kept", len(kept)))

	return nil
}

func (p *ReminderPruner) expired(r domain.Reminder, now time.Time) bool {
	if !r.Completed {
		return r.Time.Before(now)
	}
	// Completed reminders age out from their fire time.
	return now.Sub(r.Time) > p.retention
}
