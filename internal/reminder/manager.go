package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/notify"
	"github.com/linkdeck/linkdeck/internal/store"
)

// FireButtons are the actions offered on a fired reminder
// notification. Index 0 resolves the reminder, index 1 only hides the
// alert.
var FireButtons = []string{"Mark Complete", "Dismiss"}

// Scheduler is the timer surface the manager drives. Satisfied by
// *timer.Service.
type Scheduler interface {
	Schedule(name string, at time.Time) error
	Cancel(name string)
}

// Manager owns the reminder lifecycle: Scheduled, then Fired, then
// Resolved, with Cancelled reachable from Scheduled. It keeps the
// store, the timer registrations and the notifications consistent.
type Manager struct {
	store     store.Store
	timers    Scheduler
	presenter notify.Presenter
	log       logger.Logger
	now       func() time.Time
}

// NewManager wires the lifecycle manager. A nil clock defaults to
// time.Now.
func NewManager(st store.Store, timers Scheduler, presenter notify.Presenter, log logger.Logger, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		store:     st,
		timers:    timers,
		presenter: presenter,
		log:       log,
		now:       now,
	}
}

// Create validates and persists a new reminder, newest first, then
// registers its timer. A fire time not strictly in the future is
// rejected before any state changes. A timer registration failure is
// surfaced as a TimerError, but the persisted record is kept.
func (m *Manager) Create(ctx context.Context, r domain.Reminder) (*domain.Reminder, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	now := m.now()
	if !r.Time.After(now) {
		return nil, &domain.InvalidTimeError{Time: r.Time, Now: now}
	}

	if r.ID == "" {
		r.ID = domain.NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.Completed = false

	reminders, err := m.store.Reminders(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load reminders", Err: err}
	}

	reminders = append([]domain.Reminder{r}, reminders...)
	if err := m.store.SaveReminders(ctx, reminders); err != nil {
		return nil, &domain.StoreError{Op: "save reminders", Err: err}
	}

	if err := m.timers.Schedule(r.ID, r.Time); err != nil {
		m.log.Error("reminder saved without a live timer",
			logger.String("id", r.ID),
			logger.Error(err))
		return &r, &domain.TimerError{ID: r.ID, Err: err}
	}

	m.log.Info("reminder scheduled",
		logger.String("id", r.ID),
		logger.String("title", r.Title),
		logger.Time("at", r.Time))

	return &r, nil
}

// HandleFire is the timer callback. It re-reads state so a reminder
// cancelled or completed after scheduling is a no-op, which also makes
// duplicate deliveries idempotent. The reminder resolves even when
// notifications are disabled.
func (m *Manager) HandleFire(ctx context.Context, id string) error {
	reminders, err := m.store.Reminders(ctx)
	if err != nil {
		return &domain.StoreError{Op: "load reminders", Err: err}
	}

	idx := -1
	for i := range reminders {
		if reminders[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 || reminders[idx].Completed {
		m.log.Debug("stale fire ignored", logger.String("id", id))
		return nil
	}

	settings, err := m.store.Settings(ctx)
	if err != nil {
		return &domain.StoreError{Op: "load settings", Err: err}
	}

	r := reminders[idx]
	if settings.EnableNotifications {
		message := r.Description
		if message == "" {
			message = "You have a reminder!"
		}
		err := m.presenter.Present(notify.Notification{
			ID:       r.ID,
			Title:    fmt.Sprintf("Reminder: %s", r.Title),
			Message:  message,
			Priority: r.Priority,
			Buttons:  FireButtons,
		})
		if err != nil {
			m.log.Warn("reminder notification failed",
				logger.String("id", r.ID),
				logger.Error(err))
		}
	} else {
		m.log.Debug("notifications disabled, resolving silently",
			logger.String("id", r.ID))
	}

	reminders[idx].Completed = true
	if err := m.store.SaveReminders(ctx, reminders); err != nil {
		return &domain.StoreError{Op: "save reminders", Err: err}
	}

	m.log.Info("reminder fired", logger.String("id", id))
	return nil
}

// Cancel drops the timer registration and removes the reminder
// record. Cancelling an unknown id removes nothing and is not an
// error.
func (m *Manager) Cancel(ctx context.Context, id string) error {
	m.timers.Cancel(id)

	reminders, err := m.store.Reminders(ctx)
	if err != nil {
		return &domain.StoreError{Op: "load reminders", Err: err}
	}

	kept := reminders[:0]
	for _, r := range reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(reminders) {
		return nil
	}

	if err := m.store.SaveReminders(ctx, kept); err != nil {
		return &domain.StoreError{Op: "save reminders", Err: err}
	}

	m.log.Info("reminder cancelled", logger.String("id", id))
	return nil
}

// Complete resolves a reminder ahead of (or after) its fire time:
// the timer registration is dropped and the record marked completed.
func (m *Manager) Complete(ctx context.Context, id string) error {
	m.timers.Cancel(id)

	reminders, err := m.store.Reminders(ctx)
	if err != nil {
		return &domain.StoreError{Op: "load reminders", Err: err}
	}

	found := false
	for i := range reminders {
		if reminders[i].ID == id {
			reminders[i].Completed = true
			found = true
			break
		}
	}
	if !found {
		return domain.ErrNotFound
	}

	if err := m.store.SaveReminders(ctx, reminders); err != nil {
		return &domain.StoreError{Op: "save reminders", Err: err}
	}

	m.log.Info("reminder completed", logger.String("id", id))
	return nil
}

// List returns all reminder records, newest first as stored.
func (m *Manager) List(ctx context.Context) ([]domain.Reminder, error) {
	reminders, err := m.store.Reminders(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load reminders", Err: err}
	}
	return reminders, nil
}

// Restore re-registers timers for every active future reminder. Timer
// registrations live only in process memory, so this runs once at
// startup.
func (m *Manager) Restore(ctx context.Context) error {
	reminders, err := m.store.Reminders(ctx)
	if err != nil {
		return &domain.StoreError{Op: "load reminders", Err: err}
	}

	now := m.now()
	restored := 0
	for _, r := range reminders {
		if r.Completed || !r.Time.After(now) {
			continue
		}
		if err := m.timers.Schedule(r.ID, r.Time); err != nil {
			m.log.Error("timer restore failed",
				logger.String("id", r.ID),
				logger.Error(err))
			continue
		}
		restored++
	}

	if restored > 0 {
		m.log.Info("reminder timers restored", logger.Int("count", restored))
	}
	return nil
}
