package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/notify"
	"github.com/linkdeck/linkdeck/internal/store/memory"
)

// fakeScheduler records registrations instead of arming real timers.
type fakeScheduler struct {
	mu        sync.Mutex
	scheduled map[string]time.Time
	failNext  error
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{scheduled: make(map[string]time.Time)}
}

func (f *fakeScheduler) Schedule(name string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.scheduled[name] = at
	return nil
}

func (f *fakeScheduler) Cancel(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.scheduled, name)
}

func (f *fakeScheduler) has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.scheduled[name]
	return ok
}

// fakePresenter records presented notifications.
type fakePresenter struct {
	mu        sync.Mutex
	presented []notify.Notification
}

func (f *fakePresenter) Present(n notify.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presented = append(f.presented, n)
	return nil
}

func (f *fakePresenter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.presented)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestManager(t *testing.T, now time.Time) (*Manager, *memory.Store, *fakeScheduler, *fakePresenter) {
	t.Helper()
	st := memory.New()
	sched := newFakeScheduler()
	pres := &fakePresenter{}
	m := NewManager(st, sched, pres, logger.New("error", false), fixedClock(now))
	return m, st, sched, pres
}

func TestCreateRejectsPastTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m, st, sched, _ := newTestManager(t, now)
	ctx := context.Background()

	for _, at := range []time.Time{now, now.Add(-time.Minute)} {
		_, err := m.Create(ctx, domain.Reminder{
			Title:    "stand up",
			Time:     at,
			Priority: domain.PriorityLow,
		})
		var ite *domain.InvalidTimeError
		if !errors.As(err, &ite) {
			t.Fatalf("Create(%s) err = %v, want InvalidTimeError", at, err)
		}
	}

	// No side effects on rejection.
	if got, _ := st.Reminders(ctx); len(got) != 0 {
		t.Errorf("rejected reminder was persisted: %v", got)
	}
	if len(sched.scheduled) != 0 {
		t.Error("rejected reminder registered a timer")
	}
}

func TestCreatePersistsNewestFirstAndSchedules(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m, st, sched, _ := newTestManager(t, now)
	ctx := context.Background()

	first, err := m.Create(ctx, domain.Reminder{
		ID:       "r-1",
		Title:    "first",
		Time:     now.Add(time.Hour),
		Priority: domain.PriorityLow,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := m.Create(ctx, domain.Reminder{
		ID:       "r-2",
		Title:    "second",
		Time:     now.Add(2 * time.Hour),
		Priority: domain.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, _ := st.Reminders(ctx)
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("expected newest-first order [r-2 r-1], got %v", got)
	}
	if !sched.has("r-1") || !sched.has("r-2") {
		t.Error("expected timer registrations for both reminders")
	}
}

func TestCreateSurfacesTimerErrorButKeepsRecord(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m, st, sched, _ := newTestManager(t, now)
	sched.failNext = errors.New("timer service stopped")
	ctx := context.Background()

	r, err := m.Create(ctx, domain.Reminder{
		Title:    "degraded",
		Time:     now.Add(time.Hour),
		Priority: domain.PriorityMedium,
	})
	var te *domain.TimerError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TimerError", err)
	}
	if r == nil {
		t.Fatal("expected the persisted reminder to be returned")
	}
	if got, _ := st.Reminders(ctx); len(got) != 1 {
		t.Error("expected reminder record to survive timer failure")
	}
}

func TestHandleFirePresentsAndCompletes(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m, st, _, pres := newTestManager(t, now)
	ctx := context.Background()

	r, err := m.Create(ctx, domain.Reminder{
		Title:       "water plants",
		Description: "the ficus too",
		Time:        now.Add(time.Minute),
		Priority:    domain.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := m.HandleFire(ctx, r.ID); err != nil {
		t.Fatalf("HandleFire: %v", err)
	}

	if pres.count() != 1 {
		t.Fatalf("presented %d notifications, want 1", pres.count())
	}
	n := pres.presented[0]
	if n.ID != r.ID || n.Title != "Reminder: water plants" || n.Message != "the ficus too" {
		t.Errorf("unexpected notification %+v", n)
	}
	if len(n.Buttons) != 2 || n.Buttons[0] != "Mark Complete" {
		t.Errorf("unexpected buttons %v", n.Buttons)
	}

	got, _ := st.Reminders(ctx)
	if !got[0].Completed {
		t.Error("expected reminder marked completed after fire")
	}

	// Duplicate delivery is a no-op.
	if err := m.HandleFire(ctx, r.ID); err != nil {
		t.Fatalf("duplicate HandleFire: %v", err)
	}
	if pres.count() != 1 {
		t.Error("duplicate fire presented a second notification")
	}
}

func TestHandleFireSuppressedStillResolves(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m, st, _, pres := newTestManager(t, now)
	ctx := context.Background()

	settings := domain.DefaultSettings()
	settings.EnableNotifications = false
	if err := st.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	r, err := m.Create(ctx, domain.Reminder{
		Title:    "quiet",
		Time:     now.Add(time.Minute),
		Priority: domain.PriorityLow,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := m.HandleFire(ctx, r.ID); err != nil {
		t.Fatalf("HandleFire: %v", err)
	}
	if pres.count() != 0 {
		t.Error("notification presented despite being disabled")
	}
	got, _ := st.Reminders(ctx)
	if !got[0].Completed {
		t.Error("suppressed fire must still resolve the reminder")
	}
}

func TestHandleFireUnknownIsNoop(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m, _, _, pres := newTestManager(t, now)

	if err := m.HandleFire(context.Background(), "ghost"); err != nil {
		t.Fatalf("HandleFire: %v", err)
	}
	if pres.count() != 0 {
		t.Error("unknown fire presented a notification")
	}
}

func TestCancelRemovesRecordAndTimer(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m, st, sched, _ := newTestManager(t, now)
	ctx := context.Background()

	r, err := m.Create(ctx, domain.Reminder{
		Title:    "doomed",
		Time:     now.Add(time.Hour),
		Priority: domain.PriorityLow,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := m.Cancel(ctx, r.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if sched.has(r.ID) {
		t.Error("timer registration survived cancel")
	}
	if got, _ := st.Reminders(ctx); len(got) != 0 {
		t.Errorf("record survived cancel: %v", got)
	}

	// Unknown id is a no-op.
	if err := m.Cancel(ctx, "ghost"); err != nil {
		t.Fatalf("Cancel unknown: %v", err)
	}
}

func TestCompleteMarksAndCancelsTimer(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m, st, sched, _ := newTestManager(t, now)
	ctx := context.Background()

	r, err := m.Create(ctx, domain.Reminder{
		Title:    "early bird",
		Time:     now.Add(time.Hour),
		Priority: domain.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := m.Complete(ctx, r.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if sched.has(r.ID) {
		t.Error("timer registration survived completion")
	}
	got, _ := st.Reminders(ctx)
	if len(got) != 1 || !got[0].Completed {
		t.Errorf("expected completed record, got %v", got)
	}

	if err := m.Complete(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Complete unknown = %v, want ErrNotFound", err)
	}
}

func TestRestoreRegistersOnlyActiveFuture(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m, st, sched, _ := newTestManager(t, now)
	ctx := context.Background()

	seed := []domain.Reminder{
		{ID: "future", Title: "a", Time: now.Add(time.Hour), Priority: domain.PriorityLow},
		{ID: "past", Title: "b", Time: now.Add(-time.Hour), Priority: domain.PriorityLow},
		{ID: "done", Title: "c", Time: now.Add(time.Hour), Priority: domain.PriorityLow, Completed: true},
	}
	if err := st.SaveReminders(ctx, seed); err != nil {
		t.Fatalf("SaveReminders: %v", err)
	}

	if err := m.Restore(ctx); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if !sched.has("future") {
		t.Error("active future reminder not restored")
	}
	if sched.has("past") || sched.has("done") {
		t.Error("restore registered a past or completed reminder")
	}
}
