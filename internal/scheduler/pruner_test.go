package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/store/memory"
)

func TestPruneRemovesExpiredReminders(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	st := memory.New()

	seed := []domain.Reminder{
		// Active and in the future: kept.
		{ID: "upcoming", Title: "a", Time: now.Add(time.Hour)},
		// Past due and never completed: removed.
		{ID: "missed", Title: "b", Time: now.Add(-time.Minute)},
		// Completed recently: kept until retention expires.
		{ID: "fresh-done", Title: "c", Time: now.Add(-time.Hour), Completed: true},
		// Completed past retention: removed.
		{ID: "stale-done", Title: "d", Time: now.Add(-25 * time.Hour), Completed: true},
	}
	if err := st.SaveReminders(ctx, seed); err != nil {
		t.Fatalf("SaveReminders: %v", err)
	}

	p := NewReminderPruner(st, logger.New("error", false), time.Hour, 24*time.Hour,
		func() time.Time { return now })

	if err := p.Prune(ctx); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	got, _ := st.Reminders(ctx)
	ids := make(map[string]bool, len(got))
	for _, r := range got {
		ids[r.ID] = true
	}

	if len(got) != 2 || !ids["upcoming"] || !ids["fresh-done"] {
		t.Errorf("kept %v, want [upcoming fresh-done]", got)
	}
}

func TestPruneNoopWithoutExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	st := memory.New()

	seed := []domain.Reminder{
		{ID: "upcoming", Title: "a", Time: now.Add(time.Hour)},
	}
	if err := st.SaveReminders(ctx, seed); err != nil {
		t.Fatalf("SaveReminders: %v", err)
	}

	p := NewReminderPruner(st, logger.New("error", false), time.Hour, 0,
		func() time.Time { return now })

	if err := p.Prune(ctx); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if got, _ := st.Reminders(ctx); len(got) != 1 {
		t.Errorf("prune touched non-expired reminders: %v", got)
	}
}

func TestPrunerStartStop(t *testing.T) {
	st := memory.New()
	p := NewReminderPruner(st, logger.New("error", false), 10*time.Millisecond, 0, nil)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	p.Stop()
}
