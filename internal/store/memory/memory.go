package memory

import (
	"context"
	"sync"

	"github.com/linkdeck/linkdeck/internal/domain"
)

// Store keeps all four collections in process memory. It backs tests
// and acts as a fallback when no Redis address is configured, with the
// obvious caveat that nothing survives a restart.
type Store struct {
	mu        sync.RWMutex
	links     []domain.Link
	reminders []domain.Reminder
	settings  *domain.Settings
	stats     domain.Stats
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Links returns a copy of the links collection.
func (s *Store) Links(ctx context.Context) ([]domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Link, len(s.links))
	copy(out, s.links)
	return out, nil
}

// SaveLinks replaces the links collection wholesale.
func (s *Store) SaveLinks(ctx context.Context, links []domain.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.links = make([]domain.Link, len(links))
	copy(s.links, links)
	return nil
}

// Reminders returns a copy of the reminders collection.
func (s *Store) Reminders(ctx context.Context) ([]domain.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out, nil
}

// SaveReminders replaces the reminders collection wholesale.
func (s *Store) SaveReminders(ctx context.Context, reminders []domain.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders = make([]domain.Reminder, len(reminders))
	copy(s.reminders, reminders)
	return nil
}

// Settings returns the stored settings, or the defaults if none were
// ever saved.
func (s *Store) Settings(ctx context.Context) (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return domain.DefaultSettings(), nil
	}
	return *s.settings, nil
}

// SaveSettings replaces the settings wholesale.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = &settings
	return nil
}

// Stats returns the stored stats counters.
func (s *Store) Stats(ctx context.Context) (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stats, nil
}

// SaveStats replaces the stats wholesale.
func (s *Store) SaveStats(ctx context.Context, stats domain.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats = stats
	return nil
}
