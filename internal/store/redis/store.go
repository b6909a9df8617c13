package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/linkdeck/linkdeck/internal/domain"
)

// Store persists the four record collections in Redis. Each collection
// lives under a single key and is read and replaced wholesale: there
// is no partial update, no compare-and-swap, and therefore no
// protection against concurrent lost updates within one collection.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed record store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Links retrieves the whole links collection. A missing key reads as
// an empty collection.
func (s *Store) Links(ctx context.Context) ([]domain.Link, error) {
	var links []domain.Link
	if err := s.getJSON(ctx, KeyLinks, &links); err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}
	return links, nil
}

// SaveLinks replaces the whole links collection.
func (s *Store) SaveLinks(ctx context.Context, links []domain.Link) error {
	if err := s.setJSON(ctx, KeyLinks, links); err != nil {
		return fmt.Errorf("failed to save links: %w", err)
	}
	return nil
}

// Reminders retrieves the whole reminders collection.
func (s *Store) Reminders(ctx context.Context) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	if err := s.getJSON(ctx, KeyReminders, &reminders); err != nil {
		return nil, fmt.Errorf("failed to get reminders: %w", err)
	}
	return reminders, nil
}

// SaveReminders replaces the whole reminders collection.
func (s *Store) SaveReminders(ctx context.Context, reminders []domain.Reminder) error {
	if err := s.setJSON(ctx, KeyReminders, reminders); err != nil {
		return fmt.Errorf("failed to save reminders: %w", err)
	}
	return nil
}

// Settings retrieves the stored settings. A missing key reads as the
// documented defaults.
func (s *Store) Settings(ctx context.Context) (domain.Settings, error) {
	data, err := s.client.Get(ctx, KeySettings).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	// Merge over defaults so settings saved by an older version keep
	// sane values for fields it did not know about.
	var patch domain.SettingsPatch
	if err := json.Unmarshal(data, &patch); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return domain.MergeSettings(domain.DefaultSettings(), patch), nil
}

// SaveSettings replaces the stored settings.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if err := s.setJSON(ctx, KeySettings, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Stats retrieves the stats counters. A missing key reads as zeroes.
func (s *Store) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	if err := s.getJSON(ctx, KeyStats, &stats); err != nil {
		return domain.Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

// SaveStats replaces the stats counters.
func (s *Store) SaveStats(ctx context.Context, stats domain.Stats) error {
	if err := s.setJSON(ctx, KeyStats, stats); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}

// getJSON reads key into out, leaving out untouched when the key is
// absent.
func (s *Store) getJSON(ctx context.Context, key string, out any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, out)
}

// setJSON marshals v and replaces key. Collections are persisted
// without TTL; records are durable until deleted.
func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.client.Set(ctx, key, data, 0).Err()
}
