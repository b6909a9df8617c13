package store

import (
	"context"

	"github.com/linkdeck/linkdeck/internal/domain"
)

// Store is the record store: four named collections, each fetched and
// replaced wholesale. There is no partial update and no
// cross-collection transaction; under the read-then-write model,
// concurrent writers to the same collection can lose updates.
//
// A missing collection reads as its empty/default value, never as an
// error.
type Store interface {
	Links(ctx context.Context) ([]domain.Link, error)
	SaveLinks(ctx context.Context, links []domain.Link) error

	Reminders(ctx context.Context) ([]domain.Reminder, error)
	SaveReminders(ctx context.Context, reminders []domain.Reminder) error

	Settings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error

	Stats(ctx context.Context) (domain.Stats, error)
	SaveStats(ctx context.Context, stats domain.Stats) error
}
