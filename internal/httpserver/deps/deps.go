package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/notify"
	"github.com/linkdeck/linkdeck/internal/reminder"
	"github.com/linkdeck/linkdeck/internal/service"
	"github.com/linkdeck/linkdeck/internal/store"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Links         *service.Links    // link commands, search, export
	Reminders     *reminder.Manager // reminder lifecycle
	Notifications *notify.Hub       // visible notifications + interactions
	Store         store.Store       // direct reads for settings/stats
	RedisClient   *redis.Client     // nil when running on the in-memory store
	SweepTrigger  chan struct{}     // channel to trigger a manual health sweep
}
