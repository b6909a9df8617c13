package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/linkdeck/linkdeck/internal/config"
	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/heuristics"
	"github.com/linkdeck/linkdeck/internal/httpserver"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/notify"
	"github.com/linkdeck/linkdeck/internal/redis"
	"github.com/linkdeck/linkdeck/internal/reminder"
	"github.com/linkdeck/linkdeck/internal/scheduler"
	"github.com/linkdeck/linkdeck/internal/service"
	"github.com/linkdeck/linkdeck/internal/sources/keywords"
	"github.com/linkdeck/linkdeck/internal/store"
	memorystore "github.com/linkdeck/linkdeck/internal/store/memory"
	redisstore "github.com/linkdeck/linkdeck/internal/store/redis"
	"github.com/linkdeck/linkdeck/internal/timer"
	"github.com/linkdeck/linkdeck/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	store       store.Store
	timers      *timer.Service
	hub         *notify.Hub
	reminders   *reminder.Manager
	pruner      *scheduler.ReminderPruner
	sweep       *scheduler.HealthSweep
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Record store: redis when configured, otherwise in-memory.
	var (
		st          store.Store
		redisClient *goredis.Client
	)
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		st = redisstore.NewStore(client)
	} else {
		loggerClient.Info("no redis address configured, using in-memory store")
		st = memorystore.New()
	}

	// Keyword tables: built-in unless a YAML override is configured.
	categoryTable, tagTable := loadKeywordTables(cfg.KeywordsFile, loggerClient)
	engine := heuristics.NewEngine(categoryTable, tagTable)

	// Notification hub and reminder lifecycle.
	hub := notify.NewHub(notify.DefaultAutoDismissAfter, loggerClient)

	var reminders *reminder.Manager
	timers := timer.New(func(id string) {
		if err := reminders.HandleFire(context.Background(), id); err != nil {
			loggerClient.Error("reminder fire failed",
				logger.String("id", id),
				logger.Error(err))
		}
	}, loggerClient)
	reminders = reminder.NewManager(st, timers, hub, loggerClient, time.Now)

	// Link service.
	links := service.NewLinks(st, engine, hub, loggerClient, cfg.ProbeTimeout, time.Now)

	// Schedulers.
	pruner := scheduler.NewReminderPruner(st, loggerClient, cfg.PruneInterval, cfg.CompletedRetention, time.Now)
	sweepTrigger := make(chan struct{}, 1)
	sweep := scheduler.NewHealthSweep(links, loggerClient, cfg.HealthSweepInterval, cfg.ProbeDelay, sweepTrigger)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		Links:         links,
		Reminders:     reminders,
		Notifications: hub,
		Store:         st,
		RedisClient:   redisClient,
		SweepTrigger:  sweepTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		store:       st,
		timers:      timers,
		hub:         hub,
		reminders:   reminders,
		pruner:      pruner,
		sweep:       sweep,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting linkdeck v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("linkdeck %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Re-register timers for reminders that survived the restart.
	if err := a.reminders.Restore(ctx); err != nil {
		a.logger.Warn("failed to restore reminder timers", logger.Error(err))
	}

	// Route notification interactions: the acknowledge button resolves
	// the underlying reminder, everything else was already handled by
	// the hub.
	go a.dispatchNotificationEvents(ctx)

	if err := a.pruner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start reminder pruner: %w", err)
	}
	a.logger.Info("reminder pruner started",
		logger.Duration("interval", a.cfg.PruneInterval))

	if err := a.sweep.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health sweep: %w", err)
	}
	a.logger.Info("health sweep started",
		logger.Duration("interval", a.cfg.HealthSweepInterval))

	a.presentWelcome(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.pruner.Stop()
	a.sweep.Stop()
	a.timers.Stop()
	a.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("Redis closed cleanly")
		}
	}

	a.logger.Info("linkdeck stopped cleanly")
	return nil
}

// dispatchNotificationEvents consumes hub interactions until shutdown.
func (a *App) dispatchNotificationEvents(ctx context.Context) {
	for {
		select {
		case ev, ok := <-a.hub.Events():
			if !ok {
				return
			}
			if ev.ButtonIndex != notify.AcknowledgeButton {
				continue
			}
			if err := a.reminders.Complete(ctx, ev.ID); err != nil {
				a.logger.Warn("failed to complete reminder from notification",
					logger.String("id", ev.ID),
					logger.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

// presentWelcome shows the one-time welcome notification and persists
// the flag so it never repeats.
func (a *App) presentWelcome(ctx context.Context) {
	settings, err := a.store.Settings(ctx)
	if err != nil {
		a.logger.Warn("failed to load settings for welcome check", logger.Error(err))
		return
	}
	if settings.HasSeenWelcome {
		return
	}

	if err := a.hub.Present(notify.Notification{
		ID:       "welcome",
		Title:    "Welcome to linkdeck!",
		Message:  "Your smart link manager is ready to use.",
		Priority: domain.PriorityLow,
	}); err != nil {
		a.logger.Warn("failed to present welcome notification", logger.Error(err))
		return
	}

	settings.HasSeenWelcome = true
	if err := a.store.SaveSettings(ctx, settings); err != nil {
		a.logger.Warn("failed to persist welcome flag", logger.Error(err))
	}
}

// loadKeywordTables loads the YAML keyword override, falling back to
// the built-in tables on any problem.
func loadKeywordTables(path string, log logger.Logger) ([]heuristics.CategoryKeywords, []heuristics.TagKeywords) {
	if path == "" {
		return nil, nil
	}

	cfg, err := keywords.NewLoader(path).Load()
	if err != nil {
		log.Warn("failed to load keywords file, using built-in tables",
			logger.String("file", path),
			logger.Error(err))
		return nil, nil
	}

	mapper := keywords.NewMapper()
	categories, err := mapper.MapCategories(cfg)
	if err != nil {
		log.Warn("invalid keywords file, using built-in tables", logger.Error(err))
		return nil, nil
	}
	tags, err := mapper.MapTags(cfg)
	if err != nil {
		log.Warn("invalid keywords file, using built-in tables", logger.Error(err))
		return nil, nil
	}

	log.Info("keyword tables loaded",
		logger.String("file", path),
		logger.Int("categories", len(categories)),
		logger.Int("tags", len(tags)))

	return categories, tags
}
