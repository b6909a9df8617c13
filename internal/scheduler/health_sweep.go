package scheduler

import (
	"context"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
)

const (
	// DefaultProbeDelay is the pause between consecutive probes so a
	// sweep does not hammer the network.
	DefaultProbeDelay = 200 * time.Millisecond
)

// HealthChecker is the link surface the sweep drives. Satisfied by
// *service.Links.
type HealthChecker interface {
	List(ctx context.Context) ([]domain.Link, error)
	CheckHealth(ctx context.Context, id string) (*domain.Link, error)
}

// HealthSweep periodically probes every saved link and records its
// health status. A manual trigger channel lets the API request an
// immediate sweep.
type HealthSweep struct {
	links         HealthChecker
	logger        logger.Logger
	interval      time.Duration
	probeDelay    time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewHealthSweep creates a sweep. A zero probe delay selects
// DefaultProbeDelay.
func NewHealthSweep(
	links HealthChecker,
	log logger.Logger,
	interval time.Duration,
	probeDelay time.Duration,
	manualTrigger chan struct{},
) *HealthSweep {
	if probeDelay == 0 {
		probeDelay = DefaultProbeDelay
	}

	return &HealthSweep{
		links:         links,
		logger:        log,
		interval:      interval,
		probeDelay:    probeDelay,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic sweep loop. Unlike the pruner there is no
// immediate first pass; the first sweep waits for a tick or a manual
// trigger.
func (hs *HealthSweep) Start(ctx context.Context) error {
	ticker := time.NewTicker(hs.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := hs.Sweep(ctx); err != nil {
					hs.logger.Error("health sweep failed", logger.Error(err))
				}
			case <-hs.manualTrigger:
				hs.logger.Info("manual health sweep triggered")
				if err := hs.Sweep(ctx); err != nil {
					hs.logger.Error("health sweep failed", logger.Error(err))
				}
			case <-hs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the sweep loop.
func (hs *HealthSweep) Stop() {
	close(hs.stopCh)
}

// Sweep probes every saved link in order, pausing probeDelay between
// probes. Individual probe errors are logged, not fatal: a broken
// link is a result, not a failure.
func (hs *HealthSweep) Sweep(ctx context.Context) error {
	links, err := hs.links.List(ctx)
	if err != nil {
		return err
	}

	hs.logger.Info("health sweep started", logger.Int("links", len(links)))

	broken := 0
	for i, l := range links {
		if i > 0 {
			select {
			case <-time.After(hs.probeDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		checked, err := hs.links.CheckHealth(ctx, l.ID)
		if err != nil {
			hs.logger.Warn("health check failed",
				logger.String("id", l.ID),
				logger.String("url", l.URL),
				logger.Error(err))
			continue
		}
		if checked.HealthStatus == domain.HealthBroken {
			broken++
		}
	}

	hs.logger.Info("health sweep completed",
		logger.Int("links", len(links)),
		logger.Int("broken", broken))

	return nil
}
