package service

import (
	"context"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
)

// CheckHealth probes a single link and records the outcome. The link
// is marked checking while the probe runs, then healthy or broken
// with a lastChecked stamp. A failed probe is a recorded result, not
// an error; only store failures and unknown ids error out.
func (s *Links) CheckHealth(ctx context.Context, id string) (*domain.Link, error) {
	l, err := s.setHealth(ctx, id, domain.HealthChecking, false)
	if err != nil {
		return nil, err
	}

	probeErr := domain.CheckURL(ctx, l.URL, s.probeTimeout)
	status := domain.ProbeStatus(probeErr)
	if probeErr != nil {
		s.log.Debug("link probe failed",
			logger.String("id", id),
			logger.String("url", l.URL),
			logger.Error(probeErr))
	}

	return s.setHealth(ctx, id, status, true)
}

// setHealth stamps the link's health status, re-reading the
// collection each time so concurrent edits between the two phases are
// not overwritten wholesale.
func (s *Links) setHealth(ctx context.Context, id string, status domain.HealthStatus, stamp bool) (*domain.Link, error) {
	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}

	for i := range links {
		if links[i].ID != id {
			continue
		}
		links[i].HealthStatus = status
		if stamp {
			links[i].LastChecked = s.now()
		}
		if err := s.store.SaveLinks(ctx, links); err != nil {
			return nil, &domain.StoreError{Op: "save links", Err: err}
		}
		return &links[i], nil
	}

	return nil, domain.ErrNotFound
}
