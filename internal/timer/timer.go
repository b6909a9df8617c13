package timer

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/linkdeck/linkdeck/internal/logger"
)

// Service fires a single callback per named one-shot timer at or
// after a requested absolute time. Registrations are keyed by an
// opaque name (the reminder id); scheduling a name that already has a
// live registration first cancels the old one, so there is never more
// than one timer per name.
type Service struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	fire    func(name string)
	log     logger.Logger
}

// ErrStopped is returned by Schedule after the service has been shut
// down.
var ErrStopped = errors.New("timer service stopped")

// New creates a timer service delivering fires to the given callback.
// The callback runs on the timer goroutine and must not block for long.
func New(fire func(name string), log logger.Logger) *Service {
	return &Service{
		timers: make(map[string]*time.Timer),
		fire:   fire,
		log:    log,
	}
}

// Schedule registers a one-shot timer under name for the absolute
// time at. A past time fires immediately; callers wanting to reject
// past times must do so before scheduling.
func (s *Service) Schedule(name string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}

	if old, ok := s.timers[name]; ok {
		old.Stop()
		s.log.Debug("replacing timer registration", logger.String("name", name))
	}

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}

	s.timers[name] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, name)
		s.mu.Unlock()

		s.fire(name)
	})

	s.log.Debug("timer scheduled",
		logger.String("name", name),
		logger.Time("at", at))
	return nil
}

// Cancel removes the registration for name. Cancelling an unknown
// name is a no-op, not an error.
func (s *Service) Cancel(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[name]; ok {
		t.Stop()
		delete(s.timers, name)
		s.log.Debug("timer cancelled", logger.String("name", name))
	}
}

// Active returns the names of all live registrations, sorted.
func (s *Service) Active() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.timers))
	for name := range s.timers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stop cancels every live registration and rejects further
// scheduling. Used at shutdown.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for name, t := range s.timers {
		t.Stop()
		delete(s.timers, name)
	}
}
