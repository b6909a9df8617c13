package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/linkdeck/linkdeck/internal/logger"
)

// fireRecorder collects fired timer names.
type fireRecorder struct {
	mu    sync.Mutex
	fired []string
}

func (r *fireRecorder) fire(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, name)
}

func (r *fireRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.fired))
	copy(out, r.fired)
	return out
}

func TestScheduleFires(t *testing.T) {
	rec := &fireRecorder{}
	svc := New(rec.fire, logger.New("error", false))
	defer svc.Stop()

	if err := svc.Schedule("r1", time.Now().Add(10*time.Millisecond)); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(rec.names()) == 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	fired := rec.names()
	if len(fired) != 1 || fired[0] != "r1" {
		t.Fatalf("fired = %v, want [r1]", fired)
	}
	if active := svc.Active(); len(active) != 0 {
		t.Errorf("registration should be gone after fire, still have %v", active)
	}
}

func TestCancelPreventsFire(t *testing.T) {
	rec := &fireRecorder{}
	svc := New(rec.fire, logger.New("error", false))
	defer svc.Stop()

	svc.Schedule("r1", time.Now().Add(30*time.Millisecond))
	svc.Cancel("r1")

	time.Sleep(80 * time.Millisecond)

	if fired := rec.names(); len(fired) != 0 {
		t.Errorf("cancelled timer fired anyway: %v", fired)
	}
	if active := svc.Active(); len(active) != 0 {
		t.Errorf("Active() = %v, want empty", active)
	}
}

func TestCancelUnknownIsNoop(t *testing.T) {
	svc := New(func(string) {}, logger.New("error", false))
	defer svc.Stop()

	// Must not panic or error.
	svc.Cancel("never-scheduled")
}

func TestRescheduleReplacesRegistration(t *testing.T) {
	rec := &fireRecorder{}
	svc := New(rec.fire, logger.New("error", false))
	defer svc.Stop()

	// Far-future registration replaced by a near one: exactly one fire.
	svc.Schedule("r1", time.Now().Add(time.Hour))
	svc.Schedule("r1", time.Now().Add(10*time.Millisecond))

	if active := svc.Active(); len(active) != 1 {
		t.Fatalf("Active() = %v, want exactly one registration per name", active)
	}

	time.Sleep(100 * time.Millisecond)

	if fired := rec.names(); len(fired) != 1 {
		t.Errorf("fired %d times, want 1", len(fired))
	}
}

func TestStopCancelsAll(t *testing.T) {
	rec := &fireRecorder{}
	svc := New(rec.fire, logger.New("error", false))

	svc.Schedule("a", time.Now().Add(30*time.Millisecond))
	svc.Schedule("b", time.Now().Add(30*time.Millisecond))
	svc.Stop()

	time.Sleep(80 * time.Millisecond)

	if fired := rec.names(); len(fired) != 0 {
		t.Errorf("timers fired after Stop: %v", fired)
	}
}

func TestScheduleAfterStopFails(t *testing.T) {
	svc := New(func(string) {}, logger.New("error", false))
	svc.Stop()

	if err := svc.Schedule("late", time.Now().Add(time.Second)); err != ErrStopped {
		t.Errorf("Schedule after Stop = %v, want ErrStopped", err)
	}
}
