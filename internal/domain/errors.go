package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound reports a lookup for an id with no matching record.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected user input. Recovered locally:
// the operation aborts with no partial state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidTimeError rejects a reminder whose fire time is not strictly
// in the future. Clock-skewed clients hit this instead of an
// immediate fire.
type InvalidTimeError struct {
	Time time.Time
	Now  time.Time
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("reminder time %s is not in the future (now %s)",
		e.Time.Format(time.RFC3339), e.Now.Format(time.RFC3339))
}

// StoreError wraps a persistence get/set failure. Logged and surfaced;
// no automatic retry, and in-memory state is not rolled back.
type StoreError struct {
	Op  string // ex: "load links", "save reminders"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// TimerError wraps a timer registration or cancellation failure.
// Non-fatal: the reminder record may exist without a live timer.
type TimerError struct {
	ID  string
	Err error
}

func (e *TimerError) Error() string {
	return fmt.Sprintf("timer for %s: %v", e.ID, e.Err)
}

func (e *TimerError) Unwrap() error { return e.Err }
