package domain

import (
	"strings"
	"time"
)

// Priority orders reminder urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is a known priority.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Reminder represents a user-scheduled, time-triggered notification.
//
// Every reminder with Completed=false and Time in the future must have
// exactly one live timer registration keyed by its ID.
type Reminder struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier, derived from the
	// creation timestamp. Also used as the timer registration key
	// and the notification id.
	ID string `json:"id"`

	// ─────────────────────────────
	// User-facing description
	// ─────────────────────────────

	// Title is the reminder headline shown in the notification.
	Title string `json:"title"`

	// Description is optional free text.
	Description string `json:"description"`

	// Time is the absolute moment the reminder fires.
	// Must be strictly in the future at creation.
	Time time.Time `json:"time"`

	// Priority controls notification persistence. High priority
	// notifications stay visible until dismissed.
	Priority Priority `json:"priority"`

	// ─────────────────────────────
	// Lifecycle
	// ─────────────────────────────

	// CreatedAt is the time the reminder was created.
	CreatedAt time.Time `json:"createdAt"`

	// Completed marks a resolved reminder. Completed reminders are
	// retained for a while and pruned later by age.
	Completed bool `json:"completed"`
}

// Validate checks required fields. The future-time precondition is
// enforced separately by the lifecycle manager, which owns the clock.
func (r *Reminder) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if r.Time.IsZero() {
		return &ValidationError{Field: "time", Reason: "required"}
	}
	if r.Priority == "" {
		return &ValidationError{Field: "priority", Reason: "required"}
	}
	if !ValidPriority(r.Priority) {
		return &ValidationError{Field: "priority", Reason: "must be low, medium or high"}
	}
	return nil
}

// Active reports whether the reminder still awaits its fire time.
func (r *Reminder) Active() bool {
	return !r.Completed
}
