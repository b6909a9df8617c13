package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Category classifies a link record.
type Category string

const (
	CategorySocial   Category = "social"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryTools    Category = "tools"
	CategoryOther    Category = "other"
)

// Categories lists all valid categories.
var Categories = []Category{
	CategorySocial,
	CategoryWork,
	CategoryPersonal,
	CategoryTools,
	CategoryOther,
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// HealthStatus describes the last known reachability of a link.
type HealthStatus string

const (
	HealthUnset    HealthStatus = ""
	HealthChecking HealthStatus = "checking"
	HealthHealthy  HealthStatus = "healthy"
	HealthBroken   HealthStatus = "broken"
)

// MaxCapturedTitleLen caps titles taken from page capture.
const MaxCapturedTitleLen = 100

// Link represents a saved URL with its metadata.
//
// Links are exclusively owned by the record store; callers work on a
// transient copy that must be saved back after every mutation.
type Link struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier, derived from the
	// creation timestamp.
	ID string `json:"id"`

	// ─────────────────────────────
	// User-facing description
	// ─────────────────────────────

	// Title is the display name of the link.
	Title string `json:"title"`

	// URL is the absolute URL the link points to.
	URL string `json:"url"`

	// Category is one of the fixed category values.
	Category Category `json:"category"`

	// Description is free text, possibly synthesized by the
	// heuristics engine when the user left it empty.
	Description string `json:"description"`

	// Tags holds tag names in insertion order.
	Tags []string `json:"tags,omitempty"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is the time the link was added.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is updated on any edit. Zero until first edit.
	UpdatedAt time.Time `json:"updatedAt,omitempty"`

	// ClickCount is the number of times the link was opened or copied.
	ClickCount int `json:"clickCount"`

	// ─────────────────────────────
	// Liveness
	// ─────────────────────────────

	// HealthStatus is the result of the last reachability probe.
	HealthStatus HealthStatus `json:"healthStatus,omitempty"`

	// LastChecked is the time of the last probe. Zero until checked.
	LastChecked time.Time `json:"lastChecked,omitempty"`
}

// NewID returns an opaque id derived from the current time.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

// HasTag reports whether the link already carries the tag.
func (l *Link) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Validate checks required fields and URL shape.
func (l *Link) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(l.URL) == "" {
		return &ValidationError{Field: "url", Reason: "required"}
	}
	parsed, err := url.Parse(l.URL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return &ValidationError{Field: "url", Reason: "must be an absolute URL"}
	}
	if l.Category == "" {
		return &ValidationError{Field: "category", Reason: "required"}
	}
	if !ValidCategory(l.Category) {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", l.Category)}
	}
	return nil
}

// TruncateTitle shortens s to MaxCapturedTitleLen runes.
func TruncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxCapturedTitleLen {
		return s
	}
	return string(runes[:MaxCapturedTitleLen])
}
