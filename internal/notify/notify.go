package notify

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
)

const (
	// DefaultAutoDismissAfter is how long a non-high-priority
	// notification stays visible before it is dismissed on its own.
	// High priority notifications stay until explicitly dismissed.
	DefaultAutoDismissAfter = 30 * time.Second

	// AcknowledgeButton is the index of the button that resolves the
	// underlying reminder rather than merely hiding the alert.
	AcknowledgeButton = 0

	// ClickThrough marks an event produced by clicking the
	// notification body instead of a button.
	ClickThrough = -1

	// eventBuffer bounds the inbound event queue.
	eventBuffer = 16
)

// Notification is a user-visible alert with optional action buttons.
type Notification struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Priority  domain.Priority `json:"priority"`
	Buttons   []string        `json:"buttons,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Event reports a user interaction with a visible notification.
// ButtonIndex is ClickThrough for a body click.
type Event struct {
	ID          string `json:"id"`
	ButtonIndex int    `json:"buttonIndex"`
}

// Presenter renders user-visible alerts. The reminder lifecycle
// manager only needs this side of the hub.
type Presenter interface {
	Present(n Notification) error
}

// Hub presents notifications, tracks which ones are currently
// visible, auto-dismisses the non-sticky ones, and forwards user
// interactions as events.
type Hub struct {
	mu           sync.Mutex
	visible      map[string]Notification
	dismissals   map[string]*time.Timer
	events       chan Event
	dismissAfter time.Duration
	log          logger.Logger
}

// NewHub creates a hub with the given auto-dismiss timeout.
// A zero timeout selects DefaultAutoDismissAfter.
func NewHub(dismissAfter time.Duration, log logger.Logger) *Hub {
	if dismissAfter == 0 {
		dismissAfter = DefaultAutoDismissAfter
	}
	return &Hub{
		visible:      make(map[string]Notification),
		dismissals:   make(map[string]*time.Timer),
		events:       make(chan Event, eventBuffer),
		dismissAfter: dismissAfter,
		log:          log,
	}
}

// Present makes the notification visible, replacing any previous one
// under the same id. Non-high priorities auto-dismiss after the
// configured timeout.
func (h *Hub) Present(n Notification) error {
	if n.ID == "" {
		return fmt.Errorf("notification id is required")
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	h.mu.Lock()
	if old, ok := h.dismissals[n.ID]; ok {
		old.Stop()
		delete(h.dismissals, n.ID)
	}
	h.visible[n.ID] = n

	if n.Priority != domain.PriorityHigh {
		h.dismissals[n.ID] = time.AfterFunc(h.dismissAfter, func() {
			h.Dismiss(n.ID)
		})
	}
	h.mu.Unlock()

	h.log.Info("notification",
		logger.String("id", n.ID),
		logger.String("title", n.Title),
		logger.String("message", n.Message),
		logger.String("priority", string(n.Priority)))

	return nil
}

// Dismiss hides the notification. Unknown ids are a no-op.
func (h *Hub) Dismiss(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if t, ok := h.dismissals[id]; ok {
		t.Stop()
		delete(h.dismissals, id)
	}
	delete(h.visible, id)
}

// Click reports a body click: the notification is dismissed and a
// click-through event is emitted.
func (h *Hub) Click(id string) bool {
	if !h.isVisible(id) {
		return false
	}
	h.emit(Event{ID: id, ButtonIndex: ClickThrough})
	h.Dismiss(id)
	return true
}

// PressButton reports a button click by index. The notification is
// dismissed and the event forwarded; acting on it (for instance
// resolving a reminder on the acknowledge button) is the consumer's
// job.
func (h *Hub) PressButton(id string, index int) bool {
	h.mu.Lock()
	n, ok := h.visible[id]
	h.mu.Unlock()
	if !ok || index < 0 || index >= len(n.Buttons) {
		return false
	}

	h.emit(Event{ID: id, ButtonIndex: index})
	h.Dismiss(id)
	return true
}

// Events exposes the interaction stream.
func (h *Hub) Events() <-chan Event {
	return h.events
}

// Visible returns the currently visible notifications, oldest first.
func (h *Hub) Visible() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Notification, 0, len(h.visible))
	for _, n := range h.visible {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Close stops all pending dismiss timers and closes the event stream.
func (h *Hub) Close() {
	h.mu.Lock()
	for id, t := range h.dismissals {
		t.Stop()
		delete(h.dismissals, id)
	}
	h.mu.Unlock()

	close(h.events)
}

func (h *Hub) isVisible(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.visible[id]
	return ok
}

func (h *Hub) emit(ev Event) {
	select {
	case h.events <- ev:
	default:
		h.log.Warn("notification event dropped, queue full",
			logger.String("id", ev.ID),
			logger.Int("button", ev.ButtonIndex))
	}
}
