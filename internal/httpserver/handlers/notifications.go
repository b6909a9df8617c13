package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/notify"
)

type notificationsResponse struct {
	Success       bool                  `json:"success"`
	Notifications []notify.Notification `json:"notifications"`
}

func ListNotifications(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, notificationsResponse{
			Success:       true,
			Notifications: d.Notifications.Visible(),
		})
	}
}

func ClickNotification(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Notifications.Click(chi.URLParam(r, "id")) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Success bool `json:"success"`
		}{true})
	}
}

func PressNotificationButton(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid button index"})
			return
		}
		if !d.Notifications.PressButton(chi.URLParam(r, "id"), index) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Success bool `json:"success"`
		}{true})
	}
}

func TestNotification(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := d.Notifications.Present(notify.Notification{
			ID:       "test",
			Title:    "Test Notification",
			Message:  "This is a test notification from linkdeck!",
			Priority: domain.PriorityLow,
		})
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Success bool `json:"success"`
		}{true})
	}
}
