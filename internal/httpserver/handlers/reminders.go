package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

type reminderResponse struct {
	Success  bool             `json:"success"`
	Reminder *domain.Reminder `json:"reminder"`
}

type remindersResponse struct {
	Success   bool              `json:"success"`
	Reminders []domain.Reminder `json:"reminders"`
}

func ListReminders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reminders, err := d.Reminders.List(r.Context())
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, remindersResponse{Success: true, Reminders: reminders})
	}
}

func CreateReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body domain.Reminder
		if !decodeBody(w, r, &body) {
			return
		}
		created, err := d.Reminders.Create(r.Context(), body)
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, reminderResponse{Success: true, Reminder: created})
	}
}

func DeleteReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Reminders.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Success bool `json:"success"`
		}{true})
	}
}

func CompleteReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Reminders.Complete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Success bool `json:"success"`
		}{true})
	}
}
