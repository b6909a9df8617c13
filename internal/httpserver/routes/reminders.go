package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerReminders) }

func registerReminders(r chi.Router, d deps.Deps) {
	r.Route("/api/reminders", func(r chi.Router) {
		r.Get("/", handlers.ListReminders(d))
		r.Post("/", handlers.CreateReminder(d))
		r.Delete("/{id}", handlers.DeleteReminder(d))
		r.Post("/{id}/complete", handlers.CompleteReminder(d))
	})
}
