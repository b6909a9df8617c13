package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerNotifications) }

func registerNotifications(r chi.Router, d deps.Deps) {
	r.Route("/api/notifications", func(r chi.Router) {
		r.Get("/", handlers.ListNotifications(d))
		r.Post("/test", handlers.TestNotification(d))
		r.Post("/{id}/click", handlers.ClickNotification(d))
		r.Post("/{id}/buttons/{index}", handlers.PressNotificationButton(d))
	})
}
