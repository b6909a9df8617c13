package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	r.Route("/api/links", func(r chi.Router) {
		r.Get("/", handlers.ListLinks(d))
		r.Post("/", handlers.AddLink(d))
		r.Post("/capture", handlers.CaptureLink(d))
		r.Put("/order", handlers.ReorderLinks(d))
		r.Get("/suggest", handlers.SuggestLinks(d))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetLink(d))
			r.Put("/", handlers.UpdateLink(d))
			r.Delete("/", handlers.DeleteLink(d))
			r.Post("/click", handlers.ClickLink(d))
			r.Post("/tags", handlers.AddLinkTag(d))
			r.Delete("/tags/{tag}", handlers.RemoveLinkTag(d))
			r.Post("/health", handlers.CheckLinkHealth(d))
		})
	})

	r.Get("/api/search", handlers.SearchLinks(d))
}
