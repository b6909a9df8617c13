package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/httpserver/handlers"
)

func init() { Register(registerExport) }

func registerExport(r chi.Router, d deps.Deps) {
	r.Get("/api/export", handlers.ExportBackup(d))
	r.Get("/api/export/csv", handlers.ExportCSV(d))
	r.Get("/api/export/html", handlers.ExportHTML(d))
	r.Post("/api/import", handlers.Import(d))
}
