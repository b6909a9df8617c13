package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/service"
)

func ExportBackup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		backup, err := d.Links.ExportBackup(r.Context())
		if err != nil {
			writeError(d, w, err)
			return
		}

		name := fmt.Sprintf("linkdeck-backup-%s.json", backup.ExportDate.Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		_ = json.NewEncoder(w).Encode(backup)
	}
}

func ExportCSV(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Links.ExportCSV(r.Context())
		if err != nil {
			writeError(d, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="linkdeck-links.csv"`)
		_, _ = w.Write(out)
	}
}

func ExportHTML(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Links.ExportHTML(r.Context())
		if err != nil {
			writeError(d, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(out)
	}
}

func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload service.ImportPayload
		if !decodeBody(w, r, &payload) {
			return
		}
		if err := d.Links.Import(r.Context(), payload); err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Success bool `json:"success"`
		}{true})
	}
}
