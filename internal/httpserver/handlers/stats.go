package handlers

import (
	"net/http"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

type statsResponse struct {
	Success bool         `json:"success"`
	Stats   domain.Stats `json:"stats"`
}

func GetStats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := d.Store.Stats(r.Context())
		if err != nil {
			writeError(d, w, &domain.StoreError{Op: "load stats", Err: err})
			return
		}
		writeJSON(w, http.StatusOK, statsResponse{Success: true, Stats: stats})
	}
}
