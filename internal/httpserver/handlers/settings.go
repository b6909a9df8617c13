package handlers

import (
	"net/http"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

type settingsResponse struct {
	Success  bool            `json:"success"`
	Settings domain.Settings `json:"settings"`
}

func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := d.Store.Settings(r.Context())
		if err != nil {
			writeError(d, w, &domain.StoreError{Op: "load settings", Err: err})
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{Success: true, Settings: settings})
	}
}

// UpdateSettings merges a partial patch over the stored settings.
// Absent fields are left untouched.
func UpdateSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch domain.SettingsPatch
		if !decodeBody(w, r, &patch) {
			return
		}
		if err := patch.Validate(); err != nil {
			writeError(d, w, err)
			return
		}

		ctx := r.Context()
		current, err := d.Store.Settings(ctx)
		if err != nil {
			writeError(d, w, &domain.StoreError{Op: "load settings", Err: err})
			return
		}
		merged := domain.MergeSettings(current, patch)
		if err := d.Store.SaveSettings(ctx, merged); err != nil {
			writeError(d, w, &domain.StoreError{Op: "save settings", Err: err})
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{Success: true, Settings: merged})
	}
}
