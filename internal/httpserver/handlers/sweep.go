package handlers

import (
	"net/http"

	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/logger"
)

// TriggerSweep requests an immediate health sweep over all links. The
// trigger is dropped when a sweep is already running.
func TriggerSweep(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.SweepTrigger <- struct{}{}:
			d.Logger.Info("manual health sweep triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, struct {
				Success bool `json:"success"`
			}{true})
		default:
			d.Logger.Warn("health sweep already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, errorResponse{
				Error: "sweep already in progress",
			})
		}
	}
}
