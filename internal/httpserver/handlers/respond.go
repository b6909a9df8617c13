package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/service"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type duplicateResponse struct {
	Success    bool         `json:"success"`
	Error      string       `json:"error"`
	Duplicate  bool         `json:"duplicate"`
	Similarity int          `json:"similarity"`
	Match      *domain.Link `json:"match"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to HTTP statuses. Validation
// problems are the client's fault, store and timer failures are ours,
// and a duplicate match is a confirmable 409 carrying the match.
func writeError(d deps.Deps, w http.ResponseWriter, err error) {
	var (
		ve  *domain.ValidationError
		ite *domain.InvalidTimeError
		se  *domain.StoreError
		te  *domain.TimerError
		dde *service.DuplicateDetectedError
	)

	switch {
	case errors.As(err, &dde):
		writeJSON(w, http.StatusConflict, duplicateResponse{
			Error:      dde.Error(),
			Duplicate:  true,
			Similarity: dde.Match.Similarity,
			Match:      dde.Match.Link,
		})
	case errors.As(err, &ve), errors.As(err, &ite):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.As(err, &se):
		d.Logger.Error("store failure", logger.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "storage unavailable"})
	case errors.As(err, &te):
		d.Logger.Error("timer failure", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		d.Logger.Error("request failed", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
