package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/finchworks/tasks-backend/internal/domain"
)

// errorResponse is the uniform failure payload. Details appear only on
// validation failures.
type errorResponse struct {
	Error      string                  `json:"error"`
	StatusCode int                     `json:"statusCode"`
	Details    []domain.FieldViolation `json:"details,omitempty"`
}

// writeError normalizes any failure into the stable error shape. Three paths
// only: validation to 400 with details, missing resource to 404 with a
// specific message, everything else to 500 with a generic one. Causes of 500s
// are logged server-side and never sent to the client.
func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{
			Error:      "Validation error",
			StatusCode: http.StatusBadRequest,
			Details:    verr.Violations,
		})
	case errors.Is(err, domain.ErrTaskNotFound):
		respondWithJSON(w, http.StatusNotFound, errorResponse{
			Error:      "Task not found",
			StatusCode: http.StatusNotFound,
		})
	default:
		log.Error("request failed", "err", err)
		respondWithJSON(w, http.StatusInternalServerError, errorResponse{
			Error:      "Internal Server Error",
			StatusCode: http.StatusInternalServerError,
		})
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error("marshaling JSON response", "err", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error","statusCode":500}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
