package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tbessonov/securetodo-server/internal/model"
)

type errorResponse struct {
	Message string `json:"message"`
}

// handleError maps a service failure onto an HTTP status. Internal details
// are never leaked; unknown failures answer with a generic message.
func handleError(w http.ResponseWriter, err error) {
	var invalidInput *model.InvalidInputError
	var notAuthorized *model.NotAuthorizedError

	switch {
	case errors.As(err, &invalidInput):
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: invalidInput.Message})
	case errors.As(err, &notAuthorized):
		respondJSON(w, http.StatusForbidden, errorResponse{Message: notAuthorized.Message})
	case errors.Is(err, model.ErrAuthenticationFailed):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
	case errors.Is(err, model.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Message: "not found"})
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
