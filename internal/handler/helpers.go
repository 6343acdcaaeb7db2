package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"notekeeper/internal/domain"
	"notekeeper/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Conflicts map to
// 400, matching the API's historical contract, and anything unanticipated
// becomes an opaque 500 so internal details never reach the client.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "Not Found")
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		logger.Error("request failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// requireID validates the {id} path segment before any query runs.
// A malformed id is a deterministic 400, never a store round-trip.
func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if uuid.Validate(id) != nil {
		httputil.RespondError(w, http.StatusBadRequest, "The `id` is not valid")
		return "", false
	}
	return id, true
}

// validationErr builds the 400-mapped error for a client-facing message.
func validationErr(message string) error {
	return &domain.ValidationError{Message: message}
}

// Health reports process liveness.
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
