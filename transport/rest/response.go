package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/entity"
)

const unknownErrorMessage = "An unknown error occurred"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(payload)
}

// writeError reports the message of a tagged error; causes and untagged errors are only logged.
// Every failure is a 400, as Actions clients expect.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	message := unknownErrorMessage

	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		message = appErr.Message
		if appErr.Err != nil {
			log.Warn("collaborator failed", "kind", appErr.Kind.String(), "error", err)
		}
	default:
		log.Error("unexpected error", "error", err)
	}

	writeJSON(w, http.StatusBadRequest, entity.ActionError{Message: message})
}

func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func actionsJSON(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, entity.ActionsJSON{
		Rules: []entity.ActionRule{
			{PathPattern: "/api/actions/**", APIPath: "/api/actions/**"},
		},
	})
}

// requestOrigin returns scheme://host for icon URLs, honoring a configured base URL first.
func requestOrigin(baseURL string, r *http.Request) string {
	if baseURL != "" {
		return baseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}

	return scheme + "://" + r.Host
}
