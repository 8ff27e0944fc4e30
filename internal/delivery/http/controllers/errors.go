package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/delivery/http/middleware"
	"eventscheduler/internal/domain"
)

const (
	msgInternal         = "internal error"
	msgProviderFailed   = "failed to generate a response from the AI provider"
	msgAssistNotEnabled = "AI provider not configured"
)

// writeServiceError serves err with the status helpers.StatusFor assigns it.
// resource names the thing in 404 messages, e.g. "event". 5xx causes are logged, never echoed.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error, resource string) {
	status, code := helpers.StatusFor(err)
	if status >= http.StatusInternalServerError && !errors.Is(err, domain.ErrAssistNotConfigured) {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, errorMessage(err, resource))
}

func errorMessage(err error, resource string) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return validationMessage(err)
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return "you do not own this " + resource
	case errors.Is(err, domain.ErrNotFound):
		return resource + " not found"
	case errors.Is(err, domain.ErrAlreadyInvited):
		return "user already invited"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "email already registered"
	case errors.Is(err, domain.ErrAssistNotConfigured):
		return msgAssistNotEnabled
	case errors.Is(err, domain.ErrProvider):
		return msgProviderFailed
	default:
		return msgInternal
	}
}

// validationMessage drops the sentinel prefix so "invalid input: title is required" reads "title is required".
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrInvalidInput.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrInvalidInput.Error())+2:]
	}
	return msg
}

// callerID returns the authenticated user id or "" for anonymous requests.
func callerID(r *http.Request) string {
	id, _ := middleware.UserIDFromContext(r.Context())
	return id
}
