package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"eventscheduler/internal/domain"
)

// Envelope error codes.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeForbidden     = "forbidden"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error half of the envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse wraps every body: exactly one of Data and Error is meaningful.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

type errorStatus struct {
	target error
	status int
	code   string
}

// errorStatuses is matched in order with errors.Is.
var errorStatuses = []errorStatus{
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrCodeBadRequest},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, ErrCodeUnauthorized},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, ErrCodeUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
	{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
	{domain.ErrAlreadyInvited, http.StatusConflict, ErrCodeConflict},
	{domain.ErrDuplicateEmail, http.StatusConflict, ErrCodeConflict},
}

// StatusFor returns the HTTP status and envelope code a domain error is served with.
// Anything unlisted, provider failures included, is 500 internal_error.
func StatusFor(err error) (int, string) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.target) {
			return es.status, es.code
		}
	}
	return http.StatusInternalServerError, ErrCodeInternalError
}

func writeEnvelope(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONSuccess writes data under "data" with a null error.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeEnvelope(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError writes a null data and the given error.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeEnvelope(w, statusCode, APIResponse{Error: &APIError{Code: code, Message: message}})
}
