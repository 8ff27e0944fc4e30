package domain

import "errors"

// Sentinel errors shared by services and repositories. Controllers map them to HTTP statuses with errors.Is.
var (
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrAlreadyInvited      = errors.New("user already invited")
	ErrDuplicateEmail      = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrProvider            = errors.New("ai provider error")
	ErrAssistNotConfigured = errors.New("ai provider not configured")
)
