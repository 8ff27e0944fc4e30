package domain

import (
	"context"
	"strings"
	"time"
)

// ResponseStatus is an invitee's RSVP.
type ResponseStatus string

const (
	ResponsePending   ResponseStatus = "pending"
	ResponseAttending ResponseStatus = "attending"
	ResponseMaybe     ResponseStatus = "maybe"
	ResponseDeclined  ResponseStatus = "declined"
)

// IsResponse reports whether s is an answer an invitee may give. Pending is not.
func (s ResponseStatus) IsResponse() bool {
	switch s {
	case ResponseAttending, ResponseMaybe, ResponseDeclined:
		return true
	}
	return false
}

// EventParticipant is an invitation of an email address to an event.
// UserID is resolved once, at invite time, if a profile with that email existed.
// swagger:model EventParticipant
type EventParticipant struct {
	ID             string         `json:"id"`
	EventID        string         `json:"event_id"`
	UserID         *string        `json:"user_id"`
	Email          string         `json:"email"`
	ResponseStatus ResponseStatus `json:"response_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	User           *Profile       `json:"user,omitempty"`
}

// NewEventParticipant returns a pending invitation. ID is typically set by the repository on create.
func NewEventParticipant(eventID, email string, userID *string, createdAt time.Time) *EventParticipant {
	return &EventParticipant{
		EventID:        eventID,
		UserID:         userID,
		Email:          NormalizeEmail(email),
		ResponseStatus: ResponsePending,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

// NormalizeEmail lowercases and trims an address. Invitations compare emails in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Invitation bundles a participant row with its event.
type Invitation struct {
	Participant *EventParticipant `json:"participant"`
	Event       *Event            `json:"event"`
}

// InvitationList splits a caller's invitations by whether they have answered.
type InvitationList struct {
	Pending   []*Invitation `json:"pending"`
	Responded []*Invitation `json:"responded"`
}

// EventParticipantRepository defines storage operations for event participants.
type EventParticipantRepository interface {
	// Create returns ErrAlreadyInvited if the (event, email) pair exists.
	Create(ctx context.Context, p *EventParticipant) error
	Exists(ctx context.Context, eventID, email string) (bool, error)
	ListByEventID(ctx context.Context, eventID string) ([]*EventParticipant, error)
	// ListByEmail returns invitations newest first.
	ListByEmail(ctx context.Context, email string) ([]*Invitation, error)
	CountByEmail(ctx context.Context, email string, status ResponseStatus) (int, error)
	// UpdateResponse only touches a row addressed to the caller by user id or email.
	UpdateResponse(ctx context.Context, id string, caller Identity, status ResponseStatus) (*EventParticipant, error)
	// Delete only removes a row whose event is owned by ownerID.
	Delete(ctx context.Context, ownerID, eventID, id string) (bool, error)
}

// InvitationService defines invite, RSVP and invitation listing operations.
type InvitationService interface {
	ListParticipants(ctx context.Context, viewerID, eventID string) ([]*EventParticipant, error)
	Invite(ctx context.Context, callerID, eventID, email string) (*EventParticipant, error)
	Respond(ctx context.Context, callerID, participantID string, status ResponseStatus) (*EventParticipant, error)
	RemoveParticipant(ctx context.Context, callerID, eventID, participantID string) (bool, error)
	ListMyInvitations(ctx context.Context, callerID string) (*InvitationList, error)
}
