package domain

import (
	"context"
	"strings"
	"time"
)

// EventStatus is the owner's own stance on an event.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusAttending EventStatus = "attending"
	EventStatusMaybe     EventStatus = "maybe"
	EventStatusDeclined  EventStatus = "declined"
)

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusAttending, EventStatusMaybe, EventStatusDeclined:
		return true
	}
	return false
}

// Event is a scheduled happening owned by one user.
// swagger:model Event
type Event struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Title         string      `json:"title"`
	Description   *string     `json:"description"`
	Location      *string     `json:"location"`
	EventDatetime time.Time   `json:"event_datetime"`
	Status        EventStatus `json:"status"`
	IsPublic      bool        `json:"is_public"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// EventInput carries the fields for creating an event. Empty Status means upcoming.
type EventInput struct {
	Title         string
	Description   *string
	Location      *string
	EventDatetime time.Time
	Status        EventStatus
	IsPublic      bool
}

// NewEvent returns a new Event owned by ownerID. ID is typically set by the repository on create.
func NewEvent(ownerID string, in EventInput, createdAt time.Time) *Event {
	status := in.Status
	if status == "" {
		status = EventStatusUpcoming
	}
	return &Event{
		UserID:        ownerID,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Location:      in.Location,
		EventDatetime: in.EventDatetime,
		Status:        status,
		IsPublic:      in.IsPublic,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

// EventUpdate is a partial update. Nil fields are left unchanged.
type EventUpdate struct {
	Title         *string
	Description   *string
	Location      *string
	EventDatetime *time.Time
	Status        *EventStatus
	IsPublic      *bool
}

// IsEmpty reports whether no field is set.
func (u EventUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Location == nil &&
		u.EventDatetime == nil && u.Status == nil && u.IsPublic == nil
}

// EventFilter narrows an owner's event list. Zero values are ignored.
// StartDate and EndDate are inclusive bounds on EventDatetime.
type EventFilter struct {
	Search     string
	Status     EventStatus
	Location   string
	StartDate  *time.Time
	EndDate    *time.Time
	PublicOnly bool
	Limit      int
}

// EventWithParticipants is an event with its invitee list.
type EventWithParticipants struct {
	*Event
	Participants []*EventParticipant `json:"participants"`
}

// EventRepository defines the interface for event storage.
// Mutations are scoped by owner in the query itself; a non-owner sees ErrNotFound or false.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOwner(ctx context.Context, ownerID string, filter EventFilter) ([]*Event, error)
	CountByOwner(ctx context.Context, ownerID string, filter EventFilter) (int, error)
	IsOwnedBy(ctx context.Context, id, ownerID string) (bool, error)
	Update(ctx context.Context, ownerID, id string, update EventUpdate) (*Event, error)
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}

// CalendarRenderer renders an event as an iCalendar document.
type CalendarRenderer interface {
	Render(event *Event, organizer *Profile, participants []*EventParticipant) ([]byte, error)
}

// EventService defines the business logic for events.
type EventService interface {
	ListEvents(ctx context.Context, callerID string, filter EventFilter) ([]*Event, error)
	ListUpcomingEvents(ctx context.Context, callerID string, limit int) ([]*Event, error)
	GetEvent(ctx context.Context, viewerID, id string) (*EventWithParticipants, error)
	CreateEvent(ctx context.Context, callerID string, in EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, callerID, id string, update EventUpdate) (*Event, error)
	UpdateEventStatus(ctx context.Context, callerID, id string, status EventStatus) (*Event, error)
	DeleteEvent(ctx context.Context, callerID, id string) (bool, error)
	ExportCalendar(ctx context.Context, viewerID, id string) ([]byte, error)
}
