package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventscheduler/internal/domain"
)

const (
	defaultUpcomingLimit = 5
	maxUpcomingLimit     = 50
)

type eventService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.EventParticipantRepository
	profileRepo     domain.ProfileRepository
	calendar        domain.CalendarRenderer
	contextTimeout  time.Duration
	now             func() time.Time
}

func NewEventService(eventRepo domain.EventRepository,
	participantRepo domain.EventParticipantRepository,
	profileRepo domain.ProfileRepository,
	calendar domain.CalendarRenderer,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		profileRepo:     profileRepo,
		calendar:        calendar,
		contextTimeout:  timeout,
		now:             time.Now,
	}
}

// ListEvents returns the caller's events in ascending date order. Anonymous callers get an empty list.
func (s *eventService) ListEvents(ctx context.Context, callerID string, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return []*domain.Event{}, nil
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, filter.Status)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: end_date is before start_date", domain.ErrInvalidInput)
	}
	filter.PublicOnly = false
	filter.Limit = 0
	events, err := s.eventRepo.ListByOwner(ctx, callerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListUpcomingEvents returns at most limit of the caller's events at or after now.
func (s *eventService) ListUpcomingEvents(ctx context.Context, callerID string, limit int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return []*domain.Event{}, nil
	}
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	if limit > maxUpcomingLimit {
		limit = maxUpcomingLimit
	}
	now := s.now()
	events, err := s.eventRepo.ListByOwner(ctx, callerID, domain.EventFilter{StartDate: &now, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, viewerID, id string) (*domain.EventWithParticipants, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, participants, err := loadVisibleEvent(ctx, s.eventRepo, s.participantRepo, s.profileRepo, viewerID, id)
	if err != nil {
		return nil, err
	}
	return &domain.EventWithParticipants{Event: event, Participants: participants}, nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, callerID string, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if in.EventDatetime.IsZero() {
		return nil, fmt.Errorf("%w: event_datetime is required", domain.ErrInvalidInput)
	}
	if in.Status != "" && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
	}

	event := domain.NewEvent(callerID, in, s.now())
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// UpdateEvent applies a partial update. A caller who does not own the event gets domain.ErrNotFound.
func (s *eventService) UpdateEvent(ctx context.Context, callerID, id string, update domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if update.Title != nil {
		if err := validateTitle(*update.Title); err != nil {
			return nil, err
		}
	}
	if update.EventDatetime != nil && update.EventDatetime.IsZero() {
		return nil, fmt.Errorf("%w: event_datetime is invalid", domain.ErrInvalidInput)
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *update.Status)
	}

	event, err := s.eventRepo.Update(ctx, callerID, id, update)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) UpdateEventStatus(ctx context.Context, callerID, id string, status domain.EventStatus) (*domain.Event, error) {
	return s.UpdateEvent(ctx, callerID, id, domain.EventUpdate{Status: &status})
}

// DeleteEvent reports whether a row was removed. Deleting someone else's event is a no-op.
func (s *eventService) DeleteEvent(ctx context.Context, callerID, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return false, domain.ErrUnauthenticated
	}
	deleted, err := s.eventRepo.Delete(ctx, callerID, id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	return deleted, nil
}

func (s *eventService) ExportCalendar(ctx context.Context, viewerID, id string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, participants, err := loadVisibleEvent(ctx, s.eventRepo, s.participantRepo, s.profileRepo, viewerID, id)
	if err != nil {
		return nil, err
	}
	organizer, err := s.profileRepo.GetByID(ctx, event.UserID)
	if err != nil {
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	out, err := s.calendar.Render(event, organizer, participants)
	if err != nil {
		return nil, fmt.Errorf("render calendar: %w", err)
	}
	return out, nil
}
