package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventscheduler/internal/domain"
)

// loadVisibleEvent returns the event and its participants when viewerID may see it:
// the event is public, the viewer owns it, or the viewer is one of its invitees.
// Anything else is reported as domain.ErrNotFound so existence is not leaked.
func loadVisibleEvent(
	ctx context.Context,
	eventRepo domain.EventRepository,
	participantRepo domain.EventParticipantRepository,
	profileRepo domain.ProfileRepository,
	viewerID, eventID string,
) (*domain.Event, []*domain.EventParticipant, error) {
	event, err := eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	participants, err := participantRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list participants: %w", err)
	}
	if event.IsPublic || (viewerID != "" && event.UserID == viewerID) {
		return event, participants, nil
	}
	if viewerID == "" {
		return nil, nil, domain.ErrNotFound
	}

	viewer, err := profileRepo.GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get viewer profile: %w", err)
	}
	for _, p := range participants {
		if (p.UserID != nil && *p.UserID == viewerID) || strings.EqualFold(p.Email, viewer.Email) {
			return event, participants, nil
		}
	}
	return nil, nil, domain.ErrNotFound
}
