package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"eventscheduler/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type invitationService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.EventParticipantRepository
	profileRepo     domain.ProfileRepository
	contextTimeout  time.Duration
	now             func() time.Time
}

// NewInvitationService creates an InvitationService.
func NewInvitationService(eventRepo domain.EventRepository, participantRepo domain.EventParticipantRepository, profileRepo domain.ProfileRepository, timeout time.Duration) domain.InvitationService {
	return &invitationService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		profileRepo:     profileRepo,
		contextTimeout:  timeout,
		now:             time.Now,
	}
}

func (s *invitationService) ListParticipants(ctx context.Context, viewerID, eventID string) ([]*domain.EventParticipant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	_, participants, err := loadVisibleEvent(ctx, s.eventRepo, s.participantRepo, s.profileRepo, viewerID, eventID)
	if err != nil {
		return nil, err
	}
	return participants, nil
}

// Invite adds email to the event's participants as pending. Only the owner may invite.
// If a profile with that email already exists the invitation is linked to it now and never re-resolved.
func (s *invitationService) Invite(ctx context.Context, callerID, eventID, email string) (*domain.EventParticipant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	email = domain.NormalizeEmail(email)
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	owned, err := s.eventRepo.IsOwnedBy(ctx, eventID, callerID)
	if err != nil {
		return nil, fmt.Errorf("check event owner: %w", err)
	}
	if !owned {
		return nil, domain.ErrForbidden
	}

	exists, err := s.participantRepo.Exists(ctx, eventID, email)
	if err != nil {
		return nil, fmt.Errorf("check existing invitation: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyInvited
	}

	var userID *string
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		userID = &profile.ID
	case errors.Is(err, domain.ErrNotFound):
		// not registered yet
	default:
		return nil, fmt.Errorf("look up invitee: %w", err)
	}

	p := domain.NewEventParticipant(eventID, email, userID, s.now())
	// A concurrent invite for the same email surfaces here as ErrAlreadyInvited.
	if err := s.participantRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrAlreadyInvited) {
			return nil, err
		}
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	return p, nil
}

// Respond records the caller's RSVP on an invitation addressed to them by user id or email.
func (s *invitationService) Respond(ctx context.Context, callerID, participantID string, status domain.ResponseStatus) (*domain.EventParticipant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if !status.IsResponse() {
		return nil, fmt.Errorf("%w: status must be attending, maybe or declined", domain.ErrInvalidInput)
	}
	caller, err := s.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("get caller profile: %w", err)
	}

	p, err := s.participantRepo.UpdateResponse(ctx, participantID, domain.Identity{UserID: caller.ID, Email: caller.Email}, status)
	if err != nil {
		return nil, fmt.Errorf("update response: %w", err)
	}
	return p, nil
}

// RemoveParticipant reports whether the invitation was removed. Non-owners remove nothing.
func (s *invitationService) RemoveParticipant(ctx context.Context, callerID, eventID, participantID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return false, domain.ErrUnauthenticated
	}
	removed, err := s.participantRepo.Delete(ctx, callerID, eventID, participantID)
	if err != nil {
		return false, fmt.Errorf("remove participant: %w", err)
	}
	return removed, nil
}

// ListMyInvitations returns invitations addressed to the caller's email, newest first, split by status.
func (s *invitationService) ListMyInvitations(ctx context.Context, callerID string) (*domain.InvitationList, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	out := &domain.InvitationList{Pending: []*domain.Invitation{}, Responded: []*domain.Invitation{}}
	if callerID == "" {
		return out, nil
	}
	caller, err := s.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return out, nil
		}
		return nil, fmt.Errorf("get caller profile: %w", err)
	}

	invitations, err := s.participantRepo.ListByEmail(ctx, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	for _, inv := range invitations {
		if inv.Participant.ResponseStatus == domain.ResponsePending {
			out.Pending = append(out.Pending, inv)
		} else {
			out.Responded = append(out.Responded, inv)
		}
	}
	return out, nil
}
