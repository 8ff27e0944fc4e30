package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventscheduler/internal/domain"
)

type dashboardService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.EventParticipantRepository
	profileRepo     domain.ProfileRepository
	contextTimeout  time.Duration
	now             func() time.Time
}

func NewDashboardService(eventRepo domain.EventRepository, participantRepo domain.EventParticipantRepository, profileRepo domain.ProfileRepository, timeout time.Duration) domain.DashboardService {
	return &dashboardService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		profileRepo:     profileRepo,
		contextTimeout:  timeout,
		now:             time.Now,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, callerID string) (*domain.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	stats := &domain.DashboardStats{}
	if callerID == "" {
		return stats, nil
	}

	var err error
	now := s.now()
	if stats.TotalEvents, err = s.eventRepo.CountByOwner(ctx, callerID, domain.EventFilter{}); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if stats.UpcomingEvents, err = s.eventRepo.CountByOwner(ctx, callerID, domain.EventFilter{StartDate: &now}); err != nil {
		return nil, fmt.Errorf("count upcoming events: %w", err)
	}
	if stats.AttendingEvents, err = s.eventRepo.CountByOwner(ctx, callerID, domain.EventFilter{Status: domain.EventStatusAttending}); err != nil {
		return nil, fmt.Errorf("count attending events: %w", err)
	}

	caller, err := s.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return stats, nil
		}
		return nil, fmt.Errorf("get caller profile: %w", err)
	}
	if stats.PendingInvitations, err = s.participantRepo.CountByEmail(ctx, caller.Email, domain.ResponsePending); err != nil {
		return nil, fmt.Errorf("count pending invitations: %w", err)
	}
	return stats, nil
}
