package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventscheduler/internal/domain"
)

const minPasswordLength = 6

type userService struct {
	profileRepo    domain.ProfileRepository
	eventRepo      domain.EventRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	contextTimeout time.Duration
	now            func() time.Time
}

// NewUserService creates a UserService with the given repositories and auth ports.
func NewUserService(profileRepo domain.ProfileRepository, eventRepo domain.EventRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry, timeout time.Duration) domain.UserService {
	return &userService{
		profileRepo:    profileRepo,
		eventRepo:      eventRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func (s *userService) SignUp(ctx context.Context, email, password string, fullName *string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = domain.NormalizeEmail(email)
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, err
	}
	profile := domain.NewProfile(email, trimOptional(fullName), hash, salt, s.now())
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and wrong password look the same.
func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get profile: %w", err)
	}
	if err := s.hasher.Compare(profile.PasswordHash, profile.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(domain.Identity{UserID: profile.ID, Email: profile.Email}, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, profile, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.profileRepo.GetByID(ctx, id)
}

// Update changes full_name and avatar_url. Email cannot be changed.
func (s *userService) Update(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id == "" {
		return nil, domain.ErrUnauthenticated
	}
	update.FullName = trimOptional(update.FullName)
	update.AvatarURL = trimOptional(update.AvatarURL)
	profile, err := s.profileRepo.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

// GetPublicProfile returns a profile's public face with its public events from now on.
func (s *userService) GetPublicProfile(ctx context.Context, id string) (*domain.PublicProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	now := s.now()
	events, err := s.eventRepo.ListByOwner(ctx, id, domain.EventFilter{PublicOnly: true, StartDate: &now})
	if err != nil {
		return nil, fmt.Errorf("list public events: %w", err)
	}
	return &domain.PublicProfile{
		ID:        profile.ID,
		FullName:  profile.FullName,
		AvatarURL: profile.AvatarURL,
		Events:    events,
		CreatedAt: profile.CreatedAt,
	}, nil
}
