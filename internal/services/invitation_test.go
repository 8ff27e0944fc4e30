package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventscheduler/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvitationFixture() (*invitationService, *fakeEventRepo, *fakeParticipantRepo) {
	events := newFakeEventRepo()
	participants := newFakeParticipantRepo(events)
	profiles := newFakeProfileRepo(
		&domain.Profile{ID: "owner", Email: "owner@example.com"},
		&domain.Profile{ID: "guest", Email: "guest@example.com"},
		&domain.Profile{ID: "stranger", Email: "stranger@example.com"},
	)
	svc := NewInvitationService(events, participants, profiles, 5*time.Second).(*invitationService)
	svc.now = fixedNow
	return svc, events, participants
}

func TestInvitationService_Invite(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		callerID   string
		email      string
		setup      func(events *fakeEventRepo, participants *fakeParticipantRepo)
		wantErr    error
		wantUserID *string
	}{
		{name: "links registered user", callerID: "owner", email: " Guest@Example.com ", wantUserID: ptr("guest")},
		{name: "unregistered email", callerID: "owner", email: "new@example.com"},
		{name: "non-owner forbidden", callerID: "stranger", email: "new@example.com", wantErr: domain.ErrForbidden},
		{name: "anonymous", callerID: "", email: "new@example.com", wantErr: domain.ErrUnauthenticated},
		{name: "invalid email", callerID: "owner", email: "not-an-email", wantErr: domain.ErrInvalidInput},
		{
			name:     "already invited ignores case",
			callerID: "owner",
			email:    "GUEST@example.com",
			setup: func(events *fakeEventRepo, participants *fakeParticipantRepo) {
				_ = participants.Create(ctx, domain.NewEventParticipant("ev-1", "guest@example.com", nil, testNow))
			},
			wantErr: domain.ErrAlreadyInvited,
		},
		{
			name:     "concurrent insert loses the race",
			callerID: "owner",
			email:    "new@example.com",
			setup: func(events *fakeEventRepo, participants *fakeParticipantRepo) {
				participants.createErr = domain.ErrAlreadyInvited
			},
			wantErr: domain.ErrAlreadyInvited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, events, participants := newInvitationFixture()
			seedEvent(events, "owner", "Launch", time.Hour, false)
			if tt.setup != nil {
				tt.setup(events, participants)
			}
			before := len(participants.rows)

			got, err := svc.Invite(ctx, tt.callerID, "ev-1", tt.email)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Len(t, participants.rows, before)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.ResponsePending, got.ResponseStatus)
			assert.Equal(t, domain.NormalizeEmail(tt.email), got.Email)
			assert.Equal(t, tt.wantUserID, got.UserID)
			assert.Len(t, participants.rows, before+1)
		})
	}
}

func TestInvitationService_Respond(t *testing.T) {
	ctx := context.Background()
	svc, events, participants := newInvitationFixture()
	seedEvent(events, "owner", "Launch", time.Hour, false)
	p := domain.NewEventParticipant("ev-1", "guest@example.com", nil, testNow)
	require.NoError(t, participants.Create(ctx, p))

	got, err := svc.Respond(ctx, "guest", p.ID, domain.ResponseAttending)
	require.NoError(t, err)
	assert.Equal(t, domain.ResponseAttending, got.ResponseStatus)

	_, err = svc.Respond(ctx, "guest", p.ID, domain.ResponsePending)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Respond(ctx, "owner", p.ID, domain.ResponseDeclined)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.ResponseAttending, participants.rows[0].ResponseStatus)

	_, err = svc.Respond(ctx, "", p.ID, domain.ResponseMaybe)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestInvitationService_RemoveParticipant(t *testing.T) {
	ctx := context.Background()
	svc, events, participants := newInvitationFixture()
	seedEvent(events, "owner", "Launch", time.Hour, false)
	p := domain.NewEventParticipant("ev-1", "guest@example.com", nil, testNow)
	require.NoError(t, participants.Create(ctx, p))

	removed, err := svc.RemoveParticipant(ctx, "guest", "ev-1", p.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = svc.RemoveParticipant(ctx, "owner", "ev-1", p.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, participants.rows)
}

func TestInvitationService_ListMyInvitations(t *testing.T) {
	ctx := context.Background()
	svc, events, participants := newInvitationFixture()
	seedEvent(events, "owner", "First", time.Hour, false)
	seedEvent(events, "owner", "Second", 2*time.Hour, false)
	seedEvent(events, "owner", "Third", 3*time.Hour, false)

	older := domain.NewEventParticipant("ev-1", "guest@example.com", nil, testNow.Add(-2*time.Hour))
	newer := domain.NewEventParticipant("ev-2", "guest@example.com", nil, testNow.Add(-time.Hour))
	answered := domain.NewEventParticipant("ev-3", "guest@example.com", nil, testNow)
	answered.ResponseStatus = domain.ResponseDeclined
	other := domain.NewEventParticipant("ev-1", "stranger@example.com", nil, testNow)
	for _, p := range []*domain.EventParticipant{older, newer, answered, other} {
		require.NoError(t, participants.Create(ctx, p))
	}

	got, err := svc.ListMyInvitations(ctx, "guest")
	require.NoError(t, err)
	require.Len(t, got.Pending, 2)
	assert.Equal(t, "Second", got.Pending[0].Event.Title, "newest first")
	assert.Equal(t, "First", got.Pending[1].Event.Title)
	require.Len(t, got.Responded, 1)
	assert.Equal(t, "Third", got.Responded[0].Event.Title)

	anon, err := svc.ListMyInvitations(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, anon.Pending)
	assert.NotNil(t, anon.Responded)
}

func TestInvitationService_ListParticipants(t *testing.T) {
	ctx := context.Background()
	svc, events, participants := newInvitationFixture()
	seedEvent(events, "owner", "Launch", time.Hour, false)
	require.NoError(t, participants.Create(ctx, domain.NewEventParticipant("ev-1", "guest@example.com", nil, testNow)))

	got, err := svc.ListParticipants(ctx, "guest", "ev-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.ListParticipants(ctx, "stranger", "ev-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
