package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/delivery/http/middleware"
	"eventscheduler/internal/domain"

	"github.com/stretchr/testify/require"
)

const (
	testUserID        = "5b1c8a52-3f4e-4a8e-9a3b-1d0f5e2c7a10"
	testEventID       = "0d6f2c1e-8a7b-4c3d-9e5f-6a7b8c9d0e1f"
	testParticipantID = "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
)

var (
	testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	testTime   = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
)

// newRequest builds a request with optional JSON body, caller and path values.
func newRequest(method, target, body, caller string, pathValues map[string]string) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "http://test"+target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), caller))
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

// decodeEnvelope decodes the response envelope and re-decodes data into dest when dest is non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	if dest != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dest))
	}
	return envelope
}

func sampleEvent() *domain.Event {
	return &domain.Event{
		ID:            testEventID,
		UserID:        testUserID,
		Title:         "Team sync",
		EventDatetime: testTime.Add(24 * time.Hour),
		Status:        domain.EventStatusUpcoming,
		CreatedAt:     testTime,
		UpdatedAt:     testTime,
	}
}

// fakeEventService implements domain.EventService for controller tests.
type fakeEventService struct {
	events      []*domain.Event
	event       *domain.Event
	detail      *domain.EventWithParticipants
	deleted     bool
	calendar    []byte
	err         error
	lastCaller  string
	lastID      string
	lastFilter  domain.EventFilter
	lastLimit   int
	lastInput   domain.EventInput
	lastUpdate  domain.EventUpdate
	lastStatus  domain.EventStatus
	createCalls int
}

func (f *fakeEventService) ListEvents(_ context.Context, callerID string, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastCaller, f.lastFilter = callerID, filter
	return f.events, f.err
}

func (f *fakeEventService) ListUpcomingEvents(_ context.Context, callerID string, limit int) ([]*domain.Event, error) {
	f.lastCaller, f.lastLimit = callerID, limit
	return f.events, f.err
}

func (f *fakeEventService) GetEvent(_ context.Context, viewerID, id string) (*domain.EventWithParticipants, error) {
	f.lastCaller, f.lastID = viewerID, id
	return f.detail, f.err
}

func (f *fakeEventService) CreateEvent(_ context.Context, callerID string, in domain.EventInput) (*domain.Event, error) {
	f.createCalls++
	f.lastCaller, f.lastInput = callerID, in
	return f.event, f.err
}

func (f *fakeEventService) UpdateEvent(_ context.Context, callerID, id string, update domain.EventUpdate) (*domain.Event, error) {
	f.lastCaller, f.lastID, f.lastUpdate = callerID, id, update
	return f.event, f.err
}

func (f *fakeEventService) UpdateEventStatus(_ context.Context, callerID, id string, status domain.EventStatus) (*domain.Event, error) {
	f.lastCaller, f.lastID, f.lastStatus = callerID, id, status
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(_ context.Context, callerID, id string) (bool, error) {
	f.lastCaller, f.lastID = callerID, id
	return f.deleted, f.err
}

func (f *fakeEventService) ExportCalendar(_ context.Context, viewerID, id string) ([]byte, error) {
	f.lastCaller, f.lastID = viewerID, id
	return f.calendar, f.err
}

// fakeInvitationService implements domain.InvitationService for controller tests.
type fakeInvitationService struct {
	participants []*domain.EventParticipant
	participant  *domain.EventParticipant
	list         *domain.InvitationList
	removed      bool
	err          error
	lastCaller   string
	lastEventID  string
	lastID       string
	lastEmail    string
	lastStatus   domain.ResponseStatus
}

func (f *fakeInvitationService) ListParticipants(_ context.Context, viewerID, eventID string) ([]*domain.EventParticipant, error) {
	f.lastCaller, f.lastEventID = viewerID, eventID
	return f.participants, f.err
}

func (f *fakeInvitationService) Invite(_ context.Context, callerID, eventID, email string) (*domain.EventParticipant, error) {
	f.lastCaller, f.lastEventID, f.lastEmail = callerID, eventID, email
	return f.participant, f.err
}

func (f *fakeInvitationService) Respond(_ context.Context, callerID, participantID string, status domain.ResponseStatus) (*domain.EventParticipant, error) {
	f.lastCaller, f.lastID, f.lastStatus = callerID, participantID, status
	return f.participant, f.err
}

func (f *fakeInvitationService) RemoveParticipant(_ context.Context, callerID, eventID, participantID string) (bool, error) {
	f.lastCaller, f.lastEventID, f.lastID = callerID, eventID, participantID
	return f.removed, f.err
}

func (f *fakeInvitationService) ListMyInvitations(_ context.Context, callerID string) (*domain.InvitationList, error) {
	f.lastCaller = callerID
	return f.list, f.err
}

// fakeDashboardService implements domain.DashboardService for controller tests.
type fakeDashboardService struct {
	stats      *domain.DashboardStats
	err        error
	lastCaller string
}

func (f *fakeDashboardService) GetStats(_ context.Context, callerID string) (*domain.DashboardStats, error) {
	f.lastCaller = callerID
	return f.stats, f.err
}

// fakeAssistService implements domain.AssistService for controller tests.
type fakeAssistService struct {
	description string
	time        *domain.TimeSuggestion
	locations   []domain.LocationSuggestion
	summary     *domain.WeeklySummary
	err         error
	lastTitle   string
	lastExtra   string
	lastCaller  string
}

func (f *fakeAssistService) GenerateDescription(_ context.Context, title string) (string, error) {
	f.lastTitle = title
	return f.description, f.err
}

func (f *fakeAssistService) SuggestTime(_ context.Context, title, eventType string) (*domain.TimeSuggestion, error) {
	f.lastTitle, f.lastExtra = title, eventType
	return f.time, f.err
}

func (f *fakeAssistService) SuggestLocations(_ context.Context, title, description string) ([]domain.LocationSuggestion, error) {
	f.lastTitle, f.lastExtra = title, description
	return f.locations, f.err
}

func (f *fakeAssistService) WeeklySummary(_ context.Context, callerID string) (*domain.WeeklySummary, error) {
	f.lastCaller = callerID
	return f.summary, f.err
}

// fakeUserService implements domain.UserService for controller tests.
type fakeUserService struct {
	profile    *domain.Profile
	public     *domain.PublicProfile
	token      string
	err        error
	lastID     string
	lastEmail  string
	lastPass   string
	lastName   *string
	lastUpdate domain.ProfileUpdate
}

func (f *fakeUserService) SignUp(_ context.Context, email, password string, fullName *string) (*domain.Profile, error) {
	f.lastEmail, f.lastPass, f.lastName = email, password, fullName
	return f.profile, f.err
}

func (f *fakeUserService) Login(_ context.Context, email, password string) (string, *domain.Profile, error) {
	f.lastEmail, f.lastPass = email, password
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.profile, nil
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	f.lastID = id
	if id == "" {
		return nil, domain.ErrUnauthenticated
	}
	return f.profile, f.err
}

func (f *fakeUserService) Update(_ context.Context, id string, update domain.ProfileUpdate) (*domain.Profile, error) {
	f.lastID, f.lastUpdate = id, update
	if id == "" {
		return nil, domain.ErrUnauthenticated
	}
	return f.profile, f.err
}

func (f *fakeUserService) GetPublicProfile(_ context.Context, id string) (*domain.PublicProfile, error) {
	f.lastID = id
	return f.public, f.err
}
