package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventscheduler/internal/adapters/auth"
	"eventscheduler/internal/delivery/http/controllers"
	"eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/domain"
	"eventscheduler/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires real services without storage. Only paths that finish before
// touching a repository are exercised here; repositories have their own tests.
func newTestRouter(t *testing.T) (*http.ServeMux, string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwt := auth.NewJWT("router-test-secret")
	timeout := time.Second

	c := Controllers{
		Users:       controllers.NewUserController(logger, services.NewUserService(nil, nil, auth.NewBcryptHasher(4), jwt, time.Hour, timeout)),
		Events:      controllers.NewEventController(logger, services.NewEventService(nil, nil, nil, nil, timeout)),
		Invitations: controllers.NewInvitationController(logger, services.NewInvitationService(nil, nil, nil, timeout)),
		Dashboard:   controllers.NewDashboardController(logger, services.NewDashboardService(nil, nil, nil, timeout)),
		Assist:      controllers.NewAssistController(logger, services.NewAssistService(nil, nil, timeout)),
	}
	token, err := jwt.Issue(domain.Identity{UserID: "5b1c8a52-3f4e-4a8e-9a3b-1d0f5e2c7a10", Email: "ada@example.com"}, time.Hour)
	require.NoError(t, err)
	return NewRouter(c, jwt, logger), token
}

func TestRouter(t *testing.T) {
	mux, token := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		withToken  bool
		wantStatus int
		wantBody   string
	}{
		{"anonymous event list is empty", http.MethodGet, "/events", "", false, http.StatusOK, `{"data":[],"error":null}`},
		{"anonymous upcoming list is empty", http.MethodGet, "/events/upcoming", "", false, http.StatusOK, `{"data":[],"error":null}`},
		{"anonymous dashboard is zeros", http.MethodGet, "/dashboard", "", false, http.StatusOK,
			`{"data":{"total_events":0,"upcoming_events":0,"attending_events":0,"pending_invitations":0},"error":null}`},
		{"anonymous invitations are empty", http.MethodGet, "/invitations", "", false, http.StatusOK,
			`{"data":{"pending":[],"responded":[]},"error":null}`},
		{"create requires token", http.MethodPost, "/events", `{"title":"x"}`, false, http.StatusUnauthorized, ""},
		{"invite requires token", http.MethodPost, "/events/0d6f2c1e-8a7b-4c3d-9e5f-6a7b8c9d0e1f/participants", `{"email":"a@b.co"}`, false, http.StatusUnauthorized, ""},
		{"respond requires token", http.MethodPatch, "/invitations/0d6f2c1e-8a7b-4c3d-9e5f-6a7b8c9d0e1f", `{"status":"maybe"}`, false, http.StatusUnauthorized, ""},
		{"weekly summary requires token", http.MethodPost, "/ai/weekly-summary", "", false, http.StatusUnauthorized, ""},
		{"me requires token", http.MethodGet, "/users/me", "", false, http.StatusUnauthorized, ""},
		{"token passes auth then validation runs", http.MethodPost, "/events", `{"title":""}`, true, http.StatusBadRequest, ""},
		{"malformed event id", http.MethodGet, "/events/123", "", false, http.StatusBadRequest, ""},
		{"unconfigured assist", http.MethodPost, "/ai/generate-description", `{"title":"Picnic"}`, false, http.StatusInternalServerError,
			`{"data":null,"error":{"code":"internal_error","message":"AI provider not configured"}}`},
		{"assist validates before provider", http.MethodPost, "/ai/suggest-time", `{}`, false, http.StatusBadRequest, ""},
		{"wrong method", http.MethodPut, "/events", "", false, http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, "http://test"+tt.path, body)
			if tt.withToken {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
			if tt.wantStatus == http.StatusUnauthorized {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
			}
		})
	}
}

func TestRouter_InvalidTokenOnOptionalPathIsAnonymous(t *testing.T) {
	mux, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "http://test/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total_events":0`)
}
