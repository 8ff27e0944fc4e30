package http

import (
	"log/slog"
	"net/http"

	"eventscheduler/internal/delivery/http/controllers"
	"eventscheduler/internal/delivery/http/middleware"
	"eventscheduler/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Users       *controllers.UserController
	Events      *controllers.EventController
	Invitations *controllers.InvitationController
	Dashboard   *controllers.DashboardController
	Assist      *controllers.AssistController
}

// NewRouter initializes the HTTP router with all application routes.
// Read paths that degrade to empty results use optional auth; mutations require a token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)
	optional := middleware.OptionalAuth(verifier)

	// Auth and profiles
	mux.HandleFunc("POST /auth/signup", c.Users.SignUp)
	mux.HandleFunc("POST /auth/login", c.Users.Login)
	mux.HandleFunc("GET /users/me", auth(c.Users.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(c.Users.UpdateMe))
	mux.HandleFunc("GET /profiles/{userID}", c.Users.GetPublicProfile)

	// Events
	mux.HandleFunc("GET /events", optional(c.Events.ListEvents))
	mux.HandleFunc("GET /events/upcoming", optional(c.Events.ListUpcomingEvents))
	mux.HandleFunc("POST /events", auth(c.Events.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", optional(c.Events.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Events.UpdateEvent))
	mux.HandleFunc("PATCH /events/{eventID}/status", auth(c.Events.UpdateEventStatus))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Events.DeleteEvent))
	mux.HandleFunc("GET /events/{eventID}/calendar.ics", optional(c.Events.ExportCalendar))

	// Participants and invitations
	mux.HandleFunc("GET /events/{eventID}/participants", optional(c.Invitations.ListParticipants))
	mux.HandleFunc("POST /events/{eventID}/participants", auth(c.Invitations.Invite))
	mux.HandleFunc("DELETE /events/{eventID}/participants/{participantID}", auth(c.Invitations.RemoveParticipant))
	mux.HandleFunc("GET /invitations", optional(c.Invitations.ListMyInvitations))
	mux.HandleFunc("PATCH /invitations/{participantID}", auth(c.Invitations.Respond))

	mux.HandleFunc("GET /dashboard", optional(c.Dashboard.GetStats))

	// AI assist
	mux.HandleFunc("POST /ai/generate-description", c.Assist.GenerateDescription)
	mux.HandleFunc("POST /ai/suggest-time", c.Assist.SuggestTime)
	mux.HandleFunc("POST /ai/suggest-location", c.Assist.SuggestLocation)
	mux.HandleFunc("POST /ai/weekly-summary", auth(c.Assist.WeeklySummary))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
