package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/domain"
)

// InviteRequest is the request body for POST /events/{eventID}/participants.
type InviteRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator. Format is checked by the service.
func (i InviteRequest) Validate() []string {
	if strings.TrimSpace(i.Email) == "" {
		return []string{"email is required"}
	}
	return nil
}

// RespondRequest is the request body for PATCH /invitations/{participantID}.
type RespondRequest struct {
	Status domain.ResponseStatus `json:"status"`
}

// Validate implements Validator.
func (rr RespondRequest) Validate() []string {
	if !rr.Status.IsResponse() {
		return []string{"status must be one of attending, maybe, declined"}
	}
	return nil
}

// RemoveParticipantResponse is the data payload for DELETE /events/{eventID}/participants/{participantID}.
type RemoveParticipantResponse struct {
	Removed bool `json:"removed"`
}

// ParticipantSuccessResponse is the success envelope for endpoints returning one participant.
type ParticipantSuccessResponse struct {
	Data  *domain.EventParticipant `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ParticipantListSuccessResponse is the success envelope for GET /events/{eventID}/participants.
type ParticipantListSuccessResponse struct {
	Data  []*domain.EventParticipant `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// InvitationListSuccessResponse is the success envelope for GET /invitations.
type InvitationListSuccessResponse struct {
	Data  *domain.InvitationList `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// RemoveParticipantSuccessResponse is the success envelope for participant removal.
type RemoveParticipantSuccessResponse struct {
	Data  RemoveParticipantResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// InvitationController handles participants of an event and the caller's own invitations.
type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// ListParticipants godoc
// @Summary List participants of an event
// @Description Invitees in invitation order, each with the linked profile when the email belongs to a user.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ParticipantListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [get]
func (c *InvitationController) ListParticipants(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	participants, err := c.Service.ListParticipants(r.Context(), callerID(r), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participants)
}

// Invite godoc
// @Summary Invite someone to an event
// @Description Adds a pending invitation for the email address. Only the event owner may invite.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body InviteRequest true "Invitee email"
// @Success 201 {object} controllers.ParticipantSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already invited)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [post]
func (c *InvitationController) Invite(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	var req InviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participant, err := c.Service.Invite(r.Context(), callerID(r), eventID, req.Email)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, participant)
}

// RemoveParticipant godoc
// @Summary Remove a participant
// @Description Owner-only. A missing participant or a foreign event returns removed=false.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param participantID path string true "Participant ID (UUID)"
// @Success 200 {object} controllers.RemoveParticipantSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants/{participantID} [delete]
func (c *InvitationController) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	participantID, ok := helpers.PathID(w, r, "participantID")
	if !ok {
		return
	}
	removed, err := c.Service.RemoveParticipant(r.Context(), callerID(r), eventID, participantID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "participant")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RemoveParticipantResponse{Removed: removed})
}

// ListMyInvitations godoc
// @Summary List my invitations
// @Description Invitations addressed to the caller's email, newest first, split into pending and responded. Anonymous callers get two empty lists.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.InvitationListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations [get]
func (c *InvitationController) ListMyInvitations(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListMyInvitations(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "invitation")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// Respond godoc
// @Summary Respond to an invitation
// @Description Sets the caller's RSVP on an invitation addressed to them.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param participantID path string true "Participant ID (UUID)"
// @Param body body RespondRequest true "attending, maybe or declined"
// @Success 200 {object} controllers.ParticipantSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{participantID} [patch]
func (c *InvitationController) Respond(w http.ResponseWriter, r *http.Request) {
	participantID, ok := helpers.PathID(w, r, "participantID")
	if !ok {
		return
	}
	var req RespondRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participant, err := c.Service.Respond(r.Context(), callerID(r), participantID, req.Status)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "invitation")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participant)
}
