package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title         string             `json:"title"`
	Description   *string            `json:"description"`
	Location      *string            `json:"location"`
	EventDatetime time.Time          `json:"event_datetime"`
	Status        domain.EventStatus `json:"status"`
	IsPublic      bool               `json:"is_public"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.EventDatetime.IsZero() {
		errs = append(errs, "event_datetime is required")
	}
	if c.Status != "" && !c.Status.Valid() {
		errs = append(errs, "status must be one of upcoming, attending, maybe, declined")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. Omitted fields are unchanged.
type UpdateEventRequest struct {
	Title         *string             `json:"title"`
	Description   *string             `json:"description"`
	Location      *string             `json:"location"`
	EventDatetime *time.Time          `json:"event_datetime"`
	Status        *domain.EventStatus `json:"status"`
	IsPublic      *bool               `json:"is_public"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.Status != nil && !u.Status.Valid() {
		errs = append(errs, "status must be one of upcoming, attending, maybe, declined")
	}
	return errs
}

// UpdateEventStatusRequest is the request body for PATCH /events/{eventID}/status.
type UpdateEventStatusRequest struct {
	Status domain.EventStatus `json:"status"`
}

// Validate implements Validator.
func (u UpdateEventStatusRequest) Validate() []string {
	if !u.Status.Valid() {
		return []string{"status must be one of upcoming, attending, maybe, declined"}
	}
	return nil
}

// DeleteEventResponse is the data payload for DELETE /events/{eventID}.
type DeleteEventResponse struct {
	Deleted bool `json:"deleted"`
}

// EventSuccessResponse is the success envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success envelope for endpoints returning a list of events.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventDetailSuccessResponse is the success envelope for GET /events/{eventID}.
type EventDetailSuccessResponse struct {
	Data  *domain.EventWithParticipants `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// DeleteEventSuccessResponse is the success envelope for DELETE /events/{eventID}.
type DeleteEventSuccessResponse struct {
	Data  DeleteEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// EventController handles event CRUD, listing and calendar export.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List my events
// @Description Returns the caller's events ordered by date. Anonymous callers get an empty list.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive match on title"
// @Param status query string false "upcoming, attending, maybe or declined"
// @Param location query string false "Case-insensitive match on location"
// @Param start_date query string false "RFC 3339 or YYYY-MM-DD, inclusive"
// @Param end_date query string false "RFC 3339 or YYYY-MM-DD, inclusive"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	start, end, err := helpers.ParseDateRange(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	q := r.URL.Query()
	filter := domain.EventFilter{
		Search:    strings.TrimSpace(q.Get("search")),
		Status:    domain.EventStatus(strings.TrimSpace(q.Get("status"))),
		Location:  strings.TrimSpace(q.Get("location")),
		StartDate: start,
		EndDate:   end,
	}
	events, err := c.Service.ListEvents(r.Context(), callerID(r), filter)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListUpcomingEvents godoc
// @Summary List my upcoming events
// @Description Returns the caller's next events from now on, soonest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of events (1-50, default 5)"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/upcoming [get]
func (c *EventController) ListUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	limit := helpers.ParseLimit(r, "limit", 0)
	events, err := c.Service.ListUpcomingEvents(r.Context(), callerID(r), limit)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns the event with its participants. Visible to the owner, to invitees, and to anyone when the event is public.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventDetailSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), callerID(r), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event owned by the caller. Status defaults to upcoming and visibility to private.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), callerID(r), domain.EventInput{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		EventDatetime: req.EventDatetime,
		Status:        req.Status,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially updates one of the caller's events. Another user's event reads as not found.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), callerID(r), eventID, domain.EventUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		EventDatetime: req.EventDatetime,
		Status:        req.Status,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEventStatus godoc
// @Summary Set my status for an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventStatusRequest true "New status"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/status [patch]
func (c *EventController) UpdateEventStatus(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateEventStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEventStatus(r.Context(), callerID(r), eventID, req.Status)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes one of the caller's events with its participants. Deleting a missing or foreign event returns deleted=false.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.DeleteEventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	deleted, err := c.Service.DeleteEvent(r.Context(), callerID(r), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Deleted: deleted})
}

// ExportCalendar godoc
// @Summary Download an event as iCalendar
// @Description Returns a text/calendar document with one VEVENT, its organizer and attendees. Same visibility as GET /events/{eventID}.
// @Tags events
// @Produce text/calendar
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {string} string "iCalendar document"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/calendar.ics [get]
func (c *EventController) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	body, err := c.Service.ExportCalendar(r.Context(), callerID(r), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+eventID+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
