package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/domain"
)

// GenerateDescriptionRequest is the request body for POST /ai/generate-description.
type GenerateDescriptionRequest struct {
	Title string `json:"title"`
}

// Validate implements Validator.
func (g GenerateDescriptionRequest) Validate() []string {
	return requireTitleField(g.Title)
}

// SuggestTimeRequest is the request body for POST /ai/suggest-time.
type SuggestTimeRequest struct {
	Title     string `json:"title"`
	EventType string `json:"eventType"`
}

// Validate implements Validator.
func (s SuggestTimeRequest) Validate() []string {
	return requireTitleField(s.Title)
}

// SuggestLocationRequest is the request body for POST /ai/suggest-location.
type SuggestLocationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate implements Validator.
func (s SuggestLocationRequest) Validate() []string {
	return requireTitleField(s.Title)
}

func requireTitleField(title string) []string {
	if strings.TrimSpace(title) == "" {
		return []string{"title is required"}
	}
	return nil
}

// DescriptionResponse is the data payload for POST /ai/generate-description.
type DescriptionResponse struct {
	Description string `json:"description"`
}

// LocationSuggestionsResponse is the data payload for POST /ai/suggest-location.
type LocationSuggestionsResponse struct {
	Suggestions []domain.LocationSuggestion `json:"suggestions"`
}

// DescriptionSuccessResponse is the success envelope for POST /ai/generate-description.
type DescriptionSuccessResponse struct {
	Data  DescriptionResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// TimeSuggestionSuccessResponse is the success envelope for POST /ai/suggest-time.
type TimeSuggestionSuccessResponse struct {
	Data  *domain.TimeSuggestion `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// LocationSuggestionsSuccessResponse is the success envelope for POST /ai/suggest-location.
type LocationSuggestionsSuccessResponse struct {
	Data  LocationSuggestionsResponse `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// WeeklySummarySuccessResponse is the success envelope for POST /ai/weekly-summary.
type WeeklySummarySuccessResponse struct {
	Data  *domain.WeeklySummary `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// AssistController exposes the AI helper endpoints.
type AssistController struct {
	Logger  *slog.Logger
	Service domain.AssistService
}

func NewAssistController(logger *slog.Logger, svc domain.AssistService) *AssistController {
	return &AssistController{
		Logger:  logger,
		Service: svc,
	}
}

// GenerateDescription godoc
// @Summary Draft an event description
// @Tags ai
// @Accept json
// @Produce json
// @Param body body GenerateDescriptionRequest true "Event title"
// @Success 200 {object} controllers.DescriptionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /ai/generate-description [post]
func (c *AssistController) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	var req GenerateDescriptionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	description, err := c.Service.GenerateDescription(r.Context(), req.Title)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "description")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DescriptionResponse{Description: description})
}

// SuggestTime godoc
// @Summary Suggest a day and time for an event
// @Tags ai
// @Accept json
// @Produce json
// @Param body body SuggestTimeRequest true "Event title and optional type"
// @Success 200 {object} controllers.TimeSuggestionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /ai/suggest-time [post]
func (c *AssistController) SuggestTime(w http.ResponseWriter, r *http.Request) {
	var req SuggestTimeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	suggestion, err := c.Service.SuggestTime(r.Context(), req.Title, req.EventType)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "suggestion")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, suggestion)
}

// SuggestLocation godoc
// @Summary Suggest kinds of venues for an event
// @Tags ai
// @Accept json
// @Produce json
// @Param body body SuggestLocationRequest true "Event title and optional description"
// @Success 200 {object} controllers.LocationSuggestionsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /ai/suggest-location [post]
func (c *AssistController) SuggestLocation(w http.ResponseWriter, r *http.Request) {
	var req SuggestLocationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	suggestions, err := c.Service.SuggestLocations(r.Context(), req.Title, req.Description)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "suggestion")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LocationSuggestionsResponse{Suggestions: suggestions})
}

// WeeklySummary godoc
// @Summary Summarize my next seven days
// @Description Reads the caller's events from now to a week ahead. With no events a fixed message is returned without calling the provider.
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.WeeklySummarySuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /ai/weekly-summary [post]
func (c *AssistController) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.Service.WeeklySummary(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "summary")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}
