package controllers

import (
	"log/slog"
	"net/http"

	"eventscheduler/internal/delivery/http/helpers"
	"eventscheduler/internal/domain"
)

// DashboardSuccessResponse is the success envelope for GET /dashboard.
type DashboardSuccessResponse struct {
	Data  *domain.DashboardStats `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type DashboardController struct {
	Logger  *slog.Logger
	Service domain.DashboardService
}

func NewDashboardController(logger *slog.Logger, svc domain.DashboardService) *DashboardController {
	return &DashboardController{
		Logger:  logger,
		Service: svc,
	}
}

// GetStats godoc
// @Summary Dashboard counts
// @Description Total events, upcoming events, events marked attending, and pending invitations. Anonymous callers get zeros.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.DashboardSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /dashboard [get]
func (c *DashboardController) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.GetStats(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "dashboard")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
