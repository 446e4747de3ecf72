package handlers

import (
	"time"

	"takapay/internal/services/dashboard"
	"takapay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetOverview returns platform-wide figures for an optional date window.
// Admin only. Dates are YYYY-MM-DD; the window defaults to the last month.
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	var start, end time.Time

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
		}
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return utils.BadRequest(c, "End date is before start date")
	}

	metrics, err := h.dashboardService.Overview(c.Context(), start, end)
	if err != nil {
		return utils.InternalError(c, "Failed to build dashboard")
	}

	return utils.Success(c, metrics)
}

// GetUserOverview returns the caller's own activity figures.
func (h *DashboardHandler) GetUserOverview(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	metrics, err := h.dashboardService.UserOverview(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to build dashboard")
	}

	return utils.Success(c, metrics)
}
