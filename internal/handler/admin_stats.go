package handler

// admin_stats.go serves the dashboard counters and the analytics charts.

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/repository"
)

// AdminStatsHandler serves aggregate numbers for the admin dashboard.
type AdminStatsHandler struct {
	Stats *repository.StatsRepo
}

func NewAdminStatsHandler(stats *repository.StatsRepo) *AdminStatsHandler {
	return &AdminStatsHandler{Stats: stats}
}

// Dashboard handles GET /v1/admin/dashboard.
func (h *AdminStatsHandler) Dashboard(c echo.Context) error {
	counts, err := h.Stats.Dashboard(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, counts)
}

// Analytics handles GET /v1/admin/analytics?weeks=12. It bundles the
// signup trend, the films-per-category breakdown and the top-rated list
// into a single response so the dashboard needs one round trip.
func (h *AdminStatsHandler) Analytics(c echo.Context) error {
	weeks := 12
	if raw := c.QueryParam("weeks"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 104 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "weeks must be between 1 and 104"})
		}
		weeks = n
	}

	ctx := c.Request().Context()
	signups, err := h.Stats.Signups(ctx, weeks)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	perCategory, err := h.Stats.FilmsPerCategory(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	topRated, err := h.Stats.TopRated(ctx, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"signups_per_week":   signups,
		"films_per_category": perCategory,
		"top_rated":          topRated,
	})
}
