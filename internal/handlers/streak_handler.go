package handlers

import (
	"net/http"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/dmarini-dev/lumina/backend/internal/util"
	"github.com/labstack/echo/v4"
)

// StreakHandler exposes the per-pair interaction streak counter
type StreakHandler struct {
	streakRepository repositories.StreakRepository
	clock            util.Clock
}

// NewStreakHandler creates a new StreakHandler
func NewStreakHandler(streakRepo repositories.StreakRepository, clock util.Clock) *StreakHandler {
	return &StreakHandler{streakRepository: streakRepo, clock: clock}
}

// RegisterStreakRoutes registers streak-related routes
func (h *StreakHandler) RegisterStreakRoutes(e *echo.Echo) {
	e.GET("/streak/:userA/:userB", h.GetStreak)
	e.POST("/streak/update", h.UpdateStreak)
}

// GetStreak returns the streak record for a pair, defaulting to {0, 0}.
// Argument order does not matter.
func (h *StreakHandler) GetStreak(c echo.Context) error {
	pairKey := models.PairKey(c.Param("userA"), c.Param("userB"))

	rec, err := h.streakRepository.Get(pairKey)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

// UpdateStreak records one interaction between a pair and returns the
// advanced record.
func (h *StreakHandler) UpdateStreak(c echo.Context) error {
	var req models.UpdateStreakRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pairKey := models.PairKey(req.User1ID, req.User2ID)
	rec, err := h.streakRepository.Advance(pairKey, h.clock.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}
