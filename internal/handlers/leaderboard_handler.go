package handlers

import (
	"net/http"
	"strconv"

	"github.com/fran21fran/candyweb-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LeaderboardHandler handles the public leaderboard endpoints
type LeaderboardHandler struct {
	scoreRepository repositories.ScoreRepository
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(scoreRepo repositories.ScoreRepository) *LeaderboardHandler {
	return &LeaderboardHandler{scoreRepository: scoreRepo}
}

// RegisterLeaderboardRoutes registers leaderboard routes
func (h *LeaderboardHandler) RegisterLeaderboardRoutes(g *echo.Group) {
	g.GET("/leaderboard/game/:game_id", h.GetGameLeaderboard)
	g.GET("/leaderboard/global", h.GetGlobalLeaderboard)
}

// limitParam reads the limit query parameter, defaulting to 10 when absent
// or unparsable. An explicit non-positive limit is passed through and yields
// an empty leaderboard.
func limitParam(c echo.Context) int {
	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	return limit
}

// GetGameLeaderboard returns the top attempts for one game
func (h *LeaderboardHandler) GetGameLeaderboard(c echo.Context) error {
	gameID := c.Param("game_id")

	leaderboard, err := h.scoreRepository.GetGameLeaderboard(gameID, limitParam(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch game leaderboard")
	}

	return c.JSON(http.StatusOK, leaderboard)
}

// GetGlobalLeaderboard returns the per-user score totals across all games
func (h *LeaderboardHandler) GetGlobalLeaderboard(c echo.Context) error {
	leaderboard, err := h.scoreRepository.GetGlobalLeaderboard(limitParam(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch global leaderboard")
	}

	return c.JSON(http.StatusOK, leaderboard)
}
