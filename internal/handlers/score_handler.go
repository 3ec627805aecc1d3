package handlers

import (
	"net/http"

	"github.com/fran21fran/candyweb-backend/internal/models"
	"github.com/fran21fran/candyweb-backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ScoreHandler handles HTTP requests related to game scores
type ScoreHandler struct {
	scoreRepository repositories.ScoreRepository
	userRepository  repositories.UserRepository
}

// NewScoreHandler creates a new ScoreHandler
func NewScoreHandler(scoreRepo repositories.ScoreRepository, userRepo repositories.UserRepository) *ScoreHandler {
	return &ScoreHandler{
		scoreRepository: scoreRepo,
		userRepository:  userRepo,
	}
}

// RegisterScoreRoutes registers score-related routes
func (h *ScoreHandler) RegisterScoreRoutes(g *echo.Group) {
	g.POST("/game-scores", h.SaveScore)
	g.GET("/user-scores", h.GetUserScores)
	g.GET("/user-ranking", h.GetUserRanking)
}

// SaveScore records one game attempt for the authenticated user
func (h *ScoreHandler) SaveScore(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.CreateGameScoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Token may outlive the account; the score row needs a real user
	if _, err := h.userRepository.GetUserByID(currentUserID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Usuario no encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	score := &models.GameScore{
		UserID:         currentUserID,
		GameID:         req.GameID,
		Score:          req.Score,
		CompletionTime: req.CompletionTime,
		Difficulty:     req.Difficulty,
		Language:       req.Language,
	}

	if err := h.scoreRepository.SaveScore(score); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save game score")
	}

	return c.JSON(http.StatusCreated, score)
}

// GetUserScores returns the authenticated user's attempts, newest first
func (h *ScoreHandler) GetUserScores(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	scores, err := h.scoreRepository.GetUserScores(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user scores")
	}

	return c.JSON(http.StatusOK, scores)
}

// GetUserRanking returns the authenticated user's global rank, or null when
// they have no scores yet
func (h *ScoreHandler) GetUserRanking(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	ranking, err := h.scoreRepository.GetUserRanking(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user ranking")
	}
	if ranking == nil {
		return c.JSON(http.StatusOK, nil)
	}

	return c.JSON(http.StatusOK, ranking)
}
