package handlers

import (
	"net/http"
	"strconv"

	"github.com/fran21fran/candyweb-backend/internal/models"
	"github.com/fran21fran/candyweb-backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// SuggestionHandler handles HTTP requests related to community suggestions
type SuggestionHandler struct {
	suggestionRepository repositories.SuggestionRepository
}

// NewSuggestionHandler creates a new SuggestionHandler
func NewSuggestionHandler(suggestionRepo repositories.SuggestionRepository) *SuggestionHandler {
	return &SuggestionHandler{suggestionRepository: suggestionRepo}
}

// RegisterSuggestionRoutes registers the authenticated suggestion routes
func (h *SuggestionHandler) RegisterSuggestionRoutes(g *echo.Group) {
	g.POST("/suggestions", h.CreateSuggestion)
	g.POST("/suggestions/:id/like", h.ToggleLike)
}

// GetSuggestions lists suggestions, most liked first. A language query
// parameter filters to that language. Works for guests; signed-in viewers
// additionally get their per-row liked flag.
func (h *SuggestionHandler) GetSuggestions(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	language := c.QueryParam("language")

	var (
		suggestions []models.SuggestionWithLiked
		err         error
	)
	if language != "" {
		suggestions, err = h.suggestionRepository.GetSuggestionsByLanguage(language, viewerID)
	} else {
		suggestions, err = h.suggestionRepository.GetAllSuggestions(viewerID)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error al obtener sugerencias")
	}

	return c.JSON(http.StatusOK, suggestions)
}

// CreateSuggestion stores a new suggestion submitted by the authenticated
// user
func (h *SuggestionHandler) CreateSuggestion(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.CreateSuggestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	suggestion, err := h.suggestionRepository.CreateSuggestion(currentUserID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error al crear sugerencia")
	}

	return c.JSON(http.StatusCreated, suggestion)
}

// ToggleLike flips the authenticated user's like on a suggestion
func (h *SuggestionHandler) ToggleLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	suggestionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid suggestion ID")
	}

	liked, err := h.suggestionRepository.ToggleLike(currentUserID, uint(suggestionID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Sugerencia no encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Error al dar like")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "liked": liked})
}
