package handlers

import (
	"github.com/fran21fran/candyweb-backend/internal/middleware"
	"github.com/fran21fran/candyweb-backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated user's ID, or 0 for
// guests. Routes behind JWTAuth always have a non-zero ID; routes behind
// JWTAuthOptional may not.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get(middleware.ContextKeyUser).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}
