package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/spendwise-backend/internal/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct{}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// MeResponse represents the authenticated caller in API responses
type MeResponse struct {
	Owner   string `json:"owner"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// Me godoc
// @Summary Get current user
// @Description Returns the authenticated caller's identity and profile claims
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} ProblemDetails
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	owner := middleware.GetOwner(c)
	if owner == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	resp := MeResponse{Owner: owner}
	if claims := middleware.GetCustomClaims(c); claims != nil {
		resp.Email = claims.Email
		resp.Name = claims.Name
		resp.Picture = claims.Picture
	}

	return c.JSON(http.StatusOK, resp)
}
