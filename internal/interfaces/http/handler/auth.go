package handler

import (
	"net/http"

	mitarbeiterapp "github.com/fleischhandel/backend/internal/application/mitarbeiter"
	"github.com/fleischhandel/backend/internal/interfaces/http/dto"
	"github.com/fleischhandel/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *mitarbeiterapp.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *mitarbeiterapp.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a Mitarbeiter with Benutzername and Passwort and
// returns a token pair plus the profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var req mitarbeiterapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req mitarbeiterapp.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tokens)
}

// Logout invalidates the current session token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"message": "Logged out successfully",
	}))
}

// GetCurrentMitarbeiter returns the authenticated Mitarbeiter's profile
func (h *AuthHandler) GetCurrentMitarbeiter(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.authService.GetCurrentMitarbeiter(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// ChangePasswort changes the authenticated Mitarbeiter's own password
func (h *AuthHandler) ChangePasswort(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req mitarbeiterapp.ChangePasswortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.ChangePasswort(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"message": "Passwort changed successfully",
	}))
}
