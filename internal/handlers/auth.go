package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pandeptwidyaop/agents-rest/internal/dto"
	"github.com/pandeptwidyaop/agents-rest/internal/services"
)

// AuthHandler exchanges client credentials for bearer tokens.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles client authentication.
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginDto
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and secret are required"})
		return
	}

	token, expiresAt, err := h.authService.Login(req.ID, req.Secret)
	switch {
	case errors.Is(err, services.ErrAuthNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		log.Warn().Str("client_id", req.ID).Str("ip", c.ClientIP()).Msg("failed login")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	case err != nil:
		respondError(c, err)
		return
	}

	log.Info().Str("client_id", req.ID).Msg("client logged in")
	c.JSON(http.StatusOK, dto.TokenDto{Token: token, ExpiresAt: expiresAt})
}
