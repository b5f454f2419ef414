// Package middleware provides HTTP middleware for authentication, logging, and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/agents-rest/internal/services"
)

// ClientContextKey is the key for storing the authenticated client id in the request context.
const ClientContextKey = "client_id"

// TokenValidator verifies bearer tokens. Implemented by services.AuthService.
type TokenValidator interface {
	ValidateToken(token string) (*services.Claims, error)
}

// AuthRequired is a middleware that requires a valid bearer token.
func AuthRequired(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.Header("WWW-Authenticate", `Bearer realm="agents-rest"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer realm="agents-rest", error="invalid_token"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ClientContextKey, claims.ClientID)
		c.Next()
	}
}
