package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pandeptwidyaop/agents-rest/internal/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAuthNotConfigured  = errors.New("auth is not configured")
)

// Claims are the JWT claims issued to API clients.
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies bearer tokens for configured clients.
type AuthService struct {
	cfg config.AuthConfig
	now func() time.Time
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{cfg: cfg, now: time.Now}
}

// Enabled reports whether API routes require a bearer token.
func (s *AuthService) Enabled() bool {
	return s.cfg.Enabled
}

// HashSecret returns the bcrypt hash of a client secret, as stored in
// auth.clients[].secret_hash.
func HashSecret(secret string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	return string(bytes), err
}

// Login checks the client secret against its configured bcrypt hash and
// returns a signed token with its expiry.
func (s *AuthService) Login(clientID, secret string) (string, time.Time, error) {
	if s.cfg.JWTSecret == "" {
		return "", time.Time{}, ErrAuthNotConfigured
	}

	var hash string
	for _, c := range s.cfg.Clients {
		if c.ID == clientID {
			hash = c.SecretHash
			break
		}
	}
	if hash == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return s.GenerateToken(clientID)
}

// GenerateToken signs a token for clientID without checking credentials.
func (s *AuthService) GenerateToken(clientID string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.GetTokenDuration())

	claims := &Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.cfg.Issuer,
			Subject:   clientID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies the signature, issuer and expiry of a token. Every
// failure wraps ErrInvalidToken.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
