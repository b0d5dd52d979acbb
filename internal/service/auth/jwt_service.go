package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and validates the access/refresh token pair. Access
// tokens authorize API calls; refresh tokens only mint new pairs.
type JWTService interface {
	// GenerateToken signs a short-lived access token for the user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks the signature, expiry, and type of an access
	// token and returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken signs a long-lived refresh token for the user.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken checks the signature, expiry, and type of a
	// refresh token and returns its claims.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded content of a token.
type Claims struct {
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType is "access" or "refresh". Validation rejects a token
	// presented in the wrong role.
	TokenType string `json:"type,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
