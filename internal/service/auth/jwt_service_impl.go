package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/config"
	"github.com/openshelf/libra-api/internal/platform/logger"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	// Tolerated clock drift between the issuing and validating host.
	defaultClockSkew = 2 * time.Minute

	minSecretLength = 32
)

// hmacJWTService signs and validates tokens with HMAC-SHA256.
type hmacJWTService struct {
	signingKey           []byte
	tokenLifetime        time.Duration
	refreshTokenLifetime time.Duration
	timeFunc             func() time.Time // injectable for tests
	clockSkew            time.Duration
}

// jwtCustomClaims is the on-the-wire claim set.
type jwtCustomClaims struct {
	UserID    uuid.UUID `json:"uid"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService builds the HMAC-backed JWTService from the auth config.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}

	return &hmacJWTService{
		signingKey:           []byte(cfg.JWTSecret),
		tokenLifetime:        time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		refreshTokenLifetime: time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
		timeFunc:             time.Now,
		clockSkew:            defaultClockSkew,
	}, nil
}

// GenerateToken issues a signed access token for the user.
func (s *hmacJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.generateToken(ctx, userID, tokenTypeAccess, s.tokenLifetime)
}

// GenerateRefreshToken issues a signed refresh token, which lives longer
// than an access token and is only good for obtaining a new token pair.
func (s *hmacJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.generateToken(ctx, userID, tokenTypeRefresh, s.refreshTokenLifetime)
}

func (s *hmacJWTService) generateToken(
	ctx context.Context,
	userID uuid.UUID,
	tokenType string,
	lifetime time.Duration,
) (string, error) {
	now := s.timeFunc()
	claims := jwtCustomClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign JWT token",
			"error", err,
			"user_id", userID,
			"token_type", tokenType)
		return "", fmt.Errorf("failed to sign %s token with HMAC-SHA256: %w", tokenType, err)
	}
	return signed, nil
}

// ValidateToken checks an access token and returns its claims. A token of
// the wrong type yields ErrWrongTokenType.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validateToken(ctx, tokenString, tokenTypeAccess)
}

// ValidateRefreshToken checks a refresh token and returns its claims.
func (s *hmacJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validateToken(ctx, tokenString, tokenTypeRefresh)
}

func (s *hmacJWTService) validateToken(
	ctx context.Context,
	tokenString string,
	expectedType string,
) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	if err != nil {
		log.Debug("token validation failed", "error", err, "token_type", expectedType)
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			if expectedType == tokenTypeRefresh {
				return nil, ErrExpiredRefreshToken
			}
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet) && expectedType != tokenTypeRefresh:
			return nil, ErrTokenNotYetValid
		}
		return nil, invalidTokenErr(expectedType)
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, invalidTokenErr(expectedType)
	}

	if claims.TokenType != expectedType {
		log.Debug("token validation failed: wrong token type",
			"expected", expectedType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	log.Debug("token validated",
		"user_id", claims.UserID,
		"token_id", claims.ID,
		"token_type", claims.TokenType)

	return &Claims{
		UserID:    claims.UserID,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}

func invalidTokenErr(expectedType string) error {
	if expectedType == tokenTypeRefresh {
		return ErrInvalidRefreshToken
	}
	return ErrInvalidToken
}
