package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-key-thats-at-least-32-chars",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"
	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestValidateTokenWrongType(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	accessToken, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(context.Background(), accessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateToken(context.Background(), refreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateTokenExpired(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	impl := svc.(*hmacJWTService)

	userID := uuid.New()
	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	// Jump past the token lifetime plus the allowed clock skew
	impl.timeFunc = func() time.Time {
		return time.Now().Add(61*time.Minute + impl.clockSkew)
	}

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRefreshTokenExpired(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	impl := svc.(*hmacJWTService)

	userID := uuid.New()
	token, err := svc.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	impl.timeFunc = func() time.Time {
		return time.Now().Add(7*24*time.Hour + time.Hour + impl.clockSkew)
	}

	_, err = svc.ValidateRefreshToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestValidateTokenTampered(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongKey(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "a-different-secret-key-of-32-chars-min"
	otherSvc, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = otherSvc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIDsAreUnique(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	first, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	second, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	firstClaims, err := svc.ValidateToken(context.Background(), first)
	require.NoError(t, err)
	secondClaims, err := svc.ValidateToken(context.Background(), second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
