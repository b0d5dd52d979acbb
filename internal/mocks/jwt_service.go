package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/service/auth"
)

// MockJWTService is a canned auth.JWTService. Set the Fn fields for
// per-call behavior, or just fill Token/RefreshToken/Claims and the
// error fields for fixed responses.
type MockJWTService struct {
	GenerateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	Token        string
	RefreshToken string
	Err          error
	ValidateErr  error
	Claims       *auth.Claims
}

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return m.Token, m.Err
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	return m.RefreshToken, m.Err
}

func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}
