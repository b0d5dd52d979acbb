package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/api/shared"
	"github.com/openshelf/libra-api/internal/redact"
	"github.com/openshelf/libra-api/internal/service/auth"
)

// AuthMiddleware guards routes with JWT bearer authentication. Besides
// signature and expiry checks, the token's ID is looked up in the
// revocation list so logout takes effect immediately.
type AuthMiddleware struct {
	jwtService auth.JWTService
	revoker    auth.TokenRevoker
}

// NewAuthMiddleware creates the middleware. A nil revoker disables the
// revocation check.
func NewAuthMiddleware(jwtService auth.JWTService, revoker auth.TokenRevoker) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, revoker: revoker}
}

// Authenticate validates the Authorization header and, on success, stores
// the user ID and token claims in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" || strings.ContainsRune(token, ' ') {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			m.respondValidationFailure(w, r, err)
			return
		}

		if m.revoker != nil {
			revoked, err := m.revoker.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				slog.Error("failed to check token revocation", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
				return
			}
			if revoked {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token revoked")
				return
			}
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		ctx = context.WithValue(ctx, shared.TokenClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) respondValidationFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrTokenNotYetValid):
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
	default:
		slog.Error("failed to validate token", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
	}
}

// GetUserID returns the authenticated user's ID from the request context,
// with ok false when the request did not pass through Authenticate.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}
