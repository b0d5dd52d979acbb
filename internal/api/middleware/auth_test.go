package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/api/shared"
	"github.com/openshelf/libra-api/internal/mocks"
	"github.com/openshelf/libra-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

func validTestClaims(userID uuid.UUID) *auth.Claims {
	return &auth.Claims{
		UserID:    userID,
		TokenType: "access",
		ID:        "test-jti",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name        string
		authHeader  string
		validateErr error
		revoked     bool
		wantStatus  int
		wantNext    bool
	}{
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "NotBearer token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "expired token",
			authHeader:  "Bearer expired-token",
			validateErr: auth.ErrExpiredToken,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "invalid token",
			authHeader:  "Bearer garbage",
			validateErr: auth.ErrInvalidToken,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "refresh token used as access token",
			authHeader:  "Bearer refresh-token",
			validateErr: auth.ErrWrongTokenType,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "token issued in the future",
			authHeader:  "Bearer early-token",
			validateErr: auth.ErrTokenNotYetValid,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:       "revoked token",
			authHeader: "Bearer revoked-token",
			revoked:    true,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validTestClaims(userID)
			jwtService := &mocks.MockJWTService{
				Claims:      claims,
				ValidateErr: tt.validateErr,
			}
			revoker := mocks.NewMockTokenRevoker()
			if tt.revoked {
				revoker.Revoked[claims.ID] = true
			}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				gotUserID, ok := GetUserID(r)
				assert.True(t, ok, "user ID should be in context")
				assert.Equal(t, userID, gotUserID)

				gotClaims, ok := r.Context().Value(shared.TokenClaimsContextKey).(*auth.Claims)
				assert.True(t, ok, "claims should be in context")
				assert.Equal(t, claims.ID, gotClaims.ID)
			})

			middleware := NewAuthMiddleware(jwtService, revoker)
			handler := middleware.Authenticate(next)

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}

func TestAuthenticateRevocationCheckError(t *testing.T) {
	t.Parallel()

	claims := validTestClaims(uuid.New())
	jwtService := &mocks.MockJWTService{Claims: claims}
	revoker := mocks.NewMockTokenRevoker()
	revoker.Err = assert.AnError

	middleware := NewAuthMiddleware(jwtService, revoker)
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestAuthenticateNilRevoker(t *testing.T) {
	t.Parallel()

	claims := validTestClaims(uuid.New())
	jwtService := &mocks.MockJWTService{Claims: claims}

	nextCalled := false
	middleware := NewAuthMiddleware(jwtService, nil)
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, nextCalled)
}
