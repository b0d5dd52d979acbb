package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/api/shared"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/service/auth"
	"github.com/openshelf/libra-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	tokenRevoker     auth.TokenRevoker
	tokenLifetime    time.Duration
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// The tokenRevoker may be nil, in which case logout is a no-op beyond the
// client discarding its tokens.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	tokenRevoker auth.TokenRevoker,
	tokenLifetime time.Duration,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		tokenRevoker:     tokenRevoker,
		tokenLifetime:    tokenLifetime,
		logger:           logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Email, req.Username, req.FirstName, req.LastName, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) || errors.Is(err, store.ErrUsernameExists) {
			HandleAPIError(w, r, err, "")
			return
		}
		h.logger.Error("failed to create user", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	h.respondWithTokenPair(w, r, user.ID, http.StatusCreated)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same message as a bad password so the endpoint does not
			// reveal which emails are registered.
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("failed to get user by email", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.respondWithTokenPair(w, r, user.ID, http.StatusOK)
}

// RefreshToken handles POST /auth/refresh. It validates the provided refresh
// token and issues a fresh access/refresh pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if h.tokenRevoker != nil {
		revoked, err := h.tokenRevoker.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			h.logger.Error("failed to check refresh token revocation", "error", err)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to refresh token")
			return
		}
		if revoked {
			HandleAPIError(w, r, auth.ErrRevokedToken, "Invalid refresh token")
			return
		}
	}

	accessToken, err := h.jwtService.GenerateToken(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("failed to generate access token", "error", err, "user_id", claims.UserID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("failed to generate refresh token", "error", err, "user_id", claims.UserID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().UTC().Add(h.tokenLifetime).Format(time.RFC3339),
	})
}

// Logout handles POST /auth/logout. The current access token is revoked
// until its natural expiry so it cannot be replayed.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(shared.TokenClaimsContextKey).(*auth.Claims)
	if !ok || claims == nil {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	if h.tokenRevoker != nil && claims.ID != "" {
		if err := h.tokenRevoker.Revoke(r.Context(), claims.ID, time.Until(claims.ExpiresAt)); err != nil {
			h.logger.Error("failed to revoke token", "error", err, "user_id", claims.UserID)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to log out")
			return
		}
	}

	h.logger.Debug("user logged out", "user_id", claims.UserID)
	w.WriteHeader(http.StatusNoContent)
}

// respondWithTokenPair issues an access/refresh token pair for the user and
// writes the auth response.
func (h *AuthHandler) respondWithTokenPair(
	w http.ResponseWriter,
	r *http.Request,
	userID uuid.UUID,
	status int,
) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err, "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to generate refresh token", "error", err, "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, status, AuthResponse{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().UTC().Add(h.tokenLifetime).Format(time.RFC3339),
	})
}
