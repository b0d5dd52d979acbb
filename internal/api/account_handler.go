package api

import (
	"log/slog"
	"net/http"

	"github.com/openshelf/libra-api/internal/api/shared"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/service"
)

// AccountHandler handles role registration and profile lookups.
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new AccountHandler with the given dependencies.
func NewAccountHandler(accountService service.AccountService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{
		accountService: accountService,
		logger:         logger.With(slog.String("component", "account_handler")),
	}
}

// BecomePatron handles POST /account/patron. It registers a patron profile
// for the authenticated user and grants the patron role.
func (h *AccountHandler) BecomePatron(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req BecomePatronRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.accountService.BecomePatron(r.Context(), userID, req.Address, req.PhoneNumber)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newPatronProfileResponse(profile))
}

// GetPatronProfile handles GET /account/patron.
func (h *AccountHandler) GetPatronProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	profile, err := h.accountService.GetPatronProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newPatronProfileResponse(profile))
}

// BecomeAuthor handles POST /account/author. It registers an author profile
// for the authenticated user and grants the author role.
func (h *AccountHandler) BecomeAuthor(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req BecomeAuthorRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.accountService.BecomeAuthor(r.Context(), userID, req.BirthDate, req.Nationality)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newAuthorProfileResponse(profile))
}

// GetAuthorProfile handles GET /account/author.
func (h *AccountHandler) GetAuthorProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	profile, err := h.accountService.GetAuthorProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newAuthorProfileResponse(profile))
}

// ListAuthors handles GET /authors. It returns every registered author
// profile so patrons can browse the catalog's contributors.
func (h *AccountHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.accountService.ListAuthors(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]AuthorProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, newAuthorProfileResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
