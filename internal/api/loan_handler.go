package api

import (
	"log/slog"
	"net/http"

	"github.com/openshelf/libra-api/internal/api/shared"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/service"
)

// LoanHandler handles book lending requests.
type LoanHandler struct {
	loanService service.LoanService
	logger      *slog.Logger
}

// NewLoanHandler creates a new LoanHandler with the given dependencies.
func NewLoanHandler(loanService service.LoanService, logger *slog.Logger) *LoanHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoanHandler{
		loanService: loanService,
		logger:      logger.With(slog.String("component", "loan_handler")),
	}
}

// CheckoutBook handles POST /loans. The authenticated user must have the
// patron role; the checkout fails with 409 when no copies remain.
func (h *LoanHandler) CheckoutBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CheckoutRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	loan, err := h.loanService.CheckoutBook(r.Context(), userID, req.BookID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newLoanResponse(loan))
}

// ReturnBook handles POST /loans/{id}/return. Returning an overdue loan
// leaves its fine on record.
func (h *LoanHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	userID, loanID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	loan, err := h.loanService.ReturnBook(r.Context(), userID, loanID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newLoanResponse(loan))
}

// ListLoans handles GET /loans. It returns the user's loans, most recent
// checkout first.
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	loans, err := h.loanService.ListLoans(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, newLoanResponse(l))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
