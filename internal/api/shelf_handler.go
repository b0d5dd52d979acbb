package api

import (
	"log/slog"
	"net/http"

	"github.com/openshelf/libra-api/internal/api/shared"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/service"
)

// ShelfHandler handles personal shelf and reading progress requests.
type ShelfHandler struct {
	shelfService service.ShelfService
	logger       *slog.Logger
}

// NewShelfHandler creates a new ShelfHandler with the given dependencies.
func NewShelfHandler(shelfService service.ShelfService, logger *slog.Logger) *ShelfHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShelfHandler{
		shelfService: shelfService,
		logger:       logger.With(slog.String("component", "shelf_handler")),
	}
}

// AddToShelf handles POST /shelf/{bookID}. It adds the book to the user's
// shelf with reading progress at page zero.
func (h *ShelfHandler) AddToShelf(w http.ResponseWriter, r *http.Request) {
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "bookID", h.logger)
	if !ok {
		return
	}

	progress, err := h.shelfService.AddToShelf(r.Context(), userID, bookID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newReadingProgressResponse(progress))
}

// RemoveFromShelf handles DELETE /shelf/{bookID}.
func (h *ShelfHandler) RemoveFromShelf(w http.ResponseWriter, r *http.Request) {
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "bookID", h.logger)
	if !ok {
		return
	}

	if err := h.shelfService.RemoveFromShelf(r.Context(), userID, bookID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListShelf handles GET /shelf. It returns the user's shelf ordered by most
// recently touched.
func (h *ShelfHandler) ListShelf(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	entries, err := h.shelfService.ListShelf(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]ReadingProgressResponse, 0, len(entries))
	for _, p := range entries {
		out = append(out, newReadingProgressResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// OpenBook handles POST /shelf/{bookID}/open. It marks the shelf entry as
// currently being read.
func (h *ShelfHandler) OpenBook(w http.ResponseWriter, r *http.Request) {
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "bookID", h.logger)
	if !ok {
		return
	}

	progress, err := h.shelfService.OpenBook(r.Context(), userID, bookID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newReadingProgressResponse(progress))
}

// CloseBook handles POST /shelf/{bookID}/close. It records the page the
// reader stopped at; reaching the last page marks the book finished.
func (h *ShelfHandler) CloseBook(w http.ResponseWriter, r *http.Request) {
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "bookID", h.logger)
	if !ok {
		return
	}

	var req CloseBookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	progress, err := h.shelfService.CloseBook(r.Context(), userID, bookID, req.Page)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newReadingProgressResponse(progress))
}
