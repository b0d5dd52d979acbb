package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/openshelf/libra-api/internal/api/shared"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/service"
	"github.com/openshelf/libra-api/internal/store"
)

// BookHandler handles catalog book requests.
type BookHandler struct {
	bookService service.BookService
	logger      *slog.Logger
}

// NewBookHandler creates a new BookHandler with the given dependencies.
func NewBookHandler(bookService service.BookService, logger *slog.Logger) *BookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookHandler{
		bookService: bookService,
		logger:      logger.With(slog.String("component", "book_handler")),
	}
}

// CreateBook handles POST /books. The authenticated user must have the
// author role and is credited as the book's first author.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateBookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	book, err := h.bookService.CreateBook(r.Context(), userID, service.NewBookParams{
		Title:           req.Title,
		ISBN:            req.ISBN,
		Description:     req.Description,
		PublishedOn:     req.PublishedOn,
		AvailableCopies: req.AvailableCopies,
		PageCount:       req.PageCount,
		GenreNames:      req.Genres,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newBookResponse(book))
}

// GetBook handles GET /books/{id}.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	book, err := h.bookService.GetBook(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newBookResponse(book))
}

// ListBooks handles GET /books. Supports title, isbn and description query
// parameters; title and description match substrings, isbn matches exactly.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	filter := store.BookFilter{
		Title:       r.URL.Query().Get("title"),
		ISBN:        r.URL.Query().Get("isbn"),
		Description: r.URL.Query().Get("description"),
	}

	books, err := h.bookService.ListBooks(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newBookListResponse(books))
}

// ListMyBooks handles GET /books/mine. It returns the books the calling
// author has written.
func (h *BookHandler) ListMyBooks(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	books, err := h.bookService.ListMyBooks(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newBookListResponse(books))
}

// UpdateBook handles PATCH /books/{id}. Only fields present in the payload
// are changed.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req UpdateBookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	book, err := h.bookService.UpdateBook(r.Context(), userID, bookID, domain.BookUpdate{
		Title:           req.Title,
		ISBN:            req.ISBN,
		Description:     req.Description,
		PublishedOn:     req.PublishedOn,
		AvailableCopies: req.AvailableCopies,
		PageCount:       req.PageCount,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newBookResponse(book))
}

// DeleteBook handles DELETE /books/{id}.
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.bookService.DeleteBook(r.Context(), userID, bookID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddAuthor handles POST /books/{id}/authors. It credits another author on
// the book.
func (h *BookHandler) AddAuthor(w http.ResponseWriter, r *http.Request) {
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req LinkAuthorRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.bookService.AddBookAuthor(r.Context(), userID, bookID, req.AuthorID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveAuthor handles DELETE /books/{id}/authors/{authorID}.
func (h *BookHandler) RemoveAuthor(w http.ResponseWriter, r *http.Request) {
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	authorID, err := getPathUUID(r, "authorID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.bookService.RemoveBookAuthor(r.Context(), userID, bookID, authorID); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			HandleAPIError(w, r, err, "Book must keep at least one author")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddGenre handles POST /books/{id}/genres. It tags the book with a genre.
func (h *BookHandler) AddGenre(w http.ResponseWriter, r *http.Request) {
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req LinkGenreRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.bookService.AddBookGenre(r.Context(), userID, bookID, req.GenreID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveGenre handles DELETE /books/{id}/genres/{genreID}.
func (h *BookHandler) RemoveGenre(w http.ResponseWriter, r *http.Request) {
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	genreID, err := getPathUUID(r, "genreID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.bookService.RemoveBookGenre(r.Context(), userID, bookID, genreID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
