package api

import (
	"log/slog"
	"net/http"

	"github.com/openshelf/libra-api/internal/api/shared"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/store"
)

// GenreHandler handles genre catalog requests. Genres are simple records so
// the handler talks to the store directly without a service in between.
type GenreHandler struct {
	genreStore store.GenreStore
	logger     *slog.Logger
}

// NewGenreHandler creates a new GenreHandler with the given dependencies.
func NewGenreHandler(genreStore store.GenreStore, logger *slog.Logger) *GenreHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenreHandler{
		genreStore: genreStore,
		logger:     logger.With(slog.String("component", "genre_handler")),
	}
}

// CreateGenre handles POST /genres.
func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req GenreRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	genre, err := domain.NewGenre(req.Name, req.Description)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid genre data: "+err.Error())
		return
	}

	if err := h.genreStore.Create(r.Context(), genre); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newGenreResponse(genre))
}

// GetGenre handles GET /genres/{id}.
func (h *GenreHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	genre, err := h.genreStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newGenreResponse(genre))
}

// ListGenres handles GET /genres. Supports optional name and description
// query parameters for case-insensitive substring filtering.
func (h *GenreHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	filter := store.GenreFilter{
		Name:        r.URL.Query().Get("name"),
		Description: r.URL.Query().Get("description"),
	}

	genres, err := h.genreStore.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, newGenreResponse(g))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// UpdateGenre handles PUT /genres/{id}.
func (h *GenreHandler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req GenreRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	genre, err := h.genreStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	genre.Name = req.Name
	genre.Description = req.Description
	if err := genre.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid genre data: "+err.Error())
		return
	}

	if err := h.genreStore.Update(r.Context(), genre); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newGenreResponse(genre))
}

// DeleteGenre handles DELETE /genres/{id}.
func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.genreStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
