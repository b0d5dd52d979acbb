package api

import (
	"log/slog"
	"net/http"

	"github.com/openshelf/libra-api/internal/api/shared"
	"github.com/openshelf/libra-api/internal/service"
)

// ReviewHandler handles book review requests.
type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler with the given dependencies.
func NewReviewHandler(reviewService service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// CreateReview handles POST /books/{id}/reviews. The authenticated user must
// have the patron role and may review each book once.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, bookID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	review, err := h.reviewService.CreateReview(r.Context(), userID, bookID, req.Rating, req.Comment)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newReviewResponse(review))
}

// ListReviews handles GET /books/{id}/reviews, newest first.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	bookID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	reviews, err := h.reviewService.ListReviews(r.Context(), bookID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, newReviewResponse(review))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
