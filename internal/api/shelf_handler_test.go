package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/mocks"
	"github.com/openshelf/libra-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProgress(bookID, userID uuid.UUID) *domain.ReadingProgress {
	return &domain.ReadingProgress{
		ID:         uuid.New(),
		BookID:     bookID,
		UserID:     userID,
		TotalPages: 320,
		Status:     domain.ReadingStatusUnread,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
}

func TestAddToShelf(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	bookID := uuid.New()

	tests := []struct {
		name       string
		bookParam  string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "book added",
			bookParam:  bookID.String(),
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid book id",
			bookParam:  "not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "book not found",
			bookParam:  bookID.String(),
			serviceErr: store.ErrBookNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "already on shelf",
			bookParam:  bookID.String(),
			serviceErr: store.ErrAlreadyShelved,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shelfService := &mocks.MockShelfService{
				AddToShelfFn: func(ctx context.Context, gotUserID, gotBookID uuid.UUID) (*domain.ReadingProgress, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return testProgress(gotBookID, gotUserID), nil
				},
			}
			handler := NewShelfHandler(shelfService, nil)

			req := authenticatedRequest("POST", "/shelf/"+tt.bookParam, nil, userID,
				map[string]string{"bookID": tt.bookParam})
			recorder := httptest.NewRecorder()

			handler.AddToShelf(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp ReadingProgressResponse
				err := json.NewDecoder(recorder.Body).Decode(&resp)
				require.NoError(t, err)
				assert.Equal(t, bookID, resp.BookID)
				assert.Equal(t, domain.ReadingStatusUnread, resp.Status)
				assert.Equal(t, 0, resp.CurrentPage)
			}
		})
	}
}

func TestRemoveFromShelf(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	bookID := uuid.New()

	t.Run("entry removed", func(t *testing.T) {
		shelfService := &mocks.MockShelfService{
			RemoveFromShelfFn: func(ctx context.Context, gotUserID, gotBookID uuid.UUID) error {
				assert.Equal(t, userID, gotUserID)
				assert.Equal(t, bookID, gotBookID)
				return nil
			},
		}
		handler := NewShelfHandler(shelfService, nil)

		req := authenticatedRequest("DELETE", "/shelf/"+bookID.String(), nil, userID,
			map[string]string{"bookID": bookID.String()})
		recorder := httptest.NewRecorder()

		handler.RemoveFromShelf(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("entry not found", func(t *testing.T) {
		shelfService := &mocks.MockShelfService{
			RemoveFromShelfFn: func(ctx context.Context, gotUserID, gotBookID uuid.UUID) error {
				return store.ErrProgressNotFound
			},
		}
		handler := NewShelfHandler(shelfService, nil)

		req := authenticatedRequest("DELETE", "/shelf/"+bookID.String(), nil, userID,
			map[string]string{"bookID": bookID.String()})
		recorder := httptest.NewRecorder()

		handler.RemoveFromShelf(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestListShelf(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	shelfService := &mocks.MockShelfService{
		ListShelfFn: func(ctx context.Context, gotUserID uuid.UUID) ([]*domain.ReadingProgress, error) {
			assert.Equal(t, userID, gotUserID)
			return []*domain.ReadingProgress{
				testProgress(uuid.New(), gotUserID),
				testProgress(uuid.New(), gotUserID),
			}, nil
		},
	}
	handler := NewShelfHandler(shelfService, nil)

	req := authenticatedRequest("GET", "/shelf", nil, userID, nil)
	recorder := httptest.NewRecorder()

	handler.ListShelf(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp []ReadingProgressResponse
	err := json.NewDecoder(recorder.Body).Decode(&resp)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
}

func TestOpenBook(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	bookID := uuid.New()

	shelfService := &mocks.MockShelfService{
		OpenBookFn: func(ctx context.Context, gotUserID, gotBookID uuid.UUID) (*domain.ReadingProgress, error) {
			progress := testProgress(gotBookID, gotUserID)
			progress.Status = domain.ReadingStatusInProgress
			return progress, nil
		},
	}
	handler := NewShelfHandler(shelfService, nil)

	req := authenticatedRequest("POST", "/shelf/"+bookID.String()+"/open", nil, userID,
		map[string]string{"bookID": bookID.String()})
	recorder := httptest.NewRecorder()

	handler.OpenBook(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp ReadingProgressResponse
	err := json.NewDecoder(recorder.Body).Decode(&resp)
	require.NoError(t, err)
	assert.Equal(t, domain.ReadingStatusInProgress, resp.Status)
}

func TestCloseBook(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	bookID := uuid.New()

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantPage   int
	}{
		{
			name:       "progress recorded",
			body:       `{"page": 42}`,
			wantStatus: http.StatusOK,
			wantPage:   42,
		},
		{
			name:       "negative page",
			body:       `{"page": -1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "page past the end",
			body:       `{"page": 9000}`,
			serviceErr: domain.ErrPageOutOfRange,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shelfService := &mocks.MockShelfService{
				CloseBookFn: func(ctx context.Context, gotUserID, gotBookID uuid.UUID, page int) (*domain.ReadingProgress, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					progress := testProgress(gotBookID, gotUserID)
					progress.CurrentPage = page
					progress.Status = domain.ReadingStatusInProgress
					return progress, nil
				},
			}
			handler := NewShelfHandler(shelfService, nil)

			req := authenticatedRequest("POST", "/shelf/"+bookID.String()+"/close", []byte(tt.body), userID,
				map[string]string{"bookID": bookID.String()})
			recorder := httptest.NewRecorder()

			handler.CloseBook(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp ReadingProgressResponse
				err := json.NewDecoder(recorder.Body).Decode(&resp)
				require.NoError(t, err)
				assert.Equal(t, tt.wantPage, resp.CurrentPage)
			}
		})
	}
}
