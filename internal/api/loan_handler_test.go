package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/api/shared"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/mocks"
	"github.com/openshelf/libra-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authenticatedRequest builds a request carrying the given user ID and any
// chi path parameters.
func authenticatedRequest(method, target string, body []byte, userID uuid.UUID, params map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)

	if len(params) > 0 {
		routeCtx := chi.NewRouteContext()
		for key, value := range params {
			routeCtx.URLParams.Add(key, value)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}

	return req.WithContext(ctx)
}

func testLoan(bookID, patronID uuid.UUID) *domain.Loan {
	now := time.Now().UTC()
	return &domain.Loan{
		ID:           uuid.New(),
		BookID:       bookID,
		PatronID:     patronID,
		CheckoutDate: now,
		DueDate:      now.Add(14 * 24 * time.Hour),
		Status:       domain.LoanStatusCheckedOut,
	}
}

func TestCheckoutBook(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	bookID := uuid.New()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		serviceErr error
		wantStatus int
	}{
		{
			name:       "successful checkout",
			payload:    map[string]interface{}{"book_id": bookID},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing book id",
			payload:    map[string]interface{}{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not a patron",
			payload:    map[string]interface{}{"book_id": bookID},
			serviceErr: domain.ErrNotPatron,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no copies available",
			payload:    map[string]interface{}{"book_id": bookID},
			serviceErr: store.ErrNoCopiesAvailable,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "book not found",
			payload:    map[string]interface{}{"book_id": bookID},
			serviceErr: store.ErrBookNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loanService := &mocks.MockLoanService{
				CheckoutBookFn: func(ctx context.Context, gotUserID, gotBookID uuid.UUID) (*domain.Loan, error) {
					assert.Equal(t, userID, gotUserID)
					assert.Equal(t, bookID, gotBookID)
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return testLoan(gotBookID, uuid.New()), nil
				},
			}
			handler := NewLoanHandler(loanService, nil)

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := authenticatedRequest("POST", "/loans", payloadBytes, userID, nil)
			recorder := httptest.NewRecorder()

			handler.CheckoutBook(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp LoanResponse
				err = json.NewDecoder(recorder.Body).Decode(&resp)
				require.NoError(t, err)
				assert.Equal(t, bookID, resp.BookID)
				assert.Equal(t, domain.LoanStatusCheckedOut, resp.Status)
			}
		})
	}
}

func TestReturnBook(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	loanID := uuid.New()

	tests := []struct {
		name       string
		loanParam  string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "successful return",
			loanParam:  loanID.String(),
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid loan id",
			loanParam:  "not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "loan not found",
			loanParam:  loanID.String(),
			serviceErr: store.ErrLoanNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "another patron's loan",
			loanParam:  loanID.String(),
			serviceErr: domain.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "already returned",
			loanParam:  loanID.String(),
			serviceErr: domain.ErrLoanNotActive,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loanService := &mocks.MockLoanService{
				ReturnBookFn: func(ctx context.Context, gotUserID, gotLoanID uuid.UUID) (*domain.Loan, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					loan := testLoan(uuid.New(), uuid.New())
					loan.ID = gotLoanID
					loan.Status = domain.LoanStatusReturned
					return loan, nil
				},
			}
			handler := NewLoanHandler(loanService, nil)

			req := authenticatedRequest("POST", "/loans/"+tt.loanParam+"/return", nil, userID,
				map[string]string{"id": tt.loanParam})
			recorder := httptest.NewRecorder()

			handler.ReturnBook(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp LoanResponse
				err := json.NewDecoder(recorder.Body).Decode(&resp)
				require.NoError(t, err)
				assert.Equal(t, loanID, resp.ID)
				assert.Equal(t, domain.LoanStatusReturned, resp.Status)
			}
		})
	}
}

func TestListLoans(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	loanService := &mocks.MockLoanService{
		ListLoansFn: func(ctx context.Context, gotUserID uuid.UUID) ([]*domain.Loan, error) {
			assert.Equal(t, userID, gotUserID)
			return []*domain.Loan{
				testLoan(uuid.New(), uuid.New()),
				testLoan(uuid.New(), uuid.New()),
			}, nil
		},
	}
	handler := NewLoanHandler(loanService, nil)

	req := authenticatedRequest("GET", "/loans", nil, userID, nil)
	recorder := httptest.NewRecorder()

	handler.ListLoans(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp []LoanResponse
	err := json.NewDecoder(recorder.Body).Decode(&resp)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
}
