package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/service"
	"github.com/openshelf/libra-api/internal/store"
)

// MockAccountService implements service.AccountService for testing
type MockAccountService struct {
	BecomePatronFn     func(ctx context.Context, userID uuid.UUID, address, phoneNumber string) (*domain.PatronProfile, error)
	BecomeAuthorFn     func(ctx context.Context, userID uuid.UUID, birthDate time.Time, nationality string) (*domain.AuthorProfile, error)
	GetPatronProfileFn func(ctx context.Context, userID uuid.UUID) (*domain.PatronProfile, error)
	GetAuthorProfileFn func(ctx context.Context, userID uuid.UUID) (*domain.AuthorProfile, error)
	ListAuthorsFn      func(ctx context.Context) ([]*domain.AuthorProfile, error)
}

func (m *MockAccountService) BecomePatron(ctx context.Context, userID uuid.UUID, address, phoneNumber string) (*domain.PatronProfile, error) {
	return m.BecomePatronFn(ctx, userID, address, phoneNumber)
}

func (m *MockAccountService) BecomeAuthor(ctx context.Context, userID uuid.UUID, birthDate time.Time, nationality string) (*domain.AuthorProfile, error) {
	return m.BecomeAuthorFn(ctx, userID, birthDate, nationality)
}

func (m *MockAccountService) GetPatronProfile(ctx context.Context, userID uuid.UUID) (*domain.PatronProfile, error) {
	return m.GetPatronProfileFn(ctx, userID)
}

func (m *MockAccountService) GetAuthorProfile(ctx context.Context, userID uuid.UUID) (*domain.AuthorProfile, error) {
	return m.GetAuthorProfileFn(ctx, userID)
}

func (m *MockAccountService) ListAuthors(ctx context.Context) ([]*domain.AuthorProfile, error) {
	return m.ListAuthorsFn(ctx)
}

// MockBookService implements service.BookService for testing
type MockBookService struct {
	CreateBookFn       func(ctx context.Context, userID uuid.UUID, params service.NewBookParams) (*domain.Book, error)
	GetBookFn          func(ctx context.Context, bookID uuid.UUID) (*domain.Book, error)
	ListBooksFn        func(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error)
	ListMyBooksFn      func(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error)
	UpdateBookFn       func(ctx context.Context, userID, bookID uuid.UUID, update domain.BookUpdate) (*domain.Book, error)
	DeleteBookFn       func(ctx context.Context, userID, bookID uuid.UUID) error
	AddBookAuthorFn    func(ctx context.Context, userID, bookID, authorID uuid.UUID) error
	RemoveBookAuthorFn func(ctx context.Context, userID, bookID, authorID uuid.UUID) error
	AddBookGenreFn     func(ctx context.Context, userID, bookID, genreID uuid.UUID) error
	RemoveBookGenreFn  func(ctx context.Context, userID, bookID, genreID uuid.UUID) error
}

func (m *MockBookService) CreateBook(ctx context.Context, userID uuid.UUID, params service.NewBookParams) (*domain.Book, error) {
	return m.CreateBookFn(ctx, userID, params)
}

func (m *MockBookService) GetBook(ctx context.Context, bookID uuid.UUID) (*domain.Book, error) {
	return m.GetBookFn(ctx, bookID)
}

func (m *MockBookService) ListBooks(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	return m.ListBooksFn(ctx, filter)
}

func (m *MockBookService) ListMyBooks(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error) {
	return m.ListMyBooksFn(ctx, userID)
}

func (m *MockBookService) UpdateBook(ctx context.Context, userID, bookID uuid.UUID, update domain.BookUpdate) (*domain.Book, error) {
	return m.UpdateBookFn(ctx, userID, bookID, update)
}

func (m *MockBookService) DeleteBook(ctx context.Context, userID, bookID uuid.UUID) error {
	return m.DeleteBookFn(ctx, userID, bookID)
}

func (m *MockBookService) AddBookAuthor(ctx context.Context, userID, bookID, authorID uuid.UUID) error {
	return m.AddBookAuthorFn(ctx, userID, bookID, authorID)
}

func (m *MockBookService) RemoveBookAuthor(ctx context.Context, userID, bookID, authorID uuid.UUID) error {
	return m.RemoveBookAuthorFn(ctx, userID, bookID, authorID)
}

func (m *MockBookService) AddBookGenre(ctx context.Context, userID, bookID, genreID uuid.UUID) error {
	return m.AddBookGenreFn(ctx, userID, bookID, genreID)
}

func (m *MockBookService) RemoveBookGenre(ctx context.Context, userID, bookID, genreID uuid.UUID) error {
	return m.RemoveBookGenreFn(ctx, userID, bookID, genreID)
}

// MockLoanService implements service.LoanService for testing
type MockLoanService struct {
	CheckoutBookFn       func(ctx context.Context, userID, bookID uuid.UUID) (*domain.Loan, error)
	ReturnBookFn         func(ctx context.Context, userID, loanID uuid.UUID) (*domain.Loan, error)
	ListLoansFn          func(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)
	AssessOverdueFinesFn func(ctx context.Context, now time.Time) (int, error)
}

func (m *MockLoanService) CheckoutBook(ctx context.Context, userID, bookID uuid.UUID) (*domain.Loan, error) {
	return m.CheckoutBookFn(ctx, userID, bookID)
}

func (m *MockLoanService) ReturnBook(ctx context.Context, userID, loanID uuid.UUID) (*domain.Loan, error) {
	return m.ReturnBookFn(ctx, userID, loanID)
}

func (m *MockLoanService) ListLoans(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	return m.ListLoansFn(ctx, userID)
}

func (m *MockLoanService) AssessOverdueFines(ctx context.Context, now time.Time) (int, error) {
	return m.AssessOverdueFinesFn(ctx, now)
}

// MockReviewService implements service.ReviewService for testing
type MockReviewService struct {
	CreateReviewFn func(ctx context.Context, userID, bookID uuid.UUID, rating int, comment string) (*domain.Review, error)
	ListReviewsFn  func(ctx context.Context, bookID uuid.UUID) ([]*domain.Review, error)
}

func (m *MockReviewService) CreateReview(ctx context.Context, userID, bookID uuid.UUID, rating int, comment string) (*domain.Review, error) {
	return m.CreateReviewFn(ctx, userID, bookID, rating, comment)
}

func (m *MockReviewService) ListReviews(ctx context.Context, bookID uuid.UUID) ([]*domain.Review, error) {
	return m.ListReviewsFn(ctx, bookID)
}

// MockShelfService implements service.ShelfService for testing
type MockShelfService struct {
	AddToShelfFn      func(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error)
	RemoveFromShelfFn func(ctx context.Context, userID, bookID uuid.UUID) error
	ListShelfFn       func(ctx context.Context, userID uuid.UUID) ([]*domain.ReadingProgress, error)
	OpenBookFn        func(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error)
	CloseBookFn       func(ctx context.Context, userID, bookID uuid.UUID, page int) (*domain.ReadingProgress, error)
}

func (m *MockShelfService) AddToShelf(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error) {
	return m.AddToShelfFn(ctx, userID, bookID)
}

func (m *MockShelfService) RemoveFromShelf(ctx context.Context, userID, bookID uuid.UUID) error {
	return m.RemoveFromShelfFn(ctx, userID, bookID)
}

func (m *MockShelfService) ListShelf(ctx context.Context, userID uuid.UUID) ([]*domain.ReadingProgress, error) {
	return m.ListShelfFn(ctx, userID)
}

func (m *MockShelfService) OpenBook(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error) {
	return m.OpenBookFn(ctx, userID, bookID)
}

func (m *MockShelfService) CloseBook(ctx context.Context, userID, bookID uuid.UUID, page int) (*domain.ReadingProgress, error) {
	return m.CloseBookFn(ctx, userID, bookID, page)
}
