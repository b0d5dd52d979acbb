package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthorStore implements store.AuthorStore backed by a single profile.
type stubAuthorStore struct {
	profile *domain.AuthorProfile
}

func (s *stubAuthorStore) Create(ctx context.Context, profile *domain.AuthorProfile) error {
	return nil
}

func (s *stubAuthorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AuthorProfile, error) {
	if s.profile != nil && s.profile.ID == id {
		return s.profile, nil
	}
	return nil, store.ErrAuthorNotFound
}

func (s *stubAuthorStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.AuthorProfile, error) {
	if s.profile != nil && s.profile.UserID == userID {
		return s.profile, nil
	}
	return nil, store.ErrAuthorNotFound
}

func (s *stubAuthorStore) List(ctx context.Context) ([]*domain.AuthorProfile, error) {
	return nil, nil
}

func (s *stubAuthorStore) WithTx(tx *sql.Tx) store.AuthorStore { return s }

// stubGenreStore implements store.GenreStore; every method is a no-op.
type stubGenreStore struct{}

func (s *stubGenreStore) Create(ctx context.Context, genre *domain.Genre) error { return nil }
func (s *stubGenreStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Genre, error) {
	return nil, store.ErrGenreNotFound
}
func (s *stubGenreStore) GetByName(ctx context.Context, name string) (*domain.Genre, error) {
	return nil, store.ErrGenreNotFound
}
func (s *stubGenreStore) List(ctx context.Context, filter store.GenreFilter) ([]*domain.Genre, error) {
	return nil, nil
}
func (s *stubGenreStore) Update(ctx context.Context, genre *domain.Genre) error { return nil }
func (s *stubGenreStore) Delete(ctx context.Context, id uuid.UUID) error        { return nil }
func (s *stubGenreStore) WithTx(tx *sql.Tx) store.GenreStore                    { return s }

func testAuthorProfile() *domain.AuthorProfile {
	return &domain.AuthorProfile{
		ID:     uuid.New(),
		UserID: uuid.New(),
	}
}

func authoredBook(t *testing.T, authorID uuid.UUID) *domain.Book {
	t.Helper()
	published := time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)
	book, err := domain.NewBook("Dune", "9780441013593", "Desert planet epic", published, 2, 412)
	require.NoError(t, err)
	book.AuthorIDs = []uuid.UUID{authorID}
	return book
}

func newTestBookService(t *testing.T, books *stubBookStore, authors *stubAuthorStore) BookService {
	t.Helper()
	svc, err := NewBookService(books, &stubGenreStore{}, authors, &sql.DB{}, nil)
	require.NoError(t, err)
	return svc
}

func TestNewBookService(t *testing.T) {
	t.Parallel()

	db := &sql.DB{}

	_, err := NewBookService(nil, &stubGenreStore{}, &stubAuthorStore{}, db, nil)
	assert.Error(t, err, "nil book store should be rejected")

	_, err = NewBookService(&stubBookStore{}, nil, &stubAuthorStore{}, db, nil)
	assert.Error(t, err, "nil genre store should be rejected")

	_, err = NewBookService(&stubBookStore{}, &stubGenreStore{}, nil, db, nil)
	assert.Error(t, err, "nil author store should be rejected")
}

func TestUpdateBookRequiresAuthor(t *testing.T) {
	t.Parallel()

	svc := newTestBookService(t, &stubBookStore{}, &stubAuthorStore{})

	newTitle := "Renamed"
	_, err := svc.UpdateBook(context.Background(), uuid.New(), uuid.New(), domain.BookUpdate{Title: &newTitle})
	assert.ErrorIs(t, err, domain.ErrNotAuthor)
}

func TestUpdateBookByNonAuthorOfBook(t *testing.T) {
	t.Parallel()

	author := testAuthorProfile()
	someoneElsesBook := authoredBook(t, uuid.New())

	updateCalled := false
	books := &stubBookStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
			return someoneElsesBook, nil
		},
		UpdateFn: func(ctx context.Context, book *domain.Book) error {
			updateCalled = true
			return nil
		},
	}
	svc := newTestBookService(t, books, &stubAuthorStore{profile: author})

	newTitle := "Hijacked"
	_, err := svc.UpdateBook(context.Background(), author.UserID, someoneElsesBook.ID, domain.BookUpdate{Title: &newTitle})
	assert.ErrorIs(t, err, domain.ErrNotBookAuthor)
	assert.False(t, updateCalled, "update should not reach the store")
}

func TestUpdateBookByAuthor(t *testing.T) {
	t.Parallel()

	author := testAuthorProfile()
	book := authoredBook(t, author.ID)

	var saved *domain.Book
	books := &stubBookStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
			assert.Equal(t, book.ID, id)
			return book, nil
		},
		UpdateFn: func(ctx context.Context, b *domain.Book) error {
			saved = b
			return nil
		},
	}
	svc := newTestBookService(t, books, &stubAuthorStore{profile: author})

	newTitle := "Dune Messiah"
	got, err := svc.UpdateBook(context.Background(), author.UserID, book.ID, domain.BookUpdate{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)
	require.NotNil(t, saved, "changes should be persisted")
	assert.Equal(t, "Dune Messiah", saved.Title)
}

func TestDeleteBookByNonAuthorOfBook(t *testing.T) {
	t.Parallel()

	author := testAuthorProfile()
	someoneElsesBook := authoredBook(t, uuid.New())

	deleteCalled := false
	books := &stubBookStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
			return someoneElsesBook, nil
		},
		DeleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleteCalled = true
			return nil
		},
	}
	svc := newTestBookService(t, books, &stubAuthorStore{profile: author})

	err := svc.DeleteBook(context.Background(), author.UserID, someoneElsesBook.ID)
	assert.ErrorIs(t, err, domain.ErrNotBookAuthor)
	assert.False(t, deleteCalled, "delete should not reach the store")
}

func TestDeleteBookByAuthor(t *testing.T) {
	t.Parallel()

	author := testAuthorProfile()
	book := authoredBook(t, author.ID)

	deleted := uuid.Nil
	books := &stubBookStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
			return book, nil
		},
		DeleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}
	svc := newTestBookService(t, books, &stubAuthorStore{profile: author})

	err := svc.DeleteBook(context.Background(), author.UserID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, deleted)
}

func TestRemoveBookAuthorKeepsLastCredit(t *testing.T) {
	t.Parallel()

	author := testAuthorProfile()
	book := authoredBook(t, author.ID)

	books := &stubBookStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
			return book, nil
		},
	}
	svc := newTestBookService(t, books, &stubAuthorStore{profile: author})

	err := svc.RemoveBookAuthor(context.Background(), author.UserID, book.ID, author.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
