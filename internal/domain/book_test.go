package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewBook(t *testing.T) {
	published := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)

	book, err := NewBook("The Tides", "978-0-306-40615-7", "A novel.", published, 3, 320)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if book.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if book.Rating != 0 || book.ReviewCount != 0 {
		t.Error("Expected a new book to have no rating aggregate")
	}
	if len(book.AuthorIDs) != 0 || len(book.GenreIDs) != 0 {
		t.Error("Expected a new book to have no associations yet")
	}

	cases := []struct {
		name    string
		title   string
		isbn    string
		desc    string
		pub     time.Time
		copies  int
		pages   int
		wantErr error
	}{
		{"empty title", "", "isbn", "desc", published, 1, 100, ErrEmptyBookTitle},
		{"title too long", strings.Repeat("t", 257), "isbn", "desc", published, 1, 100, ErrBookTitleTooLong},
		{"empty isbn", "Title", "", "desc", published, 1, 100, ErrEmptyBookISBN},
		{"empty description", "Title", "isbn", "", published, 1, 100, ErrEmptyBookDescription},
		{"zero publish date", "Title", "isbn", "desc", time.Time{}, 1, 100, ErrEmptyPublishYear},
		{"negative copies", "Title", "isbn", "desc", published, -1, 100, ErrNegativeCopies},
		{"zero pages", "Title", "isbn", "desc", published, 1, 0, ErrInvalidPageCount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBook(tc.title, tc.isbn, tc.desc, tc.pub, tc.copies, tc.pages)
			if err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestBookApply(t *testing.T) {
	published := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	book, err := NewBook("The Tides", "isbn-1", "A novel.", published, 3, 320)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	newTitle := "The Tides, Revised"
	newCopies := 5
	if err := book.Apply(BookUpdate{Title: &newTitle, AvailableCopies: &newCopies}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if book.Title != newTitle {
		t.Errorf("Expected title %q, got %q", newTitle, book.Title)
	}
	if book.AvailableCopies != newCopies {
		t.Errorf("Expected %d copies, got %d", newCopies, book.AvailableCopies)
	}
	// Untouched fields survive
	if book.ISBN != "isbn-1" {
		t.Errorf("Expected ISBN isbn-1, got %s", book.ISBN)
	}

	// A failing update leaves the book unchanged
	empty := ""
	if err := book.Apply(BookUpdate{Title: &empty}); err != ErrEmptyBookTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyBookTitle, err)
	}
	if book.Title != newTitle {
		t.Errorf("Expected title %q after failed update, got %q", newTitle, book.Title)
	}
}

func TestBookHasAuthorAndGenre(t *testing.T) {
	published := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	book, err := NewBook("The Tides", "isbn-1", "A novel.", published, 3, 320)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	authorID := uuid.New()
	genreID := uuid.New()
	book.AuthorIDs = []uuid.UUID{authorID}
	book.GenreIDs = []uuid.UUID{genreID}

	if !book.HasAuthor(authorID) {
		t.Error("Expected HasAuthor to report a linked author")
	}
	if book.HasAuthor(uuid.New()) {
		t.Error("Expected HasAuthor to reject an unknown author")
	}
	if !book.HasGenre(genreID) {
		t.Error("Expected HasGenre to report a linked genre")
	}
	if book.HasGenre(uuid.New()) {
		t.Error("Expected HasGenre to reject an unknown genre")
	}
}
