package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewReadingProgress(t *testing.T) {
	progress, err := NewReadingProgress(uuid.New(), uuid.New(), 320)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if progress.Status != ReadingStatusUnread {
		t.Errorf("Expected status %s, got %s", ReadingStatusUnread, progress.Status)
	}
	if progress.CurrentPage != 0 {
		t.Errorf("Expected current page 0, got %d", progress.CurrentPage)
	}
	if progress.TotalPages != 320 {
		t.Errorf("Expected total pages 320, got %d", progress.TotalPages)
	}

	_, err = NewReadingProgress(uuid.Nil, uuid.New(), 320)
	if err != ErrEmptyProgressBookID {
		t.Errorf("Expected error %v, got %v", ErrEmptyProgressBookID, err)
	}

	_, err = NewReadingProgress(uuid.New(), uuid.Nil, 320)
	if err != ErrEmptyProgressUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyProgressUserID, err)
	}

	_, err = NewReadingProgress(uuid.New(), uuid.New(), 0)
	if err != ErrInvalidTotalPages {
		t.Errorf("Expected error %v, got %v", ErrInvalidTotalPages, err)
	}
}

func TestReadingProgressOpen(t *testing.T) {
	progress, err := NewReadingProgress(uuid.New(), uuid.New(), 320)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	progress.Open()
	if progress.Status != ReadingStatusInProgress {
		t.Errorf("Expected status %s, got %s", ReadingStatusInProgress, progress.Status)
	}

	// Opening a finished book does not reset it
	progress.Status = ReadingStatusFinished
	progress.Open()
	if progress.Status != ReadingStatusFinished {
		t.Errorf("Expected status %s, got %s", ReadingStatusFinished, progress.Status)
	}
}

func TestReadingProgressClose(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		wantStatus ReadingStatus
		wantErr    error
	}{
		{name: "mid book", page: 150, wantStatus: ReadingStatusInProgress},
		{name: "last page", page: 320, wantStatus: ReadingStatusFinished},
		{name: "back to start", page: 0, wantStatus: ReadingStatusInProgress},
		{name: "negative page", page: -1, wantErr: ErrPageOutOfRange},
		{name: "past the end", page: 321, wantErr: ErrPageOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			progress, err := NewReadingProgress(uuid.New(), uuid.New(), 320)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			err = progress.Close(tc.page)
			if tc.wantErr != nil {
				if err != tc.wantErr {
					t.Errorf("Expected error %v, got %v", tc.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if progress.CurrentPage != tc.page {
				t.Errorf("Expected current page %d, got %d", tc.page, progress.CurrentPage)
			}
			if progress.Status != tc.wantStatus {
				t.Errorf("Expected status %s, got %s", tc.wantStatus, progress.Status)
			}
		})
	}
}
