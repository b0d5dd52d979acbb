package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email           string `json:"email"            validate:"required,email"`
	Username        string `json:"username"         validate:"required,min=1,max=50"`
	FirstName       string `json:"first_name"       validate:"required"`
	LastName        string `json:"last_name"        validate:"required"`
	Password        string `json:"password"         validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// UserResponse describes a user account without credential fields.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsPatron  bool      `json:"is_patron"`
	IsAuthor  bool      `json:"is_author"`
	IsAdmin   bool      `json:"is_admin"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsPatron:  u.IsPatron,
		IsAuthor:  u.IsAuthor,
		IsAdmin:   u.IsAdmin,
	}
}

// BecomePatronRequest defines the payload for patron registration.
type BecomePatronRequest struct {
	Address     string `json:"address"      validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// PatronProfileResponse describes a patron profile.
type PatronProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

func newPatronProfileResponse(p *domain.PatronProfile) PatronProfileResponse {
	return PatronProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Address:     p.Address,
		PhoneNumber: p.PhoneNumber,
		CreatedAt:   p.CreatedAt,
	}
}

// BecomeAuthorRequest defines the payload for author registration.
type BecomeAuthorRequest struct {
	BirthDate   time.Time `json:"birth_date"  validate:"required"`
	Nationality string    `json:"nationality" validate:"required"`
}

// AuthorProfileResponse describes an author profile.
type AuthorProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	BirthDate   time.Time `json:"birth_date"`
	Nationality string    `json:"nationality"`
	CreatedAt   time.Time `json:"created_at"`
}

func newAuthorProfileResponse(a *domain.AuthorProfile) AuthorProfileResponse {
	return AuthorProfileResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		BirthDate:   a.BirthDate,
		Nationality: a.Nationality,
		CreatedAt:   a.CreatedAt,
	}
}

// GenreRequest defines the payload for creating or updating a genre.
type GenreRequest struct {
	Name        string `json:"name"        validate:"required,max=50"`
	Description string `json:"description" validate:"required"`
}

// GenreResponse describes a genre.
type GenreResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

func newGenreResponse(g *domain.Genre) GenreResponse {
	return GenreResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
	}
}

// CreateBookRequest defines the payload for adding a book to the catalog.
// Genres are referenced by name and must already exist.
type CreateBookRequest struct {
	Title           string    `json:"title"            validate:"required,max=256"`
	ISBN            string    `json:"isbn"             validate:"required"`
	Description     string    `json:"description"      validate:"required"`
	PublishedOn     time.Time `json:"published_on"     validate:"required"`
	AvailableCopies int       `json:"available_copies" validate:"min=0"`
	PageCount       int       `json:"page_count"       validate:"required,min=1"`
	Genres          []string  `json:"genres"`
}

// UpdateBookRequest defines the payload for a partial book edit.
// Omitted fields are left unchanged.
type UpdateBookRequest struct {
	Title           *string    `json:"title,omitempty"`
	ISBN            *string    `json:"isbn,omitempty"`
	Description     *string    `json:"description,omitempty"`
	PublishedOn     *time.Time `json:"published_on,omitempty"`
	AvailableCopies *int       `json:"available_copies,omitempty"`
	PageCount       *int       `json:"page_count,omitempty"`
}

// LinkAuthorRequest references an author profile to credit on a book.
type LinkAuthorRequest struct {
	AuthorID uuid.UUID `json:"author_id" validate:"required"`
}

// LinkGenreRequest references a genre to tag a book with.
type LinkGenreRequest struct {
	GenreID uuid.UUID `json:"genre_id" validate:"required"`
}

// BookResponse describes a catalog book.
type BookResponse struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	ISBN            string      `json:"isbn"`
	Description     string      `json:"description"`
	AuthorIDs       []uuid.UUID `json:"author_ids"`
	GenreIDs        []uuid.UUID `json:"genre_ids"`
	Rating          float64     `json:"rating"`
	ReviewCount     int         `json:"review_count"`
	PublishedOn     time.Time   `json:"published_on"`
	AvailableCopies int         `json:"available_copies"`
	PageCount       int         `json:"page_count"`
}

func newBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		Description:     b.Description,
		AuthorIDs:       b.AuthorIDs,
		GenreIDs:        b.GenreIDs,
		Rating:          b.Rating,
		ReviewCount:     b.ReviewCount,
		PublishedOn:     b.PublishedOn,
		AvailableCopies: b.AvailableCopies,
		PageCount:       b.PageCount,
	}
}

func newBookListResponse(books []*domain.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, newBookResponse(b))
	}
	return out
}

// CreateReviewRequest defines the payload for reviewing a book.
type CreateReviewRequest struct {
	Rating  int    `json:"rating"  validate:"min=0,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// ReviewResponse describes a book review.
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"book_id"`
	PatronID  uuid.UUID `json:"patron_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func newReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		PatronID:  r.PatronID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// CloseBookRequest defines the payload for recording reading progress.
type CloseBookRequest struct {
	Page int `json:"page" validate:"min=0"`
}

// ReadingProgressResponse describes a shelf entry.
type ReadingProgressResponse struct {
	ID          uuid.UUID            `json:"id"`
	BookID      uuid.UUID            `json:"book_id"`
	TotalPages  int                  `json:"total_pages"`
	CurrentPage int                  `json:"current_page"`
	Status      domain.ReadingStatus `json:"status"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func newReadingProgressResponse(p *domain.ReadingProgress) ReadingProgressResponse {
	return ReadingProgressResponse{
		ID:          p.ID,
		BookID:      p.BookID,
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
		Status:      p.Status,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CheckoutRequest defines the payload for checking out a book.
type CheckoutRequest struct {
	BookID uuid.UUID `json:"book_id" validate:"required"`
}

// LoanResponse describes a loan.
type LoanResponse struct {
	ID           uuid.UUID         `json:"id"`
	BookID       uuid.UUID         `json:"book_id"`
	PatronID     uuid.UUID         `json:"patron_id"`
	CheckoutDate time.Time         `json:"checkout_date"`
	DueDate      time.Time         `json:"due_date"`
	FineAmount   int               `json:"fine_amount"`
	FinePaid     bool              `json:"fine_paid"`
	Status       domain.LoanStatus `json:"status"`
}

func newLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		ID:           l.ID,
		BookID:       l.BookID,
		PatronID:     l.PatronID,
		CheckoutDate: l.CheckoutDate,
		DueDate:      l.DueDate,
		FineAmount:   l.FineAmount,
		FinePaid:     l.FinePaid,
		Status:       l.Status,
	}
}
