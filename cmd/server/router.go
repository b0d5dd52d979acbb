package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openshelf/libra-api/internal/api"
	apiMiddleware "github.com/openshelf/libra-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	tokenLifetime := time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.tokenRevoker,
		tokenLifetime,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.tokenRevoker)

	accountHandler := api.NewAccountHandler(app.accountService, app.logger)
	genreHandler := api.NewGenreHandler(app.genreStore, app.logger)
	bookHandler := api.NewBookHandler(app.bookService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	shelfHandler := api.NewShelfHandler(app.shelfService, app.logger)
	loanHandler := api.NewLoanHandler(app.loanService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/auth/logout", authHandler.Logout)

			// Role registration and profiles
			r.Post("/account/patron", accountHandler.BecomePatron)
			r.Get("/account/patron", accountHandler.GetPatronProfile)
			r.Post("/account/author", accountHandler.BecomeAuthor)
			r.Get("/account/author", accountHandler.GetAuthorProfile)
			r.Get("/authors", accountHandler.ListAuthors)

			// Genre catalog
			r.Post("/genres", genreHandler.CreateGenre)
			r.Get("/genres", genreHandler.ListGenres)
			r.Get("/genres/{id}", genreHandler.GetGenre)
			r.Put("/genres/{id}", genreHandler.UpdateGenre)
			r.Delete("/genres/{id}", genreHandler.DeleteGenre)

			// Book catalog
			r.Post("/books", bookHandler.CreateBook)
			r.Get("/books", bookHandler.ListBooks)
			r.Get("/books/mine", bookHandler.ListMyBooks)
			r.Get("/books/{id}", bookHandler.GetBook)
			r.Patch("/books/{id}", bookHandler.UpdateBook)
			r.Delete("/books/{id}", bookHandler.DeleteBook)
			r.Post("/books/{id}/authors", bookHandler.AddAuthor)
			r.Delete("/books/{id}/authors/{authorID}", bookHandler.RemoveAuthor)
			r.Post("/books/{id}/genres", bookHandler.AddGenre)
			r.Delete("/books/{id}/genres/{genreID}", bookHandler.RemoveGenre)

			// Reviews
			r.Post("/books/{id}/reviews", reviewHandler.CreateReview)
			r.Get("/books/{id}/reviews", reviewHandler.ListReviews)

			// Personal shelf
			r.Get("/shelf", shelfHandler.ListShelf)
			r.Post("/shelf/{bookID}", shelfHandler.AddToShelf)
			r.Delete("/shelf/{bookID}", shelfHandler.RemoveFromShelf)
			r.Post("/shelf/{bookID}/open", shelfHandler.OpenBook)
			r.Post("/shelf/{bookID}/close", shelfHandler.CloseBook)

			// Lending
			r.Post("/loans", loanHandler.CheckoutBook)
			r.Get("/loans", loanHandler.ListLoans)
			r.Post("/loans/{id}/return", loanHandler.ReturnBook)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
