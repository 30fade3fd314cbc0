package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	tokens *utils.TokenService,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /movies - list movies (public, anyone can view)
	r.Get("/movies", movieHandler.GetMovies)

	// GET /movies/{id} - movie details (public)
	r.Get("/movies/{id}", movieHandler.GetMovieByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/admin/movies", func(r chi.Router) {
		// Apply middleware to all routes in this group
		r.Use(middleware.Auth(tokens, repo.User, log)) // Must be authenticated
		r.Use(middleware.Admin(log))                   // Must be admin

		r.Post("/", movieHandler.CreateMovie)       // POST /admin/movies
		r.Put("/{id}", movieHandler.UpdateMovie)    // PUT /admin/movies/{id}
		r.Delete("/{id}", movieHandler.DeleteMovie) // DELETE /admin/movies/{id}
	})
}
