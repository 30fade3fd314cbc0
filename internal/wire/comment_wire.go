package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	repo *repository.Repository,
	tokens *utils.TokenService,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /comments?movie={id} - approved comments only
	r.Get("/comments", commentHandler.GetComments)

	// ==================== AUTHENTICATED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens, repo.User, log))

		r.Post("/comments", commentHandler.CreateComment) // POST /comments
		r.Post("/votes", commentHandler.CreateVote)       // POST /votes
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/admin/comments", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, repo.User, log)) // Must be authenticated
		r.Use(middleware.Admin(log))                   // Must be admin

		r.Put("/{id}", commentHandler.ModerateComment)  // PUT /admin/comments/{id}
		r.Delete("/{id}", commentHandler.DeleteComment) // DELETE /admin/comments/{id}
	})
}
