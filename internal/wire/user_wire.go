package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	tokens *utils.TokenService,
	log *zap.Logger,
) {
	// Every /api/users route requires authentication; mutations require admin
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, repo.User, log))

		// Reads: least privilege, the service narrows non-admins to themselves
		r.Get("/", userHandler.GetUsers)
		r.Get("/{id}", userHandler.GetUserByID)

		// Mutations: admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.Admin(log))

			r.Post("/", userHandler.CreateUser)
			r.Put("/{id}", userHandler.UpdateUser)
			r.Delete("/{id}", userHandler.DeleteUser)
		})
	})
}
