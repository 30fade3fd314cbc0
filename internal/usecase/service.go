package usecase

import (
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Movie      MovieService
	Moderation ModerationService
}

func NewService(repo *repository.Repository, tokens *utils.TokenService, log *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(repo.User, tokens, log),
		User:       NewUserService(repo.User, log),
		Movie:      NewMovieService(repo, log),
		Moderation: NewModerationService(repo, log),
	}
}
