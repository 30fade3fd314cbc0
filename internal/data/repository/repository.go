package repository

import (
	"movie-catalog/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Movie   MovieRepository
	Comment CommentRepository
	Vote    VoteRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Movie:   NewMovieRepository(db, log),
		Comment: NewCommentRepository(db, log),
		Vote:    NewVoteRepository(db, log),
	}
}
