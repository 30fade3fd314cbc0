package repository

import (
	"context"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"go.uber.org/zap"
)

// VoteRepository is create-only: votes carry no moderation state and
// aggregation into the movie rating is not performed here.
type VoteRepository interface {
	Create(ctx context.Context, vote *entity.Vote) error
	CountByMovie(ctx context.Context, movieID int64) (int64, error)
}

type voteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVoteRepository(db database.PgxIface, log *zap.Logger) VoteRepository {
	return &voteRepository{
		db:  db,
		log: log.With(zap.String("repository", "vote")),
	}
}

func (r *voteRepository) Create(ctx context.Context, vote *entity.Vote) error {
	query := `
		INSERT INTO votes (user_id, movie_id, rating, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		vote.UserID,
		vote.MovieID,
		vote.Rating,
		vote.CreatedAt,
	).Scan(&vote.ID)

	if err != nil {
		r.log.Error("Failed to create vote",
			zap.Error(err),
			zap.Int64("user_id", vote.UserID),
			zap.Int64("movie_id", vote.MovieID),
		)
		return fmt.Errorf("create vote for movie %d by user %d: %w",
			vote.MovieID, vote.UserID, err)
	}

	return nil
}

func (r *voteRepository) CountByMovie(ctx context.Context, movieID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM votes WHERE movie_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, movieID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count votes",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return 0, fmt.Errorf("count votes for movie %d: %w", movieID, err)
	}

	return count, nil
}
