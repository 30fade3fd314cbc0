package repository

import (
	"context"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)
	FindApprovedByMovie(ctx context.Context, movieID int64) ([]*entity.CommentWithAuthor, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (user_id, movie_id, body, approved, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		comment.UserID,
		comment.MovieID,
		comment.Body,
		comment.Approved,
		comment.CreatedAt,
	).Scan(&comment.ID)

	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.Int64("user_id", comment.UserID),
			zap.Int64("movie_id", comment.MovieID),
		)
		return fmt.Errorf("create comment for movie %d by user %d: %w",
			comment.MovieID, comment.UserID, err)
	}

	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	query := `
		SELECT id, user_id, movie_id, body, approved, created_at
		FROM comments
		WHERE id = $1
	`

	var comment entity.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.MovieID,
		&comment.Body,
		&comment.Approved,
		&comment.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID",
			zap.Error(err),
			zap.Int64("comment_id", id),
		)
		return nil, fmt.Errorf("find comment by ID %d: %w", id, err)
	}

	return &comment, nil
}

// FindApprovedByMovie returns only approved comments, joined with the
// author's username. Unapproved comments never leave this query.
func (r *commentRepository) FindApprovedByMovie(ctx context.Context, movieID int64) ([]*entity.CommentWithAuthor, error) {
	query := `
		SELECT c.id, u.username, c.body
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.movie_id = $1 AND c.approved = TRUE
		ORDER BY c.created_at
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find approved comments",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find approved comments for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	var comments []*entity.CommentWithAuthor
	for rows.Next() {
		var comment entity.CommentWithAuthor
		err := rows.Scan(
			&comment.ID,
			&comment.Author,
			&comment.Body,
		)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate comments rows: %w", err)
	}

	return comments, nil
}

// SetApproved flips the moderation flag. Concurrent updates on the same
// comment are last-write-wins, which is the intended semantics.
func (r *commentRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	query := `UPDATE comments SET approved = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, approved)
	if err != nil {
		r.log.Error("Failed to set comment approval",
			zap.Error(err),
			zap.Int64("comment_id", id),
			zap.Bool("approved", approved),
		)
		return fmt.Errorf("set approval of comment %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %d: %w", id, entity.ErrNotFound)
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM comments WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete comment",
			zap.Error(err),
			zap.Int64("comment_id", id),
		)
		return fmt.Errorf("delete comment %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %d: %w", id, entity.ErrNotFound)
	}

	r.log.Info("Comment deleted", zap.Int64("comment_id", id))
	return nil
}
