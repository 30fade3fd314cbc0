package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// ModerationService owns the comment lifecycle. A comment starts unapproved,
// an admin may approve it (making it publicly visible), take the approval
// back, or delete it. Votes ride along with create-only semantics.
type ModerationService interface {
	ListVisibleComments(ctx context.Context, movieID string) ([]*response.CommentResponse, error)
	CreateComment(ctx context.Context, userID int64, req *request.CreateCommentRequest) (*response.CommentCreatedResponse, error)
	SetApproved(ctx context.Context, commentID string, req *request.ModerateCommentRequest) error
	DeleteComment(ctx context.Context, commentID string) error

	CreateVote(ctx context.Context, userID int64, req *request.CreateVoteRequest) error
}

type moderationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewModerationService(repo *repository.Repository, log *zap.Logger) ModerationService {
	return &moderationService{
		repo: repo,
		log:  log.With(zap.String("service", "moderation")),
	}
}

// ListVisibleComments returns approved comments for an existing movie,
// annotated with the author's username only.
func (s *moderationService) ListVisibleComments(ctx context.Context, movieID string) ([]*response.CommentResponse, error) {
	// 1. The movie query param is mandatory and numeric
	id, err := utils.ParseID(movieID)
	if err != nil {
		return nil, fmt.Errorf("movie %s: %w", err.Error(), entity.ErrBadRequest)
	}

	// 2. The movie itself must exist
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", id, entity.ErrNotFound)
	}

	// 3. Only approved comments cross the public boundary
	comments, err := s.repo.Comment.FindApprovedByMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]*response.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		result = append(result, &response.CommentResponse{
			ID:     comment.ID,
			Author: comment.Author,
			Body:   comment.Body,
		})
	}

	return result, nil
}

// CreateComment inserts a new comment in the unapproved state regardless of
// anything the caller might claim about approval.
func (s *moderationService) CreateComment(ctx context.Context, userID int64, req *request.CreateCommentRequest) (*response.CommentCreatedResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), entity.ErrBadRequest)
	}

	// 2. The subject movie must exist
	movie, err := s.repo.Movie.FindByID(ctx, req.MovieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", req.MovieID, entity.ErrNotFound)
	}

	// 3. Create in the pending state, server-assigned timestamp
	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			CreatedAt: time.Now(),
		},
		UserID:   userID,
		MovieID:  req.MovieID,
		Body:     req.Body,
		Approved: false,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("user_id", userID),
		zap.Int64("movie_id", req.MovieID))

	return &response.CommentCreatedResponse{
		ID:        comment.ID,
		MovieID:   comment.MovieID,
		Body:      comment.Body,
		Approved:  comment.Approved,
		CreatedAt: comment.CreatedAt,
	}, nil
}

// SetApproved moves a comment between the pending and approved states, in
// either direction.
func (s *moderationService) SetApproved(ctx context.Context, commentID string, req *request.ModerateCommentRequest) error {
	// 1. Parse id
	id, err := utils.ParseID(commentID)
	if err != nil {
		return fmt.Errorf("comment %s: %w", err.Error(), entity.ErrBadRequest)
	}

	// 2. Validate: approved must be present, true or false
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Moderate comment validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), entity.ErrBadRequest)
	}

	// 3. Flip the flag
	if err := s.repo.Comment.SetApproved(ctx, id, *req.Approved); err != nil {
		return err
	}

	s.log.Info("Comment moderated",
		zap.Int64("comment_id", id),
		zap.Bool("approved", *req.Approved))

	return nil
}

func (s *moderationService) DeleteComment(ctx context.Context, commentID string) error {
	id, err := utils.ParseID(commentID)
	if err != nil {
		return fmt.Errorf("comment %s: %w", err.Error(), entity.ErrBadRequest)
	}

	return s.repo.Comment.Delete(ctx, id)
}

// CreateVote records a single user's rating contribution. Aggregation into
// the movie rating happens elsewhere, if at all.
func (s *moderationService) CreateVote(ctx context.Context, userID int64, req *request.CreateVoteRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create vote validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), entity.ErrBadRequest)
	}

	// 2. The subject movie must exist
	movie, err := s.repo.Movie.FindByID(ctx, req.MovieID)
	if err != nil {
		return err
	}
	if movie == nil {
		return fmt.Errorf("movie %d: %w", req.MovieID, entity.ErrNotFound)
	}

	// 3. Create
	vote := &entity.Vote{
		BaseSimple: entity.BaseSimple{
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		MovieID: req.MovieID,
		Rating:  req.Rating,
	}

	if err := s.repo.Vote.Create(ctx, vote); err != nil {
		return err
	}

	s.log.Info("Vote created",
		zap.Int64("vote_id", vote.ID),
		zap.Int64("user_id", userID),
		zap.Int64("movie_id", req.MovieID),
		zap.Int("rating", req.Rating))

	return nil
}
