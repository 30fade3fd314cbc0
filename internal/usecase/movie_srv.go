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

type MovieService interface {
	GetMovies(ctx context.Context) ([]*response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context) ([]*response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*response.MovieResponse, 0, len(movies))
	for _, movie := range movies {
		result = append(result, convertMovieResponse(movie))
	}

	return result, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error) {
	// 1. Parse id; non-numeric is a caller error, not a missing movie
	id, err := utils.ParseID(movieID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), entity.ErrBadRequest)
	}

	// 2. Find movie
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", id, entity.ErrNotFound)
	}

	// 3. Attach vote count
	votes, err := s.repo.Vote.CountByMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	return &response.MovieDetailResponse{
		MovieResponse: *convertMovieResponse(movie),
		Votes:         votes,
	}, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	// 1. Validate before touching the store
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), entity.ErrBadRequest)
	}

	// 2. Create entity; rating stays unset until votes are aggregated elsewhere
	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Rating:      nil,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("name", movie.Name))

	return convertMovieResponse(movie), nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	// 1. Parse id
	id, err := utils.ParseID(movieID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), entity.ErrBadRequest)
	}

	// 2. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), entity.ErrBadRequest)
	}

	// 3. Find existing
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", id, entity.ErrNotFound)
	}

	// 4. Apply changes
	movie.Name = req.Name
	movie.Description = req.Description
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, err
	}

	s.log.Info("Movie updated", zap.Int64("movie_id", movie.ID))

	return convertMovieResponse(movie), nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := utils.ParseID(movieID)
	if err != nil {
		return fmt.Errorf("%s: %w", err.Error(), entity.ErrBadRequest)
	}

	// Cascade: the repo removes dependent comments and votes transactionally
	return s.repo.Movie.Delete(ctx, id)
}

func convertMovieResponse(movie *entity.Movie) *response.MovieResponse {
	return &response.MovieResponse{
		ID:          movie.ID,
		Name:        movie.Name,
		Description: movie.Description,
		Rating:      movie.Rating,
	}
}
