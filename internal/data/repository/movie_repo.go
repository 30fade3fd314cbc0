package repository

import (
	"context"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (name, description, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		movie.Name,
		movie.Description,
		movie.Rating,
		movie.CreatedAt,
		movie.UpdatedAt,
	).Scan(&movie.ID)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("name", movie.Name),
		)
		return fmt.Errorf("create movie %s: %w", movie.Name, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `
		SELECT id, name, description, rating, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Name,
		&movie.Description,
		&movie.Rating,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("find movie by ID %d: %w", id, err)
	}

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	query := `
		SELECT id, name, description, rating, created_at, updated_at
		FROM movies
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all movies", zap.Error(err))
		return nil, fmt.Errorf("find all movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Name,
			&movie.Description,
			&movie.Rating,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movies rows: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Name,
		movie.Description,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %d: %w", movie.ID, entity.ErrNotFound)
	}

	return nil
}

// Delete removes a movie with its comments and votes in one transaction
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin delete transaction", zap.Error(err))
		return fmt.Errorf("begin delete movie %d: %w", id, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE movie_id = $1`, id); err != nil {
		r.log.Error("Failed to delete movie comments", zap.Error(err), zap.Int64("movie_id", id))
		return fmt.Errorf("delete comments of movie %d: %w", id, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM votes WHERE movie_id = $1`, id); err != nil {
		r.log.Error("Failed to delete movie votes", zap.Error(err), zap.Int64("movie_id", id))
		return fmt.Errorf("delete votes of movie %d: %w", id, err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie", zap.Error(err), zap.Int64("movie_id", id))
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %d: %w", id, entity.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit movie delete", zap.Error(err), zap.Int64("movie_id", id))
		return fmt.Errorf("commit delete movie %d: %w", id, err)
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}
