// Package testutil provides in-memory repository fakes for service,
// middleware and router tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
)

// FakeStore bundles the fakes so cascades can reach across repositories the
// way the real transactions do.
type FakeStore struct {
	Users    *FakeUserRepo
	Movies   *FakeMovieRepo
	Comments *FakeCommentRepo
	Votes    *FakeVoteRepo
}

func NewFakeStore() *FakeStore {
	users := &FakeUserRepo{ByID: make(map[int64]*entity.User)}
	comments := &FakeCommentRepo{ByID: make(map[int64]*entity.Comment), users: users}
	votes := &FakeVoteRepo{ByID: make(map[int64]*entity.Vote)}
	movies := &FakeMovieRepo{ByID: make(map[int64]*entity.Movie), comments: comments, votes: votes}
	users.comments = comments
	users.votes = votes

	return &FakeStore{
		Users:    users,
		Movies:   movies,
		Comments: comments,
		Votes:    votes,
	}
}

// Repository adapts the store to the shape services are built from.
func (s *FakeStore) Repository() *repository.Repository {
	return &repository.Repository{
		User:    s.Users,
		Movie:   s.Movies,
		Comment: s.Comments,
		Vote:    s.Votes,
	}
}

// ==================== USERS ====================

type FakeUserRepo struct {
	mu       sync.Mutex
	ByID     map[int64]*entity.User
	nextID   int64
	comments *FakeCommentRepo
	votes    *FakeVoteRepo
}

func (f *FakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.ByID {
		if u.Username == user.Username {
			return fmt.Errorf("username %s: %w", user.Username, entity.ErrConflict)
		}
	}

	f.nextID++
	user.ID = f.nextID
	f.ByID[user.ID] = user
	return nil
}

func (f *FakeUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ByID[id], nil
}

func (f *FakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.ByID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *FakeUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := make([]*entity.User, 0, len(f.ByID))
	for _, u := range f.ByID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *FakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.ByID[user.ID]; !ok {
		return fmt.Errorf("user %d: %w", user.ID, entity.ErrNotFound)
	}
	for _, u := range f.ByID {
		if u.ID != user.ID && u.Username == user.Username {
			return fmt.Errorf("username %s: %w", user.Username, entity.ErrConflict)
		}
	}
	f.ByID[user.ID] = user
	return nil
}

func (f *FakeUserRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	if _, ok := f.ByID[id]; !ok {
		f.mu.Unlock()
		return fmt.Errorf("user %d: %w", id, entity.ErrNotFound)
	}
	delete(f.ByID, id)
	f.mu.Unlock()

	f.comments.deleteWhere(func(c *entity.Comment) bool { return c.UserID == id })
	f.votes.deleteWhere(func(v *entity.Vote) bool { return v.UserID == id })
	return nil
}

// ==================== MOVIES ====================

type FakeMovieRepo struct {
	mu       sync.Mutex
	ByID     map[int64]*entity.Movie
	nextID   int64
	comments *FakeCommentRepo
	votes    *FakeVoteRepo
}

func (f *FakeMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	movie.ID = f.nextID
	f.ByID[movie.ID] = movie
	return nil
}

func (f *FakeMovieRepo) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ByID[id], nil
}

func (f *FakeMovieRepo) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	movies := make([]*entity.Movie, 0, len(f.ByID))
	for _, m := range f.ByID {
		movies = append(movies, m)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (f *FakeMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.ByID[movie.ID]; !ok {
		return fmt.Errorf("movie %d: %w", movie.ID, entity.ErrNotFound)
	}
	f.ByID[movie.ID] = movie
	return nil
}

func (f *FakeMovieRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	if _, ok := f.ByID[id]; !ok {
		f.mu.Unlock()
		return fmt.Errorf("movie %d: %w", id, entity.ErrNotFound)
	}
	delete(f.ByID, id)
	f.mu.Unlock()

	f.comments.deleteWhere(func(c *entity.Comment) bool { return c.MovieID == id })
	f.votes.deleteWhere(func(v *entity.Vote) bool { return v.MovieID == id })
	return nil
}

// ==================== COMMENTS ====================

type FakeCommentRepo struct {
	mu     sync.Mutex
	ByID   map[int64]*entity.Comment
	nextID int64
	users  *FakeUserRepo
}

func (f *FakeCommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	comment.ID = f.nextID
	f.ByID[comment.ID] = comment
	return nil
}

func (f *FakeCommentRepo) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ByID[id], nil
}

func (f *FakeCommentRepo) FindApprovedByMovie(ctx context.Context, movieID int64) ([]*entity.CommentWithAuthor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var comments []*entity.CommentWithAuthor
	for _, c := range f.ByID {
		if c.MovieID != movieID || !c.Approved {
			continue
		}
		author := ""
		if u := f.users.ByID[c.UserID]; u != nil {
			author = u.Username
		}
		comments = append(comments, &entity.CommentWithAuthor{
			ID:     c.ID,
			Author: author,
			Body:   c.Body,
		})
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (f *FakeCommentRepo) SetApproved(ctx context.Context, id int64, approved bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	comment, ok := f.ByID[id]
	if !ok {
		return fmt.Errorf("comment %d: %w", id, entity.ErrNotFound)
	}
	comment.Approved = approved
	return nil
}

func (f *FakeCommentRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.ByID[id]; !ok {
		return fmt.Errorf("comment %d: %w", id, entity.ErrNotFound)
	}
	delete(f.ByID, id)
	return nil
}

func (f *FakeCommentRepo) deleteWhere(match func(*entity.Comment) bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, c := range f.ByID {
		if match(c) {
			delete(f.ByID, id)
		}
	}
}

// ==================== VOTES ====================

type FakeVoteRepo struct {
	mu     sync.Mutex
	ByID   map[int64]*entity.Vote
	nextID int64
}

func (f *FakeVoteRepo) Create(ctx context.Context, vote *entity.Vote) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	vote.ID = f.nextID
	f.ByID[vote.ID] = vote
	return nil
}

func (f *FakeVoteRepo) CountByMovie(ctx context.Context, movieID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, v := range f.ByID {
		if v.MovieID == movieID {
			count++
		}
	}
	return count, nil
}

func (f *FakeVoteRepo) deleteWhere(match func(*entity.Vote) bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, v := range f.ByID {
		if match(v) {
			delete(f.ByID, id)
		}
	}
}
