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

type UserService interface {
	// Reads are least-privilege: regular users only see their own record
	GetUsers(ctx context.Context, actorID int64, actorRole int) ([]*response.UserResponse, error)
	GetUserByID(ctx context.Context, actorID int64, actorRole int, userID string) (*response.UserResponse, error)

	// Mutations are admin-only (enforced by the route middleware)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetUsers(ctx context.Context, actorID int64, actorRole int) ([]*response.UserResponse, error) {
	// Regular users get a list containing only themselves
	if actorRole != entity.RoleAdmin {
		self, err := s.users.FindByID(ctx, actorID)
		if err != nil {
			return nil, fmt.Errorf("find user %d: %w", actorID, err)
		}
		if self == nil {
			return nil, fmt.Errorf("user %d: %w", actorID, entity.ErrNotFound)
		}
		return []*response.UserResponse{convertUserResponse(self)}, nil
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*response.UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, convertUserResponse(user))
	}

	return result, nil
}

func (s *userService) GetUserByID(ctx context.Context, actorID int64, actorRole int, userID string) (*response.UserResponse, error) {
	// 1. Parse id
	id, err := utils.ParseID(userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), entity.ErrBadRequest)
	}

	// 2. Regular users may only read themselves
	if actorRole != entity.RoleAdmin && actorID != id {
		return nil, fmt.Errorf("user %d: %w", id, entity.ErrForbidden)
	}

	// 3. Find user
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, entity.ErrNotFound)
	}

	return convertUserResponse(user), nil
}

func (s *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), entity.ErrBadRequest)
	}

	// 2. Check uniqueness before the insert; the repo's unique index is the backstop
	existing, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %s: %w", req.Username, entity.ErrConflict)
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Create
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Role:         req.Role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Int("role", user.Role))

	return convertUserResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	// 1. Parse id
	id, err := utils.ParseID(userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), entity.ErrBadRequest)
	}

	// 2. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), entity.ErrBadRequest)
	}

	// 3. Find existing
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, entity.ErrNotFound)
	}

	// 4. Apply changes; empty password keeps the current hash
	user.Username = req.Username
	user.Role = req.Role
	user.UpdatedAt = time.Now()

	if req.Password != "" {
		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			s.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hashedPassword
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User updated", zap.Int64("user_id", user.ID))

	return convertUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	id, err := utils.ParseID(userID)
	if err != nil {
		return fmt.Errorf("%s: %w", err.Error(), entity.ErrBadRequest)
	}

	return s.users.Delete(ctx, id)
}

func convertUserResponse(user *entity.User) *response.UserResponse {
	return &response.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
