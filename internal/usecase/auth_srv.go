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

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *utils.TokenService
	log    *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *utils.TokenService, log *zap.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), entity.ErrBadRequest)
	}

	// 2. Check username is free
	existing, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %s: %w", req.Username, entity.ErrConflict)
	}

	// 3. Hash password, never store plaintext
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Create user entity, registration always yields a regular role
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Role:         entity.RoleRegular,
	}

	// 5. Save user
	if err := s.users.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, err
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	return s.issueAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), entity.ErrBadRequest)
	}

	// 2. Find user
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 3. Same answer for unknown user and wrong password
	if user == nil {
		s.log.Warn("User not found for login", zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid credentials: %w", entity.ErrUnauthorized)
	}

	// 4. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("invalid credentials: %w", entity.ErrUnauthorized)
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	return s.issueAuthResponse(user)
}

// ==================== HELPER METHODS ====================

func (s *authService) issueAuthResponse(user *entity.User) (*response.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &response.AuthResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
