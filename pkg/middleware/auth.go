package middleware

import (
	"errors"
	"net/http"
	"strings"

	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Auth middleware validates the bearer token and resolves the acting user.
// A token whose subject no longer exists in the store is rejected.
func Auth(tokens *utils.TokenService, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := strings.TrimSpace(parts[1])

			userID, err := tokens.Verify(token)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					utils.ResponseUnauthorized(w, "Token expired")
					return
				}
				logger.Warn("Invalid token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			// Resolve user: the token may outlive the account
			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to resolve token user",
					zap.Int64("user_id", userID),
					zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil {
				logger.Warn("Token references missing user", zap.Int64("user_id", userID))
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin - middleware checking the admin role, stacked after Auth
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Get user ID from context (set by Auth)
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			// 2. Check role from context
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok || role != 1 {
				logger.Warn("Admin check: non-admin access attempt",
					zap.Int64("user_id", userID),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			// 3. Continue to handler
			next.ServeHTTP(w, r)
		})
	}
}
