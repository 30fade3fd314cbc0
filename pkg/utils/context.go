package utils

import (
	"context"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return 0, false
	}

	userID, ok := userIDVal.(int64)
	if !ok || userID <= 0 {
		return 0, false
	}

	return userID, true
}

func GetRoleFromContext(ctx context.Context) (int, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return 0, false
	}

	role, ok := roleVal.(int)
	return role, ok
}

func SetUserContext(ctx context.Context, userID int64, role int) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}
