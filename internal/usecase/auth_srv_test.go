package usecase_test

import (
	"context"
	"testing"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/testutil"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(store *testutil.FakeStore) usecase.AuthService {
	tokens := utils.NewTokenService(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	return usecase.NewAuthService(store.Users, tokens, zap.NewNop())
}

func TestRegisterHashesPassword(t *testing.T) {
	store := testutil.NewFakeStore()
	auth := newAuthService(store)

	resp, err := auth.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	stored, err := store.Users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)

	// Plaintext never reaches the store
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("hunter22", stored.PasswordHash))
}

func TestRegisterAlwaysRegularRole(t *testing.T) {
	store := testutil.NewFakeStore()
	auth := newAuthService(store)

	resp, err := auth.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleRegular, resp.Role)

	stored, _ := store.Users.FindByUsername(context.Background(), "alice")
	assert.Equal(t, entity.RoleRegular, stored.Role)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := testutil.NewFakeStore()
	auth := newAuthService(store)

	_, err := auth.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = auth.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Password: "different",
	})
	assert.ErrorIs(t, err, entity.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	store := testutil.NewFakeStore()
	auth := newAuthService(store)

	tests := []struct {
		name string
		req  *request.RegisterRequest
	}{
		{"missing username", &request.RegisterRequest{Password: "hunter22"}},
		{"missing password", &request.RegisterRequest{Username: "alice"}},
		{"short password", &request.RegisterRequest{Username: "alice", Password: "abc"}},
		{"short username", &request.RegisterRequest{Username: "ab", Password: "hunter22"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, entity.ErrBadRequest)
		})
	}
}

func TestLogin(t *testing.T) {
	store := testutil.NewFakeStore()
	auth := newAuthService(store)

	_, err := auth.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Password: "hunter22",
	})
	require.NoError(t, err)

	resp, err := auth.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.Username)
}

func TestLoginInvalidCredentials(t *testing.T) {
	store := testutil.NewFakeStore()
	auth := newAuthService(store)

	_, err := auth.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Password: "hunter22",
	})
	require.NoError(t, err)

	// Wrong password and unknown user fail the same way
	_, err = auth.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, entity.ErrUnauthorized)

	_, err = auth.Login(context.Background(), &request.LoginRequest{
		Username: "nobody",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestLoginTokenRoundTrip(t *testing.T) {
	store := testutil.NewFakeStore()
	tokens := utils.NewTokenService(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	auth := usecase.NewAuthService(store.Users, tokens, zap.NewNop())

	reg, err := auth.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Password: "hunter22",
	})
	require.NoError(t, err)

	userID, err := tokens.Verify(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, userID)
}
