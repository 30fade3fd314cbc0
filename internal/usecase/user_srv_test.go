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

func newUserFixture(t *testing.T) (*testutil.FakeStore, usecase.UserService, *entity.User, *entity.User) {
	t.Helper()

	store := testutil.NewFakeStore()
	users := usecase.NewUserService(store.Users, zap.NewNop())

	admin, err := users.CreateUser(context.Background(), &request.CreateUserRequest{
		Username: "admin",
		Password: "hunter22",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	regular, err := users.CreateUser(context.Background(), &request.CreateUserRequest{
		Username: "alice",
		Password: "hunter22",
		Role:     entity.RoleRegular,
	})
	require.NoError(t, err)

	adminEnt, _ := store.Users.FindByID(context.Background(), admin.ID)
	regularEnt, _ := store.Users.FindByID(context.Background(), regular.ID)
	return store, users, adminEnt, regularEnt
}

func TestGetUsersLeastPrivilege(t *testing.T) {
	_, users, admin, regular := newUserFixture(t)

	// Admin sees everyone
	all, err := users.GetUsers(context.Background(), admin.ID, admin.Role)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// A regular user only sees their own record
	own, err := users.GetUsers(context.Background(), regular.ID, regular.Role)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, regular.ID, own[0].ID)
}

func TestGetUserByIDAccess(t *testing.T) {
	_, users, admin, regular := newUserFixture(t)

	// Self read is fine
	self, err := users.GetUserByID(context.Background(), regular.ID, regular.Role, "2")
	require.NoError(t, err)
	assert.Equal(t, "alice", self.Username)

	// Reading someone else requires admin
	_, err = users.GetUserByID(context.Background(), regular.ID, regular.Role, "1")
	assert.ErrorIs(t, err, entity.ErrForbidden)

	other, err := users.GetUserByID(context.Background(), admin.ID, admin.Role, "2")
	require.NoError(t, err)
	assert.Equal(t, "alice", other.Username)

	_, err = users.GetUserByID(context.Background(), admin.ID, admin.Role, "abc")
	assert.ErrorIs(t, err, entity.ErrBadRequest)

	_, err = users.GetUserByID(context.Background(), admin.ID, admin.Role, "999")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCreateUserDuplicate(t *testing.T) {
	_, users, _, _ := newUserFixture(t)

	_, err := users.CreateUser(context.Background(), &request.CreateUserRequest{
		Username: "alice",
		Password: "different",
		Role:     entity.RoleRegular,
	})
	assert.ErrorIs(t, err, entity.ErrConflict)
}

func TestUpdateUser(t *testing.T) {
	store, users, _, regular := newUserFixture(t)

	oldHash := regular.PasswordHash

	updated, err := users.UpdateUser(context.Background(), "2", &request.UpdateUserRequest{
		Username: "alice2",
		Password: "new-password",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, entity.RoleAdmin, updated.Role)

	stored, _ := store.Users.FindByID(context.Background(), regular.ID)
	assert.NotEqual(t, oldHash, stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("new-password", stored.PasswordHash))
}

func TestUpdateUserKeepsPassword(t *testing.T) {
	store, users, _, regular := newUserFixture(t)

	oldHash := regular.PasswordHash

	// Empty password keeps the current hash
	_, err := users.UpdateUser(context.Background(), "2", &request.UpdateUserRequest{
		Username: "alice",
		Role:     entity.RoleRegular,
	})
	require.NoError(t, err)

	stored, _ := store.Users.FindByID(context.Background(), regular.ID)
	assert.Equal(t, oldHash, stored.PasswordHash)
}

func TestUpdateUserErrors(t *testing.T) {
	_, users, _, _ := newUserFixture(t)

	_, err := users.UpdateUser(context.Background(), "999", &request.UpdateUserRequest{
		Username: "ghost",
		Role:     entity.RoleRegular,
	})
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// Renaming onto a taken username conflicts
	_, err = users.UpdateUser(context.Background(), "2", &request.UpdateUserRequest{
		Username: "admin",
		Role:     entity.RoleRegular,
	})
	assert.ErrorIs(t, err, entity.ErrConflict)
}

func TestDeleteUser(t *testing.T) {
	store, users, _, regular := newUserFixture(t)

	require.NoError(t, users.DeleteUser(context.Background(), "2"))

	stored, _ := store.Users.FindByID(context.Background(), regular.ID)
	assert.Nil(t, stored)

	assert.ErrorIs(t, users.DeleteUser(context.Background(), "2"), entity.ErrNotFound)
	assert.ErrorIs(t, users.DeleteUser(context.Background(), "abc"), entity.ErrBadRequest)
}

func TestUserResponseNeverCarriesHash(t *testing.T) {
	_, users, admin, _ := newUserFixture(t)

	all, err := users.GetUsers(context.Background(), admin.ID, admin.Role)
	require.NoError(t, err)

	// The response type has no password field at all; spot-check the values
	for _, u := range all {
		assert.NotEmpty(t, u.Username)
		assert.NotZero(t, u.ID)
	}
}
