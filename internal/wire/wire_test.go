package wire_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/testutil"
	"movie-catalog/internal/wire"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fixture struct {
	router  *chi.Mux
	store   *testutil.FakeStore
	tokens  *utils.TokenService
	admin   *entity.User
	regular *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewFakeStore()
	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}

	app := wire.Wiring(store.Repository(), config, zap.NewNop())

	hash, err := utils.HashPassword("hunter22")
	require.NoError(t, err)

	admin := &entity.User{
		Base:         entity.Base{CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Username:     "root",
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	}
	require.NoError(t, store.Users.Create(context.Background(), admin))

	regular := &entity.User{
		Base:         entity.Base{CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Username:     "alice",
		PasswordHash: hash,
		Role:         entity.RoleRegular,
	}
	require.NoError(t, store.Users.Create(context.Background(), regular))

	return &fixture{
		router:  app.Router,
		store:   store,
		tokens:  utils.NewTokenService(config.JWT),
		admin:   admin,
		regular: regular,
	}
}

func (f *fixture) token(t *testing.T, user *entity.User) string {
	t.Helper()

	token, _, err := f.tokens.Issue(user.ID)
	require.NoError(t, err)
	return token
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
}

func TestPublicRoutes(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/movies", "", nil).Code)

	// Non-numeric id is malformed input, not a missing movie
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/movies/abc", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/movies/999", "", nil).Code)

	// The movie query param is mandatory
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/comments", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/comments?movie=abc", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/comments?movie=999", "", nil).Code)
}

func TestAdminRouteAuthMatrix(t *testing.T) {
	f := newFixture(t)
	body := map[string]any{"name": "Inception"}

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage token", "garbage", http.StatusUnauthorized},
		{"regular token", f.token(t, f.regular), http.StatusForbidden},
		{"admin token", f.token(t, f.admin), http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/admin/movies", tt.token, body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestMovieRoundTrip(t *testing.T) {
	f := newFixture(t)
	adminToken := f.token(t, f.admin)

	rec := f.do(t, http.MethodPost, "/admin/movies", adminToken, map[string]any{
		"name":        "Inception",
		"description": "A heist in dreams",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID int64 `json:"id"`
	}
	decodeData(t, rec, &created)

	rec = f.do(t, http.MethodGet, fmt.Sprintf("/movies/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var movie struct {
		Name        string   `json:"name"`
		Description *string  `json:"description"`
		Rating      *float64 `json:"rating"`
	}
	decodeData(t, rec, &movie)

	assert.Equal(t, "Inception", movie.Name)
	require.NotNil(t, movie.Description)
	assert.Equal(t, "A heist in dreams", *movie.Description)
	assert.Nil(t, movie.Rating)

	// Missing name is rejected before anything is stored
	rec = f.do(t, http.MethodPost, "/admin/movies", adminToken, map[string]any{
		"description": "nameless",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentModerationScenario(t *testing.T) {
	f := newFixture(t)
	adminToken := f.token(t, f.admin)
	userToken := f.token(t, f.regular)

	// Admin creates the movie
	rec := f.do(t, http.MethodPost, "/admin/movies", adminToken, map[string]any{"name": "Inception"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Regular user comments; the comment starts pending even if the caller
	// tries to sneak an approval in
	rec = f.do(t, http.MethodPost, "/comments", userToken, map[string]any{
		"movie_id": 1,
		"body":     "Great film",
		"approved": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID       int64 `json:"id"`
		Approved bool  `json:"approved"`
	}
	decodeData(t, rec, &created)
	assert.False(t, created.Approved)

	// Pending comments are invisible
	rec = f.do(t, http.MethodGet, "/comments?movie=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var comments []struct {
		ID     int64  `json:"id"`
		Author string `json:"author"`
		Body   string `json:"body"`
	}
	decodeData(t, rec, &comments)
	assert.Empty(t, comments)

	// Moderation requires the admin role
	path := fmt.Sprintf("/admin/comments/%d", created.ID)
	rec = f.do(t, http.MethodPut, path, userToken, map[string]any{"approved": true})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPut, path, adminToken, map[string]any{"approved": true})
	require.Equal(t, http.StatusOK, rec.Code)

	// The approved comment surfaces with the author's username only
	rec = f.do(t, http.MethodGet, "/comments?movie=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, created.ID, comments[0].ID)
	assert.Equal(t, "alice", comments[0].Author)
	assert.Equal(t, "Great film", comments[0].Body)

	// The raw body must not leak author id, hash or role
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "role")

	// Approval is reversible
	rec = f.do(t, http.MethodPut, path, adminToken, map[string]any{"approved": false})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/comments?movie=1", "", nil)
	decodeData(t, rec, &comments)
	assert.Empty(t, comments)

	// Deletion is terminal
	rec = f.do(t, http.MethodDelete, path, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestModerateCommentBadInput(t *testing.T) {
	f := newFixture(t)
	adminToken := f.token(t, f.admin)

	rec := f.do(t, http.MethodPut, "/admin/comments/abc", adminToken, map[string]any{"approved": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/admin/comments/999", adminToken, map[string]any{"approved": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Missing approved field
	rec = f.do(t, http.MethodPut, "/admin/comments/1", adminToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/register", "", map[string]any{
		"username": "charlie",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var auth struct {
		Token string `json:"token"`
		Role  int    `json:"role"`
	}
	decodeData(t, rec, &auth)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, entity.RoleRegular, auth.Role)

	// Second registration with the same username conflicts
	rec = f.do(t, http.MethodPost, "/api/register", "", map[string]any{
		"username": "charlie",
		"password": "different",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/login", "", map[string]any{
		"username": "charlie",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/login", "", map[string]any{
		"username": "charlie",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserRoutesGated(t *testing.T) {
	f := newFixture(t)
	adminToken := f.token(t, f.admin)
	userToken := f.token(t, f.regular)

	// Reads require authentication
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/users", "", nil).Code)

	// Regular users only see themselves
	rec := f.do(t, http.MethodGet, "/api/users", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	decodeData(t, rec, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)

	// Admins see everyone
	rec = f.do(t, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &users)
	assert.Len(t, users, 2)

	// Mutations are admin-only
	newUser := map[string]any{"username": "charlie", "password": "hunter22", "role": 0}
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/api/users", userToken, newUser).Code)
	assert.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/users", adminToken, newUser).Code)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodDelete, "/api/users/3", userToken, nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, "/api/users/3", adminToken, nil).Code)
}

func TestVoteOverHTTP(t *testing.T) {
	f := newFixture(t)
	adminToken := f.token(t, f.admin)
	userToken := f.token(t, f.regular)

	rec := f.do(t, http.MethodPost, "/admin/movies", adminToken, map[string]any{"name": "Inception"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Voting requires authentication
	vote := map[string]any{"movie_id": 1, "rating": 9}
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodPost, "/votes", "", vote).Code)
	assert.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/votes", userToken, vote).Code)

	// The vote count shows up on the movie detail
	rec = f.do(t, http.MethodGet, "/movies/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var movie struct {
		Votes int64 `json:"votes"`
	}
	decodeData(t, rec, &movie)
	assert.Equal(t, int64(1), movie.Votes)
}
