package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/httpserver"
	"collegeconnect/internal/security"
)

// stubUserRepo counts store accesses so tests can assert that rejected
// requests never touch the store.
type stubUserRepo struct {
	users map[int64]*domain.User
	gets  int
}

func (s *stubUserRepo) Create(ctx context.Context, u *domain.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.gets++
	return s.users[id], nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserRepo) List(ctx context.Context) ([]*domain.User, error) { return nil, nil }

func (s *stubUserRepo) Update(ctx context.Context, u *domain.User) error { return nil }

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenService("test-secret", time.Hour)

	newHandler := func(repo *stubUserRepo, handled *bool) http.Handler {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*handled = true
			user := httpserver.CurrentUser(r)
			require.NotNil(t, user)
			w.WriteHeader(http.StatusOK)
		})
		return httpserver.AuthMiddleware(tokens, repo)(next)
	}

	t.Run("ValidToken", func(t *testing.T) {
		repo := &stubUserRepo{users: map[int64]*domain.User{1: {ID: 1, Name: "Asha Rao"}}}
		handled := false

		token, err := tokens.CreateForUser(1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		newHandler(repo, &handled).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, handled)
	})

	t.Run("NoHeader", func(t *testing.T) {
		repo := &stubUserRepo{}
		handled := false

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		newHandler(repo, &handled).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, handled)
		assert.Zero(t, repo.gets, "rejected request must not reach the store")
	})

	t.Run("MalformedToken", func(t *testing.T) {
		repo := &stubUserRepo{}
		handled := false

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		newHandler(repo, &handled).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, handled)
		assert.Zero(t, repo.gets)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		repo := &stubUserRepo{}
		handled := false

		token, err := tokens.CreateWithTTL(1, -time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		newHandler(repo, &handled).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, handled)
		assert.Zero(t, repo.gets)
	})

	t.Run("VanishedUser", func(t *testing.T) {
		// Token is valid but the account it was issued for is gone.
		repo := &stubUserRepo{users: map[int64]*domain.User{}}
		handled := false

		token, err := tokens.CreateForUser(1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		newHandler(repo, &handled).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, handled)
	})
}
