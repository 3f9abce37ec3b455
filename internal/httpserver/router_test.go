package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collegeconnect/internal/config"
	"collegeconnect/internal/httpserver"
	"collegeconnect/internal/security"
	"collegeconnect/internal/store/sqlite"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(db))

	cfg := &config.Config{
		AppName:           "College Connect API",
		Env:               "test",
		AllowSelfMessages: true,
		CORSOrigins:       []string{"http://localhost:3000"},
	}
	tokens := security.NewTokenService("test-secret", 7*24*time.Hour)
	hasher := security.NewPasswordHasher(4) // low cost for tests

	return httpserver.NewRouter(cfg, db, sqlite.NewUserRepo(db), sqlite.NewMessageRepo(db), tokens, hasher)
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func registerStudent(t *testing.T, h http.Handler, name, email string) (token string, id int64) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "Password1!",
		"branch":   "CSE",
		"year":     "Second",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func TestRegisterAndLogin(t *testing.T) {
	h := newTestServer(t)

	token, _ := registerStudent(t, h, "Asha Rao", "asha@college.edu")
	assert.NotEmpty(t, token)

	t.Run("DuplicateEmail", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name":     "Imposter",
			"email":    "asha@college.edu",
			"password": "Other1!",
			"branch":   "ECE",
			"year":     "First",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email": "incomplete@college.edu",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("LoginSuccess", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "asha@college.edu",
			"password": "Password1!",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "$2a$", "password hash must never leak")
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "asha@college.edu",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("LoginUnknownEmailSameShape", func(t *testing.T) {
		wrongPass := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "asha@college.edu",
			"password": "wrong",
		})
		unknown := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "nobody@college.edu",
			"password": "Password1!",
		})
		assert.Equal(t, wrongPass.Code, unknown.Code)
		assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
	})
}

func TestProtectedRoutes(t *testing.T) {
	h := newTestServer(t)
	token, _ := registerStudent(t, h, "Asha Rao", "asha@college.edu")

	t.Run("NoToken", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/users/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GetProfile", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/users/profile", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "asha@college.edu")
		assert.NotContains(t, rec.Body.String(), "$2a$")
	})

	t.Run("UpdateProfile", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/api/users/profile", token, map[string]any{
			"bio":    "likes compilers",
			"skills": []string{"go", "c"},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "likes compilers")
	})

	t.Run("UpdateProfileBadYear", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/api/users/profile", token, map[string]any{
			"year": "Fifth",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ListStudents", func(t *testing.T) {
		registerStudent(t, h, "Ben Dury", "ben@college.edu")
		rec := doJSON(t, h, http.MethodGet, "/api/users/students", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ben@college.edu")
	})

	t.Run("GetStudentNotFound", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/users/students/9999", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMessagingFlow(t *testing.T) {
	h := newTestServer(t)
	tokenA, idA := registerStudent(t, h, "Asha Rao", "a@college.edu")
	tokenB, idB := registerStudent(t, h, "Ben Dury", "b@college.edu")
	_, idC := registerStudent(t, h, "Cara Lin", "c@college.edu")

	send := func(token string, to int64, content string) {
		rec := doJSON(t, h, http.MethodPost, "/api/messages/send", token, map[string]any{
			"receiver": to,
			"content":  content,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	// A->B, then A->C, then B->A: B's conversation is the most recent
	// for A, and C's history was in between.
	send(tokenA, idB, "hello ben")
	send(tokenA, idC, "hello cara")
	send(tokenB, idA, "hi asha")

	t.Run("SendValidation", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/messages/send", tokenA, map[string]any{
			"receiver": idB,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("SendUnknownReceiver", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/messages/send", tokenA, map[string]any{
			"receiver": int64(9999),
			"content":  "anyone there?",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("HistoryAscending", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/messages/%d", idB), tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var msgs []struct {
			Content string `json:"content"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
		require.Len(t, msgs, 2)
		assert.Equal(t, "hello ben", msgs[0].Content)
		assert.Equal(t, "hi asha", msgs[1].Content)
	})

	t.Run("ConversationsMostRecentFirst", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/messages/conversations", tokenA, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var convs []struct {
			User struct {
				ID int64 `json:"id"`
			} `json:"user"`
			LastMessage struct {
				Content string `json:"content"`
			} `json:"lastMessage"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &convs))
		require.Len(t, convs, 2)
		assert.Equal(t, idB, convs[0].User.ID)
		assert.Equal(t, "hi asha", convs[0].LastMessage.Content)
		assert.Equal(t, idC, convs[1].User.ID)
		assert.Equal(t, "hello cara", convs[1].LastMessage.Content)
	})

	t.Run("EmptyConversationList", func(t *testing.T) {
		tokenD, _ := registerStudent(t, h, "Dan Wu", "d@college.edu")
		rec := doJSON(t, h, http.MethodGet, "/api/messages/conversations", tokenD, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

