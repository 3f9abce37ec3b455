package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/store/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(db))
	return db
}

func newUser(email string) *domain.User {
	return &domain.User{
		Name:           "Student " + email,
		Email:          email,
		HashedPassword: "$2a$04$fakefakefakefakefakefake",
		Branch:         "CSE",
		Year:           "Second",
		Skills:         []string{"go", "sql"},
		ProfileLinks:   domain.ProfileLinks{GitHub: "https://github.com/" + email},
	}
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		repo := sqlite.NewUserRepo(openTestDB(t))
		u := newUser("asha@college.edu")
		require.NoError(t, repo.Create(ctx, u))
		require.NotZero(t, u.ID)

		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, []string{"go", "sql"}, got.Skills)
		assert.Equal(t, "https://github.com/asha@college.edu", got.ProfileLinks.GitHub)

		byEmail, err := repo.GetByEmail(ctx, "asha@college.edu")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, u.ID, byEmail.ID)
	})

	t.Run("GetMissing", func(t *testing.T) {
		repo := sqlite.NewUserRepo(openTestDB(t))
		got, err := repo.GetByID(ctx, 12345)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := sqlite.NewUserRepo(openTestDB(t))
		require.NoError(t, repo.Create(ctx, newUser("dup@college.edu")))

		err := repo.Create(ctx, newUser("dup@college.edu"))
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1, "only one record may persist")
	})

	t.Run("Update", func(t *testing.T) {
		repo := sqlite.NewUserRepo(openTestDB(t))
		u := newUser("edit@college.edu")
		require.NoError(t, repo.Create(ctx, u))

		u.Bio = "distributed systems enjoyer"
		u.Skills = []string{"go"}
		require.NoError(t, repo.Update(ctx, u))

		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "distributed systems enjoyer", got.Bio)
		assert.Equal(t, []string{"go"}, got.Skills)
	})
}

func TestMessageRepo(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := sqlite.NewUserRepo(db)
	msgs := sqlite.NewMessageRepo(db)

	a := newUser("a@college.edu")
	b := newUser("b@college.edu")
	c := newUser("c@college.edu")
	require.NoError(t, users.Create(ctx, a))
	require.NoError(t, users.Create(ctx, b))
	require.NoError(t, users.Create(ctx, c))

	send := func(from, to int64, content string) *domain.Message {
		m := &domain.Message{SenderID: from, ReceiverID: to, Content: content}
		require.NoError(t, msgs.Create(ctx, m))
		return m
	}

	send(a.ID, b.ID, "a to b")
	send(a.ID, c.ID, "a to c")
	send(b.ID, a.ID, "b to a")

	t.Run("ListBetweenAscendingBothDirections", func(t *testing.T) {
		history, err := msgs.ListBetween(ctx, a.ID, b.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "a to b", history[0].Content)
		assert.Equal(t, "b to a", history[1].Content)

		// Same result regardless of argument order.
		reversed, err := msgs.ListBetween(ctx, b.ID, a.ID)
		require.NoError(t, err)
		require.Len(t, reversed, 2)
		assert.Equal(t, history[0].ID, reversed[0].ID)
	})

	t.Run("ListInvolvingNewestFirstWithRefs", func(t *testing.T) {
		involving, err := msgs.ListInvolving(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, involving, 3)
		assert.Equal(t, "b to a", involving[0].Content)
		assert.Equal(t, "a to c", involving[1].Content)
		assert.Equal(t, "a to b", involving[2].Content)

		assert.Equal(t, b.ID, involving[0].Sender.ID)
		assert.Equal(t, "Student b@college.edu", involving[0].Sender.Name)
		assert.Equal(t, "a@college.edu", involving[0].Receiver.Email)
	})

	t.Run("ListBetweenEmpty", func(t *testing.T) {
		history, err := msgs.ListBetween(ctx, b.ID, c.ID)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}
