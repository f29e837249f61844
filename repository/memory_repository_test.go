package repository

import (
	"context"
	"testing"
	"time"

	"Inshpho/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.CreateUser(ctx, &model.User{ID: "1", Username: "a.b", Email: "a@x.com"}))

	err := repo.CreateUser(ctx, &model.User{ID: "2", Username: "a.b1", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	err = repo.CreateUser(ctx, &model.User{ID: "3", Username: "a.b", Email: "other@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	taken, err := repo.UsernameExists(ctx, "a.b")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestMemoryUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.CreateUser(ctx, &model.User{ID: "1", Username: "a.b", Email: "a@x.com"}))

	u, err := repo.GetUserByID(ctx, "1")
	require.NoError(t, err)
	u.Username = "mutated"

	again, err := repo.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a.b", again.Username)
	assert.False(t, again.CreatedAt.IsZero())
}

func TestMemoryUserRepository_Updates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.CreateUser(ctx, &model.User{ID: "1", Username: "a.b", Email: "a@x.com", PasswordHash: "h1"}))

	require.NoError(t, repo.UpdateFeedback(ctx, "1", "nice"))
	require.NoError(t, repo.UpdatePasswordHash(ctx, "1", "h2"))
	assert.ErrorIs(t, repo.UpdateFeedback(ctx, "2", "nice"), ErrNotFound)
	assert.ErrorIs(t, repo.UpdatePasswordHash(ctx, "2", "h"), ErrNotFound)

	u, err := repo.GetUserByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "nice", u.Feedback)
	assert.Equal(t, "h2", u.PasswordHash)
	assert.Equal(t, "a.b", u.Username)
	assert.Equal(t, "a@x.com", u.Email)
}

func TestMemoryUserRepository_MissingLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	u, err := repo.GetUserByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.GetUserByEmail(ctx, "nope@x.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMemoryUserRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryUserRepository()
	assert.ErrorIs(t, repo.CreateUser(ctx, &model.User{ID: "1"}), context.Canceled)
}

func TestMemoryBlogRepository_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlogRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &model.Blog{ID: "old", Title: "t", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &model.Blog{ID: "new", Title: "t", CreatedAt: base.Add(time.Hour)}))

	blogs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, "new", blogs[0].ID)
	assert.Equal(t, "old", blogs[1].ID)
}

func TestMemoryBlogRepository_EmptyListIsNotNil(t *testing.T) {
	blogs, err := NewMemoryBlogRepository().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, blogs)
	assert.Empty(t, blogs)
}
