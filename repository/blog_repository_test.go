package repository

import (
	"context"
	"testing"
	"time"

	"Inshpho/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisBlogRepository_CreateAndList(t *testing.T) {
	mr, client := newMiniredisClient(t)
	repo := NewRedisBlogRepository(client)
	ctx := context.Background()

	blogs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, blogs)
	assert.Empty(t, blogs)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	older := model.NewBlog(model.CreateBlogRequest{Title: "older", Description: "d", Image: "i"}, base)
	newer := model.NewBlog(model.CreateBlogRequest{Title: "newer", Description: "d", Image: "i"}, base.Add(time.Minute))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	blogs, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, "newer", blogs[0].Title)
	assert.Equal(t, "older", blogs[1].Title)
	assert.True(t, older.CreatedAt.Equal(blogs[1].CreatedAt))

	assert.True(t, mr.Exists(blogDataKey))
	members, err := mr.ZMembers(blogIndexKey)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{older.ID, newer.ID}, members)
}

func TestRedisBlogRepository_SkipsDanglingIndexEntries(t *testing.T) {
	mr, client := newMiniredisClient(t)
	repo := NewRedisBlogRepository(client)
	ctx := context.Background()

	b := model.NewBlog(model.CreateBlogRequest{Title: "kept", Description: "d", Image: "i"}, time.Now())
	require.NoError(t, repo.Create(ctx, b))
	_, err := mr.ZAdd(blogIndexKey, float64(time.Now().Add(time.Hour).UnixMilli()), "ghost")
	require.NoError(t, err)

	blogs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, "kept", blogs[0].Title)
}

func TestRedisBlogRepository_CorruptDocument(t *testing.T) {
	mr, client := newMiniredisClient(t)
	repo := NewRedisBlogRepository(client)

	_, err := mr.ZAdd(blogIndexKey, 1, "bad")
	require.NoError(t, err)
	mr.HSet(blogDataKey, "bad", "{not json")

	_, err = repo.List(context.Background())
	assert.Error(t, err)
}
