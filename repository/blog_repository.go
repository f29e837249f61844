package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"Inshpho/model"

	"github.com/redis/go-redis/v9"
)

const (
	blogDataKey  = "blogs:data"  // Hash: blog id -> Blog JSON
	blogIndexKey = "blogs:index" // Sorted Set: blog id scored by creation time
)

// BlogRepository stores the shared blog collection.
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	List(ctx context.Context) ([]*model.Blog, error)
}

type redisBlogRepository struct {
	client redis.UniversalClient
}

// NewRedisBlogRepository creates a blog repository on top of client.
func NewRedisBlogRepository(client redis.UniversalClient) BlogRepository {
	return &redisBlogRepository{client: client}
}

// Create writes the document and its index entry in one MULTI/EXEC.
func (r *redisBlogRepository) Create(ctx context.Context, blog *model.Blog) error {
	data, err := json.Marshal(blog)
	if err != nil {
		return fmt.Errorf("failed to marshal blog: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, blogDataKey, blog.ID, data)
		pipe.ZAdd(ctx, blogIndexKey, redis.Z{
			Score:  float64(blog.CreatedAt.UnixMilli()),
			Member: blog.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store blog %s: %w", blog.ID, err)
	}
	return nil
}

// List returns every blog, newest first.
func (r *redisBlogRepository) List(ctx context.Context) ([]*model.Blog, error) {
	ids, err := r.client.ZRevRange(ctx, blogIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read blog index: %w", err)
	}
	if len(ids) == 0 {
		return []*model.Blog{}, nil
	}

	values, err := r.client.HMGet(ctx, blogDataKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read blogs: %w", err)
	}

	blogs := make([]*model.Blog, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// index entry without a document; skip it
			continue
		}
		var b model.Blog
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			return nil, fmt.Errorf("failed to decode blog %s: %w", ids[i], err)
		}
		blogs = append(blogs, &b)
	}
	return blogs, nil
}

type memoryBlogRepository struct {
	mu    sync.RWMutex
	blogs []model.Blog
}

// NewMemoryBlogRepository keeps blogs in process memory.
func NewMemoryBlogRepository() BlogRepository {
	return &memoryBlogRepository{}
}

func (r *memoryBlogRepository) Create(ctx context.Context, blog *model.Blog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blogs = append(r.blogs, *blog)
	return nil
}

func (r *memoryBlogRepository) List(ctx context.Context) ([]*model.Blog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Blog, 0, len(r.blogs))
	for i := range r.blogs {
		b := r.blogs[i]
		out = append(out, &b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
