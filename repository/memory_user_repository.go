package repository

import (
	"context"
	"sync"
	"time"

	"Inshpho/model"
)

// memoryUserRepository keeps users in process memory with the same unique
// constraints as the MySQL schema. Used with STORE_DRIVER=memory and in tests.
type memoryUserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*model.User
	byEmail    map[string]string
	byUsername map[string]string
	now        func() time.Time
}

// NewMemoryUserRepository creates an empty in-memory repository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:       make(map[string]*model.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
		now:        time.Now,
	}
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return ErrDuplicateEmail
	}
	if _, ok := r.byUsername[user.Username]; ok {
		return ErrDuplicateUsername
	}

	now := r.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[user.Email] = user.ID
	r.byUsername[user.Username] = user.ID
	return nil
}

func (r *memoryUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyOf(id), nil
}

func (r *memoryUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return r.copyOf(id), nil
}

func (r *memoryUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byUsername[username]
	return ok, nil
}

func (r *memoryUserRepository) UpdateFeedback(ctx context.Context, id, feedback string) error {
	return r.update(ctx, id, func(u *model.User) { u.Feedback = feedback })
}

func (r *memoryUserRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	return r.update(ctx, id, func(u *model.User) { u.PasswordHash = passwordHash })
}

func (r *memoryUserRepository) update(ctx context.Context, id string, apply func(*model.User)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	apply(u)
	u.UpdatedAt = r.now().UTC()
	return nil
}

// copyOf must be called with the lock held.
func (r *memoryUserRepository) copyOf(id string) *model.User {
	u, ok := r.byID[id]
	if !ok {
		return nil
	}
	c := *u
	return &c
}
