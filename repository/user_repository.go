package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Inshpho/model"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry is the server error number for unique index violations.
const mysqlDuplicateEntry = 1062

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUser     = errors.New("duplicate user")
	ErrDuplicateEmail    = fmt.Errorf("%w: email already registered", ErrDuplicateUser)
	ErrDuplicateUsername = fmt.Errorf("%w: username already taken", ErrDuplicateUser)
)

// UserRepository defines the interface for user data operations.
// Lookups return (nil, nil) when no record matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateFeedback(ctx context.Context, id, feedback string) error
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}

// gormUserRepository implements UserRepository on MySQL through GORM.
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a GORM-backed user repository.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// CreateUser inserts user. Unique index violations surface as
// ErrDuplicateEmail or ErrDuplicateUsername.
func (r *gormUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translateMySQLError(err))
	}
	return nil
}

func (r *gormUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *gormUserRepository) first(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user (%s): %w", query, err)
	}
	return &user, nil
}

// UsernameExists reports whether a record already holds username.
func (r *gormUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count users by username: %w", err)
	}
	return count > 0, nil
}

func (r *gormUserRepository) UpdateFeedback(ctx context.Context, id, feedback string) error {
	return r.updateColumn(ctx, id, "feedback", feedback)
}

func (r *gormUserRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	return r.updateColumn(ctx, id, "password_hash", passwordHash)
}

// updateColumn relies on clientFoundRows in the DSN so that matched rows are
// counted even when the value is unchanged.
func (r *gormUserRepository) updateColumn(ctx context.Context, id, column, value string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s for user %s: %w", column, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func translateMySQLError(err error) error {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) || myErr.Number != mysqlDuplicateEntry {
		return err
	}
	switch {
	case strings.Contains(myErr.Message, "idx_users_email"):
		return ErrDuplicateEmail
	case strings.Contains(myErr.Message, "idx_users_username"):
		return ErrDuplicateUsername
	default:
		return fmt.Errorf("%w: %s", ErrDuplicateUser, myErr.Message)
	}
}
