// Package identity implements account registration, login, token-gated
// profile reads and the keyed feedback/password updates.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Inshpho/core/auth"
	"Inshpho/logger"
	"Inshpho/model"
	"Inshpho/repository"

	"github.com/google/uuid"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("not allowed to modify another user")
	ErrHandleExhausted    = errors.New("could not reserve a unique username")
)

// Options tunes a Service.
type Options struct {
	BcryptCost int
	// MaxAttempts bounds how many inserts registration tries after losing
	// a username race. Values below 1 mean a single attempt.
	MaxAttempts int
}

// Service is the identity use-case layer. It is safe for concurrent use.
type Service struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	opts   Options
}

// NewService wires a Service.
func NewService(users repository.UserRepository, tokens *auth.TokenManager, opts Options) *Service {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &Service{users: users, tokens: tokens, opts: opts}
}

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (in RegisterInput) complete() bool {
	for _, v := range []string{in.FirstName, in.LastName, in.Email, in.Password} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// RegisterResult is returned after a successful registration.
type RegisterResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserID   string `json:"-"`
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserID   string `json:"userId"`
	Email    string `json:"email"`
}

// Register creates an account with a derived unique handle and issues a token.
//
// The store carries unique indexes on email and username. When the insert
// loses a username race the probe resumes at the next suffix.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if !in.complete() {
		return nil, ErrMissingFields
	}

	existing, err := s.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := auth.HashPassword(in.Password, s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	base := BaseHandle(in.FirstName, in.LastName)
	counter := 0
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		handle, n, err := nextFreeHandle(ctx, s.users, base, counter)
		if err != nil {
			return nil, err
		}

		user := &model.User{
			ID:           uuid.New().String(),
			Username:     handle,
			Email:        in.Email,
			PasswordHash: hash,
		}
		err = s.users.CreateUser(ctx, user)
		switch {
		case err == nil:
			token, err := s.tokens.GenerateToken(user.ID)
			if err != nil {
				return nil, err
			}
			logger.Info("[Register] user created",
				logger.String("userId", user.ID),
				logger.String("username", handle),
				logger.Int("attempts", attempt))
			return &RegisterResult{Token: token, Username: handle, UserID: user.ID}, nil
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrUserExists
		case errors.Is(err, repository.ErrDuplicateUsername):
			logger.Debug("[Register] username taken concurrently, retrying",
				logger.String("username", handle),
				logger.Int("attempt", attempt))
			counter = n + 1
		default:
			return nil, err
		}
	}
	return nil, ErrHandleExhausted
}

// Login checks credentials. Unknown email and wrong password are not told apart.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil || !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Username: user.Username, UserID: user.ID, Email: user.Email}, nil
}

// Authenticate resolves a bearer token to the user id it is bound to.
func (s *Service) Authenticate(token string) (string, error) {
	return s.tokens.ParseToken(token)
}

// Profile fetches a user record. The hash is cleared before returning.
func (s *Service) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.PasswordHash = ""
	return user, nil
}

// Authorize checks that callerID may modify targetID.
func (s *Service) Authorize(callerID, targetID string) error {
	if callerID != targetID {
		return ErrForbidden
	}
	return nil
}

// SubmitFeedback overwrites the feedback field of userID.
func (s *Service) SubmitFeedback(ctx context.Context, userID, feedback string) error {
	if err := s.users.UpdateFeedback(ctx, userID, feedback); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// UpdatePassword replaces the stored hash with one derived from newPassword.
func (s *Service) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if newPassword == "" {
		return ErrMissingFields
	}
	hash, err := auth.HashPassword(newPassword, s.opts.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
