package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Session is what login and register leave on disk for later commands.
type Session struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	UserID   string    `json:"userId,omitempty"`
	Email    string    `json:"email,omitempty"`
	Server   string    `json:"server"`
	SavedAt  time.Time `json:"savedAt"`
}

// SessionStore persists a single Session as a JSON file readable only by
// the owner.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Path returns the file the store writes to.
func (s *SessionStore) Path() string {
	return s.path
}

// Save writes sess, replacing any previous session.
func (s *SessionStore) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace session: %w", err)
	}
	return nil
}

// Load reads the saved session. It returns ErrNotLoggedIn when none exists.
func (s *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", s.path, err)
	}
	if sess.Token == "" {
		return nil, ErrNotLoggedIn
	}
	return &sess, nil
}

// Clear deletes the session file. Clearing a missing session is not an error.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
