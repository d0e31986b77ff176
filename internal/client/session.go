package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"recordshop/internal/model"
)

// SessionFileName is the file the signed-in user is kept in.
const SessionFileName = "currentUser.json"

// ErrNotLoggedIn is returned when no valid session is stored.
var ErrNotLoggedIn = errors.New("not logged in")

// Session is the login response kept between CLI invocations.
type Session struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// Valid reports whether the session can still be used at now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && now.Before(s.ExpiresAt)
}

// SessionStore persists the session as JSON in a directory.
type SessionStore struct {
	dir string
	now func() time.Time
}

// NewSessionStore keeps the session file in dir.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir, now: time.Now}
}

// Path is the location of the session file.
func (s *SessionStore) Path() string {
	return filepath.Join(s.dir, SessionFileName)
}

// Load returns the stored session. A missing, unreadable or expired file
// yields ErrNotLoggedIn; an expired file is removed.
func (s *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, ErrNotLoggedIn
	}
	if !session.Valid(s.now()) {
		_ = s.Clear()
		return nil, ErrNotLoggedIn
	}
	return &session, nil
}

// Save writes the session, readable only by the current user.
func (s *SessionStore) Save(session *Session) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
