package auth

import (
	"time"

	"recordshop/internal/model"
)

// Session is the server-side record of a successful login.
type Session struct {
	ID        string     `json:"id"`
	UserID    uint       `json:"user_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Valid reports whether the session is still usable at now.
func (s Session) Valid(now time.Time) bool {
	return s.ID != "" && now.Before(s.ExpiresAt)
}

// Profile is the public user view carried by the session.
func (s Session) Profile() model.Profile {
	return model.Profile{ID: s.UserID, Name: s.Name, Email: s.Email, Role: s.Role}
}
