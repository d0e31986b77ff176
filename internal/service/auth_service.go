package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"recordshop/internal/auth"
	apperrors "recordshop/internal/errors"
	"recordshop/internal/logger"
	"recordshop/internal/model"
	"recordshop/internal/repository"
)

const bcryptCost = 10

// Password comparison modes for the staff directory.
const (
	PasswordModePlain  = "plain"
	PasswordModeBcrypt = "bcrypt"
)

// DefaultSessionTTL is used when AuthOptions leaves SessionTTL unset.
const DefaultSessionTTL = 12 * time.Hour

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Profile model.Profile
	Token   string
	Session auth.Session
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, sessionID string) (*auth.Session, error)
}

// AuthOptions tunes session lifetime and password comparison.
type AuthOptions struct {
	SessionTTL   time.Duration
	PasswordMode string
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	sessions   auth.SessionStore
	ttl        time.Duration
	mode       string
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, sessions auth.SessionStore, opts AuthOptions) AuthService {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.PasswordMode == "" {
		opts.PasswordMode = PasswordModePlain
	}
	return &authService{
		users:      users,
		jwtService: jwtService,
		sessions:   sessions,
		ttl:        opts.SessionTTL,
		mode:       opts.PasswordMode,
		now:        time.Now,
	}
}

// Login checks the credentials against the directory and opens a session.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !s.passwordMatches(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := s.now()
	session := auth.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	token, err := s.jwtService.GenerateToken(session)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	logger.Log.Infow("user logged in", "user_id", user.ID, "role", user.Role)
	return &LoginResult{Profile: user.Profile(), Token: token, Session: session}, nil
}

// Logout invalidates a session.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Authenticate returns the live session for an id.
func (s *authService) Authenticate(ctx context.Context, sessionID string) (*auth.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionInvalid
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !session.Valid(s.now()) {
		return nil, apperrors.ErrSessionInvalid
	}
	return session, nil
}

func (s *authService) passwordMatches(stored, given string) bool {
	if s.mode == PasswordModeBcrypt {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored == given
}

// HashDirectory returns a copy of users with bcrypt-hashed passwords, for use
// with PasswordModeBcrypt.
func HashDirectory(users []model.User) ([]model.User, error) {
	hashed := make([]model.User, len(users))
	for i, u := range users {
		sum, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		u.Password = string(sum)
		hashed[i] = u
	}
	return hashed, nil
}
