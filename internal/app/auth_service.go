// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/JorgeGarcia-Dev/todoapp/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUsernameRequired indicates a registration attempt with an empty username.
	ErrUsernameRequired = errors.New("username is required")
	// ErrPasswordRequired indicates a registration attempt with an empty password.
	ErrPasswordRequired = errors.New("password is required")
	// ErrUsernameTaken indicates the username already exists.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrInvalidCredentials indicates that the provided username or password was
	// incorrect. The same value is returned for an unknown username and for a
	// wrong password so the two cases are not distinguishable by the caller.
	ErrInvalidCredentials = errors.New("invalid username and/or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
)

// sessionTTL is how long a login session stays valid.
const sessionTTL = 24 * time.Hour

// AuthService handles registration, authentication and session management.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// Register validates the credentials and stores a new user with a hashed
// password. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.users.Create(ctx, username, string(hash))
	return err
}

// Login authenticates a user and creates a session, returning its token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return "", ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.startSession(ctx, user.ID)
}

// LoginWithUser creates a session for an already authenticated user (e.g.
// via SSO), provisioning the account on first login.
func (s *AuthService) LoginWithUser(ctx context.Context, username string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		// No password hash: the account can only be entered through SSO.
		user, err = s.users.Create(ctx, username, "")
		if err != nil {
			// Creation can race with a concurrent first login.
			user, err = s.users.GetByUsername(ctx, username)
			if err != nil || user == nil {
				return "", err
			}
		}
	}

	return s.startSession(ctx, user.ID)
}

// Logout invalidates a session. Deleting an unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ResolveSession maps a session token to its user. Expired sessions are
// deleted on touch.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// PurgeExpiredSessions removes all sessions past their expiry.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx)
}

func (s *AuthService) startSession(ctx context.Context, userID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(sessionTTL)
	if err := s.sessions.Create(ctx, userID, token, expiresAt); err != nil {
		return "", err
	}

	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
