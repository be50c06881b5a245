package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JorgeGarcia-Dev/todoapp/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn        func(ctx context.Context, username, passwordHash string) (*domain.User, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &domain.User{ID: 1, Username: username, PasswordHash: passwordHash}, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}

func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()

	created := false
	users := &mockUserRepo{
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			created = true
			if username != "alice" {
				t.Errorf("expected username 'alice', got %s", username)
			}
			if passwordHash == "" || passwordHash == "pw1" {
				t.Error("password must be stored hashed")
			}
			if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte("pw1")); err != nil {
				t.Errorf("stored hash does not verify: %v", err)
			}
			return &domain.User{ID: 1, Username: username}, nil
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	if err := svc.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !created {
		t.Error("expected user to be created")
	}
}

func TestAuthService_Register_EmptyFields(t *testing.T) {
	ctx := context.Background()

	users := &mockUserRepo{
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			t.Error("no user should be created")
			return nil, errors.New("unreachable")
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{})

	if err := svc.Register(ctx, "", "pw1"); err != ErrUsernameRequired {
		t.Errorf("expected ErrUsernameRequired, got %v", err)
	}
	if err := svc.Register(ctx, "alice", ""); err != ErrPasswordRequired {
		t.Errorf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	ctx := context.Background()

	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: username}, nil
		},
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			t.Error("no duplicate user should be created")
			return nil, errors.New("unreachable")
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	if err := svc.Register(ctx, "alice", "pw1"); err != ErrUsernameTaken {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	password := "testpass123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{
				ID:           1,
				Username:     "testuser",
				PasswordHash: string(hash),
			}, nil
		},
	}

	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
			if userID != 1 {
				t.Errorf("expected userID 1, got %d", userID)
			}
			if token == "" {
				t.Error("token should not be empty")
			}
			if !expiresAt.After(time.Now()) {
				t.Error("session should expire in the future")
			}
			return nil
		},
	}

	svc := NewAuthService(users, sessions)
	token, err := svc.Login(ctx, "testuser", password)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Error("expected token, got empty string")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correctpass"), bcrypt.DefaultCost)

	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{
				ID:           1,
				Username:     "testuser",
				PasswordHash: string(hash),
			}, nil
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	_, err := svc.Login(ctx, "testuser", "wrongpass")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserSameError(t *testing.T) {
	ctx := context.Background()

	users := &mockUserRepo{} // lookup returns nil, nil
	svc := NewAuthService(users, &mockSessionRepo{})

	_, err := svc.Login(ctx, "ghost", "whatever")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ResolveSession_Valid(t *testing.T) {
	ctx := context.Background()
	token := "validtoken"

	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{
				Token:     token,
				UserID:    1,
				ExpiresAt: time.Now().Add(1 * time.Hour),
			}, nil
		},
	}

	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{
				ID:       1,
				Username: "testuser",
			}, nil
		},
	}

	svc := NewAuthService(users, sessions)
	user, err := svc.ResolveSession(ctx, token)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "testuser" {
		t.Errorf("expected username 'testuser', got %s", user.Username)
	}
}

func TestAuthService_ResolveSession_Expired(t *testing.T) {
	ctx := context.Background()
	token := "expiredtoken"

	deleted := false
	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{
				Token:     token,
				UserID:    1,
				ExpiresAt: time.Now().Add(-1 * time.Hour),
			}, nil
		},
		deleteFn: func(ctx context.Context, tok string) error {
			deleted = true
			return nil
		},
	}

	svc := NewAuthService(&mockUserRepo{}, sessions)
	_, err := svc.ResolveSession(ctx, token)
	if err != ErrSessionExpired {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
	if !deleted {
		t.Error("expected session to be deleted")
	}
}

func TestAuthService_ResolveSession_NotFound(t *testing.T) {
	ctx := context.Background()

	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{})
	_, err := svc.ResolveSession(ctx, "nosuchtoken")
	if err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_LoginWithUser_ProvisionsAccount(t *testing.T) {
	ctx := context.Background()

	created := false
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			if created {
				return &domain.User{ID: 2, Username: username}, nil
			}
			return nil, nil
		},
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			created = true
			if passwordHash != "" {
				t.Error("SSO accounts must have no password hash")
			}
			return &domain.User{ID: 2, Username: username}, nil
		},
	}

	svc := NewAuthService(users, &mockSessionRepo{})
	token, err := svc.LoginWithUser(ctx, "sso@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Error("expected token, got empty string")
	}
	if !created {
		t.Error("expected user to be provisioned")
	}
}
