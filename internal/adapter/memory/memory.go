// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/JorgeGarcia-Dev/todoapp/internal/domain"
)

// DB holds in-memory state shared by the repository types in this package.
type DB struct {
	mu       sync.Mutex
	users    []*domain.User
	todos    []domain.Todo
	sessions map[string]*domain.Session

	userIDCounter int64
	todoIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*UserRepo)(nil)
var _ domain.TodoRepository = (*TodoRepo)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- UserRepository ---

// UserRepo implements user persistence.
type UserRepo struct {
	db *DB
}

// NewUserRepo returns a user repository view of the database.
func (db *DB) NewUserRepo() *UserRepo {
	return &UserRepo{db: db}
}

// GetByUsername retrieves a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	r.db.userIDCounter++
	u := &domain.User{
		ID:           r.db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
	}
	r.db.users = append(r.db.users, u)
	return u, nil
}

// --- TodoRepository ---

// TodoRepo implements todo persistence.
type TodoRepo struct {
	db *DB
}

// NewTodoRepo returns a todo repository view of the database.
func (db *DB) NewTodoRepo() *TodoRepo {
	return &TodoRepo{db: db}
}

// Insert adds a new todo.
func (r *TodoRepo) Insert(ctx context.Context, ownerID int64, description string, createdAt time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.todoIDCounter++
	id := r.db.todoIDCounter

	todo := domain.Todo{
		ID:          id,
		Description: description,
		Completed:   false,
		CreatedBy:   ownerID,
		CreatedAt:   createdAt.UTC(),
		Username:    r.db.usernameLocked(ownerID),
	}
	r.db.todos = append(r.db.todos, todo)
	return id, nil
}

// GetByID retrieves a todo by id regardless of owner.
func (r *TodoRepo) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, t := range r.db.todos {
		if t.ID == id {
			copied := t
			return &copied, nil
		}
	}
	return nil, nil
}

// ListByOwner lists the todos owned by ownerID, most recent first.
func (r *TodoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	result := make([]domain.Todo, 0, len(r.db.todos))
	for _, t := range r.db.todos {
		if t.CreatedBy == ownerID {
			result = append(result, t)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// Update changes description and completed of the todo with the given id
// when it is owned by ownerID. An owner mismatch updates nothing.
func (r *TodoRepo) Update(ctx context.Context, id, ownerID int64, description string, completed bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, t := range r.db.todos {
		if t.ID == id && t.CreatedBy == ownerID {
			r.db.todos[i].Description = description
			r.db.todos[i].Completed = completed
			return nil
		}
	}
	return nil
}

// Delete removes the todo with the given id when owned by ownerID.
func (r *TodoRepo) Delete(ctx context.Context, id, ownerID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, t := range r.db.todos {
		if t.ID == id && t.CreatedBy == ownerID {
			r.db.todos = append(r.db.todos[:i], r.db.todos[i+1:]...)
			return nil
		}
	}
	return nil
}

func (db *DB) usernameLocked(userID int64) string {
	for _, u := range db.users {
		if u.ID == userID {
			return u.Username
		}
	}
	return ""
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo returns a session repository view of the database.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
