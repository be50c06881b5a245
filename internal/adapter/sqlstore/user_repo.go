package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/JorgeGarcia-Dev/todoapp/internal/domain"
)

// UserRepo implements user repository operations on a Store.
type UserRepo struct {
	store *Store
}

// NewUserRepo wraps a Store as a UserRepository.
func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

var _ domain.UserRepository = (*UserRepo)(nil)

// GetByUsername retrieves a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.store.db.GetContext(ctx, &u,
		r.store.db.Rebind("SELECT id, username, password FROM users WHERE username = ?"),
		username,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.store.db.GetContext(ctx, &u,
		r.store.db.Rebind("SELECT id, username, password FROM users WHERE id = ?"),
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	u := domain.User{Username: username, PasswordHash: passwordHash}
	if r.store.driver == "mysql" {
		res, err := r.store.db.ExecContext(ctx,
			"INSERT INTO users (username, password) VALUES (?, ?)",
			username, passwordHash,
		)
		if err != nil {
			return nil, err
		}
		u.ID, err = res.LastInsertId()
		if err != nil {
			return nil, err
		}
		return &u, nil
	}

	err := r.store.db.QueryRowContext(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		username, passwordHash,
	).Scan(&u.ID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
