package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/JorgeGarcia-Dev/todoapp/internal/domain"
)

// SessionRepo implements session repository operations on a Store.
type SessionRepo struct {
	store *Store
}

// NewSessionRepo wraps a Store as a SessionRepository.
func NewSessionRepo(store *Store) *SessionRepo {
	return &SessionRepo{store: store}
}

var _ domain.SessionRepository = (*SessionRepo)(nil)

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.store.db.ExecContext(ctx,
		r.store.db.Rebind("INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)"),
		token, userID, expiresAt.UTC(), time.Now().UTC(),
	)
	return err
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.store.db.GetContext(ctx, &s,
		r.store.db.Rebind("SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = ?"),
		token,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.store.db.ExecContext(ctx,
		r.store.db.Rebind("DELETE FROM sessions WHERE token = ?"),
		token,
	)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.store.db.ExecContext(ctx,
		r.store.db.Rebind("DELETE FROM sessions WHERE expires_at < ?"),
		time.Now().UTC(),
	)
	return err
}
