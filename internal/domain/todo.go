package domain

import (
	"context"
	"time"
)

// Todo is a single task owned by a user. Username is populated from the
// owner join on reads and is never written back.
type Todo struct {
	ID          int64     `db:"id"`
	Description string    `db:"description"`
	Completed   bool      `db:"completed"`
	CreatedBy   int64     `db:"create_by"`
	CreatedAt   time.Time `db:"create_at"`
	Username    string    `db:"username"`
}

// TodoRepository is the port for todo persistence.
type TodoRepository interface {
	Insert(ctx context.Context, ownerID int64, description string, createdAt time.Time) (int64, error)
	GetByID(ctx context.Context, id int64) (*Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Todo, error)
	Update(ctx context.Context, id, ownerID int64, description string, completed bool) error
	Delete(ctx context.Context, id, ownerID int64) error
}
