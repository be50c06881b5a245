package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/JorgeGarcia-Dev/todoapp/internal/domain"
)

const todoColumns = "t.id, t.description, t.completed, t.create_by, t.create_at, u.username"

// TodoRepo implements todo repository operations on a Store.
type TodoRepo struct {
	store *Store
}

// NewTodoRepo wraps a Store as a TodoRepository.
func NewTodoRepo(store *Store) *TodoRepo {
	return &TodoRepo{store: store}
}

var _ domain.TodoRepository = (*TodoRepo)(nil)

// Insert stores a new todo for ownerID and returns its id. New todos start
// uncompleted.
func (r *TodoRepo) Insert(ctx context.Context, ownerID int64, description string, createdAt time.Time) (int64, error) {
	if r.store.driver == "mysql" {
		res, err := r.store.db.ExecContext(ctx,
			"INSERT INTO todos (description, completed, create_by, create_at) VALUES (?, ?, ?, ?)",
			description, false, ownerID, createdAt.UTC(),
		)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	var id int64
	err := r.store.db.QueryRowContext(ctx,
		"INSERT INTO todos (description, completed, create_by, create_at) VALUES ($1, $2, $3, $4) RETURNING id",
		description, false, ownerID, createdAt.UTC(),
	).Scan(&id)
	return id, err
}

// GetByID retrieves a todo by id joined with its owner's username. The
// lookup is intentionally not owner-filtered.
func (r *TodoRepo) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	var t domain.Todo
	err := r.store.db.GetContext(ctx, &t,
		r.store.db.Rebind("SELECT "+todoColumns+" FROM todos t JOIN users u ON t.create_by = u.id WHERE t.id = ?"),
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByOwner returns every todo owned by ownerID, most recent first.
func (r *TodoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	todos := []domain.Todo{}
	err := r.store.db.SelectContext(ctx, &todos,
		r.store.db.Rebind("SELECT "+todoColumns+" FROM todos t JOIN users u ON t.create_by = u.id WHERE t.create_by = ? ORDER BY t.create_at DESC"),
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// Update sets the description and completed flag of the todo identified by
// id, provided create_by matches ownerID. A non-matching owner updates zero
// rows and is not an error.
func (r *TodoRepo) Update(ctx context.Context, id, ownerID int64, description string, completed bool) error {
	_, err := r.store.db.ExecContext(ctx,
		r.store.db.Rebind("UPDATE todos SET description = ?, completed = ? WHERE id = ? AND create_by = ?"),
		description, completed, id, ownerID,
	)
	return err
}

// Delete removes the todo identified by id when owned by ownerID. Deleting
// zero rows is not an error.
func (r *TodoRepo) Delete(ctx context.Context, id, ownerID int64) error {
	_, err := r.store.db.ExecContext(ctx,
		r.store.db.Rebind("DELETE FROM todos WHERE id = ? AND create_by = ?"),
		id, ownerID,
	)
	return err
}
