package app

import (
	"context"
	"errors"
	"time"

	"github.com/JorgeGarcia-Dev/todoapp/internal/domain"
)

var (
	// ErrDescriptionRequired indicates an empty todo description.
	ErrDescriptionRequired = errors.New("description is required")
	// ErrTodoNotFound indicates that no todo exists with the requested id.
	ErrTodoNotFound = errors.New("todo not found")
)

// TodoService encapsulates the todo lifecycle: list, create, fetch for the
// edit form, update and delete. Writes are scoped to the owner in the
// storage predicate, so a non-owner's update or delete affects zero rows.
type TodoService struct {
	repo domain.TodoRepository
}

// NewTodoService creates a TodoService backed by the given repository.
func NewTodoService(repo domain.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// List returns every todo owned by ownerID, most recent first.
func (s *TodoService) List(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create validates and stores a new todo for ownerID. New todos start
// uncompleted.
func (s *TodoService) Create(ctx context.Context, ownerID int64, description string) (int64, error) {
	if description == "" {
		return 0, ErrDescriptionRequired
	}
	return s.repo.Insert(ctx, ownerID, description, time.Now())
}

// Get fetches a todo by id together with its owner's username. The lookup is
// not owner-filtered: any authenticated user can load the edit view for any
// existing id. Only the write side enforces ownership.
func (s *TodoService) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	todo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

// Update validates and applies new values to the todo identified by id,
// provided it is owned by ownerID. When the owner does not match, the
// update silently affects nothing.
func (s *TodoService) Update(ctx context.Context, id, ownerID int64, description string, completed bool) error {
	if description == "" {
		return ErrDescriptionRequired
	}
	return s.repo.Update(ctx, id, ownerID, description, completed)
}

// Delete removes the todo identified by id if it is owned by ownerID.
// Deleting a nonexistent or foreign todo is a no-op.
func (s *TodoService) Delete(ctx context.Context, id, ownerID int64) error {
	return s.repo.Delete(ctx, id, ownerID)
}
