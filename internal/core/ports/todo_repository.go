package ports

import (
	"context"

	"github.com/lazcares/todo-api/internal/core/domain"
)

// TodoRepository exposes the todo operations backed by the store. Every
// operation takes the owning user id as a mandatory filter; implementations
// must never return or mutate a todo assigned to a different user.
type TodoRepository interface {
	GetAllAssigned(ctx context.Context, assignedTo int64) ([]domain.Todo, error)
	GetOneAssigned(ctx context.Context, assignedTo, todoID int64) (*domain.Todo, error)
	Create(ctx context.Context, assignedTo int64, task string) (*domain.Todo, error)
	UpdateTask(ctx context.Context, assignedTo, todoID int64, task string) error
	CompleteTodo(ctx context.Context, assignedTo, todoID int64) error
	Delete(ctx context.Context, assignedTo, todoID int64) error
}
