package sqldb

import (
	"context"
	"fmt"

	"github.com/lazcares/todo-api/internal/core/domain"
)

// DefaultStore is the store id the repository targets unless told otherwise.
const DefaultStore = "default"

// One procedure per repository operation; each has a fixed parameter shape.
const (
	procGetAllAssigned = "sp_todos_get_all_assigned"
	procGetOneAssigned = "sp_todos_get_one_assigned"
	procCreate         = "sp_todos_create"
	procUpdateTask     = "sp_todos_update_task"
	procComplete       = "sp_todos_complete"
	procDelete         = "sp_todos_delete"
)

// todoRow mirrors the column order every todo procedure returns:
// id, task, assigned_to, is_complete.
type todoRow struct {
	ID         int64
	Task       string
	AssignedTo int64
	IsComplete bool
}

func (r *todoRow) ScanDest() []any {
	return []any{&r.ID, &r.Task, &r.AssignedTo, &r.IsComplete}
}

func (r todoRow) toDomain() domain.Todo {
	return domain.Todo{
		ID:         r.ID,
		Task:       r.Task,
		AssignedTo: r.AssignedTo,
		IsComplete: r.IsComplete,
	}
}

type ownerParams struct {
	AssignedTo int64
}

func (p ownerParams) Args() []any { return []any{p.AssignedTo} }

type ownerTodoParams struct {
	AssignedTo int64
	TodoID     int64
}

func (p ownerTodoParams) Args() []any { return []any{p.AssignedTo, p.TodoID} }

type createParams struct {
	AssignedTo int64
	Task       string
}

func (p createParams) Args() []any { return []any{p.AssignedTo, p.Task} }

type updateTaskParams struct {
	AssignedTo int64
	TodoID     int64
	Task       string
}

func (p updateTaskParams) Args() []any { return []any{p.AssignedTo, p.TodoID, p.Task} }

// TodoRepository implements ports.TodoRepository over the generic data
// access layer. The owner id on every call is the one extracted from the
// verified token, never a caller-supplied value.
type TodoRepository struct {
	data  *DataAccess
	store string
}

func NewTodoRepository(data *DataAccess, store string) *TodoRepository {
	if store == "" {
		store = DefaultStore
	}
	return &TodoRepository{data: data, store: store}
}

func (r *TodoRepository) GetAllAssigned(ctx context.Context, assignedTo int64) ([]domain.Todo, error) {
	rows, err := Query[todoRow, *todoRow](ctx, r.data, procGetAllAssigned, ownerParams{assignedTo}, r.store)
	if err != nil {
		return nil, err
	}

	todos := make([]domain.Todo, 0, len(rows))
	for _, row := range rows {
		todos = append(todos, row.toDomain())
	}
	return todos, nil
}

// GetOneAssigned returns ErrTodoNotFound for missing and foreign ids alike.
func (r *TodoRepository) GetOneAssigned(ctx context.Context, assignedTo, todoID int64) (*domain.Todo, error) {
	rows, err := Query[todoRow, *todoRow](ctx, r.data, procGetOneAssigned, ownerTodoParams{assignedTo, todoID}, r.store)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrTodoNotFound
	}

	todo := rows[0].toDomain()
	return &todo, nil
}

// Create inserts a todo for the owner and returns it with the
// store-generated id. New todos start incomplete.
func (r *TodoRepository) Create(ctx context.Context, assignedTo int64, task string) (*domain.Todo, error) {
	rows, err := Query[todoRow, *todoRow](ctx, r.data, procCreate, createParams{assignedTo, task}, r.store)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s returned no row", procCreate)
	}

	todo := rows[0].toDomain()
	return &todo, nil
}

// UpdateTask replaces the task text. A foreign or missing id is a no-op.
func (r *TodoRepository) UpdateTask(ctx context.Context, assignedTo, todoID int64, task string) error {
	return Execute(ctx, r.data, procUpdateTask, updateTaskParams{assignedTo, todoID, task}, r.store)
}

// CompleteTodo marks the todo complete. A foreign or missing id is a no-op.
func (r *TodoRepository) CompleteTodo(ctx context.Context, assignedTo, todoID int64) error {
	return Execute(ctx, r.data, procComplete, ownerTodoParams{assignedTo, todoID}, r.store)
}

// Delete removes the todo. Idempotent: deleting a missing or foreign id is
// not an error.
func (r *TodoRepository) Delete(ctx context.Context, assignedTo, todoID int64) error {
	return Execute(ctx, r.data, procDelete, ownerTodoParams{assignedTo, todoID}, r.store)
}
