package domain

import "errors"

// ErrTodoNotFound is returned when a todo does not exist or belongs to
// another user. Callers cannot tell the two cases apart.
var ErrTodoNotFound = errors.New("todo not found")

// Todo is a single task assigned to exactly one user. All repository
// operations are scoped to the assignee.
type Todo struct {
	ID         int64  `json:"id"`
	Task       string `json:"task"`
	AssignedTo int64  `json:"assignedTo"`
	IsComplete bool   `json:"isComplete"`
}
