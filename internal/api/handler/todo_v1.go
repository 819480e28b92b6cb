package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lazcares/todo-api/internal/core/ports"
)

// TodoV1Handler serves the deprecated v1 surface. It exposes a strict
// subset of v2 (list only) against the same repository.
type TodoV1Handler struct {
	repo ports.TodoRepository
}

func NewTodoV1Handler(repo ports.TodoRepository) *TodoV1Handler {
	return &TodoV1Handler{repo: repo}
}

// List returns every todo assigned to the caller.
//
// @Summary      List the caller's todos
// @Tags         todos-v1
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Todo
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Deprecated
// @Router       /api/v1/todos [get]
func (h *TodoV1Handler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	todos, err := h.repo.GetAllAssigned(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, todos)
}
