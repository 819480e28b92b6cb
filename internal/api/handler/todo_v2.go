package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lazcares/todo-api/internal/api/metrics"
	"github.com/lazcares/todo-api/internal/core/domain"
	"github.com/lazcares/todo-api/internal/core/ports"
)

// TodoV2Handler serves the current todo surface. Each handler resolves the
// caller identity, invokes exactly one repository operation, and maps the
// outcome to a response.
type TodoV2Handler struct {
	repo ports.TodoRepository
}

func NewTodoV2Handler(repo ports.TodoRepository) *TodoV2Handler {
	return &TodoV2Handler{repo: repo}
}

type todoTaskRequest struct {
	Task string `json:"task" validate:"required"`
}

// List returns every todo assigned to the caller.
//
// @Summary      List the caller's todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Todo
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v2/todos [get]
func (h *TodoV2Handler) List(c echo.Context) error {
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

// Get returns one of the caller's todos by id.
//
// @Summary      Get a single todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        todo_id  path      int  true  "Todo id"
// @Success      200      {object}  domain.Todo
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /api/v2/todos/{todo_id} [get]
func (h *TodoV2Handler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	todoID, err := todoIDParam(c)
	if err != nil {
		return err
	}

	todo, err := h.repo.GetOneAssigned(c.Request().Context(), identity.ID, todoID)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "todo not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, todo)
}

// Create adds a todo for the caller. New todos start incomplete.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      todoTaskRequest  true  "Task text"
// @Success      200   {object}  domain.Todo
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v2/todos [post]
func (h *TodoV2Handler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req todoTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	todo, err := h.repo.Create(c.Request().Context(), identity.ID, req.Task)
	if err != nil {
		return err
	}

	metrics.TodosCreatedTotal.Inc()
	return c.JSON(http.StatusOK, todo)
}

// Update replaces the task text of one of the caller's todos.
//
// @Summary      Update a todo's task text
// @Tags         todos
// @Accept       json
// @Security     BearerAuth
// @Param        todo_id  path  int              true  "Todo id"
// @Param        body     body  todoTaskRequest  true  "New task text"
// @Success      200
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v2/todos/{todo_id} [put]
func (h *TodoV2Handler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	todoID, err := todoIDParam(c)
	if err != nil {
		return err
	}

	var req todoTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.repo.UpdateTask(c.Request().Context(), identity.ID, todoID, req.Task); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

// Complete marks one of the caller's todos as done.
//
// @Summary      Complete a todo
// @Tags         todos
// @Security     BearerAuth
// @Param        todo_id  path  int  true  "Todo id"
// @Success      200
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v2/todos/{todo_id}/complete [put]
func (h *TodoV2Handler) Complete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	todoID, err := todoIDParam(c)
	if err != nil {
		return err
	}

	if err := h.repo.CompleteTodo(c.Request().Context(), identity.ID, todoID); err != nil {
		return err
	}

	metrics.TodosCompletedTotal.Inc()
	return c.NoContent(http.StatusOK)
}

// Delete removes one of the caller's todos. Idempotent.
//
// @Summary      Delete a todo
// @Tags         todos
// @Security     BearerAuth
// @Param        todo_id  path  int  true  "Todo id"
// @Success      200
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v2/todos/{todo_id} [delete]
func (h *TodoV2Handler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	todoID, err := todoIDParam(c)
	if err != nil {
		return err
	}

	if err := h.repo.Delete(c.Request().Context(), identity.ID, todoID); err != nil {
		return err
	}

	metrics.TodosDeletedTotal.Inc()
	return c.NoContent(http.StatusOK)
}

func todoIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("todo_id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid todo id")
	}
	return id, nil
}
