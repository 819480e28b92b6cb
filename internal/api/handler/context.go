package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lazcares/todo-api/internal/api/middleware"
	"github.com/lazcares/todo-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware. Its
// absence means the route was wired without the middleware; fail closed.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, ok := c.Get(middleware.IdentityKey).(*domain.Identity)
	if !ok || identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
