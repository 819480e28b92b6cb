package middleware

import "github.com/labstack/echo/v4"

// Deprecated marks every response from a route group as belonging to a
// deprecated API version. Advisory metadata only: behaviour is unchanged
// and the routes stay fully functional.
func Deprecated(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Deprecation", "true")
			h.Set("X-Api-Deprecated-Version", version)
			return next(c)
		}
	}
}
