package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/lazcares/todo-api/docs"
	"github.com/lazcares/todo-api/internal/api/handler"
	"github.com/lazcares/todo-api/internal/api/middleware"
	"github.com/lazcares/todo-api/internal/core/ports"
	"github.com/lazcares/todo-api/internal/core/service"
	"github.com/lazcares/todo-api/internal/infrastructure/config"
	redisdb "github.com/lazcares/todo-api/internal/infrastructure/db/redis"
	"github.com/lazcares/todo-api/internal/infrastructure/db/sqldb"
)

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Two handler sets coexist: /api/v1 (deprecated, list-only) and /api/v2
// (full surface). Unversioned /api/todos requests get the latest set. Both
// share one repository instance. Every todo route sits behind the token
// verifier; login, health, metrics, and swagger stay anonymous.
func NewRouter(cfg *config.Config, data *sqldb.DataAccess, rdb *redis.Client, validator ports.CredentialValidator, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("todoapi"))

	// --- Dependencies ---
	tokens := service.NewTokenService(service.TokenConfig{
		Secret:   cfg.Auth.Secret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
	})
	authService := service.NewAuthService(validator, tokens)
	repo := sqldb.NewTodoRepository(data, sqldb.DefaultStore)

	var limiter handler.LoginLimiter
	if rdb != nil {
		limiter = redisdb.NewLoginLimiter(rdb, 10, time.Minute)
	}

	authHandler := handler.NewAuthHandler(authService, limiter, log)
	v1Handler := handler.NewTodoV1Handler(repo)
	v2Handler := handler.NewTodoV2Handler(repo)

	requireAuth := middleware.Auth(tokens)

	// --- Anonymous routes ---
	e.POST("/api/auth/token", authHandler.Token)
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(data, rdb).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Versioned todo routes ---
	v1 := e.Group("/api/v1/todos", requireAuth, middleware.Deprecated("v1"))
	v1.GET("", v1Handler.List)

	registerTodoRoutes(e.Group("/api/v2/todos", requireAuth), v2Handler)

	// Unversioned requests assume the latest version.
	registerTodoRoutes(e.Group("/api/todos", requireAuth), v2Handler)

	return e
}

func registerTodoRoutes(g *echo.Group, h *handler.TodoV2Handler) {
	g.GET("", h.List)
	g.GET("/:todo_id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:todo_id", h.Update)
	g.PUT("/:todo_id/complete", h.Complete)
	g.DELETE("/:todo_id", h.Delete)
}
