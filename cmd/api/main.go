package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lazcares/todo-api/internal/api"
	"github.com/lazcares/todo-api/internal/infrastructure/config"
	redisdb "github.com/lazcares/todo-api/internal/infrastructure/db/redis"
	"github.com/lazcares/todo-api/internal/infrastructure/db/sqldb"
	"github.com/lazcares/todo-api/internal/infrastructure/identity"
	"github.com/lazcares/todo-api/pkg/logger"
)

// @title           Todo API
// @version         2.0
// @description     Versioned todo management API secured with JWT bearer tokens. v1 is deprecated; v2 is the default for unversioned requests.

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := sqldb.Open(ctx, map[string]string{sqldb.DefaultStore: cfg.DB.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("open sql stores")
	}
	defer data.Close()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	e := api.NewRouter(cfg, data, rdb, identity.NewStaticValidator(), log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("todo api started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
