package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lazcares/todo-api/internal/api/metrics"
	"github.com/lazcares/todo-api/internal/core/domain"
	"github.com/lazcares/todo-api/internal/core/ports"
)

// LoginLimiter throttles login attempts per username.
type LoginLimiter interface {
	Allow(ctx context.Context, username string) (bool, error)
}

type AuthHandler struct {
	auth    ports.AuthService
	limiter LoginLimiter
	log     zerolog.Logger
}

// NewAuthHandler builds the login endpoint handler. limiter may be nil, in
// which case attempts are not throttled.
func NewAuthHandler(auth ports.AuthService, limiter LoginLimiter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter, log: log}
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Token authenticates credentials and returns a bearer token.
//
// @Summary      Issue a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   "invalid credentials"
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if h.limiter != nil {
		ok, err := h.limiter.Allow(c.Request().Context(), req.Username)
		if err != nil {
			// A limiter outage must not lock everyone out; fail open.
			h.log.Error().Err(err).Msg("login limiter unavailable")
		} else if !ok {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many login attempts"})
		}
	}

	token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthLoginsTotal.WithLabelValues("failure").Inc()
			return c.NoContent(http.StatusUnauthorized)
		}
		return err
	}

	metrics.AuthLoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}
