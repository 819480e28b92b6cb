package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazcares/todo-api/internal/core/domain"
	"github.com/lazcares/todo-api/internal/infrastructure/config"
	"github.com/lazcares/todo-api/internal/infrastructure/db/sqldb"
	"github.com/lazcares/todo-api/internal/infrastructure/identity"
)

func doRequest(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func e2eTodoRows(todos ...domain.Todo) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "task", "assigned_to", "is_complete"})
	for _, td := range todos {
		rows.AddRow(td.ID, td.Task, td.AssignedTo, td.IsComplete)
	}
	return rows
}

// TestRouter_EndToEnd drives the full surface through one router instance.
// The prometheus middleware registers collectors on the default registry,
// so the router is built once and the steps run in sequence against it.
func TestRouter_EndToEnd(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	data := sqldb.New()
	data.Register(sqldb.DefaultStore, db)

	srv := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Port: "8080",
		Env:  "test",
		Auth: config.AuthConfig{
			Secret:   "e2e-secret",
			Issuer:   "todo-api",
			Audience: "todo-clients",
		},
	}

	e := NewRouter(cfg, data, rdb, identity.NewStaticValidator(), zerolog.Nop())

	var token string

	t.Run("health is anonymous", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("login with a bad password is rejected", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/auth/token", "", `{"username":"rlazcares","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, rec.Body.Len())
	})

	t.Run("login issues a token", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/auth/token", "", `{"username":"rlazcares","password":"Test123"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		token = resp["token"]
		require.NotEmpty(t, token)
	})

	t.Run("todos require a token", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/todos", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("create complete get delete", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM sp_todos_create($1, $2)")).
			WithArgs(int64(1), "Mow the lawn").
			WillReturnRows(e2eTodoRows(domain.Todo{ID: 7, Task: "Mow the lawn", AssignedTo: 1}))

		rec := doRequest(e, http.MethodPost, "/api/todos", token, `{"task":"Mow the lawn"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var created domain.Todo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		require.Equal(t, int64(7), created.ID)
		require.False(t, created.IsComplete)

		mock.ExpectExec(regexp.QuoteMeta("CALL sp_todos_complete($1, $2)")).
			WithArgs(int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rec = doRequest(e, http.MethodPut, "/api/todos/7/complete", token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM sp_todos_get_one_assigned($1, $2)")).
			WithArgs(int64(1), int64(7)).
			WillReturnRows(e2eTodoRows(domain.Todo{ID: 7, Task: "Mow the lawn", AssignedTo: 1, IsComplete: true}))

		rec = doRequest(e, http.MethodGet, "/api/todos/7", token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var fetched domain.Todo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
		require.True(t, fetched.IsComplete)

		mock.ExpectExec(regexp.QuoteMeta("CALL sp_todos_delete($1, $2)")).
			WithArgs(int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rec = doRequest(e, http.MethodDelete, "/api/todos/7", token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM sp_todos_get_one_assigned($1, $2)")).
			WithArgs(int64(1), int64(7)).
			WillReturnRows(e2eTodoRows())

		rec = doRequest(e, http.MethodGet, "/api/todos/7", token, "")
		require.Equal(t, http.StatusNotFound, rec.Code)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("v2 path matches the unversioned one", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM sp_todos_get_all_assigned($1)")).
			WithArgs(int64(1)).
			WillReturnRows(e2eTodoRows())

		rec := doRequest(e, http.MethodGet, "/api/v2/todos", token, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Deprecation"))
	})

	t.Run("v1 list works and is marked deprecated", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM sp_todos_get_all_assigned($1)")).
			WithArgs(int64(1)).
			WillReturnRows(e2eTodoRows(domain.Todo{ID: 2, Task: "Walk the dog", AssignedTo: 1}))

		rec := doRequest(e, http.MethodGet, "/api/v1/todos", token, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "true", rec.Header().Get("Deprecation"))
	})

	t.Run("v1 has no mutating routes", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/v1/todos", token, `{"task":"nope"}`)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("metrics endpoint serves the registry", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/metrics", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "todoapi_")
	})
}
