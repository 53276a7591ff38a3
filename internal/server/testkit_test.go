package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devlink/internal/config"
	"devlink/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a fully wired server against an in-memory SQLite
// database and a miniredis instance.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		JWTSecret: "test_secret",
		Env:       "test",
	}
	s, err := NewServerWithDeps(cfg, db, redisClient)
	require.NoError(t, err)

	app := s.NewApp()
	s.SetupRoutes(app)
	return s, app
}

// doJSON issues a JSON request against the app. An empty token skips the
// Authorization header.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

// firstErrorMsg pulls the message out of the standard error envelope.
func firstErrorMsg(t *testing.T, resp *http.Response) string {
	t.Helper()
	var envelope struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	decodeBody(t, resp, &envelope)
	require.NotEmpty(t, envelope.Errors)
	return envelope.Errors[0].Msg
}

// registerTestUser registers a user via the API and returns their token.
func registerTestUser(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/users/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}
