package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginFlow(t *testing.T) {
	_, app := newTestServer(t)

	token := registerTestUser(t, app, "Alice", "alice@example.com")

	t.Run("fresh token authenticates", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			User *struct {
				Name     string `json:"name"`
				Email    string `json:"email"`
				Avatar   string `json:"avatar"`
				Password string `json:"password"`
			} `json:"user"`
		}
		decodeBody(t, resp, &body)
		require.NotNil(t, body.User, "response must wrap the record in a user key")
		assert.Equal(t, "Alice", body.User.Name)
		assert.Equal(t, "alice@example.com", body.User.Email)
		assert.Contains(t, body.User.Avatar, "gravatar.com")
		assert.Empty(t, body.User.Password, "password hash must never be serialized")
	})

	t.Run("login returns a working token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		decodeBody(t, resp, &body)
		require.NotEmpty(t, body.Token)

		resp = doJSON(t, app, http.MethodGet, "/api/auth", body.Token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestRegisterValidation(t *testing.T) {
	_, app := newTestServer(t)

	tests := []struct {
		name        string
		body        map[string]string
		expectedMsg string
	}{
		{
			name:        "missing name",
			body:        map[string]string{"email": "a@example.com", "password": "password123"},
			expectedMsg: "Name is required",
		},
		{
			name:        "bad email",
			body:        map[string]string{"name": "A", "email": "not-an-email", "password": "password123"},
			expectedMsg: "Please include a valid email",
		},
		{
			name:        "short password",
			body:        map[string]string{"name": "A", "email": "a@example.com", "password": "123"},
			expectedMsg: "Please enter a password with 6 or more characters",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/users/register", "", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.expectedMsg, firstErrorMsg(t, resp))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, app := newTestServer(t)

	registerTestUser(t, app, "Alice", "dup@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/users/register", "", map[string]string{
		"name":     "Bob",
		"email":    "dup@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists", firstErrorMsg(t, resp))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, app := newTestServer(t)
	registerTestUser(t, app, "Alice", "login@example.com")

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "login@example.com",
			"password": "wrong-password",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", firstErrorMsg(t, resp))
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", firstErrorMsg(t, resp))
	})
}

func TestAuthRequired(t *testing.T) {
	_, app := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "No token, authorization denied", firstErrorMsg(t, resp))
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth", "not.a.jwt", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Token is not valid", firstErrorMsg(t, resp))
	})
}
