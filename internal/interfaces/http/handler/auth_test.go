package handler_test

import (
	"net/http"
	"testing"

	identityapp "github.com/printdesk/backend/internal/application/identity"
	"github.com/printdesk/backend/internal/interfaces/http/dto"
	"github.com/printdesk/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)

	w := env.doAnonymous(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"username": testUsername,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[identityapp.LoginResult](t, w)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, testUsername, result.User.Username)

	w = env.send(t, http.MethodGet, "/api/v1/auth/me", nil, result.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_LoginRejected(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"wrong password", map[string]any{"username": testUsername, "password": "wrong-password"}, http.StatusUnauthorized, dto.ErrCodeCredentials},
		{"unknown user", map[string]any{"username": "nobody", "password": testPassword}, http.StatusUnauthorized, dto.ErrCodeCredentials},
		{"missing password", map[string]any{"username": testUsername}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"short username", map[string]any{"username": "ab", "password": testPassword}, http.StatusBadRequest, dto.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.doAnonymous(t, http.MethodPost, "/api/v1/auth/login", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestAuthHandler_RefreshRotatesToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.doAnonymous(t, http.MethodPost, "/api/v1/auth/refresh", map[string]any{"refresh_token": env.refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	refreshed := decode[identityapp.RefreshTokenResult](t, w)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, env.refresh, refreshed.RefreshToken)

	w = env.send(t, http.MethodGet, "/api/v1/customers", nil, refreshed.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.doAnonymous(t, http.MethodPost, "/api/v1/auth/refresh", map[string]any{"refresh_token": env.refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenRevoked, errorCode(t, w))
}

func TestAuthHandler_RefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.doAnonymous(t, http.MethodPost, "/api/v1/auth/refresh", map[string]any{"refresh_token": env.token})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Profile(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	me := decode[identityapp.UserInfo](t, w)
	assert.Equal(t, testUsername, me.Username)
	assert.Equal(t, "Administrator", me.DisplayName)

	w = env.do(t, http.MethodPut, "/api/v1/auth/me", map[string]any{
		"display_name": "Marina",
		"email":        "marina@grafica.com.br",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[identityapp.UserInfo](t, w)
	assert.Equal(t, "Marina", updated.DisplayName)
	assert.Equal(t, "marina@grafica.com.br", updated.Email)

	w = env.do(t, http.MethodPut, "/api/v1/auth/me", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	const newPassword = "outra-senha-forte-9"

	w := env.do(t, http.MethodPut, "/api/v1/auth/password", map[string]any{
		"old_password": "wrong-password",
		"new_password": newPassword,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PASSWORD", errorCode(t, w))

	w = env.do(t, http.MethodPut, "/api/v1/auth/password", map[string]any{
		"old_password": testPassword,
		"new_password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))

	w = env.do(t, http.MethodPut, "/api/v1/auth/password", map[string]any{
		"old_password": testPassword,
		"new_password": newPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Password changed, please log in again", decode[handler.MessageData](t, w).Message)

	w = env.do(t, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenRevoked, errorCode(t, w))

	w = env.doAnonymous(t, http.MethodPost, "/api/v1/auth/login", map[string]any{"username": testUsername, "password": testPassword})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.doAnonymous(t, http.MethodPost, "/api/v1/auth/login", map[string]any{"username": testUsername, "password": newPassword})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/logout", map[string]any{"refresh_token": env.refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Logged out", decode[handler.MessageData](t, w).Message)

	w = env.do(t, http.MethodGet, "/api/v1/customers", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenRevoked, errorCode(t, w))

	w = env.doAnonymous(t, http.MethodPost, "/api/v1/auth/refresh", map[string]any{"refresh_token": env.refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LogoutWithoutBody(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.doAnonymous(t, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.send(t, http.MethodGet, "/api/v1/auth/me", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
