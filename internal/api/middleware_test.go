package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mernspace/auth-service/internal/api"
	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/service"
	"github.com/mernspace/auth-service/internal/storage/memory"
	"github.com/mernspace/auth-service/internal/util"
)

type testEnv struct {
	echo   *echo.Echo
	tokens *service.TokenService
	auth   *service.AuthService
	store  *memory.Storage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cfg := util.NewTokenConfigFromKeys(key, []byte("test-refresh-secret"), time.Hour, 365*24*time.Hour)
	tokens := service.NewTokenService(cfg)
	store := memory.NewStorage()
	log := zap.NewNop().Sugar()
	auth := service.NewAuthService(store, tokens, service.NewCredentialService(), log)

	e := echo.New()
	e.HTTPErrorHandler = api.ErrorHandler(log)

	return &testEnv{echo: e, tokens: tokens, auth: auth, store: store}
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (env *testEnv) do(t *testing.T, method, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func accessCookie(t *testing.T, tokens *service.TokenService, sub string, role models.Role) *http.Cookie {
	t.Helper()

	token, err := tokens.GenerateAccessToken(models.AuthPayload{Sub: sub, Role: role})
	require.NoError(t, err)
	return &http.Cookie{Name: models.AccessTokenCookie, Value: token}
}

func TestAuthenticateMissingToken(t *testing.T) {
	env := newTestEnv(t)
	env.echo.GET("/protected", okHandler, api.Authenticate(env.tokens))

	rec := env.do(t, http.MethodGet, "/protected")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), util.ErrTypeUnauthenticated)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	env := newTestEnv(t)
	env.echo.GET("/protected", okHandler, api.Authenticate(env.tokens))

	rec := env.do(t, http.MethodGet, "/protected",
		&http.Cookie{Name: models.AccessTokenCookie, Value: "not-a-jwt"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	env := newTestEnv(t)
	env.echo.GET("/protected", okHandler, api.Authenticate(env.tokens))

	rec := env.do(t, http.MethodGet, "/protected", accessCookie(t, env.tokens, "1", models.RoleCustomer))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	env := newTestEnv(t)
	env.echo.GET("/admin", okHandler, api.Authenticate(env.tokens), api.RequireRole(models.RoleAdmin))

	rec := env.do(t, http.MethodGet, "/admin", accessCookie(t, env.tokens, "1", models.RoleCustomer))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), util.ErrTypeForbidden)

	rec = env.do(t, http.MethodGet, "/admin", accessCookie(t, env.tokens, "1", models.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleWithoutAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	env.echo.GET("/admin", okHandler, api.RequireRole(models.RoleAdmin))

	rec := env.do(t, http.MethodGet, "/admin", accessCookie(t, env.tokens, "1", models.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "RoleGate has no authentication capability of its own")
}

func TestValidateRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	env.echo.POST("/refresh", okHandler, api.ValidateRefreshToken(env.tokens, env.auth))

	session, err := env.store.CreateSession(context.Background(), 1)
	require.NoError(t, err)

	token, err := env.tokens.GenerateRefreshToken(models.AuthPayload{Sub: "1", Role: models.RoleCustomer}, session.ID)
	require.NoError(t, err)
	cookie := &http.Cookie{Name: models.RefreshTokenCookie, Value: token}

	rec := env.do(t, http.MethodPost, "/refresh", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	// a valid signature is not enough once the session row is gone
	require.NoError(t, env.store.DeleteSession(context.Background(), session.ID))
	rec = env.do(t, http.MethodPost, "/refresh", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)
	env.echo.POST("/refresh", okHandler, api.ValidateRefreshToken(env.tokens, env.auth))

	token, err := env.tokens.GenerateAccessToken(models.AuthPayload{Sub: "1", Role: models.RoleCustomer})
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/refresh", &http.Cookie{Name: models.RefreshTokenCookie, Value: token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
