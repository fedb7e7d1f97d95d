package service_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/service"
	"github.com/mernspace/auth-service/internal/util"
)

func newTestTokenService(t *testing.T, accessTTL time.Duration) *service.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cfg := util.NewTokenConfigFromKeys(key, []byte("test-refresh-secret"), accessTTL, 365*24*time.Hour)
	return service.NewTokenService(cfg)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	for _, role := range []models.Role{models.RoleAdmin, models.RoleManager, models.RoleCustomer} {
		payload := models.AuthPayload{Sub: "42", Role: role}

		token, err := ts.GenerateAccessToken(payload)
		require.NoError(t, err)

		decoded, err := ts.ParseAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, "42", decoded.Sub)
		assert.Equal(t, role, decoded.Role)
		assert.Zero(t, decoded.SessionID)
	}
}

func TestRefreshTokenCarriesSessionID(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)
	payload := models.AuthPayload{Sub: "7", Role: models.RoleCustomer}

	token, err := ts.GenerateRefreshToken(payload, 123)
	require.NoError(t, err)

	decoded, err := ts.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7", decoded.Sub)
	assert.Equal(t, models.RoleCustomer, decoded.Role)
	assert.Equal(t, int64(123), decoded.SessionID)
}

func TestParseAccessTokenRejectsRefreshToken(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)
	payload := models.AuthPayload{Sub: "7", Role: models.RoleCustomer}

	refreshToken, err := ts.GenerateRefreshToken(payload, 1)
	require.NoError(t, err)

	_, err = ts.ParseAccessToken(refreshToken)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)
	payload := models.AuthPayload{Sub: "7", Role: models.RoleCustomer}

	accessToken, err := ts.GenerateAccessToken(payload)
	require.NoError(t, err)

	_, err = ts.ParseRefreshToken(accessToken)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestParseAccessTokenExpired(t *testing.T) {
	ts := newTestTokenService(t, -time.Minute)
	payload := models.AuthPayload{Sub: "7", Role: models.RoleCustomer}

	token, err := ts.GenerateAccessToken(payload)
	require.NoError(t, err)

	_, err = ts.ParseAccessToken(token)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestParseAccessTokenWrongKey(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)
	other := newTestTokenService(t, time.Hour)

	token, err := ts.GenerateAccessToken(models.AuthPayload{Sub: "7", Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = other.ParseAccessToken(token)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestParseAccessTokenTampered(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	token, err := ts.GenerateAccessToken(models.AuthPayload{Sub: "7", Role: models.RoleCustomer})
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ts.ParseAccessToken(tampered)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}
