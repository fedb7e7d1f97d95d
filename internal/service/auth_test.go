package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/service"
	"github.com/mernspace/auth-service/internal/storage/memory"
	"github.com/mernspace/auth-service/internal/util"
)

func newTestAuthService(t *testing.T) (*service.AuthService, *service.TokenService, *memory.Storage) {
	t.Helper()

	tokens := newTestTokenService(t, time.Hour)
	store := memory.NewStorage()
	auth := service.NewAuthService(store, tokens, service.NewCredentialService(), zap.NewNop().Sugar())
	return auth, tokens, store
}

func registerRequest() models.RegisterRequest {
	return models.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "secret-password",
	}
}

func TestRegisterIssuesTokensAndSession(t *testing.T) {
	auth, tokens, store := newTestAuthService(t)
	ctx := context.Background()

	user, pair, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)

	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, 1, store.UserCount())
	assert.Equal(t, 1, store.SessionCountForUser(user.ID))

	stored, err := store.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", stored.Password)
	assert.True(t, strings.HasPrefix(stored.Password, "$2a$10$"))

	access, err := tokens.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "1", access.Sub)
	assert.Equal(t, models.RoleCustomer, access.Role)

	refresh, err := tokens.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "1", refresh.Sub)
	assert.NotZero(t, refresh.SessionID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _, store := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, _, err = auth.Register(ctx, registerRequest())
	var apiErr *util.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, util.ErrTypeConflict, apiErr.Type)
	assert.Equal(t, 1, store.UserCount())
}

func TestRegisterUnknownRole(t *testing.T) {
	auth, _, store := newTestAuthService(t)

	req := registerRequest()
	req.Role = "SUPERUSER"
	_, _, err := auth.Register(context.Background(), req)

	var apiErr *util.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, util.ErrTypeValidation, apiErr.Type)
	assert.Equal(t, 0, store.UserCount())
}

func TestLogin(t *testing.T) {
	auth, _, store := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)

	loggedIn, pair, err := auth.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// register + login: one session per successful issue
	assert.Equal(t, 2, store.SessionCountForUser(user.ID))
}

func TestLoginBadCredentials(t *testing.T) {
	auth, _, store := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)

	cases := []models.LoginRequest{
		{Email: "ada@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "secret-password"},
	}
	for _, req := range cases {
		_, _, err := auth.Login(ctx, req)
		var apiErr *util.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, util.ErrTypeInvalidCredentials, apiErr.Type)
		assert.Equal(t, 400, apiErr.Status)
	}

	assert.Equal(t, 1, store.SessionCountForUser(user.ID), "failed logins must not create sessions")
}

func TestSelf(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)

	self, err := auth.Self(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, self.ID)

	_, err = auth.Self(ctx, "999")
	var apiErr *util.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, util.ErrTypeNotFound, apiErr.Type)
}

func TestRefreshRotatesSession(t *testing.T) {
	auth, tokens, store := newTestAuthService(t)
	ctx := context.Background()

	user, pair, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)

	oldPayload, err := tokens.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	_, newPair, err := auth.Refresh(ctx, *oldPayload)
	require.NoError(t, err)

	newPayload, err := tokens.ParseRefreshToken(newPair.RefreshToken)
	require.NoError(t, err)

	assert.NotEqual(t, oldPayload.SessionID, newPayload.SessionID)
	assert.Equal(t, 1, store.SessionCountForUser(user.ID), "rotation must replace, not accumulate")

	exists, err := auth.SessionExists(ctx, oldPayload.SessionID)
	require.NoError(t, err)
	assert.False(t, exists, "old session must be revoked after rotation")

	exists, err = auth.SessionExists(ctx, newPayload.SessionID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRefreshUserDeleted(t *testing.T) {
	auth, tokens, store := newTestAuthService(t)
	ctx := context.Background()

	user, pair, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)

	payload, err := tokens.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, store.DeleteUser(ctx, user.ID))

	_, _, err = auth.Refresh(ctx, *payload)
	var apiErr *util.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, util.ErrTypeNotFound, apiErr.Type)
}

func TestLogoutIsIdempotent(t *testing.T) {
	auth, tokens, store := newTestAuthService(t)
	ctx := context.Background()

	user, pair, err := auth.Register(ctx, registerRequest())
	require.NoError(t, err)

	oldPayload, err := tokens.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	_, newPair, err := auth.Refresh(ctx, *oldPayload)
	require.NoError(t, err)
	newPayload, err := tokens.ParseRefreshToken(newPair.RefreshToken)
	require.NoError(t, err)

	// logging out with the rotated-away session id succeeds and leaves the
	// live session alone
	require.NoError(t, auth.Logout(ctx, *oldPayload))
	assert.Equal(t, 1, store.SessionCountForUser(user.ID))

	require.NoError(t, auth.Logout(ctx, *newPayload))
	assert.Equal(t, 0, store.SessionCountForUser(user.ID))

	// calling twice is not an error
	require.NoError(t, auth.Logout(ctx, *newPayload))
}
