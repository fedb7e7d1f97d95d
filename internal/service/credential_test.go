package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mernspace/auth-service/internal/service"
)

func TestHashPassword(t *testing.T) {
	creds := service.NewCredentialService()

	hash, err := creds.HashPassword("secret-password")
	require.NoError(t, err)

	assert.NotEqual(t, "secret-password", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"), "expected bcrypt cost-10 prefix, got %q", hash)
	assert.Len(t, hash, 60)
}

func TestComparePassword(t *testing.T) {
	creds := service.NewCredentialService()

	hash, err := creds.HashPassword("secret-password")
	require.NoError(t, err)

	assert.True(t, creds.ComparePassword("secret-password", hash))
	assert.False(t, creds.ComparePassword("wrong-password", hash))
}

func TestComparePasswordMalformedHash(t *testing.T) {
	creds := service.NewCredentialService()

	assert.False(t, creds.ComparePassword("secret-password", "not-a-bcrypt-hash"))
	assert.False(t, creds.ComparePassword("secret-password", ""))
}
