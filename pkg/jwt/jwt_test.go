package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateAccessToken("7c1e3b2a-0000-4000-8000-000000000001")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7c1e3b2a-0000-4000-8000-000000000001", claims.UserID)
	assert.Equal(t, "access", claims.Type)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).GenerateAccessToken("owner")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsExpired(t *testing.T) {
	token, err := NewManager("secret", -time.Minute).GenerateAccessToken("owner")
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}
