package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService(JWTConfig{Secret: "test-secret", ExpiryHours: 1})

	token, expiresAt, err := tokens.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService(JWTConfig{Secret: "secret-a", ExpiryHours: 1})
	verifier := NewTokenService(JWTConfig{Secret: "secret-b", ExpiryHours: 1})

	token, _, err := issuer.Issue(7)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenExpired(t *testing.T) {
	// Negative expiry issues a token that is already past its deadline
	tokens := NewTokenService(JWTConfig{Secret: "test-secret", ExpiryHours: -1})

	token, _, err := tokens.Issue(7)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenGarbage(t *testing.T) {
	tokens := NewTokenService(JWTConfig{Secret: "test-secret", ExpiryHours: 1})

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Verify(input)
		assert.ErrorIs(t, err, ErrTokenInvalid, "input %q", input)
	}
}

func TestTokenTampered(t *testing.T) {
	tokens := NewTokenService(JWTConfig{Secret: "test-secret", ExpiryHours: 1})

	token, _, err := tokens.Issue(7)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = tokens.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenEmptySecret(t *testing.T) {
	tokens := NewTokenService(JWTConfig{Secret: "", ExpiryHours: 1})

	_, _, err := tokens.Issue(7)
	assert.Error(t, err)
}
