package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	JwtKey = []byte("test-secret")
	TokenLifetime = 30 * 24 * time.Hour

	token, err := GenerateJWT("64f1c0ffee64f1c0ffee64f1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee64f1c0ffee64f1", claims.UserID)

	expiresIn := time.Until(time.Unix(claims.ExpiresAt, 0))
	assert.InDelta(t, TokenLifetime.Seconds(), expiresIn.Seconds(), 60)
}

func TestParseJWTRejectsTamperedToken(t *testing.T) {
	JwtKey = []byte("test-secret")

	token, err := GenerateJWT("64f1c0ffee64f1c0ffee64f1")
	require.NoError(t, err)

	JwtKey = []byte("a-different-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	JwtKey = []byte("test-secret")
	TokenLifetime = -time.Hour

	token, err := GenerateJWT("64f1c0ffee64f1c0ffee64f1")
	require.NoError(t, err)

	_, err = ParseJWT(token)
	assert.Error(t, err)
}
