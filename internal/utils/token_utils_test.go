package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-42", "secret", time.Hour, "ledger-engine")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret", "ledger-engine")
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)

	_, err = ParseAndValidateJWT(token, "other-secret", "ledger-engine")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAndValidateJWT(token, "secret", "someone-else")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("user-42", "secret", -time.Minute, "")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret", "")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	_, err := GenerateJWT("user-42", "", time.Hour, "")
	assert.Error(t, err)
}
