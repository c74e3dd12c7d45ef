// internal/auth/identity_test.go
package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smurfs/mathic-client/internal/models"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestIdentityFromTokenStringSubject(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "42", "userName": "alice"})

	ident, err := IdentityFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), ident.ID)
	assert.Equal(t, "alice", ident.UserName)
}

func TestIdentityFromTokenNumericSubject(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": 7, "username": "bob"})

	ident, err := IdentityFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), ident.ID)
	assert.Equal(t, "bob", ident.UserName)
}

func TestIdentityFromTokenMissingSubject(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"userName": "alice"})

	_, err := IdentityFromToken(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestIdentityFromTokenNonNumericSubject(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "alice"})

	_, err := IdentityFromToken(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestIdentityFromTokenGarbage(t *testing.T) {
	_, err := IdentityFromToken("not-a-jwt")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}
