package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "piqueunique/pkg/errors"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerify_ValidToken(t *testing.T) {
	p := NewJWTProvider(testSecret, []string{"admin-1"})

	raw := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user-7",
		"email": "jonas@example.lt",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	ident, err := p.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "user-7", ident.UID)
	assert.Equal(t, "jonas@example.lt", ident.Email)
	assert.False(t, ident.IsAdmin)
}

func TestVerify_AdminFlag(t *testing.T) {
	p := NewJWTProvider(testSecret, []string{"admin-1"})

	raw := signToken(t, testSecret, jwt.MapClaims{
		"sub": "admin-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	ident, err := p.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.True(t, ident.IsAdmin)
}

func TestVerify_RejectsBadInput(t *testing.T) {
	p := NewJWTProvider(testSecret, nil)

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"wrong secret", signToken(t, "other-secret", jwt.MapClaims{
			"sub": "user-7",
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"expired", signToken(t, testSecret, jwt.MapClaims{
			"sub": "user-7",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})},
		{"missing sub", signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Verify(context.Background(), tc.token)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeUnauthorized, apperrors.AsAppError(err).Code)
		})
	}
}

func TestIsAdmin(t *testing.T) {
	p := NewJWTProvider(testSecret, []string{"a", "b"})
	assert.True(t, p.IsAdmin("a"))
	assert.False(t, p.IsAdmin("c"))
}
