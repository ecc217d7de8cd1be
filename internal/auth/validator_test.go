package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTValidator_Validate(t *testing.T) {
	v, err := NewJWTValidator("test-secret")
	require.NoError(t, err)

	subject, err := v.Validate(context.Background(), "Bearer "+signToken(t, "test-secret", "pricing-dashboard"))
	require.NoError(t, err)
	assert.Equal(t, "pricing-dashboard", subject)
}

func TestJWTValidator_RejectsBadTokens(t *testing.T) {
	v, err := NewJWTValidator("test-secret")
	require.NoError(t, err)

	_, err = v.Validate(context.Background(), "")
	assert.Error(t, err)

	_, err = v.Validate(context.Background(), "Bearer not-a-jwt")
	assert.Error(t, err)

	// Wrong signing secret
	_, err = v.Validate(context.Background(), signToken(t, "other-secret", "caller"))
	assert.Error(t, err)
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator("")
	assert.Error(t, err)
}
