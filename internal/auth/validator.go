package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Validator validates API credentials and returns the caller identity.
type Validator interface {
	Validate(ctx context.Context, token string) (subject string, err error)
}

// JWTValidator validates HMAC-signed JWT bearer tokens.
type JWTValidator struct {
	secret []byte
}

// NewJWTValidator creates a validator from a shared signing secret.
func NewJWTValidator(secret string) (*JWTValidator, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret is required")
	}
	return &JWTValidator{secret: []byte(secret)}, nil
}

// Validate validates a JWT token and returns the subject claim.
func (v *JWTValidator) Validate(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return "", fmt.Errorf("empty token")
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid {
		return "", fmt.Errorf("invalid token")
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return subject, nil
}
