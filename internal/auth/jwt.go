package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken means the token is not a JWT. Platform tokens are often
// random strings; that is not an error for the session.
var ErrOpaqueToken = errors.New("token is not a JWT")

// Claims represents the claims the platform puts into session tokens.
type Claims struct {
	UserID any `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// Inspect decodes a token's claims without verifying its signature. The
// client never holds the signing secret; the server verifies on every call.
func Inspect(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if strings.Count(tokenString, ".") != 2 {
		return nil, ErrOpaqueToken
	}
	parser := jwt.NewParser()
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.Join(ErrOpaqueToken, err)
	}
	return claims, nil
}

// ExpiresAt returns the token's exp claim, or the zero time when the token
// is opaque or carries no exp.
func ExpiresAt(tokenString string) time.Time {
	claims, err := Inspect(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
