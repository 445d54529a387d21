// Package auth reads the claims of backend-issued access tokens. The client
// never holds the signing key, so tokens are inspected without verification;
// the backend remains the authority on validity.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of access-token claims the client reads.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

var parser = jwt.NewParser()

// Inspect decodes a JWT access token without verifying its signature.
// Opaque (non-JWT) tokens return an error.
func Inspect(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}

	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

// ExpiresAt returns the token's exp claim, or nil when the token is opaque or
// carries no exp.
func ExpiresAt(token string) *time.Time {
	claims, err := Inspect(token)
	if err != nil || claims.ExpiresAt == nil {
		return nil
	}
	t := claims.ExpiresAt.Time
	return &t
}

// Fingerprint returns a short stable digest of a token, safe to log.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:4])
}
