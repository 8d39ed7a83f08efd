package identity

import (
	"context"
	"errors"
	"strings"
)

// Identity is the authenticated caller as reported by the identity provider.
type Identity struct {
	UserID      string
	Email       string
	DisplayName string
}

var (
	// ErrUnauthorized covers a missing, malformed or invalid token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTokenExpired is reported separately so callers can answer 401
	// instead of 403.
	ErrTokenExpired = errors.New("expired authorization token")
)

// Provider defines the interface to the external identity provider.
type Provider interface {
	// Verify validates a raw bearer token and returns the caller identity.
	// Fails with ErrUnauthorized or ErrTokenExpired.
	Verify(ctx context.Context, token string) (Identity, error)

	// Register creates a new user account with the provider.
	Register(ctx context.Context, email, password, displayName string) error
}

const bearerPrefix = "Bearer "

// ParseBearer extracts the raw token from an Authorization header value.
// The header must start with the literal "Bearer " prefix.
func ParseBearer(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrUnauthorized
	}
	return header[len(bearerPrefix):], nil
}
