package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// FirebaseProvider implements Provider on top of the Firebase Admin SDK.
type FirebaseProvider struct {
	client *auth.Client
	logger *zap.Logger
}

// NewFirebaseProvider wraps an initialized Firebase auth client.
func NewFirebaseProvider(client *auth.Client, logger *zap.Logger) *FirebaseProvider {
	return &FirebaseProvider{client: client, logger: logger}
}

// Verify implements Provider.Verify. Tokens are re-verified on every call;
// results are never cached.
func (p *FirebaseProvider) Verify(ctx context.Context, token string) (Identity, error) {
	decoded, err := p.client.VerifyIDToken(ctx, token)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return Identity{}, ErrTokenExpired
		}
		p.logger.Debug("token verification failed", zap.Error(err))
		return Identity{}, ErrUnauthorized
	}

	ident := Identity{UserID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		ident.Email = email
	}

	// Display name comes from the user profile, not the token claims.
	// Best effort: a failed lookup leaves the name empty.
	user, err := p.client.GetUser(ctx, decoded.UID)
	if err != nil {
		p.logger.Debug("user profile lookup failed", zap.String("uid", decoded.UID), zap.Error(err))
		return ident, nil
	}
	ident.DisplayName = user.DisplayName

	return ident, nil
}

// Register implements Provider.Register.
func (p *FirebaseProvider) Register(ctx context.Context, email, password, displayName string) error {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	if _, err := p.client.CreateUser(ctx, params); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
