package auth

import (
	"context"

	"github.com/google/uuid"
)

// TokenService defines the interface for token creation and validation.
type TokenService interface {
	CreateToken(userID uuid.UUID, tokenType TokenType) (string, *TokenClaims, error)
	VerifyToken(tokenStr string, tokenType TokenType) (*TokenClaims, error)
}

// Notifier delivers verification links. Implementations must not block on delivery.
type Notifier interface {
	SendVerification(ctx context.Context, email, link string) error
}

// GoogleIdentity is the verified subset of a Google ID token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// GoogleVerifier validates Google ID tokens.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*GoogleIdentity, error)
}
