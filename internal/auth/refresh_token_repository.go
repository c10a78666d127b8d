package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/config"
)

// RefreshTokenRepository tracks issued refresh tokens by jti and blacklists spent ones.
type RefreshTokenRepository interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, jti string, expiresAt time.Time) error
	// BlacklistRefreshToken is an atomic check-and-set. It returns
	// ErrRefreshTokenRevoked when jti was already blacklisted.
	BlacklistRefreshToken(ctx context.Context, userID uuid.UUID, jti string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
	CleanupExpiredTokens(ctx context.Context) error
}

// NewTokenStore selects the refresh-token backend named by kind.
func NewTokenStore(kind string, db bun.IDB, client *redis.Client) (RefreshTokenRepository, error) {
	switch kind {
	case config.TokenStoreRedis:
		return NewRedisRepository(client), nil
	case config.TokenStorePostgres:
		return NewRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported token store %q", kind)
	}
}
