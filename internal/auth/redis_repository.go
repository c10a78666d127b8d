package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps outstanding and blacklisted refresh jtis in Redis.
// Keys expire with the token they describe.
type RedisRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client, now: time.Now}
}

// getTokenKey generates the Redis key for an outstanding refresh token
func getTokenKey(jti string) string {
	return fmt.Sprintf("refresh_token:%s", jti)
}

// getBlacklistKey generates the Redis key for a blacklisted token marker
func getBlacklistKey(jti string) string {
	return fmt.Sprintf("refresh_token:blacklist:%s", jti)
}

// getUserTokensKey generates the Redis key for user's token set
func getUserTokensKey(userID uuid.UUID) string {
	return fmt.Sprintf("user_tokens:%s", userID.String())
}

func (r *RedisRepository) ttlUntil(expiresAt time.Time) time.Duration {
	ttl := expiresAt.Sub(r.now())
	if ttl < time.Second {
		return time.Second
	}
	return ttl
}

// StoreRefreshToken records an outstanding refresh token until it expires
func (r *RedisRepository) StoreRefreshToken(ctx context.Context, userID uuid.UUID, jti string, expiresAt time.Time) error {
	if !expiresAt.After(r.now()) {
		return fmt.Errorf("token expiration time is in the past")
	}
	ttl := r.ttlUntil(expiresAt)
	userTokensKey := getUserTokensKey(userID)

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, getTokenKey(jti), map[string]any{
		"user_id":    userID.String(),
		"expires_at": expiresAt.Unix(),
		"created_at": r.now().Unix(),
	})
	pipe.Expire(ctx, getTokenKey(jti), ttl)
	pipe.SAdd(ctx, userTokensKey, jti)
	// the newest token always has the longest lifetime
	pipe.Expire(ctx, userTokensKey, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// BlacklistRefreshToken marks jti as spent with SET NX.
func (r *RedisRepository) BlacklistRefreshToken(ctx context.Context, userID uuid.UUID, jti string, expiresAt time.Time) error {
	ok, err := r.client.SetNX(ctx, getBlacklistKey(jti), userID.String(), r.ttlUntil(expiresAt)).Result()
	if err != nil {
		return fmt.Errorf("failed to blacklist refresh token: %w", err)
	}
	if !ok {
		return ErrRefreshTokenRevoked
	}
	return nil
}

func (r *RedisRepository) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, getBlacklistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return n > 0, nil
}

// RevokeAllUserTokens blacklists every outstanding refresh token for a user
func (r *RedisRepository) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	userTokensKey := getUserTokensKey(userID)

	jtis, err := r.client.SMembers(ctx, userTokensKey).Result()
	if err != nil {
		return fmt.Errorf("failed to get user tokens: %w", err)
	}
	if len(jtis) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, jti := range jtis {
		ttl, err := r.client.TTL(ctx, getTokenKey(jti)).Result()
		if err != nil || ttl <= 0 {
			// already expired
			continue
		}
		pipe.SetNX(ctx, getBlacklistKey(jti), userID.String(), ttl)
	}
	pipe.Del(ctx, userTokensKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revoke all user tokens: %w", err)
	}
	return nil
}

// CleanupExpiredTokens is a no-op: Redis expires keys via TTL
func (r *RedisRepository) CleanupExpiredTokens(ctx context.Context) error {
	return nil
}
