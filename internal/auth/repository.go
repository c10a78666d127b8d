package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database"
)

// Repository keeps outstanding and blacklisted refresh jtis in Postgres.
type Repository struct {
	db  bun.IDB
	now func() time.Time
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// StoreRefreshToken records an outstanding refresh token
func (r *Repository) StoreRefreshToken(ctx context.Context, userID uuid.UUID, jti string, expiresAt time.Time) error {
	dbToken := &database.OutstandingToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: r.now().UTC(),
	}

	_, err := r.db.NewInsert().
		Model(dbToken).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// BlacklistRefreshToken inserts jti unless it is already present.
func (r *Repository) BlacklistRefreshToken(ctx context.Context, userID uuid.UUID, jti string, expiresAt time.Time) error {
	dbToken := &database.BlacklistedToken{
		JTI:           jti,
		UserID:        userID,
		ExpiresAt:     expiresAt.UTC(),
		BlacklistedAt: r.now().UTC(),
	}

	result, err := r.db.NewInsert().
		Model(dbToken).
		On("CONFLICT (jti) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to blacklist refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrRefreshTokenRevoked
	}

	return nil
}

func (r *Repository) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*database.BlacklistedToken)(nil)).
		Where("jti = ?", jti).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return exists, nil
}

// RevokeAllUserTokens blacklists every unexpired outstanding token for a user
func (r *Repository) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	var outstanding []database.OutstandingToken
	err := r.db.NewSelect().
		Model(&outstanding).
		Where("user_id = ?", userID).
		Where("expires_at > ?", r.now().UTC()).
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to list user tokens: %w", err)
	}
	if len(outstanding) == 0 {
		return nil
	}

	now := r.now().UTC()
	blacklisted := make([]database.BlacklistedToken, 0, len(outstanding))
	for _, t := range outstanding {
		blacklisted = append(blacklisted, database.BlacklistedToken{
			JTI:           t.JTI,
			UserID:        t.UserID,
			ExpiresAt:     t.ExpiresAt,
			BlacklistedAt: now,
		})
	}

	_, err = r.db.NewInsert().
		Model(&blacklisted).
		On("CONFLICT (jti) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to revoke all user tokens: %w", err)
	}

	return nil
}

// CleanupExpiredTokens removes expired rows from both tables.
// Run periodically (makeoverctl tokens cleanup).
func (r *Repository) CleanupExpiredTokens(ctx context.Context) error {
	now := r.now().UTC()

	if _, err := r.db.NewDelete().
		Model((*database.OutstandingToken)(nil)).
		Where("expires_at < ?", now).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to cleanup outstanding tokens: %w", err)
	}

	if _, err := r.db.NewDelete().
		Model((*database.BlacklistedToken)(nil)).
		Where("expires_at < ?", now).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to cleanup blacklisted tokens: %w", err)
	}

	return nil
}
