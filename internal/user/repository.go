package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository handles user data persistence
type Repository struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, u *User) (*User, error) {
	now := time.Now().UTC()
	dbUser := mapModelToDBUser(u)
	if dbUser.ID == uuid.Nil {
		dbUser.ID = uuid.New()
	}
	dbUser.CreatedAt = now
	dbUser.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(dbUser).
		Exec(ctx)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by exact (trimmed) email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("email = ?", NormalizeEmail(email)).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves a user by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// MarkVerified sets is_verified on an unverified user. It reports false when
// the user was already verified.
func (r *Repository) MarkVerified(ctx context.Context, userID uuid.UUID) (bool, error) {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("is_verified = ?", true).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID).
		Where("is_verified = ?", false).
		Exec(ctx)

	if err != nil {
		return false, fmt.Errorf("failed to mark user as verified: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// UpdateProfile writes the non-nil fields of update.
func (r *Repository) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) error {
	q := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID)

	if update.FullName != nil {
		q = q.Set("full_name = ?", *update.FullName)
	}
	if update.Contact != nil {
		q = q.Set("contact = ?", *update.Contact)
	}
	if update.Avatar != nil {
		q = q.Set("avatar = ?", *update.Avatar)
	}

	return r.execSingle(ctx, q, "update profile")
}

// TouchLastLogin records a successful login.
func (r *Repository) TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	q := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("last_login_at = ?", at.UTC()).
		Where("id = ?", userID)

	return r.execSingle(ctx, q, "update last login")
}

// SetActive enables or disables an account.
func (r *Repository) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	q := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("is_active = ?", active).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID)

	return r.execSingle(ctx, q, "set active")
}

// LinkGoogle flags an account as google-linked and verified.
func (r *Repository) LinkGoogle(ctx context.Context, userID uuid.UUID) error {
	q := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("is_google_user = ?", true).
		Set("is_verified = ?", true).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID)

	return r.execSingle(ctx, q, "link google account")
}

func (r *Repository) execSingle(ctx context.Context, q *bun.UpdateQuery, op string) error {
	result, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:           dbu.ID,
		Email:        dbu.Email,
		FullName:     dbu.FullName,
		Contact:      dbu.Contact,
		Avatar:       dbu.Avatar,
		PasswordHash: dbu.PasswordHash,
		IsActive:     dbu.IsActive,
		IsVerified:   dbu.IsVerified,
		IsGoogleUser: dbu.IsGoogleUser,
		IsStaff:      dbu.IsStaff,
		LastLoginAt:  dbu.LastLoginAt,
		CreatedAt:    dbu.CreatedAt,
		UpdatedAt:    dbu.UpdatedAt,
	}
}

func mapModelToDBUser(u *User) *database.User {
	return &database.User{
		ID:           u.ID,
		Email:        NormalizeEmail(u.Email),
		FullName:     u.FullName,
		Contact:      u.Contact,
		Avatar:       u.Avatar,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		IsVerified:   u.IsVerified,
		IsGoogleUser: u.IsGoogleUser,
		IsStaff:      u.IsStaff,
		LastLoginAt:  u.LastLoginAt,
	}
}
