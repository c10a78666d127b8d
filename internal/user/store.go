package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrGoogleAccountExists = errors.New("google account exists for email")

var timeNow = time.Now

const (
	duplicateEmailMessage = "An account with this email already exists. Please log in or use a different email to sign up."
	googleAccountMessage  = "A Google account is associated with this email. Please continue with Google to access your account."
)

// ConflictError reports a signup that collides with an existing account.
// It unwraps to ErrDuplicateEmail or ErrGoogleAccountExists.
type ConflictError struct {
	Field   string
	Message string
	kind    error
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return e.kind }

// Fields renders the conflict as a field error map.
func (e *ConflictError) Fields() map[string][]string {
	return map[string][]string{e.Field: {e.Message}}
}

func conflictFor(existing *User) *ConflictError {
	if existing != nil && existing.IsGoogleUser {
		return &ConflictError{Field: "email", Message: googleAccountMessage, kind: ErrGoogleAccountExists}
	}
	return &ConflictError{Field: "email", Message: duplicateEmailMessage, kind: ErrDuplicateEmail}
}

// Store owns account creation and credential checks on top of Repository.
type Store struct {
	repo   *Repository
	hasher *Hasher
}

func NewStore(db bun.IDB, hasher *Hasher) *Store {
	return &Store{
		repo:   NewRepository(db),
		hasher: hasher,
	}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register validates and creates an active, unverified password account.
// The lookup only picks the conflict message; the unique index decides.
func (s *Store) Register(ctx context.Context, in NewAccount) (*User, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, conflictFor(existing)
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &User{
		Email:        in.Email,
		FullName:     in.FullName,
		Contact:      in.Contact,
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			// lost a race with a concurrent signup
			raced, lookupErr := s.repo.GetByEmail(ctx, in.Email)
			if lookupErr != nil {
				raced = nil
			}
			return nil, conflictFor(raced)
		}
		return nil, err
	}

	return created, nil
}

// CreateExternal creates a verified google-linked account without a password.
func (s *Store) CreateExternal(ctx context.Context, email, fullName, avatar string) (*User, error) {
	created, err := s.repo.Create(ctx, &User{
		Email:        NormalizeEmail(email),
		FullName:     strings.TrimSpace(fullName),
		Avatar:       avatar,
		IsActive:     true,
		IsVerified:   true,
		IsGoogleUser: true,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, conflictFor(nil)
		}
		return nil, err
	}
	return created, nil
}

// CheckPassword reports whether password matches. Accounts without a usable
// hash never match.
func (s *Store) CheckPassword(u *User, password string) bool {
	if u.PasswordHash == "" || password == "" {
		return false
	}
	ok, err := s.hasher.Verify(u.PasswordHash, password)
	return err == nil && ok
}

// MarkVerified reports whether the call changed the account.
func (s *Store) MarkVerified(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.MarkVerified(ctx, id)
}

func (s *Store) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) error {
	if update.Contact != nil && *update.Contact != "" && !contactPattern.MatchString(*update.Contact) {
		return FieldError("contact", "Invalid mobile number.")
	}
	return s.repo.UpdateProfile(ctx, id, update)
}

func (s *Store) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	return s.repo.TouchLastLogin(ctx, id, timeNow())
}

func (s *Store) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

// LinkGoogle finds or creates the google-linked account for email. An
// existing unverified google account is marked verified. Password accounts
// are returned untouched; the caller decides whether to refuse them.
func (s *Store) LinkGoogle(ctx context.Context, email, fullName, avatar string) (*User, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		created, createErr := s.CreateExternal(ctx, email, fullName, avatar)
		if !errors.Is(createErr, ErrDuplicateEmail) {
			return created, createErr
		}
		// a concurrent login created it first
		existing, err = s.repo.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}

	if existing.Kind() == ExternalIdentityAccount && existing.IsActive && !existing.IsVerified {
		if err := s.repo.LinkGoogle(ctx, existing.ID); err != nil {
			return nil, err
		}
		existing.IsVerified = true
	}
	return existing, nil
}
