package user

import (
	"time"

	"github.com/google/uuid"
)

// AccountKind selects how an account may authenticate.
type AccountKind int

const (
	// PasswordAccount authenticates with email and password.
	PasswordAccount AccountKind = iota
	// ExternalIdentityAccount authenticates only through Google.
	ExternalIdentityAccount
)

func (k AccountKind) String() string {
	if k == ExternalIdentityAccount {
		return "external_identity"
	}
	return "password"
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Contact      string     `json:"contact"`
	Avatar       string     `json:"-"`
	PasswordHash string     `json:"-"` // Never expose password hash in JSON
	IsActive     bool       `json:"is_active"`
	IsVerified   bool       `json:"is_verified"`
	IsGoogleUser bool       `json:"-"`
	IsStaff      bool       `json:"-"`
	LastLoginAt  *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Kind derives the account kind from the google-link flag.
func (u *User) Kind() AccountKind {
	if u.IsGoogleUser {
		return ExternalIdentityAccount
	}
	return PasswordAccount
}

// AvatarURL returns nil when no avatar is set.
func (u *User) AvatarURL() *string {
	if u.Avatar == "" {
		return nil
	}
	avatar := u.Avatar
	return &avatar
}

// Profile is the self-view returned by the "me" endpoint.
type Profile struct {
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Contact  string  `json:"contact"`
	Avatar   *string `json:"avatar"`
}

func (u *User) Profile() Profile {
	return Profile{
		Email:    u.Email,
		FullName: u.FullName,
		Contact:  u.Contact,
		Avatar:   u.AvatarURL(),
	}
}

// Summary is the user projection embedded in token responses.
type Summary struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Avatar   *string   `json:"avatar"`
}

func (u *User) Summary() Summary {
	return Summary{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Avatar:   u.AvatarURL(),
	}
}

// NewAccount is the validated input for a password signup.
type NewAccount struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Contact  string `json:"contact"`
	Password string `json:"password"`
}

// ProfileUpdate carries optional profile changes; nil fields are left alone.
type ProfileUpdate struct {
	FullName *string
	Contact  *string
	Avatar   *string
}
