package auth

import "errors"

// Login and account-state failures.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAccountDisabled       = errors.New("account is disabled")
	ErrGoogleAccountRequired = errors.New("account must sign in with google")
	ErrEmailUnverified       = errors.New("email is not verified")
	ErrPasswordAccountExists = errors.New("password account exists for email")
	ErrInvalidGoogleToken    = errors.New("invalid google id token")
)

// Session failures.
var (
	ErrMissingToken     = errors.New("refresh token missing")
	ErrInvalidOrExpired = errors.New("refresh token invalid or expired")
	ErrUnknownUser      = errors.New("token subject does not exist")
)

// Email verification failures.
var (
	ErrVerificationExpired = errors.New("verification link has expired")
	ErrVerificationInvalid = errors.New("invalid verification token")
	ErrUserNotFound        = errors.New("user not found")
)

// Token codec and store failures.
var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrExpiredToken        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
)
