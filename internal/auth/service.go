package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/config"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/logging"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/signing"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/user"
)

// AuthTokens is a freshly minted session.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	// Rotated is false when only a new access token was issued.
	Rotated bool `json:"-"`
}

// SignupResult carries the created account and the link that was mailed.
type SignupResult struct {
	User             *user.User
	VerificationLink string
}

// VerifyResult is the outcome of an email verification.
type VerifyResult struct {
	User            *user.User
	Tokens          *AuthTokens
	AlreadyVerified bool
}

// Service handles authentication business logic
type Service struct {
	users    *user.Store
	tokens   TokenService
	authRepo RefreshTokenRepository
	verifier *signing.Codec
	notifier Notifier
	google   GoogleVerifier
	cfg      config.AuthConfig
	logger   *logging.Logger
}

// NewService wires the session issuer. authRepo and google may be nil:
// without a repository refresh tokens are never blacklisted, without a
// verifier Google login is refused.
func NewService(
	users *user.Store,
	tokens TokenService,
	authRepo RefreshTokenRepository,
	verifier *signing.Codec,
	notifier Notifier,
	google GoogleVerifier,
	cfg config.AuthConfig,
	logger *logging.Logger,
) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		authRepo: authRepo,
		verifier: verifier,
		notifier: notifier,
		google:   google,
		cfg:      cfg,
		logger:   logger,
	}
}

// VerificationLink builds the frontend URL that confirms an email address.
func VerificationLink(frontendURL, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/auth/verify-email?token=" + url.QueryEscape(token)
}

// Signup creates an account and dispatches its verification link.
// A dispatch failure is logged and does not fail the signup.
func (s *Service) Signup(ctx context.Context, in user.NewAccount) (*SignupResult, error) {
	created, err := s.users.Register(ctx, in)
	if err != nil {
		return nil, err
	}

	link := s.sendVerification(ctx, created)

	return &SignupResult{User: created, VerificationLink: link}, nil
}

func (s *Service) sendVerification(ctx context.Context, u *user.User) string {
	link := VerificationLink(s.cfg.FrontendURL, s.verifier.Issue(u.ID.String()))
	if err := s.notifier.SendVerification(ctx, u.Email, link); err != nil {
		s.logger.Error("failed to dispatch verification email", "user_id", u.ID, "error", err)
	}
	return link
}

// Login authenticates a password account and mints a session.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, *AuthTokens, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !existing.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	if existing.Kind() == user.ExternalIdentityAccount {
		return nil, nil, ErrGoogleAccountRequired
	}

	if !s.users.CheckPassword(existing, password) {
		return nil, nil, ErrInvalidCredentials
	}

	if !existing.IsVerified {
		s.sendVerification(ctx, existing)
		return nil, nil, ErrEmailUnverified
	}

	if err := s.users.TouchLastLogin(ctx, existing.ID); err != nil {
		s.logger.Warn("failed to update last login", "user_id", existing.ID, "error", err)
	}

	tokens, err := s.IssuePair(ctx, existing)
	if err != nil {
		return nil, nil, err
	}

	return existing, tokens, nil
}

// IssuePair mints an access and refresh token for u.
func (s *Service) IssuePair(ctx context.Context, u *user.User) (*AuthTokens, error) {
	accessToken, _, err := s.tokens.CreateToken(u.ID, AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshClaims, err := s.tokens.CreateToken(u.ID, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if s.authRepo != nil {
		if err := s.authRepo.StoreRefreshToken(ctx, u.ID, refreshClaims.ID, refreshClaims.ExpiresAt.Time); err != nil {
			s.logger.Warn("failed to record outstanding refresh token", "user_id", u.ID, "error", err)
		}
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.cfg.AccessTokenTTL.Seconds()),
		Rotated:      true,
	}, nil
}

// Refresh exchanges a refresh token for a new session. With rotation on the
// presented token is blacklisted and a new pair returned; with rotation off
// only a new access token is returned.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*user.User, *AuthTokens, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, nil, ErrMissingToken
	}

	claims, err := s.tokens.VerifyToken(refreshToken, RefreshToken)
	if err != nil {
		return nil, nil, ErrInvalidOrExpired
	}

	if claims.UserID == "" {
		return nil, nil, ErrUnknownUser
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, nil, ErrInvalidOrExpired
	}

	if s.authRepo != nil {
		blacklisted, err := s.authRepo.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("failed to check refresh token blacklist", "error", err)
		} else if blacklisted {
			return nil, nil, ErrInvalidOrExpired
		}
	}

	existing, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil, ErrUnknownUser
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !existing.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	if !s.cfg.RotateRefreshTokens {
		accessToken, _, err := s.tokens.CreateToken(existing.ID, AccessToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create access token: %w", err)
		}
		return existing, &AuthTokens{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   int64(s.cfg.AccessTokenTTL.Seconds()),
		}, nil
	}

	if s.cfg.BlacklistAfterRotation && s.authRepo != nil {
		err := s.authRepo.BlacklistRefreshToken(ctx, existing.ID, claims.ID, claims.ExpiresAt.Time)
		if errors.Is(err, ErrRefreshTokenRevoked) {
			// a concurrent refresh spent it first
			return nil, nil, ErrInvalidOrExpired
		}
		if err != nil {
			s.logger.Error("failed to blacklist rotated refresh token", "user_id", existing.ID, "error", err)
		}
	}

	tokens, err := s.IssuePair(ctx, existing)
	if err != nil {
		return nil, nil, err
	}

	return existing, tokens, nil
}

// Logout blacklists the presented refresh token. Invalid tokens are ignored.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if s.authRepo == nil || strings.TrimSpace(refreshToken) == "" {
		return nil
	}

	claims, err := s.tokens.VerifyToken(strings.TrimSpace(refreshToken), RefreshToken)
	if err != nil {
		return nil
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil
	}

	err = s.authRepo.BlacklistRefreshToken(ctx, userID, claims.ID, claims.ExpiresAt.Time)
	if err != nil && !errors.Is(err, ErrRefreshTokenRevoked) {
		return err
	}
	return nil
}

// VerifyEmail confirms the address carried by token. Already verified
// accounts succeed without a state change or a new session.
func (s *Service) VerifyEmail(ctx context.Context, token string) (*VerifyResult, error) {
	subject, err := s.verifier.Verify(token, s.cfg.VerificationMaxAge)
	if err != nil {
		if errors.Is(err, signing.ErrExpired) {
			return nil, ErrVerificationExpired
		}
		return nil, ErrVerificationInvalid
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrVerificationInvalid
	}

	existing, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if existing.IsVerified {
		return &VerifyResult{User: existing, AlreadyVerified: true}, nil
	}

	changed, err := s.users.MarkVerified(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify email: %w", err)
	}
	existing.IsVerified = true
	if !changed {
		return &VerifyResult{User: existing, AlreadyVerified: true}, nil
	}

	tokens, err := s.IssuePair(ctx, existing)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{User: existing, Tokens: tokens}, nil
}

// Me returns the account behind an access token.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	existing, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !existing.IsActive {
		return nil, ErrUnknownUser
	}
	return existing, nil
}

// GoogleLogin signs in with a Google ID token, creating a verified
// google-linked account on first use.
func (s *Service) GoogleLogin(ctx context.Context, idToken string) (*user.User, *AuthTokens, error) {
	if s.google == nil || strings.TrimSpace(idToken) == "" {
		return nil, nil, ErrInvalidGoogleToken
	}

	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, ErrInvalidGoogleToken) {
			return nil, nil, ErrInvalidGoogleToken
		}
		return nil, nil, fmt.Errorf("failed to verify google token: %w", err)
	}
	if !identity.EmailVerified {
		return nil, nil, ErrInvalidGoogleToken
	}

	existing, err := s.users.LinkGoogle(ctx, identity.Email, identity.Name, identity.Picture)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to link google account: %w", err)
	}
	if !existing.IsActive {
		return nil, nil, ErrAccountDisabled
	}
	if existing.Kind() != user.ExternalIdentityAccount {
		return nil, nil, ErrPasswordAccountExists
	}

	if err := s.users.TouchLastLogin(ctx, existing.ID); err != nil {
		s.logger.Warn("failed to update last login", "user_id", existing.ID, "error", err)
	}

	tokens, err := s.IssuePair(ctx, existing)
	if err != nil {
		return nil, nil, err
	}

	return existing, tokens, nil
}

// RevokeAll blacklists every outstanding refresh token of a user.
func (s *Service) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	if s.authRepo == nil {
		return nil
	}
	return s.authRepo.RevokeAllUserTokens(ctx, userID)
}

// RefreshTTL is the lifetime of refresh tokens, used for the cookie Max-Age.
func (s *Service) RefreshTTL() time.Duration {
	return s.cfg.RefreshTokenTTL
}
