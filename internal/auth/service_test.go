package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/config"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/user"
)

func tokenFromLink(t *testing.T, link string) string {
	t.Helper()
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/auth/verify-email", parsed.Path)
	return parsed.Query().Get("token")
}

func TestService_SignupDispatchesVerification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.service.Signup(ctx, validSignup("asha@example.com"))
	require.NoError(t, err)

	assert.False(t, result.User.IsVerified)
	assert.NotEqual(t, "Abcdefg1!", result.User.PasswordHash)
	assert.True(t, strings.HasPrefix(result.VerificationLink, "http://localhost:3000/auth/verify-email?token="))
	require.Equal(t, 1, env.notifier.count())
	assert.Equal(t, "asha@example.com", env.notifier.sent[0].email)
	assert.Equal(t, result.VerificationLink, env.notifier.sent[0].link)

	subject, err := env.codec.Verify(tokenFromLink(t, result.VerificationLink), env.cfg.VerificationMaxAge)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), subject)
}

func TestService_SignupSurvivesNotifierFailure(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.err = errors.New("queue down")

	result, err := env.service.Signup(context.Background(), validSignup("asha@example.com"))
	require.NoError(t, err)
	assert.NotNil(t, result.User)
}

func TestService_SignupDuplicateIsConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.Signup(ctx, validSignup("asha@example.com"))
	require.NoError(t, err)

	_, err = env.service.Signup(ctx, validSignup("asha@example.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
	var conflict *user.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestService_LoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	u := env.verifiedUser(t, "asha@example.com")

	got, tokens, err := env.service.Login(context.Background(), "ASHA@example.com", "Abcdefg1!")
	require.NoError(t, err)

	assert.Equal(t, u.ID, got.ID)
	assert.True(t, tokens.Rotated)
	assert.Equal(t, int64(300), tokens.ExpiresIn)

	access, err := env.tokens.VerifyToken(tokens.AccessToken, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), access.UserID)

	_, err = env.tokens.VerifyToken(tokens.RefreshToken, RefreshToken)
	require.NoError(t, err)

	reloaded, err := env.users.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.LastLoginAt)
}

func TestService_LoginInvalidCredentialsAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.verifiedUser(t, "asha@example.com")
	ctx := context.Background()

	_, _, errMissing := env.service.Login(ctx, "nobody@example.com", "Abcdefg1!")
	_, _, errWrong := env.service.Login(ctx, "asha@example.com", "Wrong#pass1")

	assert.ErrorIs(t, errMissing, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
}

func TestService_LoginUnverifiedSendsExactlyOneMail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, validSignup("asha@example.com"))
	require.NoError(t, err)

	_, _, err = env.service.Login(ctx, "asha@example.com", "Abcdefg1!")
	assert.ErrorIs(t, err, ErrEmailUnverified)
	assert.Equal(t, 1, env.notifier.count())
}

func TestService_LoginUnverifiedWrongPasswordSendsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, validSignup("asha@example.com"))
	require.NoError(t, err)

	_, _, err = env.service.Login(ctx, "asha@example.com", "Wrong#pass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 0, env.notifier.count())
}

func TestService_LoginDisabledRegardlessOfPassword(t *testing.T) {
	env := newTestEnv(t)
	u := env.verifiedUser(t, "asha@example.com")
	ctx := context.Background()
	require.NoError(t, env.users.SetActive(ctx, u.ID, false))

	_, _, err := env.service.Login(ctx, "asha@example.com", "Abcdefg1!")
	assert.ErrorIs(t, err, ErrAccountDisabled)

	_, _, err = env.service.Login(ctx, "asha@example.com", "Wrong#pass1")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestService_LoginGoogleAccountRequired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.CreateExternal(ctx, "asha@example.com", "Asha Rai", "")
	require.NoError(t, err)

	_, _, err = env.service.Login(ctx, "asha@example.com", "Abcdefg1!")
	assert.ErrorIs(t, err, ErrGoogleAccountRequired)
}

func TestService_RefreshRotationRejectsReuse(t *testing.T) {
	env := newTestEnv(t)
	env.verifiedUser(t, "asha@example.com")
	ctx := context.Background()

	_, first, err := env.service.Login(ctx, "asha@example.com", "Abcdefg1!")
	require.NoError(t, err)

	_, second, err := env.service.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.True(t, second.Rotated)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, _, err = env.service.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpired)

	_, _, err = env.service.Refresh(ctx, second.RefreshToken)
	assert.NoError(t, err)
}

func TestService_RefreshConcurrentUseSucceedsOnce(t *testing.T) {
	env := newTestEnv(t)
	env.verifiedUser(t, "asha@example.com")
	ctx := context.Background()

	_, pair, err := env.service.Login(ctx, "asha@example.com", "Abcdefg1!")
	require.NoError(t, err)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := env.service.Refresh(ctx, pair.RefreshToken); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestService_RefreshWithoutRotationReusesToken(t *testing.T) {
	env := newTestEnv(t, func(c *config.AuthConfig) { c.RotateRefreshTokens = false })
	env.verifiedUser(t, "asha@example.com")
	ctx := context.Background()

	_, pair, err := env.service.Login(ctx, "asha@example.com", "Abcdefg1!")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, tokens, err := env.service.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.False(t, tokens.Rotated)
		assert.Empty(t, tokens.RefreshToken)
		assert.NotEmpty(t, tokens.AccessToken)
	}

	env.clock.Advance(env.cfg.RefreshTokenTTL + time.Second)
	_, _, err = env.service.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpired)
}

func TestService_RefreshWithoutBlacklistStore(t *testing.T) {
	env := newTestEnv(t)
	env.service.authRepo = nil
	env.verifiedUser(t, "asha@example.com")
	ctx := context.Background()

	_, pair, err := env.service.Login(ctx, "asha@example.com", "Abcdefg1!")
	require.NoError(t, err)

	_, tokens, err := env.service.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, tokens.Rotated)
}

func TestService_RefreshFailures(t *testing.T) {
	env := newTestEnv(t)
	u := env.verifiedUser(t, "asha@example.com")
	ctx := context.Background()

	_, _, err := env.service.Refresh(ctx, "  ")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, _, err = env.service.Refresh(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidOrExpired)

	access, _, err := env.tokens.CreateToken(u.ID, AccessToken)
	require.NoError(t, err)
	_, _, err = env.service.Refresh(ctx, access)
	assert.ErrorIs(t, err, ErrInvalidOrExpired, "access tokens are not refresh tokens")

	ghost, _, err := env.tokens.CreateToken(uuid.New(), RefreshToken)
	require.NoError(t, err)
	_, _, err = env.service.Refresh(ctx, ghost)
	assert.ErrorIs(t, err, ErrUnknownUser)

	refresh, _, err := env.tokens.CreateToken(u.ID, RefreshToken)
	require.NoError(t, err)
	env.clock.Advance(env.cfg.RefreshTokenTTL + time.Second)
	_, _, err = env.service.Refresh(ctx, refresh)
	assert.ErrorIs(t, err, ErrInvalidOrExpired)
}

func TestService_RefreshDisabledAccount(t *testing.T) {
	env := newTestEnv(t)
	u := env.verifiedUser(t, "asha@example.com")
	ctx := context.Background()

	_, pair, err := env.service.Login(ctx, "asha@example.com", "Abcdefg1!")
	require.NoError(t, err)
	require.NoError(t, env.users.SetActive(ctx, u.ID, false))

	_, _, err = env.service.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestService_LogoutBlacklistsRefreshToken(t *testing.T) {
	env := newTestEnv(t, func(c *config.AuthConfig) { c.RotateRefreshTokens = false })
	env.verifiedUser(t, "asha@example.com")
	ctx := context.Background()

	_, pair, err := env.service.Login(ctx, "asha@example.com", "Abcdefg1!")
	require.NoError(t, err)

	require.NoError(t, env.service.Logout(ctx, pair.RefreshToken))
	require.NoError(t, env.service.Logout(ctx, pair.RefreshToken), "second logout is a no-op")
	require.NoError(t, env.service.Logout(ctx, "garbage"))

	_, _, err = env.service.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpired)
}

func TestService_RevokeAll(t *testing.T) {
	env := newTestEnv(t)
	u := env.verifiedUser(t, "asha@example.com")
	ctx := context.Background()

	_, a, err := env.service.Login(ctx, "asha@example.com", "Abcdefg1!")
	require.NoError(t, err)
	_, b, err := env.service.Login(ctx, "asha@example.com", "Abcdefg1!")
	require.NoError(t, err)

	require.NoError(t, env.service.RevokeAll(ctx, u.ID))

	_, _, err = env.service.Refresh(ctx, a.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpired)
	_, _, err = env.service.Refresh(ctx, b.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpired)
}

func TestService_VerifyEmailIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.service.Signup(ctx, validSignup("asha@example.com"))
	require.NoError(t, err)
	token := tokenFromLink(t, result.VerificationLink)

	first, err := env.service.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.False(t, first.AlreadyVerified)
	require.NotNil(t, first.Tokens)
	assert.NotEmpty(t, first.Tokens.AccessToken)
	assert.True(t, first.User.IsVerified)

	second, err := env.service.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.True(t, second.AlreadyVerified)
	assert.Nil(t, second.Tokens)

	reloaded, err := env.users.FindByID(ctx, result.User.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsVerified)
}

func TestService_VerifyEmailFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.service.Signup(ctx, validSignup("asha@example.com"))
	require.NoError(t, err)
	token := tokenFromLink(t, result.VerificationLink)

	_, err = env.service.VerifyEmail(ctx, "")
	assert.ErrorIs(t, err, ErrVerificationInvalid)

	_, err = env.service.VerifyEmail(ctx, token+"x")
	assert.ErrorIs(t, err, ErrVerificationInvalid)

	_, err = env.service.VerifyEmail(ctx, env.codec.Issue("not-a-uuid"))
	assert.ErrorIs(t, err, ErrVerificationInvalid)

	_, err = env.service.VerifyEmail(ctx, env.codec.Issue(uuid.NewString()))
	assert.ErrorIs(t, err, ErrUserNotFound)

	env.clock.Advance(env.cfg.VerificationMaxAge + time.Second)
	_, err = env.service.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, ErrVerificationExpired)
}

func TestService_Me(t *testing.T) {
	env := newTestEnv(t)
	u := env.verifiedUser(t, "asha@example.com")
	ctx := context.Background()

	got, err := env.service.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", got.Profile().Email)

	_, err = env.service.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestService_GoogleLoginCreatesVerifiedAccount(t *testing.T) {
	env := newTestEnv(t)
	env.google.identity = &GoogleIdentity{
		Subject:       "g-1",
		Email:         "Asha@Example.com",
		EmailVerified: true,
		Name:          "Asha Rai",
		Picture:       "https://example.com/a.png",
	}
	ctx := context.Background()

	u, tokens, err := env.service.GoogleLogin(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, "Asha@Example.com", u.Email)
	assert.Equal(t, user.ExternalIdentityAccount, u.Kind())
	assert.True(t, u.IsVerified)
	assert.NotEmpty(t, tokens.RefreshToken)

	again, _, err := env.service.GoogleLogin(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
}

func TestService_GoogleLoginRefusals(t *testing.T) {
	env := newTestEnv(t)
	env.verifiedUser(t, "asha@example.com")
	ctx := context.Background()

	env.google.identity = &GoogleIdentity{Email: "asha@example.com", EmailVerified: true}
	_, _, err := env.service.GoogleLogin(ctx, "id-token")
	assert.ErrorIs(t, err, ErrPasswordAccountExists)

	env.google.identity = &GoogleIdentity{Email: "other@example.com", EmailVerified: false}
	_, _, err = env.service.GoogleLogin(ctx, "id-token")
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)

	env.google.err = ErrInvalidGoogleToken
	_, _, err = env.service.GoogleLogin(ctx, "id-token")
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)

	_, _, err = env.service.GoogleLogin(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)
}

func TestService_GoogleLoginRefusesDisabledGoogleAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.users.CreateExternal(ctx, "g@example.com", "G", "")
	require.NoError(t, err)
	require.NoError(t, env.users.SetActive(ctx, u.ID, false))

	env.google.identity = &GoogleIdentity{Subject: "g-2", Email: "g@example.com", EmailVerified: true}
	_, _, err = env.service.GoogleLogin(ctx, "id-token")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestVerificationLink(t *testing.T) {
	assert.Equal(t, "https://shop.example/auth/verify-email?token=a%2Bb", VerificationLink("https://shop.example/", "a+b"))
}
