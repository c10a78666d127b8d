package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/config"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database/dbtest"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/logging"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/signing"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/user"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

var fastHash = user.HashParams{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

type sentMail struct {
	email string
	link  string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *fakeNotifier) SendVerification(_ context.Context, email, link string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{email: email, link: link})
	return n.err
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type fakeGoogle struct {
	identity *GoogleIdentity
	err      error
}

func (g *fakeGoogle) Verify(context.Context, string) (*GoogleIdentity, error) {
	return g.identity, g.err
}

// testClock is shared by the JWT service and the verification codec.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	service  *Service
	users    *user.Store
	tokens   *JWTService
	repo     *RedisRepository
	notifier *fakeNotifier
	google   *fakeGoogle
	codec    *signing.Codec
	clock    *testClock
	cfg      config.AuthConfig
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		SecretKey:              testSecret,
		AccessTokenTTL:         5 * time.Minute,
		RefreshTokenTTL:        24 * time.Hour,
		RotateRefreshTokens:    true,
		BlacklistAfterRotation: true,
		VerificationMaxAge:     600 * time.Second,
		FrontendURL:            "http://localhost:3000",
		TokenStore:             config.TokenStoreRedis,
	}
}

func newTestEnv(t *testing.T, mutate ...func(*config.AuthConfig)) *testEnv {
	t.Helper()

	cfg := testAuthConfig()
	for _, m := range mutate {
		m(&cfg)
	}

	clock := &testClock{now: time.Now()}

	tokens, err := NewJWTService(cfg.SecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, WithTimeFunc(clock.Now))
	require.NoError(t, err)

	codec, err := signing.New(cfg.SecretKey, signing.EmailConfirmationSalt, signing.WithClock(clock.Now))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := NewRedisRepository(client)

	users := user.NewStore(dbtest.New(t), user.NewHasher(fastHash))
	notifier := &fakeNotifier{}
	google := &fakeGoogle{}

	svc := NewService(users, tokens, repo, codec, notifier, google, cfg, logging.Discard())

	return &testEnv{
		service:  svc,
		users:    users,
		tokens:   tokens,
		repo:     repo,
		notifier: notifier,
		google:   google,
		codec:    codec,
		clock:    clock,
		cfg:      cfg,
	}
}

func validSignup(email string) user.NewAccount {
	return user.NewAccount{
		Email:    email,
		FullName: "Asha Rai",
		Contact:  "9812345678",
		Password: "Abcdefg1!",
	}
}

// verifiedUser creates an account that can log in with "Abcdefg1!".
func (e *testEnv) verifiedUser(t *testing.T, email string) *user.User {
	t.Helper()
	ctx := context.Background()

	u, err := e.users.Register(ctx, validSignup(email))
	require.NoError(t, err)
	_, err = e.users.MarkVerified(ctx, u.ID)
	require.NoError(t, err)
	u.IsVerified = true
	return u
}
