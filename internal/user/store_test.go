package user

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/database/dbtest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(dbtest.New(t), NewHasher(fastParams))
}

func TestStore_RegisterCreatesUnverifiedActiveAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := validAccount()
	in.Email = "Asha@Example.com"
	u, err := s.Register(ctx, in)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "Asha@Example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsVerified)
	assert.Equal(t, PasswordAccount, u.Kind())
	assert.NotEqual(t, in.Password, u.PasswordHash)

	found, err := s.FindByEmail(ctx, "Asha@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.True(t, s.CheckPassword(found, "Secret#123"))
	assert.False(t, s.CheckPassword(found, "Secret#124"))
}

func TestStore_RegisterValidation(t *testing.T) {
	s := newTestStore(t)

	in := validAccount()
	in.Password = "short"
	_, err := s.Register(context.Background(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
}

func TestStore_RegisterDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, validAccount())
	require.NoError(t, err)

	_, err = s.Register(ctx, validAccount())
	require.ErrorIs(t, err, ErrDuplicateEmail)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
	assert.Equal(t, duplicateEmailMessage, conflict.Message)
}

func TestStore_RegisterOverGoogleAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateExternal(ctx, "asha@example.com", "Asha", "")
	require.NoError(t, err)

	_, err = s.Register(ctx, validAccount())
	require.ErrorIs(t, err, ErrGoogleAccountExists)
	assert.Equal(t, googleAccountMessage, err.Error())
}

func TestStore_ConcurrentRegisterCreatesOne(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Register(ctx, validAccount())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, ErrDuplicateEmail), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
}

func TestStore_ExternalAccountHasNoUsablePassword(t *testing.T) {
	s := newTestStore(t)

	u, err := s.CreateExternal(context.Background(), "g@example.com", "G", "https://img.example/g.png")
	require.NoError(t, err)

	assert.Equal(t, ExternalIdentityAccount, u.Kind())
	assert.True(t, u.IsVerified)
	assert.False(t, s.CheckPassword(u, ""))
	assert.False(t, s.CheckPassword(u, "anything"))
	require.NotNil(t, u.Profile().Avatar)
	assert.Equal(t, "https://img.example/g.png", *u.Profile().Avatar)
}

func TestStore_MarkVerifiedIsOneWay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.Register(ctx, validAccount())
	require.NoError(t, err)

	changed, err := s.MarkVerified(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.MarkVerified(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	found, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, found.IsVerified)
}

func TestStore_SetActiveAndProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.Register(ctx, validAccount())
	require.NoError(t, err)

	require.NoError(t, s.SetActive(ctx, u.ID, false))
	name := "Asha R."
	require.NoError(t, s.UpdateProfile(ctx, u.ID, ProfileUpdate{FullName: &name}))
	require.NoError(t, s.TouchLastLogin(ctx, u.ID))

	found, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
	assert.Equal(t, "Asha R.", found.FullName)
	assert.NotNil(t, found.LastLoginAt)
	assert.Nil(t, found.Profile().Avatar)

	bad := "123"
	var verr *ValidationError
	assert.ErrorAs(t, s.UpdateProfile(ctx, u.ID, ProfileUpdate{Contact: &bad}), &verr)

	assert.ErrorIs(t, s.SetActive(ctx, uuid.New(), true), ErrNotFound)
}

func TestStore_EmailCaseIsSignificant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	upper := validAccount()
	upper.Email = "Asha@Example.com"
	first, err := s.Register(ctx, upper)
	require.NoError(t, err)

	second, err := s.Register(ctx, validAccount())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "asha@example.com", second.Email)

	found, err := s.FindByEmail(ctx, "  Asha@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = s.FindByEmail(ctx, "ASHA@EXAMPLE.COM")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_LinkGoogleFindsOrCreates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.LinkGoogle(ctx, "g@example.com", " G User ", "https://img.example/g.png")
	require.NoError(t, err)
	assert.Equal(t, ExternalIdentityAccount, created.Kind())
	assert.True(t, created.IsVerified)
	assert.Equal(t, "G User", created.FullName)

	again, err := s.LinkGoogle(ctx, "g@example.com", "Other", "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "G User", again.FullName)
}

func TestStore_LinkGoogleVerifiesPendingAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pending, err := s.repo.Create(ctx, &User{Email: "g@example.com", IsActive: true, IsGoogleUser: true})
	require.NoError(t, err)
	require.False(t, pending.IsVerified)

	linked, err := s.LinkGoogle(ctx, "g@example.com", "G", "")
	require.NoError(t, err)
	assert.Equal(t, pending.ID, linked.ID)
	assert.True(t, linked.IsVerified)

	stored, err := s.FindByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
}

func TestStore_LinkGoogleLeavesPasswordAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.Register(ctx, validAccount())
	require.NoError(t, err)

	got, err := s.LinkGoogle(ctx, u.Email, "Asha", "")
	require.NoError(t, err)
	assert.Equal(t, PasswordAccount, got.Kind())
	assert.False(t, got.IsVerified)
}
