package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService(testSecret, 5*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	userID := uuid.New()
	token, claims, err := svc.CreateToken(userID, RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	got, err := svc.VerifyToken(token, RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), got.UserID)
	assert.Equal(t, claims.ID, got.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), got.ExpiresAt.Time, 2*time.Second)
}

func TestJWTService_RejectsShortSecret(t *testing.T) {
	_, err := NewJWTService([]byte("short"), time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestJWTService_TypeMismatch(t *testing.T) {
	svc, err := NewJWTService(testSecret, 5*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	access, _, err := svc.CreateToken(uuid.New(), AccessToken)
	require.NoError(t, err)

	_, err = svc.VerifyToken(access, RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Expiry(t *testing.T) {
	clock := &testClock{now: time.Now()}
	svc, err := NewJWTService(testSecret, 5*time.Minute, 24*time.Hour, WithTimeFunc(clock.Now))
	require.NoError(t, err)

	access, _, err := svc.CreateToken(uuid.New(), AccessToken)
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)
	_, err = svc.VerifyToken(access, AccessToken)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = svc.VerifyToken(access, AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ForeignSecretAndAlgorithm(t *testing.T) {
	svc, err := NewJWTService(testSecret, 5*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	other, err := NewJWTService([]byte("fedcba9876543210fedcba9876543210"), 5*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	foreign, _, err := other.CreateToken(uuid.New(), AccessToken)
	require.NoError(t, err)
	_, err = svc.VerifyToken(foreign, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims := &TokenClaims{
		UserID:    uuid.NewString(),
		TokenType: AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	_, err = svc.VerifyToken(hs256, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
