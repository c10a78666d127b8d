package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastParams = HashParams{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(fastParams)

	hash, err := h.Hash("Secret#123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$"))
	assert.NotContains(t, hash, "Secret#123")

	ok, err := h.Verify(hash, "Secret#123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(hash, "Secret#124")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_UniqueSalts(t *testing.T) {
	h := NewHasher(fastParams)
	a, err := h.Hash("Secret#123")
	require.NoError(t, err)
	b, err := h.Hash("Secret#123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHasher_MalformedHash(t *testing.T) {
	h := NewHasher(fastParams)
	for _, encoded := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$aa$bb", "$argon2id$v=19$garbage$aa$bb"} {
		ok, err := h.Verify(encoded, "Secret#123")
		assert.ErrorIs(t, err, ErrInvalidHash, encoded)
		assert.False(t, ok)
	}
}
