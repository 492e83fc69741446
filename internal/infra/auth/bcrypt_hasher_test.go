package auth

import (
	"testing"

	"bistro/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHasher(cost int) *bcryptHasher {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: cost}}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	// Low cost keeps the test fast.
	hasher := newHasher(4)

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("wrong-password", hash))
	assert.False(t, hasher.Check(password, "not-a-bcrypt-hash"))
}

func TestBcryptHasher_SamePasswordDifferentHashes(t *testing.T) {
	hasher := newHasher(4)

	first, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)
	second, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)

	// Salts differ per call.
	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_CostOutOfRangeFallsBack(t *testing.T) {
	hasher := newHasher(99)
	assert.Equal(t, 10, hasher.cost) // bcrypt.DefaultCost

	nilAuth := NewBcryptHasher(&config.Config{}).(*bcryptHasher)
	assert.Equal(t, 10, nilAuth.cost)
}
