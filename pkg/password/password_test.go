package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Secret123!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Secret123!", hash)

	// Same input yields a different hash thanks to the salt.
	again, err := HashPassword("Secret123!")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestComparePassword(t *testing.T) {
	hash, err := HashPassword("Secret123!")
	require.NoError(t, err)

	t.Run("matching password", func(t *testing.T) {
		match, err := ComparePassword(hash, "Secret123!")
		require.NoError(t, err)
		assert.True(t, match)
	})

	t.Run("wrong password", func(t *testing.T) {
		match, err := ComparePassword(hash, "WrongSecret123!")
		require.NoError(t, err)
		assert.False(t, match)
	})

	t.Run("malformed hash", func(t *testing.T) {
		match, err := ComparePassword("not-a-bcrypt-hash", "Secret123!")
		assert.Error(t, err)
		assert.False(t, match)
	})
}
