package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("password123")
	require.NoError(t, err)
	h2, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", h1)
	assert.NotEqual(t, h1, h2, "hashes are salted")
	assert.True(t, CheckPassword(h1, "password123"))
	assert.False(t, CheckPassword(h1, "password124"))
	assert.False(t, CheckPassword("not-a-hash", "password123"))
}
