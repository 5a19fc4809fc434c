package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("1234", 4) // min cost keeps the test fast
	require.NoError(t, err)
	require.NotEqual(t, "1234", hash)

	assert.True(t, VerifyPassword(hash, "1234"))
	assert.False(t, VerifyPassword(hash, "234"))
	assert.False(t, VerifyPassword(hash, ""))
}
