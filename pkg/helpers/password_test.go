package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	PasswordCost = bcrypt.MinCost

	hash, err := HashPassword("brush-and-canvas")
	require.NoError(t, err)
	assert.NotEqual(t, "brush-and-canvas", hash)

	assert.True(t, CompareHashAndPassword(hash, "brush-and-canvas"))
	assert.False(t, CompareHashAndPassword(hash, "brush-and-canvas!"))
	assert.False(t, CompareHashAndPassword("", "brush-and-canvas"))
}

func TestHashPassword_TooLong(t *testing.T) {
	PasswordCost = bcrypt.MinCost

	_, err := HashPassword(strings.Repeat("x", 73))
	assert.Error(t, err)
}
