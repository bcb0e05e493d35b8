package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("Secret#123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret#123", hashed)

	assert.True(t, CheckPassword(hashed, "Secret#123"))
	assert.False(t, CheckPassword(hashed, "secret#123"))
	assert.False(t, CheckPassword("", "Secret#123"))
}

func TestGenerateRandomPassword(t *testing.T) {
	pw, err := GenerateRandomPassword(12)
	require.NoError(t, err)
	assert.Len(t, pw, 12)
	for _, c := range pw {
		assert.True(t, strings.ContainsRune(passwordAlphabet, c), "unexpected character %q", c)
	}

	other, err := GenerateRandomPassword(12)
	require.NoError(t, err)
	assert.NotEqual(t, pw, other)
}

func TestGenerateRandomPasswordDefaultsLength(t *testing.T) {
	pw, err := GenerateRandomPassword(0)
	require.NoError(t, err)
	assert.Len(t, pw, 12)
}
