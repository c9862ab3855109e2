package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("longenoughpass", "longenoughpass"))
	assert.ErrorIs(t, Validate("longenoughpass", "different-pass"), ErrMismatch)
	assert.ErrorIs(t, Validate("short", "short"), ErrTooShort)
	// Exactly ten runes is acceptable.
	assert.NoError(t, Validate("exactly10!", "exactly10!"))
}

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	assert.NoError(t, Verify("correct horse battery staple", hash))
	assert.ErrorIs(t, Verify("wrong password here", hash), ErrWrongPassword)
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	second, err := Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	err := Verify("anything at all", "$argon2id$garbage")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrWrongPassword)
}
