package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$argon2id$v=19$"))

	assert.True(t, VerifyPassword(digest, "correct horse battery staple"))
	assert.False(t, VerifyPassword(digest, "correct horse battery stapl"))
	assert.False(t, VerifyPassword(digest, ""))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword(first, "same password"))
	assert.True(t, VerifyPassword(second, "same password"))
}

func TestVerifyPasswordFailsClosed(t *testing.T) {
	digest, err := HashPassword("a password")
	require.NoError(t, err)

	malformed := []string{
		"",
		"not a digest at all",
		"$argon2id$v=19$m=65536,t=1,p=4",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!",
		"$argon2id$v=19$m=65536,t=1,p=4$$",
		strings.Replace(digest, "argon2id", "argon2d", 1),
	}
	for _, d := range malformed {
		assert.False(t, VerifyPassword(d, "a password"), "digest %q must not verify", d)
	}
}
