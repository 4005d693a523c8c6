package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lleukocyte/travel-guide/internal/errors"
)

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher("pepper")

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=4$"), hash)

	assert.True(t, hasher.Verify(hash, "s3cret"))
	assert.False(t, hasher.Verify(hash, "wrong"))

	t.Run("salted", func(t *testing.T) {
		other, err := hasher.Hash("s3cret")
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
		assert.True(t, hasher.Verify(other, "s3cret"))
	})

	t.Run("pepper is part of the hash", func(t *testing.T) {
		assert.False(t, NewPasswordHasher("other-pepper").Verify(hash, "s3cret"))
	})

	t.Run("malformed hashes never match", func(t *testing.T) {
		for _, encoded := range []string{
			"",
			"plaintext",
			"$argon2i$v=19$m=65536,t=3,p=4$c2FsdA$a2V5",
			"$argon2id$v=18$m=65536,t=3,p=4$c2FsdA$a2V5",
			"$argon2id$v=19$bogus$c2FsdA$a2V5",
			"$argon2id$v=19$m=65536,t=3,p=4$!!$a2V5",
			"$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$",
		} {
			assert.False(t, hasher.Verify(encoded, "s3cret"), encoded)
		}
	})
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("jwt-secret", time.Hour)

	token, err := issuer.Issue(42, "ann@example.com")
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email())
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("jwt-secret", time.Hour)
	valid, err := issuer.Issue(1, "ann@example.com")
	require.NoError(t, err)

	expired, err := NewTokenIssuer("jwt-secret", -time.Minute).Issue(1, "ann@example.com")
	require.NoError(t, err)

	forged, err := NewTokenIssuer("another-secret", time.Hour).Issue(1, "ann@example.com")
	require.NoError(t, err)

	noSubject, err := issuer.Issue(1, "")
	require.NoError(t, err)

	other, err := issuer.Issue(2, "bob@example.com")
	require.NoError(t, err)
	validParts := strings.Split(valid, ".")
	otherParts := strings.Split(other, ".")
	tampered := validParts[0] + "." + otherParts[1] + "." + validParts[2]

	tests := map[string]string{
		"garbage":       "not-a-token",
		"empty":         "",
		"expired":       expired,
		"wrong secret":  forged,
		"tampered":      tampered,
		"missing email": noSubject,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Parse(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidToken), "got %v", err)
		})
	}
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected rune %q", r)
	}

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		c, err := GenerateCode(8)
		require.NoError(t, err)
		seen[c] = struct{}{}
	}
	assert.Greater(t, len(seen), 45, "codes should practically never repeat")

	_, err = GenerateCode(0)
	assert.Error(t, err)
}
