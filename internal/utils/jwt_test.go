package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-not-for-production"

func TestSessionTokenRoundTrip(t *testing.T) {
	st, err := NewSessionToken(testSecret, 42, "admin@example.com", "editor", 1)
	require.NoError(t, err)
	require.NotEmpty(t, st.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), st.Exp, 5*time.Second)

	s, err := ParseSessionToken(testSecret, st.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), s.AdminID)
	assert.Equal(t, "admin@example.com", s.Email)
	assert.Equal(t, "editor", s.Role)
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	st, err := NewSessionToken(testSecret, 1, "a@b.com", "admin", 1)
	require.NoError(t, err)

	_, err = ParseSessionToken("some-other-secret", st.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionTokenExpired(t *testing.T) {
	st, err := NewSessionToken(testSecret, 1, "a@b.com", "admin", -1)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, st.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := ParseSessionToken(testSecret, raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestParseSessionTokenMissingRole(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": 7,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionTokenRejectsUnsignedAlg(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  1,
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
