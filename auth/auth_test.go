package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T, ttl time.Duration) *Gate {
	t.Helper()
	g, err := NewFromPassword("admin", "s3cret", "test-signing-secret", ttl)
	require.NoError(t, err)
	return g
}

func TestLoginThenAuthorize(t *testing.T) {
	g := newTestGate(t, time.Hour)

	token, err := g.Login("admin", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := g.Authorize(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", identity)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	g := newTestGate(t, time.Hour)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "root", "s3cret"},
		{"both wrong", "root", "nope"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := g.Login(tc.username, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Empty(t, token)
		})
	}
}

func TestAuthorizeRejectsGarbage(t *testing.T) {
	g := newTestGate(t, time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := g.Authorize(token)
		assert.ErrorIs(t, err, ErrUnauthorized, "token %q", token)
	}
}

func TestAuthorizeRejectsExpiredToken(t *testing.T) {
	g := newTestGate(t, time.Hour)

	token, err := g.Login("admin", "s3cret")
	require.NoError(t, err)

	// Move the gate's clock past the token expiry.
	g.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = g.Authorize(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorizeRejectsForeignSecret(t *testing.T) {
	g := newTestGate(t, time.Hour)
	other, err := NewFromPassword("admin", "s3cret", "a-different-secret", time.Hour)
	require.NoError(t, err)

	token, err := other.Login("admin", "s3cret")
	require.NoError(t, err)

	_, err = g.Authorize(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthorizeRejectsUnsignedToken(t *testing.T) {
	g := newTestGate(t, time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = g.Authorize(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
