package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned by Login on a bad username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned by Authorize for missing, malformed,
	// expired or otherwise unverifiable tokens.
	ErrUnauthorized = errors.New("unauthorized")
)

// Gate verifies the configured admin credentials and mints/validates the
// bearer tokens protecting the /admin routes. It holds no session state;
// tokens are valid until their expiry.
type Gate struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	issuer       string
	now          func() time.Time
}

// New builds a Gate from a bcrypt password hash.
func New(username, passwordHash, secret string, ttl time.Duration) *Gate {
	return &Gate{
		username:     username,
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		issuer:       "gmb-backend",
		now:          time.Now,
	}
}

// NewFromPassword hashes a plaintext admin password at startup. Prefer
// configuring ADMIN_PASSWORD_HASH so the plaintext never reaches the process.
func NewFromPassword(username, password, secret string, ttl time.Duration) (*Gate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}
	return New(username, string(hash), secret, ttl), nil
}

// Login checks the credential pair and returns a signed bearer token.
// The username comparison is constant-time and bcrypt runs regardless of
// the username result, so timing reveals nothing about which half failed.
func (g *Gate) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return "", ErrInvalidCredentials
	}

	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   g.username,
		Issuer:    g.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Authorize validates a bearer token and returns the admin identity it was
// issued to. Any failure collapses to ErrUnauthorized; callers must not
// learn why a token was rejected.
func (g *Gate) Authorize(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrUnauthorized
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	}, jwt.WithTimeFunc(g.now))
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}
	if claims.Subject != g.username {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}
