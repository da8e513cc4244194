// Package auth issues and verifies the HS256 access tokens that guard the
// admin API surface.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure modes. Handlers map all of them to a 401.
var (
	ErrTokenInvalid = errors.New("auth: token invalid")
	ErrTokenExpired = errors.New("auth: token expired")
)

// AdminUser is the authenticated principal attached to a request.
type AdminUser struct {
	ID    string   `json:"id"`
	Roles []string `json:"roles"`
}

type claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and verifies admin access tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewManager creates a token manager. The expiry applies to every token
// minted by CreateAccessToken.
func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// NewManagerWithClock is NewManager with an injectable clock for tests.
func NewManagerWithClock(secret string, expiry time.Duration, now func() time.Time) *Manager {
	return &Manager{secret: []byte(secret), expiry: expiry, now: now}
}

// CreateAccessToken mints a signed token for the given admin subject.
func (m *Manager) CreateAccessToken(subject string, roles []string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrTokenInvalid)
	}
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken parses and validates a bearer token, returning the
// admin principal it encodes.
func (m *Manager) VerifyAccessToken(tokenString string) (*AdminUser, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	return &AdminUser{ID: c.Subject, Roles: c.Roles}, nil
}
