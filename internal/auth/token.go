package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"myContacts/models"
)

// Principal represents the authenticated caller decoded from a session token.
type Principal struct {
	UserID   int64
	Username string
	Role     models.Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

type sessionClaims struct {
	UserID int64  `json:"uid"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies HS256 session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessions creates a token issuer. A non-positive ttl issues tokens that
// never expire.
func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a session token for p.
func (s *Sessions) Issue(p *Principal) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("session secret is empty")
	}
	if p == nil || !p.Role.Valid() || p.Username == "" {
		return "", errors.New("invalid principal")
	}
	now := s.now()
	c := sessionClaims{
		UserID: p.UserID,
		Name:   p.Username,
		Role:   string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  p.Username,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Parse validates a session token and extracts its Principal.
func (s *Sessions) Parse(tokenStr string) (*Principal, error) {
	if len(s.secret) == 0 {
		return nil, errors.New("session secret is empty")
	}
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return nil, ErrUnauthenticated
	}
	tok, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	c, _ := tok.Claims.(*sessionClaims)
	if c == nil || c.Name == "" || !models.Role(c.Role).Valid() {
		return nil, fmt.Errorf("%w: invalid claims", ErrUnauthenticated)
	}
	return &Principal{UserID: c.UserID, Username: c.Name, Role: models.Role(c.Role)}, nil
}
