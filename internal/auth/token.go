package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lotus-studio/lotus/internal/shared"
)

// TokenCodec issues and verifies HS256-signed bearer tokens. The secret and
// expiration window are fixed at construction and shared by all requests.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec constructs a codec for the given secret and expiration window.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue builds a signed token whose subject is the principal's email and
// whose expiry is issuedAt plus the configured window.
func (c *TokenCodec) Issue(principalKey string, issuedAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   principalKey,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the token signature and expiry and returns the embedded
// subject. Blank, malformed, badly signed and expired tokens all yield
// shared.ErrInvalidToken; callers cannot tell them apart.
func (c *TokenCodec) Verify(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", shared.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired(), jwt.WithTimeFunc(c.now))
	if err != nil || !parsed.Valid {
		return "", shared.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", shared.ErrInvalidToken
	}
	return claims.Subject, nil
}
