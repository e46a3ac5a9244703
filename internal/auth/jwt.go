package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/i474232898/weather-premium/internal/account"
)

const (
	defaultIssuer   = "weather-premium"
	defaultTokenTTL = 24 * time.Hour
)

var (
	// ErrNoSecret is returned when tokens are used without a configured secret.
	ErrNoSecret = errors.New("jwt secret is not configured")

	// ErrNoSubject is returned for a valid token that names no account.
	ErrNoSubject = errors.New("token has no subject")
)

// Claims carried by a bearer token. The account is the standard "sub" claim;
// "account_id" is accepted for tokens minted by other tools.
type Claims struct {
	AccountID string `json:"account_id,omitempty"`
	jwt.RegisteredClaims
}

// Resolver issues HS256 bearer tokens and turns them back into identities.
type Resolver struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTTL sets the lifetime of issued tokens.
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		r.ttl = ttl
	}
}

// NewResolver creates a Resolver signing with secret.
func NewResolver(secret string, opts ...Option) *Resolver {
	r := &Resolver{
		secret: []byte(secret),
		issuer: defaultIssuer,
		ttl:    defaultTokenTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Issue returns a signed token for accountID.
func (r *Resolver) Issue(accountID string) (string, error) {
	if len(r.secret) == 0 {
		return "", ErrNoSecret
	}
	if accountID == "" {
		return "", ErrNoSubject
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    r.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(r.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(r.secret)
}

// Resolve validates tokenString and returns the identity it names.
func (r *Resolver) Resolve(tokenString string) (account.Identity, error) {
	if len(r.secret) == 0 {
		return account.Anonymous, ErrNoSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil {
		return account.Anonymous, err
	}
	if !token.Valid {
		return account.Anonymous, errors.New("invalid token")
	}

	id := claims.Subject
	if id == "" {
		id = claims.AccountID
	}
	if id == "" {
		return account.Anonymous, ErrNoSubject
	}
	return account.Identity{AccountID: id}, nil
}

// extractToken strips the "Bearer " prefix from an Authorization header.
func extractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return authHeader
}
