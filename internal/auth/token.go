package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired marks a token whose lifetime elapsed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid marks a token that failed signature or shape checks.
	ErrTokenInvalid = errors.New("token invalid")
)

// SessionClaims is the signed payload carried by the session cookie. The
// subject holds the decimal user ID; the admin flag rides along so the login
// flow can pick a landing page without a store round-trip.
type SessionClaims struct {
	jwt.RegisteredClaims
	Admin bool `json:"adm"`
}

// UserID returns the numeric id encoded in the subject claim.
func (c *SessionClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// TokenManager issues and verifies signed session tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a manager with the provided secret, issuer, and
// token lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the time source used for issuing and validating.
func (t *TokenManager) WithClock(now func() time.Time) *TokenManager {
	t.now = now
	return t
}

// Issue signs a token for the user. Expiry is always issued-at plus the
// configured TTL; tokens are never extended, only reissued.
func (t *TokenManager) Issue(userID int64, admin bool) (string, error) {
	now := t.now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Admin: admin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature, issuer, and expiry, returning the decoded claims.
// Expired tokens surface as ErrTokenExpired; every other failure collapses
// into ErrTokenInvalid so callers treat both as "reauthenticate".
func (t *TokenManager) Verify(tokenString string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
