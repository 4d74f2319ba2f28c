package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Validation failures, distinguished for logging. The HTTP boundary collapses
// them into a single unauthorized response.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed or badly signed")
	ErrTokenUnsigned  = errors.New("no signing key configured")
)

// Claims are the identity facts bound inside a bearer token at issuance.
// The user id travels in the registered Subject claim.
type Claims struct {
	jwt.RegisteredClaims
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

// TokenManager issues and validates signed, time-bounded bearer tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and
// token lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue produces a signed token binding the user's id, email, and
// subscription tier for the configured lifetime.
func (t *TokenManager) Issue(userID, email, subscription string) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrTokenUnsigned
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Email:        email,
		Subscription: subscription,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate parses and verifies a bearer token. Attacker-controlled input
// always comes back as a typed error, never a panic.
func (t *TokenManager) Validate(tokenString string) (Claims, error) {
	if len(t.secret) == 0 {
		return Claims{}, ErrTokenUnsigned
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenMalformed
	}
	if !token.Valid {
		return Claims{}, ErrTokenMalformed
	}
	return claims, nil
}
