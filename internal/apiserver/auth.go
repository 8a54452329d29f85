// Package apiserver is an async job service around the Filler: submit
// a grid and a named dictionary over HTTP, poll for the result, or
// subscribe over a websocket for a single completion push.
package apiserver

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for a missing, malformed, or
// wrong-signature service token.
var ErrInvalidToken = errors.New("apiserver: invalid service token")

// ErrTokenExpired is returned for an otherwise well-formed token past
// its expiry.
var ErrTokenExpired = errors.New("apiserver: service token expired")

// serviceClaims is deliberately thin: there are no accounts here, only
// one shared secret gating the job API, so it carries only the
// registered claims (issuer, issue time and expiry).
type serviceClaims struct {
	jwt.RegisteredClaims
}

// AuthService issues and validates the single shared-secret service
// token that gates the job API - there is nothing here to
// authenticate except the caller's possession of the shared secret.
type AuthService struct {
	secret   []byte
	lifetime time.Duration
}

// NewAuthService builds an AuthService signing tokens with secret.
func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: []byte(secret), lifetime: 24 * time.Hour}
}

// IssueToken mints a new service token.
func (s *AuthService) IssueToken() (string, error) {
	claims := &serviceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fillengine",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken reports whether tokenString is a current, correctly
// signed service token.
func (s *AuthService) ValidateToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &serviceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrInvalidToken
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
