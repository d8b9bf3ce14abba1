// Package service provides the token boundary of the resolver: given a
// bearer token, produce an identity and its scope set. Everything past that
// point (ownership, scope checks) happens against registry state.
package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Scopes understood by the mutation endpoints.
const (
	ScopeRead  = "read"
	ScopeWrite = "write"
)

// TokenExp defines the expiration of issued tokens.
const TokenExp = time.Hour * 24 * 365

// Identity is an authenticated caller.
type Identity struct {
	Sub    string
	Scopes []string
}

// HasScope reports whether the identity carries the given scope.
func (i *Identity) HasScope(scope string) bool {
	for _, s := range i.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Claims are the JWT claims carried by resolver tokens.
type Claims struct {
	jwt.RegisteredClaims
	Scopes []string `json:"scopes"`
}

// AuthIface is the authentication capability used by the HTTP middleware.
type AuthIface interface {
	BuildToken(sub string, scopes []string) (string, error)
	Authenticate(token string) (*Identity, error)
}

// Auth issues and verifies HS256 bearer tokens.
type Auth struct {
	secret []byte
}

// NewAuth creates an Auth with the given signing secret.
func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// BuildToken signs a token for sub carrying the given scopes.
func (a *Auth) BuildToken(sub string, scopes []string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExp)),
		},
		Scopes: scopes,
	})

	return token.SignedString(a.secret)
}

// Authenticate parses and verifies a raw token string.
func (a *Auth) Authenticate(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return &Identity{
		Sub:    claims.Subject,
		Scopes: claims.Scopes,
	}, nil
}
