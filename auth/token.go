package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long a session token stays valid after it has been issued.
const TokenTTL = 24 * time.Hour

// ErrNoToken is returned when a request does not carry a bearer token.
var ErrNoToken = errors.New("auth: token is not set")

// Tokens issues and verifies the signed session tokens that identify users across requests.
type Tokens struct {
	key []byte
	now func() time.Time
}

// NewTokens returns a Tokens signing with the given HMAC key.
func NewTokens(key string) *Tokens {
	return &Tokens{
		key: []byte(key),
		now: time.Now,
	}
}

// Generate returns a signed token for the user with the given ID.
func (t *Tokens) Generate(userID string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate verifies a signed token and returns the ID of the user it was issued for.
func (t *Tokens) Validate(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("auth: unexpected signing method")
		}
		return t.key, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("auth: invalid token")
	}
	return claims.Subject, nil
}

// FromRequest extracts the bearer token from the Authorization header of r.
func FromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoToken
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return "", ErrNoToken
	}
	return token, nil
}
