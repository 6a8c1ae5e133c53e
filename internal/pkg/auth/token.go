// internal/pkg/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for tokens that fail signature or shape checks
var ErrInvalidToken = errors.New("invalid anti-forgery token")

// TokenClaims is the payload of an anti-forgery token. The token has no
// expiry of its own; it lives until the owning store rotates it.
type TokenClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// TokenManager issues and checks anti-forgery tokens
type TokenManager struct {
	secret []byte
	issuer string
}

// NewTokenManager creates a token manager signing with secret
func NewTokenManager(secret, issuer string) *TokenManager {
	return &TokenManager{secret: []byte(secret), issuer: issuer}
}

// Generate issues a fresh token bound to subject
func (m *TokenManager) Generate(subject string) (string, error) {
	claims := &TokenClaims{
		Nonce: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
			Issuer:   m.issuer,
			Subject:  subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign anti-forgery token: %w", err)
	}
	return signed, nil
}

// Parse validates the signature and returns the claims
func (m *TokenManager) Parse(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.Nonce == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
