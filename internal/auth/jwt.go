// Package auth provides operator session tokens, password hashing and
// the GitHub OAuth login for the admin surface. The API is
// single-operator: a session token names the operator login, not a
// user table row.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "portfolio-api"

// SessionDuration is the operator session lifetime. After expiry the
// operator logs in again; there is no refresh token.
const SessionDuration = 12 * time.Hour

// TokenService signs and validates operator session JWTs with an HMAC
// secret. The same secret verifies what it signed.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService. The secret must carry enough
// entropy to resist brute force; 16 characters is the floor.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

type claims struct {
	jwt.RegisteredClaims
}

// Generate signs a session token for the given operator login.
func (s *TokenService) Generate(operator string) (string, error) {
	return s.GenerateWithDuration(operator, SessionDuration)
}

// GenerateWithDuration signs a token with a custom lifetime. Tests use
// this to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(operator string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operator,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate verifies a token string and returns the operator login it
// was issued for. The method allow-list blocks algorithm confusion;
// issuer and expiry are enforced by the parser.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}
	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}
	return c.Subject, nil
}
