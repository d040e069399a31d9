package jwtadapter

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"parley/contexts/identity-access/account-service/ports"
)

const issuer = "parley"

// Codec implements ports.TokenCodec with HS256-signed JWTs. The subject
// claim carries the user email; expiry is fixed at construction.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) (Codec, error) {
	if secret == "" {
		return Codec{}, errors.New("token secret is required")
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return Codec{secret: []byte(secret), ttl: ttl}, nil
}

func (c Codec) Issue(email string, now time.Time) (ports.Session, error) {
	expiresAt := now.UTC().Add(c.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   email,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now.UTC()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return ports.Session{}, fmt.Errorf("sign token: %w", err)
	}
	return ports.Session{Token: token, ExpiresAt: expiresAt}, nil
}

func (c Codec) Verify(token string, now time.Time) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return now.UTC() }),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}
