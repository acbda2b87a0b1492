// Package auth guards the HTTP transport with short-lived HS256 bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fdg312/health-assistant/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	// ErrDevAuthDisabled is returned by IssueDevToken unless AUTH_MODE=dev.
	ErrDevAuthDisabled = errors.New("dev auth is disabled")
)

// DevUserID — subject выдаваемого dev-токена
const DevUserID = "dev-user"

// Claims — payload нашего access token
type Claims struct {
	jwt.RegisteredClaims
}

// TokenResponse — ответ POST /v1/auth/dev
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Tokens выпускает и проверяет токены. Now подменяется в тестах.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	devOn  bool

	Now func() time.Time
}

func NewTokens(cfg *config.Config) *Tokens {
	return &Tokens{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		ttl:    time.Duration(cfg.JWTTTLMinutes) * time.Minute,
		devOn:  cfg.AuthMode == "dev",
		Now:    time.Now,
	}
}

// IssueDevToken signs a token for DevUserID valid for JWT_TTL_MINUTES.
func (t *Tokens) IssueDevToken(_ context.Context) (*TokenResponse, error) {
	if !t.devOn {
		return nil, ErrDevAuthDisabled
	}

	now := t.Now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   DevUserID,
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return nil, fmt.Errorf("sign dev token: %w", err)
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(t.ttl.Seconds()),
	}, nil
}

// Verify returns the token subject. Any parse or claim failure is ErrInvalidToken.
func (t *Tokens) Verify(raw string) (string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.Now),
	)
	if err != nil || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
