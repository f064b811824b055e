package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
)

// TokenSource supplies the bearer token attached to every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken returns the same opaque token for every request.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token(context.Context) (string, error) {
	return string(s), nil
}

// JWTToken hands out an access token issued by the auth backend. The
// expiry claim is checked before each request so an expired session
// surfaces as an authentication error instead of a doomed round trip.
// The signature is not verified; only the server holds the secret.
type JWTToken struct {
	raw       string
	expiresAt time.Time
}

// NewJWTToken parses the raw token and records its expiry claim.
func NewJWTToken(raw string) (*JWTToken, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	token := &JWTToken{raw: raw}
	expiry, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("read access token expiry: %w", err)
	}
	if expiry != nil {
		token.expiresAt = expiry.Time
	}
	return token, nil
}

// Token implements TokenSource.
func (t *JWTToken) Token(context.Context) (string, error) {
	if !t.expiresAt.IsZero() && time.Now().After(t.expiresAt) {
		return "", apperror.New(apperror.KindAuthentication, "auth.token_expired", "access token is expired")
	}
	return t.raw, nil
}

// ExpiresAt reports the token expiry, or the zero time when the token
// carries no expiry claim.
func (t *JWTToken) ExpiresAt() time.Time {
	return t.expiresAt
}
