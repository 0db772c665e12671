// Package identity consumes the external identity provider. The booking
// engine only ever sees a verified caller identity plus an admin flag; how
// credentials are issued is outside this service.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	apperrors "piqueunique/pkg/errors"
)

// Identity is the verified caller of a request.
type Identity struct {
	UID     string
	Email   string
	IsAdmin bool
}

// Provider verifies a bearer credential and resolves admin membership.
type Provider interface {
	Verify(ctx context.Context, bearer string) (*Identity, error)
	IsAdmin(uid string) bool
}

type jwtProvider struct {
	secret []byte
	admins map[string]struct{}
}

// NewJWTProvider verifies HS256 bearer tokens issued by the auth frontend.
// Admin membership comes from the configured UID set.
func NewJWTProvider(secret string, adminUIDs []string) Provider {
	admins := make(map[string]struct{}, len(adminUIDs))
	for _, uid := range adminUIDs {
		admins[uid] = struct{}{}
	}
	return &jwtProvider{
		secret: []byte(secret),
		admins: admins,
	}
}

func (p *jwtProvider) Verify(ctx context.Context, bearer string) (*Identity, error) {
	raw := strings.TrimSpace(bearer)
	if raw == "" {
		return nil, apperrors.Unauthorized("missing bearer token")
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, apperrors.Unauthorized("invalid credential")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.Unauthorized("invalid credential")
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		return nil, apperrors.Unauthorized("invalid credential")
	}
	email, _ := claims["email"].(string)

	return &Identity{
		UID:     uid,
		Email:   email,
		IsAdmin: p.IsAdmin(uid),
	}, nil
}

func (p *jwtProvider) IsAdmin(uid string) bool {
	_, ok := p.admins[uid]
	return ok
}
