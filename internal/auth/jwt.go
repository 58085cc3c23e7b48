package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
)

const jwtIssuer = "aura-insight-whisperer"

// JWTProvider validates HS256-signed bearer tokens. The user id travels in
// the standard "sub" claim; no store lookup is needed.
type JWTProvider struct {
	secret []byte
	logger internal.Logger
}

func NewJWTProvider(secret string, logger internal.Logger) (*JWTProvider, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &JWTProvider{secret: []byte(secret), logger: logger}, nil
}

func (a *JWTProvider) Validate(ctx context.Context, tokenStr string) (*internal.User, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", t.Header["alg"])
			}
			return a.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(jwtIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("auth: token expired")
		}
		a.logger.Warnf("auth: token rejected: %v", err)
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, errors.New("auth: invalid token claims")
	}
	return &internal.User{ID: claims.Subject}, nil
}

// IssueToken signs a token for the given user id. Used by tests and by
// operators provisioning API access.
func (a *JWTProvider) IssueToken(userID string, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = userID
	claims.Issuer = jwtIssuer
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}
