package auth

import (
	"context"
	"errors"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/storage"
)

// StaticProvider resolves tokens against the user store. In development the
// users file ships a demo user with a fixed token.
type StaticProvider struct {
	users  storage.UserRepository
	logger internal.Logger
}

func NewStaticProvider(users storage.UserRepository, logger internal.Logger) *StaticProvider {
	return &StaticProvider{users: users, logger: logger}
}

func (a *StaticProvider) Validate(ctx context.Context, token string) (*internal.User, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	user, err := a.users.GetUserByToken(ctx, token)
	if err != nil {
		a.logger.Warnf("auth: unknown token")
		return nil, errors.New("invalid token")
	}
	return user, nil
}
