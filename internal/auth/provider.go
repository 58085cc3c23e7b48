package auth

import (
	"context"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
)

// Provider resolves a bearer token to a user.
type Provider interface {
	Validate(ctx context.Context, token string) (*internal.User, error)
}
