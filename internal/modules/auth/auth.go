package auth

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned by Login when the pseudo/password pair
// does not match an account. It deliberately does not say which half failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service defines the interface for authentication business logic.
type Service interface {
	Login(ctx context.Context, pseudo, password string) (string, error)
}
