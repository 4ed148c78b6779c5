package userRepo

import (
	"context"
	"errors"

	"telecare/models"
)

// ErrNotFound is returned when no user matches the given id.
var ErrNotFound = errors.New("user not found")

// UserRepository exposes read access to user identities, used only to
// populate appointment responses. Identity management is external.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}
