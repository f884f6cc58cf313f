package userRepo

import (
	"context"
	"errors"

	"stayfinder/models"
)

// ErrDuplicateEmail is returned by Create when the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines methods for user data access.
// Lookups return (nil, nil) when no document matches.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) (bool, error)
	EnsureIndexes(ctx context.Context) error
}
