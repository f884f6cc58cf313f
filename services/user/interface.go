package user

import (
	"context"
	"fmt"

	"stayfinder/models"

	"go.uber.org/zap"
)

// UserService registers and authenticates users.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	IsHost   bool   `json:"isHost"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type Store interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) (bool, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo   Store
	logger *zap.Logger
}

func NewDefaultUserService(repo Store, logger *zap.Logger) (*DefaultUserService, error) {
	if repo == nil {
		return nil, fmt.Errorf("user service initialization error: repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{Repo: repo, logger: logger}, nil
}
