package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	userRepo "stayfinder/database/repository/user"
	"stayfinder/models"
	"stayfinder/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

func (s *DefaultUserService) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, utils.InvalidInput("Name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, utils.InvalidInput("Please provide a valid email")
	}
	if len(in.Password) < minPasswordLength {
		return nil, utils.InvalidInput("Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Internal("Error registering user", err)
	}

	role := models.RoleGuest
	if in.IsHost {
		role = models.RoleHost
	}
	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return nil, utils.Conflict("User already exists")
		}
		return nil, utils.Internal("Error registering user", err)
	}
	s.logger.Info("user registered", zap.String("userID", u.ID), zap.String("role", string(u.Role)))

	return s.issue(u)
}

func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.Internal("Error logging in", err)
	}
	if u == nil {
		return nil, utils.Unauthenticated("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, utils.Unauthenticated("Invalid credentials")
	}
	return s.issue(u)
}

func (s *DefaultUserService) issue(u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, utils.TokenTTL)
	if err != nil {
		return nil, utils.Internal("Error issuing token", err)
	}
	return &AuthResponse{User: u, Token: token}, nil
}
