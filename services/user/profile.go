package user

import (
	"context"
	"strings"

	"stayfinder/models"
	"stayfinder/utils"
)

func (s *DefaultUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Internal("Error fetching user", err)
	}
	if u == nil {
		return nil, utils.NotFound("User not found")
	}
	return u, nil
}

// UpdateFCMToken registers the device token used for push delivery. An empty
// token unregisters the device.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	ok, err := s.Repo.UpdateFCMToken(ctx, id, strings.TrimSpace(token))
	if err != nil {
		return utils.Internal("Error updating device token", err)
	}
	if !ok {
		return utils.NotFound("User not found")
	}
	return nil
}
