package listing

import (
	"context"
	"time"

	"stayfinder/models"
	"stayfinder/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultListingService) CreateListing(ctx context.Context, owner *models.User, in ListingInput) (*models.Listing, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	l := &models.Listing{
		ID:        uuid.New().String(),
		OwnerID:   owner.ID,
		HostName:  owner.Name,
		CreatedAt: now,
		UpdatedAt: now,
		Reviews:   []models.Review{},
	}
	apply(l, in)

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, utils.Internal("Error creating listing", err)
	}
	s.logger.Info("listing created", zap.String("listingID", l.ID), zap.String("ownerID", l.OwnerID))
	return l, nil
}

func apply(l *models.Listing, in ListingInput) {
	l.Title = in.Title
	l.Description = in.Description
	l.Location = in.Location
	l.Images = in.Images
	l.PricePerNight = in.PricePerNight
	l.Bedrooms = in.Bedrooms
	l.Bathrooms = in.Bathrooms
	l.MaxGuests = in.MaxGuests
	l.Amenities = in.Amenities
	if l.Amenities == nil {
		l.Amenities = []string{}
	}
	l.AvailableDates = in.AvailableDates
}

func (s *DefaultListingService) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Internal("Error fetching listing", err)
	}
	if l == nil {
		return nil, utils.NotFound("Listing not found")
	}
	return l, nil
}

// SearchListings applies the filter without relevance ranking; results are newest first.
func (s *DefaultListingService) SearchListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	if filter.MinPrice < 0 || filter.MaxPrice < 0 || filter.Guests < 0 {
		return nil, utils.InvalidInput("Filters cannot be negative")
	}
	if filter.MaxPrice > 0 && filter.MinPrice > filter.MaxPrice {
		return nil, utils.InvalidRange("Minimum price cannot exceed maximum price")
	}
	listings, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, utils.Internal("Error fetching listings", err)
	}
	return listings, nil
}

func (s *DefaultListingService) ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	listings, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.Internal("Error fetching host listings", err)
	}
	return listings, nil
}

func (s *DefaultListingService) owned(ctx context.Context, id, requesterID, action string) (*models.Listing, error) {
	l, err := s.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != requesterID {
		return nil, utils.Forbidden("Not authorized to " + action + " this listing")
	}
	return l, nil
}

func (s *DefaultListingService) UpdateListing(ctx context.Context, id, requesterID string, in ListingInput) (*models.Listing, error) {
	l, err := s.owned(ctx, id, requesterID, "update")
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	apply(l, in)
	ok, err := s.repo.Update(ctx, l)
	if err != nil {
		return nil, utils.Internal("Error updating listing", err)
	}
	if !ok {
		return nil, utils.NotFound("Listing not found")
	}
	return l, nil
}

// DeleteListing removes the listing only. Bookings against it are kept and
// render without listing details.
func (s *DefaultListingService) DeleteListing(ctx context.Context, id, requesterID string) error {
	if _, err := s.owned(ctx, id, requesterID, "delete"); err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return utils.Internal("Error deleting listing", err)
	}
	if !ok {
		return utils.NotFound("Listing not found")
	}
	return nil
}

// AddReview appends a review and stores the new mean rating.
func (s *DefaultListingService) AddReview(ctx context.Context, listingID, userID string, in ReviewInput) (*models.Listing, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	l, err := s.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	review := models.Review{
		ID:        uuid.New().String(),
		User:      userID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now(),
	}
	l.Reviews = append(l.Reviews, review)
	l.Rating = meanRating(l.Reviews)

	if err := s.repo.AddReview(ctx, listingID, review, l.Rating); err != nil {
		return nil, utils.Internal("Error adding review", err)
	}
	return l, nil
}

func meanRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}
