package listing

import (
	"context"
	"fmt"

	"stayfinder/models"

	"go.uber.org/zap"
)

// ListingService manages listings and their reviews.
type ListingService interface {
	CreateListing(ctx context.Context, owner *models.User, in ListingInput) (*models.Listing, error)
	GetListing(ctx context.Context, id string) (*models.Listing, error)
	SearchListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error)
	UpdateListing(ctx context.Context, id, requesterID string, in ListingInput) (*models.Listing, error)
	DeleteListing(ctx context.Context, id, requesterID string) error
	AddReview(ctx context.Context, listingID, userID string, in ReviewInput) (*models.Listing, error)
}

// ListingInput is the writable part of a listing.
type ListingInput struct {
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Location       models.Location    `json:"location"`
	Images         []string           `json:"images"`
	PricePerNight  float64            `json:"pricePerNight"`
	Bedrooms       int                `json:"bedrooms"`
	Bathrooms      int                `json:"bathrooms"`
	MaxGuests      int                `json:"maxGuests"`
	Amenities      []string           `json:"amenities"`
	AvailableDates []models.DateRange `json:"availableDates"`
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type Store interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	Search(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	AddReview(ctx context.Context, listingID string, review models.Review, rating float64) error
}

type DefaultListingService struct {
	repo   Store
	logger *zap.Logger
}

func NewDefaultListingService(repo Store, logger *zap.Logger) (*DefaultListingService, error) {
	if repo == nil {
		return nil, fmt.Errorf("listing service initialization error: repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultListingService{repo: repo, logger: logger}, nil
}
