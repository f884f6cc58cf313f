package listingRepo

import (
	"context"

	"stayfinder/models"
)

// ListingRepository defines methods for listing data access.
// Lookups return (nil, nil) when no document matches.
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Listing, error)
	// Search returns listings matching filter, newest first.
	Search(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error)
	// Update replaces the mutable fields of a listing. It reports false if no document matched.
	Update(ctx context.Context, listing *models.Listing) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	// AddReview appends review and stores the recomputed aggregate rating.
	AddReview(ctx context.Context, listingID string, review models.Review, rating float64) error
	EnsureIndexes(ctx context.Context) error
}
