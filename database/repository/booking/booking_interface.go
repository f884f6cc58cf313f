package bookingRepo

import (
	"context"
	"time"

	"stayfinder/models"
)

// BookingRepository defines methods for booking data access.
// Lookups return (nil, nil) when no document matches.
type BookingRepository interface {
	// Create inserts a new booking document.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByIDs retrieves every booking whose ID is in ids.
	GetByIDs(ctx context.Context, ids []string) ([]models.Booking, error)
	// UpdateStatus sets status and updatedAt in one atomic write and returns the updated document.
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus, updatedAt time.Time) (*models.Booking, error)
	// Delete removes a booking. It reports false if nothing was deleted.
	Delete(ctx context.Context, id string) (bool, error)
	// ListByGuest returns a guest's bookings, newest first.
	ListByGuest(ctx context.Context, guestID string) ([]models.Booking, error)
	// ListByHost returns bookings hosted by hostID, newest first.
	ListByHost(ctx context.Context, hostID string) ([]models.Booking, error)
	// ListByListing returns bookings made against listingID, newest first.
	ListByListing(ctx context.Context, listingID string) ([]models.Booking, error)
	// EnsureIndexes creates the indexes the queries above rely on.
	EnsureIndexes(ctx context.Context) error
}
