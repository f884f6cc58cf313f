package booking

import (
	"context"
	"fmt"
	"time"

	"stayfinder/models"
	"stayfinder/services/notification"

	"go.uber.org/zap"
)

// BookingService owns the booking lifecycle: creation, host-driven status
// transitions, cancellation and deletion, and the read projections.
type BookingService interface {
	CreateBooking(ctx context.Context, in CreateInput) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID, requesterID string) (*models.BookingView, error)
	TransitionStatus(ctx context.Context, bookingID, requesterID string, next models.BookingStatus) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, requesterID string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID, requesterID string) error
	ListBookingsForGuest(ctx context.Context, guestID string) ([]models.BookingView, error)
	ListBookingsForHost(ctx context.Context, hostID string) ([]models.BookingView, error)
	ListBookingsForListing(ctx context.Context, listingID, requesterID string) ([]models.BookingView, error)
}

// CreateInput carries a booking request. Zero NumberOfGuests and TotalPrice
// mean "use the default".
type CreateInput struct {
	ListingID       string
	GuestID         string
	CheckIn         time.Time
	CheckOut        time.Time
	NumberOfGuests  int
	TotalPrice      float64
	SpecialRequests string
}

// Store is the booking persistence the engine depends on.
type Store interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus, updatedAt time.Time) (*models.Booking, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListByGuest(ctx context.Context, guestID string) ([]models.Booking, error)
	ListByHost(ctx context.Context, hostID string) ([]models.Booking, error)
	ListByListing(ctx context.Context, listingID string) ([]models.Booking, error)
}

type ListingLookup interface {
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Listing, error)
}

type UserLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	store    Store
	listings ListingLookup
	users    UserLookup
	emitter  notification.Emitter
	logger   *zap.Logger
	now      func() time.Time
}

func NewDefaultBookingService(
	store Store,
	listings ListingLookup,
	users UserLookup,
	emitter notification.Emitter,
	logger *zap.Logger,
) (*DefaultBookingService, error) {
	if store == nil || listings == nil || users == nil || emitter == nil {
		return nil, fmt.Errorf("booking service initialization error: missing dependency")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		store:    store,
		listings: listings,
		users:    users,
		emitter:  emitter,
		logger:   logger,
		now:      time.Now,
	}, nil
}
