package booking

import (
	"context"

	"stayfinder/models"
	"stayfinder/services/notification"
	"stayfinder/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking records a pending booking against an existing listing and
// notifies the host.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, in CreateInput) (*models.Booking, error) {
	listing, err := s.listings.GetByID(ctx, in.ListingID)
	if err != nil {
		return nil, utils.Internal("Error creating booking", err)
	}
	if listing == nil {
		return nil, utils.NotFound("Listing not found")
	}

	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return nil, utils.InvalidInput("Check-in and check-out dates are required")
	}
	if !in.CheckOut.After(in.CheckIn) {
		return nil, utils.InvalidRange("Check-out date must be after check-in date")
	}
	if in.NumberOfGuests < 0 {
		return nil, utils.InvalidInput("Number of guests must be at least 1")
	}
	if in.TotalPrice < 0 {
		return nil, utils.InvalidInput("Total price cannot be negative")
	}

	guests := in.NumberOfGuests
	if guests == 0 {
		guests = 1
	}
	price := in.TotalPrice
	if price == 0 {
		price = listing.PricePerNight
	}

	now := s.now()
	// Host is a snapshot of the owner at booking time; later ownership changes do not move it.
	b := &models.Booking{
		ID:              uuid.New().String(),
		Listing:         listing.ID,
		Guest:           in.GuestID,
		Host:            listing.OwnerID,
		CheckIn:         in.CheckIn,
		CheckOut:        in.CheckOut,
		NumberOfGuests:  guests,
		TotalPrice:      price,
		SpecialRequests: in.SpecialRequests,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, utils.Internal("Error creating booking", err)
	}

	s.notify(ctx, models.StatusPending, b, listing, in.GuestID)
	return b, nil
}

// TransitionStatus moves a booking along the transition table on behalf of its host.
func (s *DefaultBookingService) TransitionStatus(ctx context.Context, bookingID, requesterID string, next models.BookingStatus) (*models.Booking, error) {
	current, err := s.load(ctx, bookingID, "Error updating booking status")
	if err != nil {
		return nil, err
	}
	if err := authorize(opTransition, current, requesterID); err != nil {
		return nil, err
	}
	if !canTransition(current.Status, next) {
		return nil, utils.InvalidTransition(current.Status.String(), next.String())
	}

	updated, err := s.setStatus(ctx, bookingID, next, "Error updating booking status")
	if err != nil {
		return nil, err
	}

	s.notify(ctx, next, updated, s.listingFor(ctx, updated), requesterID)
	return updated, nil
}

// CancelBooking forces a booking to cancelled from any status and notifies the
// other party.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, requesterID string) (*models.Booking, error) {
	current, err := s.load(ctx, bookingID, "Error cancelling booking")
	if err != nil {
		return nil, err
	}
	if err := authorize(opCancel, current, requesterID); err != nil {
		return nil, err
	}

	updated, err := s.setStatus(ctx, bookingID, models.StatusCancelled, "Error cancelling booking")
	if err != nil {
		return nil, err
	}

	s.notify(ctx, models.StatusCancelled, updated, s.listingFor(ctx, updated), requesterID)
	return updated, nil
}

// DeleteBooking notifies the other party and then removes the booking for good.
// The notification keeps its own copy of the listing title.
func (s *DefaultBookingService) DeleteBooking(ctx context.Context, bookingID, requesterID string) error {
	current, err := s.load(ctx, bookingID, "Error deleting booking")
	if err != nil {
		return err
	}
	if err := authorize(opDelete, current, requesterID); err != nil {
		return err
	}

	s.notify(ctx, models.StatusCancelled, current, s.listingFor(ctx, current), requesterID)

	deleted, err := s.store.Delete(ctx, bookingID)
	if err != nil {
		return utils.Internal("Error deleting booking", err)
	}
	if !deleted {
		return utils.NotFound("Booking not found")
	}
	return nil
}

func (s *DefaultBookingService) load(ctx context.Context, bookingID, failMsg string) (*models.Booking, error) {
	b, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.Internal(failMsg, err)
	}
	if b == nil {
		return nil, utils.NotFound("Booking not found")
	}
	return b, nil
}

// setStatus writes status and reports NotFound if the booking vanished since it was read.
func (s *DefaultBookingService) setStatus(ctx context.Context, bookingID string, status models.BookingStatus, failMsg string) (*models.Booking, error) {
	updated, err := s.store.UpdateStatus(ctx, bookingID, status, s.now())
	if err != nil {
		return nil, utils.Internal(failMsg, err)
	}
	if updated == nil {
		return nil, utils.NotFound("Booking not found")
	}
	return updated, nil
}

// listingFor loads the booking's listing for message text. A missing listing is
// not an error here.
func (s *DefaultBookingService) listingFor(ctx context.Context, b *models.Booking) *models.Listing {
	listing, err := s.listings.GetByID(ctx, b.Listing)
	if err != nil {
		s.logger.Warn("could not load listing for notification",
			zap.String("bookingID", b.ID),
			zap.String("listingID", b.Listing),
			zap.Error(err))
		return nil
	}
	return listing
}

// notify emits the event's notifications. Failures are logged only; the
// booking operation has already succeeded.
func (s *DefaultBookingService) notify(ctx context.Context, kind models.BookingStatus, b *models.Booking, listing *models.Listing, actorID string) {
	results := s.emitter.Emit(ctx, kind, b, listing, actorID)
	if failed := notification.Failed(results); failed > 0 {
		s.logger.Warn("booking notifications partially failed",
			zap.String("bookingID", b.ID),
			zap.String("kind", kind.String()),
			zap.Int("failed", failed),
			zap.Int("attempted", len(results)))
		return
	}
	s.logger.Debug("booking notifications sent",
		zap.String("bookingID", b.ID),
		zap.String("kind", kind.String()),
		zap.Int("count", len(results)))
}
