package booking

import (
	"context"

	"stayfinder/models"
	"stayfinder/utils"
)

func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID, requesterID string) (*models.BookingView, error) {
	b, err := s.load(ctx, bookingID, "Error fetching booking")
	if err != nil {
		return nil, err
	}
	if err := authorize(opView, b, requesterID); err != nil {
		return nil, err
	}
	views, err := s.expand(ctx, []models.Booking{*b})
	if err != nil {
		return nil, utils.Internal("Error fetching booking", err)
	}
	return &views[0], nil
}

func (s *DefaultBookingService) ListBookingsForGuest(ctx context.Context, guestID string) ([]models.BookingView, error) {
	bookings, err := s.store.ListByGuest(ctx, guestID)
	if err != nil {
		return nil, utils.Internal("Error fetching bookings", err)
	}
	return s.expandOrFail(ctx, bookings, "Error fetching bookings")
}

func (s *DefaultBookingService) ListBookingsForHost(ctx context.Context, hostID string) ([]models.BookingView, error) {
	bookings, err := s.store.ListByHost(ctx, hostID)
	if err != nil {
		return nil, utils.Internal("Error fetching host bookings", err)
	}
	return s.expandOrFail(ctx, bookings, "Error fetching host bookings")
}

// ListBookingsForListing is restricted to the listing's current owner.
func (s *DefaultBookingService) ListBookingsForListing(ctx context.Context, listingID, requesterID string) ([]models.BookingView, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, utils.Internal("Error fetching bookings", err)
	}
	if listing == nil {
		return nil, utils.NotFound("Listing not found")
	}
	if listing.OwnerID != requesterID {
		return nil, utils.Forbidden("Not authorized to view these bookings")
	}

	bookings, err := s.store.ListByListing(ctx, listingID)
	if err != nil {
		return nil, utils.Internal("Error fetching bookings", err)
	}
	return s.expandOrFail(ctx, bookings, "Error fetching bookings")
}

func (s *DefaultBookingService) expandOrFail(ctx context.Context, bookings []models.Booking, failMsg string) ([]models.BookingView, error) {
	views, err := s.expand(ctx, bookings)
	if err != nil {
		return nil, utils.Internal(failMsg, err)
	}
	return views, nil
}

// expand attaches listing and party summaries, fetching each collection once.
// Order of bookings is preserved.
func (s *DefaultBookingService) expand(ctx context.Context, bookings []models.Booking) ([]models.BookingView, error) {
	views := make([]models.BookingView, 0, len(bookings))
	if len(bookings) == 0 {
		return views, nil
	}

	listingIDs := uniq(bookings, func(b models.Booking) []string { return []string{b.Listing} })
	userIDs := uniq(bookings, func(b models.Booking) []string { return []string{b.Guest, b.Host} })

	listings, err := s.listings.GetByIDs(ctx, listingIDs)
	if err != nil {
		return nil, err
	}
	users, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	listingByID := make(map[string]*models.Listing, len(listings))
	for i := range listings {
		listingByID[listings[i].ID] = &listings[i]
	}
	userByID := make(map[string]*models.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	for _, b := range bookings {
		views = append(views, models.BookingView{
			Booking:     b,
			ListingInfo: listingByID[b.Listing].Summary(),
			GuestInfo:   userByID[b.Guest].Summary(),
			HostInfo:    userByID[b.Host].Summary(),
		})
	}
	return views, nil
}

func uniq(bookings []models.Booking, keys func(models.Booking) []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, b := range bookings {
		for _, k := range keys(b) {
			if k != "" && !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}
