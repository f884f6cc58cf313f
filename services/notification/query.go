package notification

import (
	"context"

	"stayfinder/models"
	"stayfinder/utils"
)

// List returns the user's most recent notifications with their listing and
// booking references expanded. A reference whose document is gone expands to
// nil, except the listing title which falls back to the stored snapshot.
func (s *DefaultNotificationService) List(ctx context.Context, userID string) ([]models.NotificationView, error) {
	items, err := s.store.ListByRecipient(ctx, userID, RecentLimit)
	if err != nil {
		return nil, utils.Internal("Error fetching notifications", err)
	}
	views, err := s.expand(ctx, items)
	if err != nil {
		return nil, utils.Internal("Error fetching notifications", err)
	}
	return views, nil
}

// expand resolves the listings and bookings items refer to in one batch each.
func (s *DefaultNotificationService) expand(ctx context.Context, items []models.Notification) ([]models.NotificationView, error) {
	listingIDs, bookingIDs := referencedIDs(items)

	listings := map[string]*models.Listing{}
	if len(listingIDs) > 0 {
		found, err := s.listings.GetByIDs(ctx, listingIDs)
		if err != nil {
			return nil, err
		}
		for i := range found {
			listings[found[i].ID] = &found[i]
		}
	}

	bookings := map[string]*models.Booking{}
	if len(bookingIDs) > 0 {
		found, err := s.bookings.GetByIDs(ctx, bookingIDs)
		if err != nil {
			return nil, err
		}
		for i := range found {
			bookings[found[i].ID] = &found[i]
		}
	}

	views := make([]models.NotificationView, 0, len(items))
	for _, n := range items {
		views = append(views, toView(n, listings[n.RelatedListing], bookings[n.RelatedBooking]))
	}
	return views, nil
}

func referencedIDs(items []models.Notification) (listingIDs, bookingIDs []string) {
	seenL, seenB := map[string]bool{}, map[string]bool{}
	for _, n := range items {
		if n.RelatedListing != "" && !seenL[n.RelatedListing] {
			seenL[n.RelatedListing] = true
			listingIDs = append(listingIDs, n.RelatedListing)
		}
		if n.RelatedBooking != "" && !seenB[n.RelatedBooking] {
			seenB[n.RelatedBooking] = true
			bookingIDs = append(bookingIDs, n.RelatedBooking)
		}
	}
	return listingIDs, bookingIDs
}

func toView(n models.Notification, l *models.Listing, b *models.Booking) models.NotificationView {
	view := models.NotificationView{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Timestamp: n.CreatedAt,
		IsRead:    n.Read,
		BookingID: n.RelatedBooking,
		ListingID: n.RelatedListing,
	}

	switch {
	case l != nil:
		view.Listing = &models.ListingSummary{ID: l.ID, Title: l.Title, Images: l.Images}
	case n.RelatedListing != "" && n.ListingTitle != "":
		view.Listing = &models.ListingSummary{ID: n.RelatedListing, Title: n.ListingTitle, Images: []string{}}
	}

	if b != nil {
		view.Booking = &models.NotificationBooking{
			ID:       b.ID,
			CheckIn:  b.CheckIn,
			CheckOut: b.CheckOut,
			Status:   b.Status,
		}
	}
	return view
}

// MarkRead flags a notification as read and returns it in the same shape List
// uses. A notification owned by someone else is reported exactly like a
// missing one.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, userID string) (*models.NotificationView, error) {
	n, err := s.store.MarkRead(ctx, id, userID)
	if err != nil {
		return nil, utils.Internal("Error updating notification", err)
	}
	if n == nil {
		return nil, utils.NotFound("Notification not found")
	}
	s.invalidateUnread(ctx, userID)

	views, err := s.expand(ctx, []models.Notification{*n})
	if err != nil {
		return nil, utils.Internal("Error updating notification", err)
	}
	return &views[0], nil
}

// MarkAllRead leaves the cached count at zero rather than dropping it.
func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	modified, err := s.store.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, utils.Internal("Error updating notifications", err)
	}
	s.resetUnread(ctx, userID, 0)
	return modified, nil
}

// UnreadCount serves from the cache when it can and repopulates it otherwise.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	cached, hit, version, fillable := s.lookupUnread(ctx, userID)
	if hit {
		return cached, nil
	}
	count, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return 0, utils.Internal("Error counting notifications", err)
	}
	if fillable {
		s.fillUnread(ctx, userID, count, version)
	}
	return count, nil
}

// DeleteRead removes the user's read notifications.
func (s *DefaultNotificationService) DeleteRead(ctx context.Context, userID string) (int64, error) {
	deleted, err := s.store.DeleteRead(ctx, userID)
	if err != nil {
		return 0, utils.Internal("Error deleting notifications", err)
	}
	return deleted, nil
}
