package notification

import (
	"context"
	"time"

	"stayfinder/models"
	"stayfinder/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Emit persists every notification kind produces for booking. Inserts run
// concurrently and each one runs to completion regardless of its siblings.
// Failures are logged and returned per item, never as an error.
func (s *DefaultNotificationService) Emit(
	ctx context.Context,
	kind models.BookingStatus,
	booking *models.Booking,
	listing *models.Listing,
	actorID string,
) []EmitResult {
	if booking == nil {
		s.logger.Error("notification emit called without a booking", zap.String("kind", kind.String()))
		return nil
	}

	drafts := draftsFor(kind, booking, listing, actorID)
	if drafts == nil {
		s.logger.Error("no notification mapping for booking event",
			zap.String("kind", kind.String()),
			zap.String("bookingID", booking.ID))
		return nil
	}

	results := make([]EmitResult, len(drafts))
	var g errgroup.Group
	for i, d := range drafts {
		g.Go(func() error {
			results[i] = s.persist(ctx, kind, booking, listing, d)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *DefaultNotificationService) persist(
	ctx context.Context,
	kind models.BookingStatus,
	booking *models.Booking,
	listing *models.Listing,
	d draft,
) EmitResult {
	var snapshot string
	if listing != nil {
		snapshot = listing.Title
	}
	n := &models.Notification{
		ID:             uuid.New().String(),
		Recipient:      d.recipient,
		Type:           kind,
		Title:          d.title,
		Message:        d.message,
		RelatedBooking: booking.ID,
		RelatedListing: booking.Listing,
		ListingTitle:   snapshot,
		CreatedAt:      time.Now(),
	}

	if err := s.store.Create(ctx, n); err != nil {
		s.logger.Error("failed to persist notification",
			zap.String("kind", kind.String()),
			zap.String("recipient", d.recipient),
			zap.String("bookingID", booking.ID),
			zap.Error(err))
		return EmitResult{Err: utils.Internal("failed to persist notification", err)}
	}

	s.invalidateUnread(ctx, n.Recipient)
	s.enqueuePush(ctx, n)
	return EmitResult{Notification: n}
}

func (s *DefaultNotificationService) enqueuePush(ctx context.Context, n *models.Notification) {
	if s.pusher == nil {
		return
	}
	payload := models.PushPayload{
		NotificationID: n.ID,
		Recipient:      n.Recipient,
		Type:           n.Type.String(),
		Title:          n.Title,
		Message:        n.Message,
		BookingID:      n.RelatedBooking,
		ListingID:      n.RelatedListing,
	}
	if err := s.pusher.EnqueuePush(ctx, payload); err != nil {
		s.logger.Warn("failed to enqueue push notification",
			zap.String("notificationID", n.ID),
			zap.Error(err))
	}
}

// Failed counts the entries of results that did not persist.
func Failed(results []EmitResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
