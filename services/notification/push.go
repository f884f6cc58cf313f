package notification

import (
	"context"
	"fmt"

	"stayfinder/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// MessageSender is the subset of the FCM client used for delivery.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// UserLookup resolves a recipient to its device token.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// PushSender delivers queued notifications through Firebase Cloud Messaging.
type PushSender struct {
	client MessageSender
	users  UserLookup
	logger *zap.Logger
}

func NewPushSender(client MessageSender, users UserLookup, logger *zap.Logger) *PushSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PushSender{client: client, users: users, logger: logger}
}

// Send pushes p to the recipient's device. Recipients without a registered
// token are skipped without error.
func (s *PushSender) Send(ctx context.Context, p models.PushPayload) error {
	u, err := s.users.GetByID(ctx, p.Recipient)
	if err != nil {
		return fmt.Errorf("push: could not load user %s: %w", p.Recipient, err)
	}
	if u == nil || u.FCMToken == "" {
		s.logger.Debug("push skipped, no device token", zap.String("recipient", p.Recipient))
		return nil
	}

	if _, err := s.client.Send(ctx, buildMessage(u.FCMToken, p)); err != nil {
		return fmt.Errorf("push: failed to send FCM message: %w", err)
	}
	s.logger.Info("push delivered",
		zap.String("recipient", p.Recipient),
		zap.String("notificationID", p.NotificationID))
	return nil
}

func buildMessage(token string, p models.PushPayload) *messaging.Message {
	data := map[string]string{
		"type":           p.Type,
		"notificationId": p.NotificationID,
	}
	if p.BookingID != "" {
		data["bookingId"] = p.BookingID
	}
	if p.ListingID != "" {
		data["listingId"] = p.ListingID
	}

	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: p.Title,
			Body:  p.Message,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
}
