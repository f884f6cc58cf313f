package notificationRepo

import (
	"context"

	"stayfinder/models"
)

// NotificationRepository defines methods for notification data access.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	// ListByRecipient returns at most limit notifications, newest first.
	ListByRecipient(ctx context.Context, recipient string, limit int64) ([]models.Notification, error)
	// MarkRead flags one notification as read when it belongs to recipient.
	// It returns (nil, nil) when no such notification exists.
	MarkRead(ctx context.Context, id, recipient string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, recipient string) (int64, error)
	CountUnread(ctx context.Context, recipient string) (int64, error)
	DeleteRead(ctx context.Context, recipient string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}
