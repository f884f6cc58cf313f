package notification

import (
	"context"
	"fmt"

	"stayfinder/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RecentLimit caps how many notifications List returns.
const RecentLimit = 50

// NotificationService emits booking lifecycle notifications and serves them back to recipients.
type NotificationService interface {
	Emitter
	List(ctx context.Context, userID string) ([]models.NotificationView, error)
	MarkRead(ctx context.Context, id, userID string) (*models.NotificationView, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	DeleteRead(ctx context.Context, userID string) (int64, error)
}

// Emitter turns a booking event into persisted notifications.
type Emitter interface {
	Emit(ctx context.Context, kind models.BookingStatus, booking *models.Booking, listing *models.Listing, actorID string) []EmitResult
}

// EmitResult is the outcome of persisting one notification. Exactly one of
// Notification and Err is set.
type EmitResult struct {
	Notification *models.Notification
	Err          error
}

// Store is the persistence the service needs for its own records.
type Store interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipient string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, recipient string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, recipient string) (int64, error)
	CountUnread(ctx context.Context, recipient string) (int64, error)
	DeleteRead(ctx context.Context, recipient string) (int64, error)
}

// ListingLookup and BookingLookup expand notification references for display.
type ListingLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]models.Listing, error)
}

type BookingLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]models.Booking, error)
}

// Pusher hands a persisted notification to the push delivery queue.
type Pusher interface {
	EnqueuePush(ctx context.Context, payload models.PushPayload) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	store    Store
	listings ListingLookup
	bookings BookingLookup
	cache    UnreadCache
	pusher   Pusher
	logger   *zap.Logger
}

// Option configures optional collaborators.
type Option func(*DefaultNotificationService)

// WithCache enables the Redis unread-count cache. A nil client leaves it disabled.
func WithCache(c *redis.Client) Option {
	return func(s *DefaultNotificationService) {
		if c != nil {
			s.cache = NewRedisUnreadCache(c)
		}
	}
}

// WithUnreadCache installs any UnreadCache implementation.
func WithUnreadCache(c UnreadCache) Option {
	return func(s *DefaultNotificationService) { s.cache = c }
}

// WithPusher enables push delivery of every emitted notification.
func WithPusher(p Pusher) Option {
	return func(s *DefaultNotificationService) { s.pusher = p }
}

func NewDefaultNotificationService(
	store Store,
	listings ListingLookup,
	bookings BookingLookup,
	logger *zap.Logger,
	opts ...Option,
) (*DefaultNotificationService, error) {
	if store == nil || listings == nil || bookings == nil {
		return nil, fmt.Errorf("notification service initialization error: store, listing or booking lookup is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DefaultNotificationService{
		store:    store,
		listings: listings,
		bookings: bookings,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}
