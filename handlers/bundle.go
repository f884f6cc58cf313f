package handlers

import (
	"stayfinder/middleware"

	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups the endpoint handlers and what the auth middleware needs.
type HandlerBundle struct {
	UserRepo  middleware.UserLookup
	AuthCache *redis.Client

	Auth          *AuthHandler
	Listings      *ListingHandler
	Bookings      *BookingHandler
	Notifications *NotificationHandler
	// Storage is nil when image uploads are not configured.
	Storage *StorageHandler
}
