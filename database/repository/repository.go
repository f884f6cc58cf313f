package repository

import (
	bookingRepo "stayfinder/database/repository/booking"
	listingRepo "stayfinder/database/repository/listing"
	notificationRepo "stayfinder/database/repository/notification"
	userRepo "stayfinder/database/repository/user"
)

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the ListingRepository interface and constructor.
type ListingRepository = listingRepo.ListingRepository

var NewMongoListingRepo = listingRepo.NewMongoListingRepo

type NotificationRepository = notificationRepo.NotificationRepository

var NewMongoNotificationRepo = notificationRepo.NewMongoNotificationRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepo = userRepo.NewMongoUserRepo

var ErrDuplicateEmail = userRepo.ErrDuplicateEmail
