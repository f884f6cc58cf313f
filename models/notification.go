package models

import "time"

// Notification is a recipient-addressed record of a booking lifecycle event.
type Notification struct {
	ID             string        `bson:"id" json:"id"`
	Recipient      string        `bson:"recipient" json:"recipient"`
	Type           BookingStatus `bson:"type" json:"type"`
	Title          string        `bson:"title" json:"title"`
	Message        string        `bson:"message" json:"message"`
	Read           bool          `bson:"read" json:"read"`
	RelatedListing string        `bson:"related_listing,omitempty" json:"relatedListing,omitempty"`
	RelatedBooking string        `bson:"related_booking,omitempty" json:"relatedBooking,omitempty"`
	// ListingTitle survives deletion of the booking or listing it describes.
	ListingTitle string    `bson:"listing_title,omitempty" json:"listingTitle,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// PushPayload is the queued body of a push-delivery task.
type PushPayload struct {
	NotificationID string `json:"notificationId"`
	Recipient      string `json:"recipient"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	BookingID      string `json:"bookingId,omitempty"`
	ListingID      string `json:"listingId,omitempty"`
}
