package models

import "time"

// ListingSummary is the display projection of a listing inside other resources.
type ListingSummary struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Images        []string `json:"images"`
	City          string   `json:"city,omitempty"`
	Country       string   `json:"country,omitempty"`
	PricePerNight float64  `json:"pricePerNight,omitempty"`
}

func (l *Listing) Summary() *ListingSummary {
	if l == nil {
		return nil
	}
	return &ListingSummary{
		ID:            l.ID,
		Title:         l.Title,
		Images:        l.Images,
		City:          l.Location.City,
		Country:       l.Location.Country,
		PricePerNight: l.PricePerNight,
	}
}

// BookingView is a booking with its listing and parties expanded.
type BookingView struct {
	Booking
	ListingInfo *ListingSummary `json:"listingInfo"`
	GuestInfo   *UserSummary    `json:"guestInfo"`
	HostInfo    *UserSummary    `json:"hostInfo"`
}

// NotificationBooking is the booking projection shown with a notification.
type NotificationBooking struct {
	ID       string        `json:"id"`
	CheckIn  time.Time     `json:"checkIn"`
	CheckOut time.Time     `json:"checkOut"`
	Status   BookingStatus `json:"status"`
}

// NotificationView is the display-ready form of a notification.
type NotificationView struct {
	ID        string               `json:"id"`
	Type      BookingStatus        `json:"type"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Timestamp time.Time            `json:"timestamp"`
	IsRead    bool                 `json:"isRead"`
	BookingID string               `json:"bookingId,omitempty"`
	ListingID string               `json:"listingId,omitempty"`
	Listing   *ListingSummary      `json:"listing"`
	Booking   *NotificationBooking `json:"booking"`
}
