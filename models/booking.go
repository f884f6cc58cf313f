package models

import "time"

// Booking is a reservation of a listing by a guest for a date range.
type Booking struct {
	ID      string `bson:"id" json:"id"`
	Listing string `bson:"listing" json:"listing"`
	Guest   string `bson:"guest" json:"guest"`
	// Host is the listing owner at the moment the booking was created. It is a
	// point-in-time snapshot and is never refreshed if the listing changes hands.
	Host            string        `bson:"host" json:"host"`
	CheckIn         time.Time     `bson:"check_in" json:"checkIn"`
	CheckOut        time.Time     `bson:"check_out" json:"checkOut"`
	NumberOfGuests  int           `bson:"number_of_guests" json:"numberOfGuests"`
	TotalPrice      float64       `bson:"total_price" json:"totalPrice"`
	SpecialRequests string        `bson:"special_requests" json:"specialRequests"`
	Status          BookingStatus `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus `bson:"payment_status" json:"paymentStatus"`
	PaymentID       string        `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Counterparty returns the party of the booking that is not userID.
func (b *Booking) Counterparty(userID string) string {
	if userID == b.Guest {
		return b.Host
	}
	return b.Guest
}
